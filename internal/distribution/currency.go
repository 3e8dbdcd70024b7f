package distribution

// ToReference converts a local-currency amount into the reference currency.
// rate is the number of local units per reference unit.
func ToReference(local, rate float64) float64 {
	return local / rate
}

// ToLocal mirrors a reference-currency amount in the local currency.
func ToLocal(ref, rate float64) float64 {
	return ref * rate
}
