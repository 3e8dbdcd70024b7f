package distribution

import "math"

// ReconcileTolerance is the relative error allowed between Result.Sum and
// Result.Total before a distribution is considered not to reconcile.
const ReconcileTolerance = 1e-9

// Result is the reference-currency breakdown of a payment.
// Intern is always zero for the basic policy.
type Result struct {
	Company      float64 `json:"company"`
	WorkingDev   float64 `json:"workingDev"`
	JobHunter    float64 `json:"jobHunter"`
	Communicator float64 `json:"communicator"`
	Intern       float64 `json:"intern"`
	Total        float64 `json:"total"`
}

// Sum adds up every share.
func (r Result) Sum() float64 {
	return r.Company + r.WorkingDev + r.JobHunter + r.Communicator + r.Intern
}

// Unallocated is the part of Total not assigned to any share. It is non-zero
// when an advanced policy's company and developer percentages do not add up
// to 100.
func (r Result) Unallocated() float64 {
	return r.Total - r.Sum()
}

// Reconciles reports whether the shares add up to Total within tolerance,
// scaled by the size of the payment.
func (r Result) Reconciles(tolerance float64) bool {
	return math.Abs(r.Unallocated()) <= tolerance*math.Max(1, math.Abs(r.Total))
}

// HasNegativeShare reports whether any share came out below zero, which
// happens when intern deductions exceed the developer's share.
func (r Result) HasNegativeShare() bool {
	return r.Company < 0 || r.WorkingDev < 0 || r.JobHunter < 0 || r.Communicator < 0 || r.Intern < 0
}
