package distribution

// Basic policy rates, as fractions of the payment.
const (
	basicCompanyRate = 0.30
	basicRemainRate  = 0.70
	basicHunterRate  = 0.05
	// Developer base once a separate job hunter is paid. Fixed policy, not
	// the remainder minus the hunter's share.
	basicDevWithHunterRate = 0.65
	// Communicator's cut of the developer base.
	basicCommunicatorRate = 0.10
)

// ComputeBasic splits amount under the fixed basic policy.
func ComputeBasic(amount float64, roles RoleAssignment) Result {
	return basicSplit(amount, roles.Distinctness())
}

func basicSplit(amount float64, d Distinctness) Result {
	res := Result{
		Company: amount * basicCompanyRate,
		Total:   amount,
	}
	remaining := amount * basicRemainRate

	if d.SamePerson() {
		res.WorkingDev = remaining
		return res
	}

	devBase := remaining
	if d.JobHunter {
		res.JobHunter = amount * basicHunterRate
		devBase = amount * basicDevWithHunterRate
	}

	if d.Communicator {
		res.Communicator = devBase * basicCommunicatorRate
		res.WorkingDev = devBase - res.Communicator
	} else {
		res.WorkingDev = devBase
	}

	return res
}
