package distribution

// InternMode selects how an intern's pay is stated.
type InternMode string

const (
	// InternFixed pays a local-currency amount, converted at the job's rate.
	InternFixed InternMode = "fixed"
	// InternPercentage pays a percentage of the developer's pre-intern share.
	InternPercentage InternMode = "percentage"
)

// Valid reports whether m is a known mode.
func (m InternMode) Valid() bool {
	return m == InternFixed || m == InternPercentage
}

// Defaults for the advanced policy and for jobs that omit a conversion rate.
const (
	DefaultCompanyPct      = 30.0
	DefaultDeveloperPct    = 70.0
	DefaultJobHunterPct    = 5.0
	DefaultCommunicatorPct = 10.0
	DefaultConversionRate  = 278.0
)

// Policy holds the advanced-policy percentages, each in [0, 100].
// CompanyPct and DeveloperPct apply to the payment; JobHunterPct and
// CommunicatorPct apply to the developer base, not the payment.
type Policy struct {
	CompanyPct      float64 `json:"companyPercentage"`
	DeveloperPct    float64 `json:"developerPercentage"`
	JobHunterPct    float64 `json:"jobHunterPercentage"`
	CommunicatorPct float64 `json:"communicatorPercentage"`
}

// DefaultPolicy returns the 30/70/5/10 policy.
func DefaultPolicy() Policy {
	return Policy{
		CompanyPct:      DefaultCompanyPct,
		DeveloperPct:    DefaultDeveloperPct,
		JobHunterPct:    DefaultJobHunterPct,
		CommunicatorPct: DefaultCommunicatorPct,
	}
}

// Intern is one entry of the ordered intern list.
type Intern struct {
	Name        string
	Mode        InternMode
	LocalAmount float64
	Percentage  float64
}

// InternShare is one intern's deduction from the developer's share.
// LocalAmount is the amount as entered for fixed-mode interns and the
// converted amount for percentage-mode interns.
type InternShare struct {
	Name        string     `json:"name"`
	Mode        InternMode `json:"type"`
	Amount      float64    `json:"amount"`
	LocalAmount float64    `json:"localAmount"`
}

// AdvancedResult is a Result plus the per-intern deductions that make up
// Result.Intern.
type AdvancedResult struct {
	Result
	// Interns holds the contributing deductions only, in input order.
	Interns []InternShare `json:"interns"`
	// Deductions holds one entry per input intern, zero deductions included.
	Deductions []InternShare `json:"-"`
}

// ComputeAdvanced splits amount under a caller-supplied policy.
//
// Every intern deduction is taken against the same pre-intern developer
// amount; deductions are summed and subtracted once, never cascaded.
// The percentages are not checked to sum to 100 and negative developer
// shares are not prevented.
func ComputeAdvanced(amount float64, policy Policy, roles RoleAssignment, interns []Intern, rate float64) AdvancedResult {
	return advancedSplit(amount, policy, roles.Distinctness(), interns, rate)
}

func advancedSplit(amount float64, policy Policy, d Distinctness, interns []Intern, rate float64) AdvancedResult {
	company := amount * policy.CompanyPct / 100
	devBase := amount * policy.DeveloperPct / 100

	var hunter, communicator float64
	if d.JobHunter {
		hunter = devBase * policy.JobHunterPct / 100
	}
	if d.Communicator {
		communicator = devBase * policy.CommunicatorPct / 100
	}

	preIntern := devBase - hunter - communicator

	deductions := make([]InternShare, len(interns))
	var internTotal float64
	for i, in := range interns {
		deductions[i] = internShare(in, preIntern, rate)
		internTotal += deductions[i].Amount
	}

	return AdvancedResult{
		Result: Result{
			Company:      company,
			WorkingDev:   preIntern - internTotal,
			JobHunter:    hunter,
			Communicator: communicator,
			Intern:       internTotal,
			Total:        amount,
		},
		Interns:    Contributing(deductions),
		Deductions: deductions,
	}
}

// Contributing returns the shares whose deduction is positive, in order.
func Contributing(shares []InternShare) []InternShare {
	out := make([]InternShare, 0, len(shares))
	for _, share := range shares {
		if share.Amount > 0 {
			out = append(out, share)
		}
	}
	return out
}

// RestoreShares rebuilds the contributing shares of a stored job from its
// interns and their recorded deductions; deductions[i] belongs to interns[i].
func RestoreShares(interns []Intern, deductions []float64, rate float64) []InternShare {
	shares := make([]InternShare, len(interns))
	for i, in := range interns {
		shares[i] = InternShare{
			Name:        in.Name,
			Mode:        in.Mode,
			Amount:      deductions[i],
			LocalAmount: localAmount(in, deductions[i], rate),
		}
	}
	return Contributing(shares)
}

func internShare(in Intern, base, rate float64) InternShare {
	share := InternShare{Name: in.Name, Mode: in.Mode}
	switch in.Mode {
	case InternFixed:
		if in.LocalAmount != 0 {
			share.Amount = ToReference(in.LocalAmount, rate)
		}
	case InternPercentage:
		if in.Percentage != 0 {
			share.Amount = base * in.Percentage / 100
		}
	}
	share.LocalAmount = localAmount(in, share.Amount, rate)
	return share
}

// localAmount is the entered amount for fixed interns and the converted
// deduction otherwise.
func localAmount(in Intern, deduction, rate float64) float64 {
	if in.Mode == InternFixed {
		return in.LocalAmount
	}
	return ToLocal(deduction, rate)
}
