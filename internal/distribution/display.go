package distribution

import "github.com/shopspring/decimal"

// Line is one row of a rendered distribution table.
type Line struct {
	Role        string  `json:"role"`
	Label       string  `json:"label"`
	Person      string  `json:"person"`
	Amount      float64 `json:"amount"`
	LocalAmount float64 `json:"localAmount"`
	Percentage  string  `json:"percentage"`
}

// Breakdown renders r as table rows with local-currency mirrors and the share
// of the total. Company and working developer always appear; the other roles
// only when their share is positive.
func Breakdown(r Result, roles RoleAssignment, rate float64) []Line {
	roles = roles.Normalize()
	line := func(role, label, person string, amount float64) Line {
		return Line{
			Role:        role,
			Label:       label,
			Person:      person,
			Amount:      amount,
			LocalAmount: ToLocal(amount, rate),
			Percentage:  FormatPercentage(amount, r.Total),
		}
	}

	lines := []Line{
		line("company", "Company Share", "Company", r.Company),
		line("workingDev", "Working Developer", roles.WorkingDev, r.WorkingDev),
	}
	if r.JobHunter > 0 {
		lines = append(lines, line("jobHunter", "Job Hunter Fee", roles.JobHunter, r.JobHunter))
	}
	if r.Communicator > 0 {
		lines = append(lines, line("communicator", "Communication Fee", roles.Communicator, r.Communicator))
	}
	if r.Intern > 0 {
		lines = append(lines, line("intern", "Intern Payments", "Interns", r.Intern))
	}
	return lines
}

// FormatPercentage renders share/total as a percentage with one decimal,
// e.g. "66.5%". A zero total renders as "0.0%".
func FormatPercentage(share, total float64) string {
	if total == 0 {
		return "0.0%"
	}
	pct := decimal.NewFromFloat(share).
		Div(decimal.NewFromFloat(total)).
		Mul(decimal.NewFromInt(100))
	return pct.StringFixed(1) + "%"
}

// FormatMoney renders an amount with two decimals.
func FormatMoney(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(2)
}
