package model

import "github.com/artilectsolutions/budgetsplit-backend/internal/distribution"

// Breakdown is a rendered distribution: the raw shares, table rows with local
// currency mirrors and percentages, and the per-intern deductions.
type Breakdown struct {
	JobID          string                     `json:"jobId,omitempty"`
	ProjectName    string                     `json:"projectName,omitempty"`
	PaymentAmount  float64                    `json:"paymentAmount"`
	ConversionRate float64                    `json:"conversionRate"`
	LocalTotal     float64                    `json:"localTotal"`
	PolicyType     string                     `json:"policyType"`
	Distribution   Distribution               `json:"distribution"`
	Lines          []distribution.Line        `json:"lines"`
	Interns        []distribution.InternShare `json:"interns"`
	Unallocated    float64                    `json:"unallocated"`
	Reconciled     bool                       `json:"reconciled"`
}

// ShareLink is a signed, expiring link to a job's breakdown.
type ShareLink struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}
