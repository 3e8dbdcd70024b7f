package request

// JobRequest is the request body for creating, replacing or previewing a job.
// An empty PolicyType means basic. ConversionRate and the advanced
// percentages fall back to the configured defaults when omitted.
type JobRequest struct {
	ProjectName      string                 `json:"projectName"`
	PaymentAmount    float64                `json:"paymentAmount"`
	ConversionRate   *float64               `json:"conversionRate,omitempty"`
	Frequency        string                 `json:"frequency"`
	WorkingDev       string                 `json:"workingDev"`
	JobHunter        string                 `json:"jobHunter"`
	CommunicatingDev string                 `json:"communicatingDev"`
	PolicyType       string                 `json:"policyType"`
	AdvancedPolicy   *AdvancedPolicyRequest `json:"advancedPolicy,omitempty"`
}

// AdvancedPolicyRequest carries the optional percentages and the ordered interns of an advanced job.
type AdvancedPolicyRequest struct {
	CompanyPercentage      *float64        `json:"companyPercentage,omitempty"`
	DeveloperPercentage    *float64        `json:"developerPercentage,omitempty"`
	JobHunterPercentage    *float64        `json:"jobHunterPercentage,omitempty"`
	CommunicatorPercentage *float64        `json:"communicatorPercentage,omitempty"`
	Interns                []InternRequest `json:"interns"`
}

// InternRequest is one intern entry. Amount is in the local currency and is
// used by fixed interns; Percentage is used by percentage interns.
type InternRequest struct {
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}
