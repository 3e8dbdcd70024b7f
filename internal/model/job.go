package model

import "time"

// Policy types a job can be calculated under.
const (
	PolicyBasic    = "basic"
	PolicyAdvanced = "advanced"
)

// ValidFrequencies contains the allowed job frequency values.
var ValidFrequencies = map[string]bool{
	"One-time": true, "Daily": true, "Weekly": true, "Bi-weekly": true, "Monthly": true,
}

// FrequencyAll is the list filter value that matches every frequency.
const FrequencyAll = "All"

// Job is a paid project together with the distribution computed for it.
// Distribution is recomputed and replaced wholesale whenever the job's inputs change.
type Job struct {
	ID               string          `json:"id"`
	UserID           string          `json:"userId"`
	ProjectName      string          `json:"projectName"`
	PaymentAmount    float64         `json:"paymentAmount"`
	ConversionRate   float64         `json:"conversionRate"`
	Frequency        string          `json:"frequency"`
	WorkingDev       string          `json:"workingDev"`
	JobHunter        string          `json:"jobHunter"`
	CommunicatingDev string          `json:"communicatingDev"`
	PolicyType       string          `json:"policyType"`
	AdvancedPolicy   *AdvancedPolicy `json:"advancedPolicy,omitempty"`
	Distribution     Distribution    `json:"distribution"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// AdvancedPolicy holds the percentages and interns a job was calculated with.
type AdvancedPolicy struct {
	CompanyPercentage      float64  `json:"companyPercentage"`
	DeveloperPercentage    float64  `json:"developerPercentage"`
	JobHunterPercentage    float64  `json:"jobHunterPercentage"`
	CommunicatorPercentage float64  `json:"communicatorPercentage"`
	Interns                []Intern `json:"interns"`
}

// Intern is a stored intern entry. Amount is in the local currency for fixed
// interns; Contribution is the reference-currency deduction computed for it.
type Intern struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	Amount       float64 `json:"amount"`
	Percentage   float64 `json:"percentage"`
	Contribution float64 `json:"contribution"`
}

// Distribution is the persisted reference-currency breakdown of a job.
type Distribution struct {
	Company      float64 `json:"company"`
	WorkingDev   float64 `json:"workingDev"`
	JobHunter    float64 `json:"jobHunter"`
	Communicator float64 `json:"communicator"`
	Intern       float64 `json:"intern"`
	Total        float64 `json:"total"`
}

// JobFilter narrows a job listing. Search matches project and role names,
// case-insensitively. An empty Frequency or "All" matches every job.
type JobFilter struct {
	UserID    string
	Search    string
	Frequency string
	Page      int
	Limit     int
}

// Offset returns the row offset for the filter's page.
func (f JobFilter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}

// JobPage is one page of a job listing.
type JobPage struct {
	Jobs       []Job      `json:"jobs"`
	Pagination Pagination `json:"pagination"`
}

// Pagination describes where a JobPage sits in the full result.
type Pagination struct {
	Current int `json:"current"`
	Pages   int `json:"pages"`
	Total   int `json:"total"`
}

// JobStats aggregates a user's jobs.
type JobStats struct {
	TotalJobs              int     `json:"totalJobs"`
	TotalRevenue           float64 `json:"totalRevenue"`
	TotalCompanyEarnings   float64 `json:"totalCompanyEarnings"`
	TotalDeveloperEarnings float64 `json:"totalDeveloperEarnings"`
	UniqueDevelopers       int     `json:"uniqueDevelopers"`
	AvgJobValue            float64 `json:"avgJobValue"`
}
