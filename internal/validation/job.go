package validation

import (
	"fmt"
	"strings"

	"github.com/artilectsolutions/budgetsplit-backend/internal/api/request"
	"github.com/artilectsolutions/budgetsplit-backend/internal/distribution"
	"github.com/artilectsolutions/budgetsplit-backend/internal/model"
)

// Job field limits.
const (
	MaxProjectNameLength = 100
	MaxNameLength        = 100
	MaxInterns           = 20
)

// ValidPolicyType contains the allowed policy type values. Empty means basic.
var ValidPolicyType = map[string]bool{
	"": true, model.PolicyBasic: true, model.PolicyAdvanced: true,
}

// ValidateJob validates a job creation or replacement request.
//
// Required fields:
//   - projectName: 1 to 100 characters after trimming
//   - paymentAmount: Must be positive
//   - frequency: Must be one of: One-time, Daily, Weekly, Bi-weekly, Monthly
//   - workingDev: Must not be blank
//
// Optional fields (validated if provided):
//   - conversionRate: Must be positive
//   - jobHunter, communicatingDev: At most 100 characters
//   - policyType: basic or advanced
//   - advancedPolicy: see ValidatePreview
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateJob(req request.JobRequest) error {
	errors := make(map[string]string)

	projectName := strings.TrimSpace(req.ProjectName)
	if projectName == "" {
		errors["projectName"] = "project name is required"
	} else if len(projectName) > MaxProjectNameLength {
		errors["projectName"] = fmt.Sprintf("project name cannot exceed %d characters", MaxProjectNameLength)
	}

	if strings.TrimSpace(req.Frequency) == "" {
		errors["frequency"] = "frequency is required"
	} else if !model.ValidFrequencies[req.Frequency] {
		errors["frequency"] = fmt.Sprintf("invalid frequency: %s", req.Frequency)
	}

	validateDistributionInputs(req, errors)

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidatePreview validates a request that is only computed, never stored.
// Project name and frequency are not required.
//
// Advanced policy rules:
//   - each percentage: between 0 and 100
//   - companyPercentage + developerPercentage: at most 100 when both are
//     given; ValidatePolicy checks the sum again once defaults are filled in
//   - interns: at most 20; name required; type fixed or percentage;
//     fixed amount not negative; percentage between 0 and 100
func ValidatePreview(req request.JobRequest) error {
	errors := make(map[string]string)

	validateDistributionInputs(req, errors)

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

func validateDistributionInputs(req request.JobRequest, errors map[string]string) {
	if req.PaymentAmount <= 0.0 {
		errors["paymentAmount"] = "payment amount must be positive"
	}

	if req.ConversionRate != nil && *req.ConversionRate <= 0.0 {
		errors["conversionRate"] = "conversion rate must be positive"
	}

	workingDev := strings.TrimSpace(req.WorkingDev)
	if workingDev == "" {
		errors["workingDev"] = "working developer name is required"
	} else if len(workingDev) > MaxNameLength {
		errors["workingDev"] = fmt.Sprintf("name cannot exceed %d characters", MaxNameLength)
	}
	if len(strings.TrimSpace(req.JobHunter)) > MaxNameLength {
		errors["jobHunter"] = fmt.Sprintf("name cannot exceed %d characters", MaxNameLength)
	}
	if len(strings.TrimSpace(req.CommunicatingDev)) > MaxNameLength {
		errors["communicatingDev"] = fmt.Sprintf("name cannot exceed %d characters", MaxNameLength)
	}

	if !ValidPolicyType[req.PolicyType] {
		errors["policyType"] = fmt.Sprintf("invalid policy type: %s", req.PolicyType)
		return
	}

	if req.PolicyType == model.PolicyAdvanced && req.AdvancedPolicy != nil {
		validateAdvancedPolicy(*req.AdvancedPolicy, errors)
	}
}

func validateAdvancedPolicy(p request.AdvancedPolicyRequest, errors map[string]string) {
	percentages := []struct {
		field string
		value *float64
	}{
		{"companyPercentage", p.CompanyPercentage},
		{"developerPercentage", p.DeveloperPercentage},
		{"jobHunterPercentage", p.JobHunterPercentage},
		{"communicatorPercentage", p.CommunicatorPercentage},
	}
	for _, pct := range percentages {
		if pct.value != nil && !isPercentage(*pct.value) {
			errors[pct.field] = "percentage must be between 0 and 100"
		}
	}

	if p.CompanyPercentage != nil && p.DeveloperPercentage != nil {
		if *p.CompanyPercentage+*p.DeveloperPercentage > 100 {
			errors["developerPercentage"] = "company and developer percentages cannot exceed 100 combined"
		}
	}

	if len(p.Interns) > MaxInterns {
		errors["interns"] = fmt.Sprintf("at most %d interns are allowed", MaxInterns)
		return
	}

	for i, in := range p.Interns {
		prefix := fmt.Sprintf("interns[%d].", i)

		name := strings.TrimSpace(in.Name)
		if name == "" {
			errors[prefix+"name"] = "intern name is required"
		} else if len(name) > MaxNameLength {
			errors[prefix+"name"] = fmt.Sprintf("name cannot exceed %d characters", MaxNameLength)
		}

		mode := distribution.InternMode(in.Type)
		if !mode.Valid() {
			errors[prefix+"type"] = fmt.Sprintf("invalid intern type: %s", in.Type)
			continue
		}
		if mode == distribution.InternFixed && in.Amount < 0 {
			errors[prefix+"amount"] = "amount cannot be negative"
		}
		if mode == distribution.InternPercentage && !isPercentage(in.Percentage) {
			errors[prefix+"percentage"] = "percentage must be between 0 and 100"
		}
	}
}

// ValidatePolicy validates an effective advanced policy, after missing
// percentages have been taken from the defaults.
//
// Rules:
//   - each percentage: between 0 and 100
//   - companyPercentage + developerPercentage: at most 100
//
// A sum below 100 is allowed and leaves the rest unallocated.
func ValidatePolicy(p distribution.Policy) error {
	errors := make(map[string]string)

	percentages := []struct {
		field string
		value float64
	}{
		{"companyPercentage", p.CompanyPct},
		{"developerPercentage", p.DeveloperPct},
		{"jobHunterPercentage", p.JobHunterPct},
		{"communicatorPercentage", p.CommunicatorPct},
	}
	for _, pct := range percentages {
		if !isPercentage(pct.value) {
			errors[pct.field] = "percentage must be between 0 and 100"
		}
	}

	if len(errors) == 0 && p.CompanyPct+p.DeveloperPct > 100 {
		errors["developerPercentage"] = "company and developer percentages cannot exceed 100 combined"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

func isPercentage(v float64) bool {
	return v >= 0 && v <= 100
}
