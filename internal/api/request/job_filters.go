package request

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/artilectsolutions/budgetsplit-backend/internal/model"
)

// Job listing pagination defaults.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ParseJobFilters extracts and validates job list filters from query parameters.
// All parameters are optional.
//
// Validation rules:
//   - page: Must be a positive number (defaults to 1)
//   - limit: Must be between 1 and 100 (defaults to 10)
//   - frequency: Must be a known frequency or "All" (defaults to all)
//
// The owning user is not set; callers fill in UserID.
func ParseJobFilters(pageParam, limitParam, searchParam, frequencyParam string) (*model.JobFilter, error) {
	filters := &model.JobFilter{
		Search: strings.TrimSpace(searchParam),
		Page:   DefaultPage,
		Limit:  DefaultLimit,
	}

	if pageParam != "" {
		page, err := strconv.Atoi(pageParam)
		if err != nil {
			return nil, fmt.Errorf("invalid page: must be a number")
		}
		if page < 1 {
			return nil, fmt.Errorf("invalid page: must be at least 1")
		}
		filters.Page = page
	}

	if limitParam != "" {
		limit, err := strconv.Atoi(limitParam)
		if err != nil {
			return nil, fmt.Errorf("invalid limit: must be a number")
		}
		if limit < 1 || limit > MaxLimit {
			return nil, fmt.Errorf("invalid limit: must be between 1 and %d", MaxLimit)
		}
		filters.Limit = limit
	}

	if frequencyParam != "" && frequencyParam != model.FrequencyAll {
		if !model.ValidFrequencies[frequencyParam] {
			return nil, fmt.Errorf("invalid frequency: %s", frequencyParam)
		}
		filters.Frequency = frequencyParam
	}

	return filters, nil
}
