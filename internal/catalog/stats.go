package catalog

import (
	"strings"

	"github.com/gorewood/ismism/internal/code"
)

// Stats summarizes how complete the dataset payload is.
type Stats struct {
	Total          int            `json:"total"`
	WithFourGrid   int            `json:"with_four_grid"`
	WithExtensions int            `json:"with_extensions"`
	WithQA         int            `json:"with_qa"`
	WithKeyPoints  int            `json:"with_key_points"`
	Subjectless    int            `json:"subjectless"`
	Malformed      int            `json:"malformed"`
	ByField        map[string]int `json:"by_field"`
}

// Stats counts records by payload completeness and by first segment.
// Malformed codes are counted but excluded from ByField and Subjectless.
func (d *Dataset) Stats() Stats {
	stats := Stats{
		Total:   len(d.isms),
		ByField: make(map[string]int),
	}

	for _, ism := range d.isms {
		if !ism.FourGrid.IsEmpty() {
			stats.WithFourGrid++
		}
		if len(ism.Extensions) > 0 {
			stats.WithExtensions++
		}
		if len(ism.QA) > 0 {
			stats.WithQA++
		}
		if len(ism.KeyPoints) > 0 {
			stats.WithKeyPoints++
		}

		c, err := code.Parse(ism.Code)
		if err != nil {
			stats.Malformed++
			continue
		}
		if c.Subjectless() {
			stats.Subjectless++
		}
		stats.ByField[c[0].String()]++
	}
	return stats
}

// Issue is a problem found by Lint.
type Issue struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Problem string `json:"problem"`
}

// Lint reports records that load fine but are unusable or incomplete:
// malformed codes can never be found by search, and an empty description
// leaves nothing to display.
func (d *Dataset) Lint() []Issue {
	var issues []Issue
	for _, ism := range d.isms {
		if _, err := code.Parse(ism.Code); err != nil {
			issues = append(issues, Issue{Code: ism.Code, Name: ism.Name, Problem: err.Error()})
		}
		if strings.TrimSpace(ism.Description) == "" {
			issues = append(issues, Issue{Code: ism.Code, Name: ism.Name, Problem: "empty description"})
		}
	}
	return issues
}
