// Package report derives display views from analysis results and
// serializes them for export.
package report

import "github.com/lyzr-apps/storecheck/internal/models"

// FilterAll is the wildcard value for both filter dimensions.
const FilterAll = "all"

// ChecklistSummary aggregates readiness checklist outcomes. The four
// counts always sum to the checklist length.
type ChecklistSummary struct {
	Passed        int
	Failed        int
	Warning       int
	NotApplicable int
}

// SummarizeChecklist tallies checklist items by status.
func SummarizeChecklist(items []models.ReadinessCheckItem) ChecklistSummary {
	var s ChecklistSummary
	for _, item := range items {
		switch item.Status {
		case models.CheckPass:
			s.Passed++
		case models.CheckFail:
			s.Failed++
		case models.CheckWarning:
			s.Warning++
		default:
			s.NotApplicable++
		}
	}
	return s
}

// FilterViolations applies the severity and category filters to the
// category list. The two predicates are independent: severity trims
// violations inside every category; the category filter then decides
// which categories remain. With the wildcard category filter, a
// category emptied by the severity filter is still shown; with a
// specific category filter, only that category survives and only
// while it still has violations.
func FilterViolations(categories []models.Category, severity, category string) []models.Category {
	var out []models.Category
	for _, cat := range categories {
		filtered := cat
		if severity != FilterAll {
			var kept []models.Violation
			for _, v := range cat.Violations {
				if string(v.Severity) == severity {
					kept = append(kept, v)
				}
			}
			filtered.Violations = kept
		}

		if category != FilterAll && cat.CategoryName != category {
			continue
		}
		if len(filtered.Violations) == 0 && category != FilterAll {
			continue
		}
		out = append(out, filtered)
	}
	return out
}
