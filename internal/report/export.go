package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/lyzr-apps/storecheck/internal/models"
)

// Filename returns the export file name for the given day.
func Filename(now time.Time) string {
	return fmt.Sprintf("compliance-report-%s.md", now.Format("2006-01-02"))
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func statusToken(s models.CheckStatus) string {
	switch s {
	case models.CheckPass:
		return "PASS"
	case models.CheckFail:
		return "FAIL"
	case models.CheckWarning:
		return "WARN"
	default:
		return "N-A"
	}
}

// Markdown serializes a result into the exportable report document.
// Section order is fixed; optional fields get explicit placeholders
// instead of being omitted. Pipe characters inside checklist content
// are not escaped.
func Markdown(r *models.AnalysisResult, now time.Time) string {
	var b strings.Builder

	readiness := r.ReadinessStatus
	if readiness == "" {
		readiness = models.ReadinessForScore(r.ComplianceScore)
	}

	b.WriteString("# App Store Compliance Report\n\n")
	fmt.Fprintf(&b, "**Compliance Score:** %d/100\n", r.ComplianceScore)
	fmt.Fprintf(&b, "**Readiness:** %s\n", readiness.Label())
	fmt.Fprintf(&b, "**Generated:** %s\n\n", now.Format("2006-01-02 15:04:05"))

	fmt.Fprintf(&b, "## Risk Summary\n- High: %d\n- Medium: %d\n- Low: %d\n\n",
		r.RiskSummary.High, r.RiskSummary.Medium, r.RiskSummary.Low)

	if len(r.ReadinessChecklist) > 0 {
		b.WriteString("## Readiness Checklist\n\n")
		b.WriteString("| Status | Item | Details |\n")
		b.WriteString("|--------|------|---------|\n")
		for _, item := range r.ReadinessChecklist {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", statusToken(item.Status), item.Item, item.Details)
		}
		b.WriteString("\n")
	}

	if r.OverallAssessment != "" {
		fmt.Fprintf(&b, "## Overall Assessment\n%s\n\n", r.OverallAssessment)
	}

	b.WriteString("## Violations by Category\n\n")
	for _, cat := range r.Categories {
		name := cat.CategoryName
		if strings.TrimSpace(name) == "" {
			name = "Category"
		}
		fmt.Fprintf(&b, "### %s\n%s\n\n", name, cat.CategorySummary)
		for _, v := range cat.Violations {
			title := v.Title
			if strings.TrimSpace(title) == "" {
				title = "Violation"
			}
			fmt.Fprintf(&b, "#### [%s] %s\n", strings.ToUpper(string(v.Severity)), title)
			fmt.Fprintf(&b, "- **Guideline:** %s\n", orNA(v.GuidelineReference))
			fmt.Fprintf(&b, "- **Description:** %s\n", v.Description)
			fmt.Fprintf(&b, "- **Affected Code:** `%s`\n", orNA(v.AffectedCode))
			fmt.Fprintf(&b, "- **Suggested Fix:** %s\n\n", v.SuggestedFix)
		}
	}

	if len(r.PriorityFixes) > 0 {
		b.WriteString("## Priority Fixes\n\n")
		for i, fix := range r.PriorityFixes {
			priority := fix.Priority
			if priority == 0 {
				priority = i + 1
			}
			title := fix.Title
			if strings.TrimSpace(title) == "" {
				title = "Fix"
			}
			fmt.Fprintf(&b, "%d. **%s** (%s)\n   %s\n\n", priority, title, fix.Category, fix.Action)
		}
	}

	return b.String()
}
