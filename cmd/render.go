package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lyzr-apps/storecheck/internal/models"
	"github.com/lyzr-apps/storecheck/internal/output"
	"github.com/lyzr-apps/storecheck/internal/report"
)

// renderResult writes a full analysis report to the terminal: score,
// readiness verdict, risk summary, checklist, assessment, violations
// (after severity/category filtering), and priority fixes.
func renderResult(r *models.AnalysisResult, severity, category string) {
	fmt.Fprintln(ui.Out)
	fmt.Fprintf(ui.Out, "%s  %s/100 (%s)\n",
		output.Bold("Compliance Score:"),
		output.ScoreColor(r.ComplianceScore),
		output.ScoreLabel(r.ComplianceScore))
	readiness := r.ReadinessStatus
	if readiness == "" {
		readiness = models.ReadinessForScore(r.ComplianceScore)
	}
	fmt.Fprintf(ui.Out, "%s %s\n",
		output.Bold("Submission Readiness:"),
		output.ReadinessColor(readiness))
	fmt.Fprintln(ui.Out)

	renderRiskSummary(r.RiskSummary)

	if len(r.ReadinessChecklist) > 0 {
		renderChecklist(r.ReadinessChecklist)
	}

	if strings.TrimSpace(r.OverallAssessment) != "" {
		fmt.Fprintf(ui.Out, "%s\n", output.Bold("Overall Assessment"))
		output.RenderMarkdown(ui.Out, r.OverallAssessment)
		fmt.Fprintln(ui.Out)
	}

	renderViolations(r.Categories, severity, category)
	renderPriorityFixes(r.PriorityFixes)
}

func renderRiskSummary(rs models.RiskSummary) {
	table := ui.Table([]string{"Risk", "Violations"})
	table.Append([]string{output.Red("high"), strconv.Itoa(rs.High)})
	table.Append([]string{output.Yellow("medium"), strconv.Itoa(rs.Medium)})
	table.Append([]string{output.Cyan("low"), strconv.Itoa(rs.Low)})
	table.Render()
	fmt.Fprintln(ui.Out)
}

func renderChecklist(items []models.ReadinessCheckItem) {
	s := report.SummarizeChecklist(items)
	fmt.Fprintf(ui.Out, "%s  (%d passed, %d failed, %d warnings)\n",
		output.Bold("Readiness Checklist"), s.Passed, s.Failed, s.Warning)

	table := ui.Table([]string{"Status", "Item", "Details"})
	for _, item := range items {
		table.Append([]string{output.CheckStatusColor(item.Status), item.Item, item.Details})
	}
	table.Render()
	fmt.Fprintln(ui.Out)
}

func renderViolations(categories []models.Category, severity, category string) {
	filtered := report.FilterViolations(categories, severity, category)
	if len(filtered) == 0 {
		if severity != report.FilterAll || category != report.FilterAll {
			ui.Info("No violations match the current filters.")
		} else {
			ui.Success("No violations found.")
		}
		fmt.Fprintln(ui.Out)
		return
	}

	fmt.Fprintf(ui.Out, "%s\n\n", output.Bold("Violations by Category"))
	for _, cat := range filtered {
		fmt.Fprintf(ui.Out, "%s\n", output.Cyan(orText(cat.CategoryName, "Category")))
		if strings.TrimSpace(cat.CategorySummary) != "" {
			fmt.Fprintf(ui.Out, "  %s\n", cat.CategorySummary)
		}
		if len(cat.Violations) == 0 {
			fmt.Fprintln(ui.Out, "  (no violations in this category)")
		}
		for _, v := range cat.Violations {
			fmt.Fprintf(ui.Out, "  [%s] %s\n", output.SeverityColor(v.Severity), output.Bold(orText(v.Title, "Violation")))
			if v.GuidelineReference != "" {
				fmt.Fprintf(ui.Out, "      Guideline: %s\n", v.GuidelineReference)
			}
			if v.Description != "" {
				fmt.Fprintf(ui.Out, "      %s\n", v.Description)
			}
			if v.AffectedCode != "" {
				fmt.Fprintf(ui.Out, "      Affected code: %s\n", v.AffectedCode)
			}
			if v.SuggestedFix != "" {
				fmt.Fprintf(ui.Out, "      Fix: %s\n", v.SuggestedFix)
			}
		}
		fmt.Fprintln(ui.Out)
	}
}

func renderPriorityFixes(fixes []models.PriorityFix) {
	if len(fixes) == 0 {
		return
	}
	fmt.Fprintf(ui.Out, "%s\n", output.Bold("Priority Fixes"))
	for i, f := range fixes {
		priority := f.Priority
		if priority == 0 {
			priority = i + 1
		}
		fmt.Fprintf(ui.Out, "  %d. %s", priority, orText(f.Title, "Fix"))
		if f.Category != "" {
			fmt.Fprintf(ui.Out, " (%s)", f.Category)
		}
		fmt.Fprintln(ui.Out)
		if f.Action != "" {
			fmt.Fprintf(ui.Out, "     %s\n", f.Action)
		}
	}
	fmt.Fprintln(ui.Out)
}

func orText(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
