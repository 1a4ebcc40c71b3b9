package fixprompt

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lyzr-apps/storecheck/internal/models"
)

// noCodeHint is appended to every no-code prompt: those platforms
// rarely expose code, so the fix usually lives in a settings panel.
const noCodeHint = "If the platform does not expose this directly, check the app settings panel or add a custom-code block for it."

// For builds a remediation prompt for one violation, tailored to the
// target environment's category.
func For(env models.DevEnvironment, v models.Violation, categoryName string) string {
	switch env.Category {
	case models.EnvCategoryNoCode:
		return noCodePrompt(env, v, categoryName)
	case models.EnvCategoryLowCode:
		return lowCodePrompt(env, v, categoryName)
	default:
		return idePrompt(env, v, categoryName)
	}
}

func idePrompt(env models.DevEnvironment, v models.Violation, categoryName string) string {
	var b strings.Builder
	b.WriteString(env.PromptPrefix)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Fix the following App Store compliance violation (%s, severity: %s):\n\n", categoryName, v.Severity)
	fmt.Fprintf(&b, "**%s** (%s)\n\n", v.Title, v.GuidelineReference)
	fmt.Fprintf(&b, "Problem: %s\n\n", v.Description)
	if strings.TrimSpace(v.AffectedCode) != "" {
		fmt.Fprintf(&b, "Affected code:\n```\n%s\n```\n\n", v.AffectedCode)
	}
	fmt.Fprintf(&b, "Suggested fix: %s\n\n", v.SuggestedFix)
	b.WriteString(env.ContextNote)
	return b.String()
}

func lowCodePrompt(env models.DevEnvironment, v models.Violation, categoryName string) string {
	var b strings.Builder
	b.WriteString(env.PromptPrefix)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "The App Store review check flagged a %s-severity issue in the %s area:\n\n", v.Severity, categoryName)
	fmt.Fprintf(&b, "**%s** (%s)\n%s\n\n", v.Title, v.GuidelineReference, v.Description)
	fmt.Fprintf(&b, "Resolve it like this: %s\n\n", v.SuggestedFix)
	b.WriteString(env.ContextNote)
	return b.String()
}

func noCodePrompt(env models.DevEnvironment, v models.Violation, categoryName string) string {
	var b strings.Builder
	b.WriteString(env.PromptPrefix)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "My app failed an App Store compliance check in the %s area (severity: %s).\n\n", categoryName, v.Severity)
	fmt.Fprintf(&b, "Issue: %s (%s)\n%s\n\n", v.Title, v.GuidelineReference, v.Description)
	fmt.Fprintf(&b, "Please change the app so that: %s\n\n", v.SuggestedFix)
	b.WriteString(env.ContextNote)
	b.WriteString("\n")
	b.WriteString(noCodeHint)
	return b.String()
}

// Batch emits one document covering every violation across all
// categories, ordered by severity (high first) with a stable sort so
// same-severity violations keep their display order.
func Batch(env models.DevEnvironment, result *models.AnalysisResult) string {
	violations := result.AllViolations()
	sort.SliceStable(violations, func(i, j int) bool {
		return violations[i].Violation.Severity.Rank() < violations[j].Violation.Severity.Rank()
	})

	var b strings.Builder
	fmt.Fprintf(&b, "# Remediation Plan (%s)\n\n%d violation(s), ordered by severity.\n\n", env.Name, len(violations))
	for i, cv := range violations {
		fmt.Fprintf(&b, "## %d. %s\n\n", i+1, cv.Violation.Title)
		b.WriteString(For(env, cv.Violation, cv.Category))
		b.WriteString("\n\n---\n\n")
	}
	return strings.TrimSuffix(b.String(), "\n---\n\n")
}
