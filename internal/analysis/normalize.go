package analysis

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lyzr-apps/storecheck/internal/models"
)

// excerptLimit caps the free-text excerpt surfaced when the agent did
// not return a structured report.
const excerptLimit = 500

// UnstructuredError reports an agent response that could not be
// classified as an analysis result. Excerpt holds whatever free text
// was available, already truncated.
type UnstructuredError struct {
	Excerpt string
}

func (e *UnstructuredError) Error() string {
	if e.Excerpt == "" {
		return "unexpected response format from the analysis agent"
	}
	return fmt.Sprintf("received text response instead of structured data: %s", e.Excerpt)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// stripFences removes a markdown code fence wrapper, which models add
// despite instructions not to.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	lines := strings.SplitN(text, "\n", 2)
	if len(lines) > 1 {
		text = lines[1]
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

// Normalize maps raw agent output into a fully-defaulted
// AnalysisResult. The payload may be a JSON object or a JSON-encoded
// string containing one; anything else fails classification and
// yields an UnstructuredError carrying a truncated excerpt.
//
// Classification requires a JSON object with at least one of the
// marker keys compliance_score, categories, or risk_summary. Partial
// objects are tolerated: absent fields are defaulted here, once, so
// downstream code never re-checks presence.
func Normalize(raw string) (*models.AnalysisResult, error) {
	text := stripFences(raw)

	var payload any
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, &UnstructuredError{Excerpt: truncate(text, excerptLimit)}
	}

	// A JSON-encoded string is unwrapped once.
	if s, ok := payload.(string); ok {
		text = s
		if err := json.Unmarshal([]byte(text), &payload); err != nil {
			return nil, &UnstructuredError{Excerpt: truncate(text, excerptLimit)}
		}
	}

	obj, ok := payload.(map[string]any)
	if !ok {
		return nil, &UnstructuredError{Excerpt: truncate(text, excerptLimit)}
	}

	if _, hasScore := obj["compliance_score"]; !hasScore {
		if _, hasCategories := obj["categories"]; !hasCategories {
			if _, hasRisk := obj["risk_summary"]; !hasRisk {
				return nil, &UnstructuredError{Excerpt: freeText(obj)}
			}
		}
	}

	result := decodeResult(obj)
	applyDefaults(result)
	return result, nil
}

// decodeResult maps the loosely-typed object onto the report types
// field by field. A mistyped field is treated as absent; once an
// object classifies as a report, nothing in it can fail the payload.
func decodeResult(obj map[string]any) *models.AnalysisResult {
	r := &models.AnalysisResult{
		ComplianceScore:   intField(obj, "compliance_score"),
		ReadinessStatus:   models.ReadinessStatus(stringField(obj, "readiness_status")),
		OverallAssessment: stringField(obj, "overall_assessment"),
	}

	if rs, ok := obj["risk_summary"].(map[string]any); ok {
		r.RiskSummary = models.RiskSummary{
			High:   intField(rs, "high"),
			Medium: intField(rs, "medium"),
			Low:    intField(rs, "low"),
		}
	}

	for _, raw := range listField(obj, "readiness_checklist") {
		item, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		r.ReadinessChecklist = append(r.ReadinessChecklist, models.ReadinessCheckItem{
			Item:    stringField(item, "item"),
			Status:  models.CheckStatus(stringField(item, "status")),
			Details: stringField(item, "details"),
		})
	}

	for _, raw := range listField(obj, "categories") {
		cm, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		cat := models.Category{
			CategoryName:    stringField(cm, "category_name"),
			CategorySummary: stringField(cm, "category_summary"),
		}
		for _, rawViolation := range listField(cm, "violations") {
			vm, ok := rawViolation.(map[string]any)
			if !ok {
				continue
			}
			cat.Violations = append(cat.Violations, models.Violation{
				Title:              stringField(vm, "title"),
				Severity:           models.Severity(stringField(vm, "severity")),
				GuidelineReference: stringField(vm, "guideline_reference"),
				Description:        stringField(vm, "description"),
				AffectedCode:       stringField(vm, "affected_code"),
				SuggestedFix:       stringField(vm, "suggested_fix"),
			})
		}
		r.Categories = append(r.Categories, cat)
	}

	for _, raw := range listField(obj, "priority_fixes") {
		fm, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		r.PriorityFixes = append(r.PriorityFixes, models.PriorityFix{
			Priority: intField(fm, "priority"),
			Title:    stringField(fm, "title"),
			Category: stringField(fm, "category"),
			Action:   stringField(fm, "action"),
		})
	}

	return r
}

func stringField(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}

// intField reads a numeric field. encoding/json decodes every JSON
// number as float64; fractional values are truncated.
func intField(obj map[string]any, key string) int {
	if f, ok := obj[key].(float64); ok {
		return int(f)
	}
	return 0
}

func listField(obj map[string]any, key string) []any {
	l, _ := obj[key].([]any)
	return l
}

// freeText digs a human-readable message out of an unclassifiable
// object: a top-level message field, or a nested result text.
func freeText(obj map[string]any) string {
	if msg, ok := obj["message"].(string); ok && msg != "" {
		return truncate(msg, excerptLimit)
	}
	if res, ok := obj["result"].(map[string]any); ok {
		if txt, ok := res["text"].(string); ok && txt != "" {
			return truncate(txt, excerptLimit)
		}
	}
	return ""
}

// applyDefaults fills in everything the agent may have left out.
// The risk summary is deliberately NOT recomputed from the category
// contents; the agent owns those counts even when they disagree.
func applyDefaults(r *models.AnalysisResult) {
	if r.ComplianceScore < 0 {
		r.ComplianceScore = 0
	}
	if r.ComplianceScore > 100 {
		r.ComplianceScore = 100
	}

	switch r.ReadinessStatus {
	case models.ReadinessReady, models.ReadinessNeedsFixes, models.ReadinessHighRisk:
	default:
		r.ReadinessStatus = models.ReadinessForScore(r.ComplianceScore)
	}

	if r.Categories == nil {
		r.Categories = []models.Category{}
	}
	for i := range r.Categories {
		cat := &r.Categories[i]
		if cat.Violations == nil {
			cat.Violations = []models.Violation{}
		}
		for j := range cat.Violations {
			cat.Violations[j].Severity = models.Severity(strings.ToLower(string(cat.Violations[j].Severity)))
		}
	}

	for i := range r.ReadinessChecklist {
		item := &r.ReadinessChecklist[i]
		switch models.CheckStatus(strings.ToLower(string(item.Status))) {
		case models.CheckPass:
			item.Status = models.CheckPass
		case models.CheckFail:
			item.Status = models.CheckFail
		case models.CheckWarning:
			item.Status = models.CheckWarning
		default:
			item.Status = models.CheckNotApplicable
		}
	}

	if r.PriorityFixes == nil {
		r.PriorityFixes = []models.PriorityFix{}
	}
}
