package analysis

import (
	"strconv"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyzr-apps/storecheck/internal/models"
)

func TestNormalize_StructuredObject(t *testing.T) {
	raw := `{
		"compliance_score": 72,
		"risk_summary": {"high": 3, "medium": 5, "low": 2},
		"categories": [{
			"category_name": "Privacy & Data Collection",
			"category_summary": "Issues found.",
			"violations": [{
				"title": "Missing Privacy Nutrition Label",
				"severity": "HIGH",
				"guideline_reference": "Guideline 5.1.1"
			}]
		}],
		"overall_assessment": "## Overview"
	}`

	result, err := Normalize(raw)
	require.NoError(t, err)

	assert.Equal(t, 72, result.ComplianceScore)
	assert.Equal(t, models.ReadinessNeedsFixes, result.ReadinessStatus, "derived from score")
	assert.Equal(t, 3, result.RiskSummary.High)
	require.Len(t, result.Categories, 1)
	require.Len(t, result.Categories[0].Violations, 1)
	assert.Equal(t, models.SeverityHigh, result.Categories[0].Violations[0].Severity, "severity lowercased")
	assert.NotNil(t, result.PriorityFixes, "absent slices default to empty")
}

func TestNormalize_JSONEncodedString(t *testing.T) {
	// The agent payload arrives double-encoded: a JSON string whose
	// contents are the report object.
	raw := `"{\"compliance_score\":72,\"risk_summary\":{\"high\":1,\"medium\":0,\"low\":0}}"`

	result, err := Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, 72, result.ComplianceScore)
}

func TestNormalize_FencedPayload(t *testing.T) {
	raw := "```json\n{\"compliance_score\": 90}\n```"

	result, err := Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, 90, result.ComplianceScore)
	assert.Equal(t, models.ReadinessReady, result.ReadinessStatus)
}

func TestNormalize_ObjectWithoutMarkerKeys(t *testing.T) {
	_, err := Normalize(`{}`)
	require.Error(t, err)

	var ue *UnstructuredError
	require.ErrorAs(t, err, &ue)
	assert.Contains(t, err.Error(), "unexpected response format")
}

func TestNormalize_FreeTextExcerpt(t *testing.T) {
	t.Run("message field", func(t *testing.T) {
		_, err := Normalize(`{"message": "I could not analyze this input."}`)
		var ue *UnstructuredError
		require.ErrorAs(t, err, &ue)
		assert.Equal(t, "I could not analyze this input.", ue.Excerpt)
	})

	t.Run("nested result text", func(t *testing.T) {
		_, err := Normalize(`{"result": {"text": "try again later"}}`)
		var ue *UnstructuredError
		require.ErrorAs(t, err, &ue)
		assert.Equal(t, "try again later", ue.Excerpt)
	})

	t.Run("excerpt truncated to 500 chars", func(t *testing.T) {
		long := strings.Repeat("x", 900)
		_, err := Normalize(`{"message": "` + long + `"}`)
		var ue *UnstructuredError
		require.ErrorAs(t, err, &ue)
		assert.Len(t, ue.Excerpt, 500)
	})
}

func TestNormalize_ProseFallsBackToExcerpt(t *testing.T) {
	_, err := Normalize("The app looks mostly fine but I need more context.")
	var ue *UnstructuredError
	require.ErrorAs(t, err, &ue)
	assert.Contains(t, ue.Excerpt, "mostly fine")
}

func TestNormalize_ReadinessDefaults(t *testing.T) {
	cases := []struct {
		score int
		want  models.ReadinessStatus
	}{
		{90, models.ReadinessReady},
		{85, models.ReadinessReady},
		{65, models.ReadinessNeedsFixes},
		{60, models.ReadinessNeedsFixes},
		{40, models.ReadinessHighRisk},
	}
	for _, tc := range cases {
		result, err := Normalize(`{"compliance_score": ` + strconv.Itoa(tc.score) + `}`)
		require.NoError(t, err)
		assert.Equal(t, tc.want, result.ReadinessStatus, "score %d", tc.score)
	}
}

func TestNormalize_ExplicitReadinessWins(t *testing.T) {
	result, err := Normalize(`{"compliance_score": 90, "readiness_status": "high_risk"}`)
	require.NoError(t, err)
	assert.Equal(t, models.ReadinessHighRisk, result.ReadinessStatus)
}

func TestNormalize_ChecklistStatuses(t *testing.T) {
	raw := `{
		"compliance_score": 80,
		"readiness_checklist": [
			{"item": "a", "status": "pass"},
			{"item": "b", "status": "FAIL"},
			{"item": "c", "status": "warning"},
			{"item": "d", "status": "whatever"}
		]
	}`
	result, err := Normalize(raw)
	require.NoError(t, err)

	require.Len(t, result.ReadinessChecklist, 4)
	assert.Equal(t, models.CheckPass, result.ReadinessChecklist[0].Status)
	assert.Equal(t, models.CheckFail, result.ReadinessChecklist[1].Status)
	assert.Equal(t, models.CheckWarning, result.ReadinessChecklist[2].Status)
	assert.Equal(t, models.CheckNotApplicable, result.ReadinessChecklist[3].Status)
}

func TestNormalize_MistypedFieldsTolerated(t *testing.T) {
	// Once an object classifies as a report, a mistyped field is
	// treated as absent instead of failing the whole payload.
	t.Run("categories is a string", func(t *testing.T) {
		result, err := Normalize(`{"compliance_score": 72, "categories": "none found"}`)
		require.NoError(t, err)
		assert.Equal(t, 72, result.ComplianceScore)
		assert.Empty(t, result.Categories)
		assert.NotNil(t, result.Categories)
	})

	t.Run("fractional score", func(t *testing.T) {
		result, err := Normalize(`{"compliance_score": 88.5}`)
		require.NoError(t, err)
		assert.Equal(t, 88, result.ComplianceScore)
	})

	t.Run("risk summary counts are strings", func(t *testing.T) {
		result, err := Normalize(`{"compliance_score": 50, "risk_summary": {"high": "three", "medium": 2, "low": 1}}`)
		require.NoError(t, err)
		assert.Equal(t, 0, result.RiskSummary.High)
		assert.Equal(t, 2, result.RiskSummary.Medium)
	})

	t.Run("non-object entries in lists are skipped", func(t *testing.T) {
		raw := `{
			"compliance_score": 60,
			"categories": ["oops", {"category_name": "Privacy", "violations": [42, {"title": "v", "severity": "high"}]}],
			"priority_fixes": [null, {"priority": 1, "title": "fix"}]
		}`
		result, err := Normalize(raw)
		require.NoError(t, err)
		require.Len(t, result.Categories, 1)
		require.Len(t, result.Categories[0].Violations, 1)
		require.Len(t, result.PriorityFixes, 1)
		assert.Equal(t, "fix", result.PriorityFixes[0].Title)
	})
}

func TestTruncate_KeepsRunesIntact(t *testing.T) {
	s := strings.Repeat("é", 600)
	out := truncate(s, excerptLimit)
	assert.True(t, utf8.ValidString(out))
	assert.Equal(t, excerptLimit, utf8.RuneCountInString(out))
}

func TestNormalize_RiskSummaryNotReconciled(t *testing.T) {
	// Agent claims 9 high violations but lists only one; the summary
	// is preserved as-is.
	raw := `{
		"compliance_score": 50,
		"risk_summary": {"high": 9, "medium": 0, "low": 0},
		"categories": [{"category_name": "Privacy", "violations": [{"title": "v", "severity": "high"}]}]
	}`
	result, err := Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, 9, result.RiskSummary.High)
}

func TestNormalize_ScoreClamped(t *testing.T) {
	result, err := Normalize(`{"compliance_score": 140}`)
	require.NoError(t, err)
	assert.Equal(t, 100, result.ComplianceScore)

	result, err = Normalize(`{"compliance_score": -3}`)
	require.NoError(t, err)
	assert.Equal(t, 0, result.ComplianceScore)
}
