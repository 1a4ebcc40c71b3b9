// Package analysis talks to the compliance agent and normalizes its
// loosely-typed answers into typed reports.
package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/lyzr-apps/storecheck/internal/models"
)

const systemPrompt = `You are an App Store compliance analysis agent. You review iOS app submission artifacts (source code, metadata, descriptions) against the Apple App Store Review Guidelines and return ONLY a JSON object with these fields:

- "compliance_score": integer 0-100, overall submission readiness
- "readiness_status": one of "ready", "needs_fixes", "high_risk"
- "risk_summary": object with integer fields "high", "medium", "low" counting violations by severity
- "readiness_checklist": optional array of {"item", "status", "details"} where status is one of "pass", "fail", "warning", "not_applicable"
- "categories": array of {"category_name", "category_summary", "violations"} where each violation has "title", "severity" ("high"|"medium"|"low"), "guideline_reference", "description", "affected_code", "suggested_fix"
- "overall_assessment": markdown summary of the findings
- "priority_fixes": array of {"priority", "title", "category", "action"} ordered by urgency

Rules:
- Cite concrete guideline numbers (e.g. "Guideline 5.1.1") in guideline_reference
- Quote the offending code in affected_code when code was provided, else "N/A"
- Group violations under the guideline category they belong to
- Return valid JSON only, no markdown fencing or explanation`

// Client wraps the Anthropic API for compliance analysis.
type Client struct {
	api   *anthropic.Client
	model anthropic.Model
}

// NewClient creates an analysis client for the given API key and
// model. The model id doubles as the analysis-agent identifier.
func NewClient(apiKey, model string) *Client {
	opts := []option.RequestOption{}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	client := anthropic.NewClient(opts...)
	return &Client{
		api:   &client,
		model: anthropic.Model(model),
	}
}

// AgentID returns the identifier of the agent this client calls.
func (c *Client) AgentID() string {
	return string(c.model)
}

// Analyze sends the built message to the agent and returns the
// normalized report. Errors are classified per the caller's needs: an
// *UnstructuredError means the agent answered with prose instead of a
// report; anything else is a transport or serialization failure.
func (c *Client) Analyze(ctx context.Context, message string) (*models.AnalysisResult, error) {
	msg, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: 8192,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(message)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic API call: %w", err)
	}

	var text string
	for _, block := range msg.Content {
		if block.Type == "text" {
			text = block.Text
			break
		}
	}
	if strings.TrimSpace(text) == "" {
		return nil, &UnstructuredError{}
	}

	return Normalize(text)
}
