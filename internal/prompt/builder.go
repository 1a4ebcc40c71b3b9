// Package prompt assembles the analysis message sent to the
// compliance agent from the collected submission artifacts.
package prompt

import (
	"fmt"
	"strings"

	"github.com/lyzr-apps/storecheck/internal/sample"
)

// FocusAreas are the guideline categories the analysis can be
// narrowed to. Order matches the agent's category naming.
var FocusAreas = []string{
	"Privacy & Data",
	"UI/UX & Technical",
	"Content & Monetization",
	"Metadata & Marketing",
}

// Form is the full input state one analysis message is built from.
type Form struct {
	Code        string
	Description string
	AppName     string
	Subtitle    string
	Keywords    string
	AgeRating   string

	// Selected focus areas. The focus directive is emitted only for a
	// strict subset: zero selected means "analyze everything" and all
	// selected is equivalent to it.
	Focus []string

	// DeepScan asks the agent for an exhaustive line-by-line pass.
	DeepScan bool

	// SampleMode substitutes canned values for empty fields when
	// building the message. The form fields themselves are not
	// touched.
	SampleMode bool

	// Repository provenance, present only when files were ingested.
	RepoOwner  string
	RepoName   string
	RepoBranch string
	RepoPaths  []string
}

// orSample returns value, or fallback when sample mode is on and the
// value is blank.
func (f *Form) orSample(value, fallback string) string {
	if f.SampleMode && strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

// EffectiveAppName is the app name used for history entries: the
// entered name, the sample name in sample mode, else "Unnamed App".
func (f *Form) EffectiveAppName() string {
	if name := strings.TrimSpace(f.orSample(f.AppName, sample.AppName)); name != "" {
		return name
	}
	return "Unnamed App"
}

// Build renders the form into one formatted analysis message. Every
// section is optional; an empty result means there was nothing to
// analyze and callers must treat it as a validation failure.
func (f *Form) Build() string {
	code := f.orSample(f.Code, sample.CodeSnippet)
	desc := f.orSample(f.Description, sample.Description)
	name := f.orSample(f.AppName, sample.AppName)
	subtitle := f.orSample(f.Subtitle, sample.Subtitle)
	keywords := f.orSample(f.Keywords, sample.Keywords)
	age := f.orSample(f.AgeRating, sample.AgeRating)

	var b strings.Builder

	if f.DeepScan {
		b.WriteString("## Analysis Mode: Deep Scan\nPerform an exhaustive review: examine every provided file line by line, flag borderline issues that a standard pass would skip, and include low-confidence findings with an explicit note.\n\n")
	}

	if len(f.RepoPaths) > 0 && f.RepoOwner != "" {
		fmt.Fprintf(&b, "## Source: GitHub Repository\nRepository: %s/%s (branch: %s)\nFiles analyzed: %s\n\n",
			f.RepoOwner, f.RepoName, f.RepoBranch, strings.Join(f.RepoPaths, ", "))
	}

	if strings.TrimSpace(code) != "" {
		fmt.Fprintf(&b, "## Code Snippets\n```\n%s\n```\n\n", code)
	}

	if strings.TrimSpace(desc) != "" {
		fmt.Fprintf(&b, "## App Description\n%s\n\n", desc)
	}

	if strings.TrimSpace(name) != "" {
		fmt.Fprintf(&b, "## App Metadata\n- App Name: %s\n", name)
	}
	if strings.TrimSpace(subtitle) != "" {
		fmt.Fprintf(&b, "- Subtitle: %s\n", subtitle)
	}
	if strings.TrimSpace(keywords) != "" {
		fmt.Fprintf(&b, "- Keywords: %s\n", keywords)
	}
	if age != "" {
		fmt.Fprintf(&b, "- Age Rating: %s\n", age)
	}

	if len(f.Focus) > 0 && len(f.Focus) < len(FocusAreas) {
		fmt.Fprintf(&b, "\n## Focus Areas\nPlease focus the analysis on: %s\n", strings.Join(f.Focus, ", "))
	}

	return b.String()
}
