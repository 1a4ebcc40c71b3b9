package models

// EnvCategory distinguishes the kinds of development environments a
// fix prompt can target.
type EnvCategory string

const (
	EnvCategoryIDE     EnvCategory = "ide"
	EnvCategoryNoCode  EnvCategory = "nocode"
	EnvCategoryLowCode EnvCategory = "lowcode"
)

// DevEnvironment is a static profile describing where a remediation
// prompt will be pasted. Catalog data, not user data.
type DevEnvironment struct {
	ID           string      `yaml:"id"`
	Name         string      `yaml:"name"`
	Category     EnvCategory `yaml:"category"`
	PromptPrefix string      `yaml:"prompt_prefix"`
	ContextNote  string      `yaml:"context_note"`
}
