// Package fixprompt turns violations into remediation prompts
// tailored to the environment the fix will be made in.
package fixprompt

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lyzr-apps/storecheck/internal/models"
)

// builtin is the static environment catalog. Users can overlay or
// extend it from a YAML file (see LoadOverlay).
var builtin = []models.DevEnvironment{
	{
		ID:           "xcode",
		Name:         "Xcode",
		Category:     models.EnvCategoryIDE,
		PromptPrefix: "You are assisting a developer working in an Xcode iOS project.",
		ContextNote:  "Changes may touch Swift/Objective-C sources, Info.plist entries, entitlements, and App Store Connect metadata.",
	},
	{
		ID:           "cursor",
		Name:         "Cursor",
		Category:     models.EnvCategoryIDE,
		PromptPrefix: "You are an AI coding assistant inside the Cursor editor with full access to the iOS project source.",
		ContextNote:  "Apply edits directly to the affected files and keep the project buildable.",
	},
	{
		ID:           "vscode",
		Name:         "VS Code",
		Category:     models.EnvCategoryIDE,
		PromptPrefix: "You are assisting a developer working on an iOS project in Visual Studio Code.",
		ContextNote:  "The project builds via xcodebuild or a cross-platform toolchain; keep configuration files in sync.",
	},
	{
		ID:           "bolt",
		Name:         "Bolt.new",
		Category:     models.EnvCategoryNoCode,
		PromptPrefix: "You are helping a maker who builds their app in Bolt.new without writing code directly.",
		ContextNote:  "Bolt generates the app from prompts; describe the change in product terms rather than code terms.",
	},
	{
		ID:           "lovable",
		Name:         "Lovable",
		Category:     models.EnvCategoryNoCode,
		PromptPrefix: "You are helping a maker who builds their app in Lovable without writing code directly.",
		ContextNote:  "Lovable manages the project structure; changes are requested through its chat interface.",
	},
	{
		ID:           "flutterflow",
		Name:         "FlutterFlow",
		Category:     models.EnvCategoryLowCode,
		PromptPrefix: "You are assisting a FlutterFlow user who combines visual building with custom Dart code.",
		ContextNote:  "Prefer visual-builder settings where possible and fall back to custom code widgets or actions otherwise.",
	},
	{
		ID:           "draftbit",
		Name:         "Draftbit",
		Category:     models.EnvCategoryLowCode,
		PromptPrefix: "You are assisting a Draftbit user who combines visual building with custom JavaScript.",
		ContextNote:  "Prefer component property changes where possible and fall back to custom code blocks otherwise.",
	},
}

// Catalog returns the active environment catalog.
func Catalog() []models.DevEnvironment {
	out := make([]models.DevEnvironment, len(builtin))
	copy(out, builtin)
	return out
}

// Lookup finds an environment by id.
func Lookup(catalog []models.DevEnvironment, id string) (models.DevEnvironment, error) {
	for _, env := range catalog {
		if env.ID == id {
			return env, nil
		}
	}
	return models.DevEnvironment{}, fmt.Errorf("unknown environment %q (see `storecheck envs`)", id)
}

// LoadOverlay reads extra environment profiles from a YAML file and
// merges them over the builtin catalog by id. A missing path returns
// the builtin catalog unchanged.
func LoadOverlay(path string) ([]models.DevEnvironment, error) {
	catalog := Catalog()
	if path == "" {
		return catalog, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return catalog, nil
		}
		return nil, fmt.Errorf("read environments file: %w", err)
	}

	var extra []models.DevEnvironment
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return nil, fmt.Errorf("parse environments file: %w", err)
	}

	for _, env := range extra {
		replaced := false
		for i := range catalog {
			if catalog[i].ID == env.ID {
				catalog[i] = env
				replaced = true
				break
			}
		}
		if !replaced {
			catalog = append(catalog, env)
		}
	}
	return catalog, nil
}
