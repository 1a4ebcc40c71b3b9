package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCombinedSource(t *testing.T) {
	files := []File{
		{Path: "App.swift", Content: "import UIKit"},
		{Path: "Info.plist", Content: "<plist/>"},
	}
	combined := CombinedSource(files)
	assert.Equal(t, "// === App.swift ===\nimport UIKit\n\n// === Info.plist ===\n<plist/>", combined)
}

func TestAppendSource(t *testing.T) {
	assert.Equal(t, "block", AppendSource("", "block"))
	assert.Equal(t, "block", AppendSource("   \n", "block"))
	assert.Equal(t, "existing\n\nblock", AppendSource("existing", "block"))
}

func TestStripFileBlock(t *testing.T) {
	buffer := CombinedSource([]File{
		{Path: "A.swift", Content: "let a = 1"},
		{Path: "B.swift", Content: "let b = 2"},
		{Path: "C.swift", Content: "let c = 3"},
	})

	t.Run("removes middle section only", func(t *testing.T) {
		out := StripFileBlock(buffer, "B.swift")
		assert.Contains(t, out, "// === A.swift ===")
		assert.Contains(t, out, "let a = 1")
		assert.NotContains(t, out, "B.swift")
		assert.NotContains(t, out, "let b = 2")
		assert.Contains(t, out, "let c = 3")
		assert.NotContains(t, out, "\n\n\n")
	})

	t.Run("unknown path leaves buffer intact", func(t *testing.T) {
		assert.Equal(t, buffer, StripFileBlock(buffer, "Z.swift"))
	})

	t.Run("user-edited lines outside sections survive", func(t *testing.T) {
		edited := "// custom note\n\n" + buffer
		out := StripFileBlock(edited, "A.swift")
		assert.Contains(t, out, "// custom note")
		assert.NotContains(t, out, "let a = 1")
	})
}

func TestProductName(t *testing.T) {
	t.Run("from pbxproj", func(t *testing.T) {
		files := []File{{
			Path:    "App.xcodeproj/project.pbxproj",
			Content: `buildSettings = { PRODUCT_NAME = "PhotoSync Pro"; };`,
		}}
		assert.Equal(t, "PhotoSync Pro", ProductName(files, "photo-sync"))
	})

	t.Run("unquoted product name", func(t *testing.T) {
		files := []File{{
			Path:    "project.pbxproj",
			Content: "PRODUCT_NAME = PhotoSync;",
		}}
		assert.Equal(t, "PhotoSync", ProductName(files, "photo-sync"))
	})

	t.Run("falls back to humanized repo name", func(t *testing.T) {
		assert.Equal(t, "Photo Sync Pro", ProductName(nil, "photo-sync_pro"))
	})
}

func TestHumanizeRepoName(t *testing.T) {
	assert.Equal(t, "My App", HumanizeRepoName("my-app"))
	assert.Equal(t, "Budget Wise 2", HumanizeRepoName("budget_wise-2"))
	assert.Equal(t, "App", HumanizeRepoName("app"))
}
