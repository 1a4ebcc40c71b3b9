package repo

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	productNamePattern = regexp.MustCompile(`PRODUCT_NAME\s*=\s*"?([^";]+)"?`)
	blankRunPattern    = regexp.MustCompile(`\n{3,}`)
	wordStartPattern   = regexp.MustCompile(`\b\w`)
)

// fileMarker labels each file's section in the combined code buffer.
func fileMarker(path string) string {
	return fmt.Sprintf("// === %s ===", path)
}

// CombinedSource concatenates fetched files into one labeled code
// blob, each file introduced by its path marker.
func CombinedSource(files []File) string {
	blocks := make([]string, 0, len(files))
	for _, f := range files {
		blocks = append(blocks, fileMarker(f.Path)+"\n"+f.Content)
	}
	return strings.Join(blocks, "\n\n")
}

// AppendSource appends a code blob to an existing editable buffer,
// separated by a blank line when the buffer already has content.
func AppendSource(buffer, block string) string {
	if strings.TrimSpace(buffer) == "" {
		return block
	}
	return buffer + "\n\n" + block
}

// StripFileBlock removes one file's marker-delimited section from the
// combined buffer, leaving every other section intact. Runs of blank
// lines left behind are collapsed.
func StripFileBlock(buffer, path string) string {
	marker := fileMarker(path)
	var kept []string
	skipping := false
	for _, line := range strings.Split(buffer, "\n") {
		if strings.HasPrefix(line, "// === ") && strings.HasSuffix(line, " ===") {
			skipping = line == marker
			if skipping {
				continue
			}
		}
		if !skipping {
			kept = append(kept, line)
		}
	}
	return strings.TrimSpace(blankRunPattern.ReplaceAllString(strings.Join(kept, "\n"), "\n\n"))
}

// ProductName extracts the app's name from fetched files: a
// PRODUCT_NAME assignment in a .pbxproj wins, otherwise the repository
// name is humanized (hyphens and underscores to spaces, words
// title-cased). Best-effort text scanning, not a pbxproj parser.
func ProductName(files []File, repoName string) string {
	for _, f := range files {
		if !strings.HasSuffix(f.Path, ".pbxproj") {
			continue
		}
		if m := productNamePattern.FindStringSubmatch(f.Content); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return HumanizeRepoName(repoName)
}

// HumanizeRepoName turns "my-cool_app" into "My Cool App".
func HumanizeRepoName(name string) string {
	spaced := strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return wordStartPattern.ReplaceAllStringFunc(spaced, strings.ToUpper)
}
