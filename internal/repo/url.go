package repo

import (
	"regexp"
	"strings"
)

// Ref identifies a GitHub repository location parsed from a URL.
type Ref struct {
	Owner   string
	Repo    string
	Branch  string
	Subpath string
}

// Matches github.com/owner/repo with an optional /tree/branch/path tail.
var urlPattern = regexp.MustCompile(`github\.com/([^/]+)/([^/]+)(?:/tree/([^/]+)(?:/(.*))?)?`)

// ParseURL extracts owner, repo, branch, and subpath from a GitHub
// repository URL. Trailing slashes and a trailing .git suffix are
// ignored. Branch defaults to "main" and subpath to "". Returns nil
// for anything that does not look like a GitHub repository URL.
func ParseURL(raw string) *Ref {
	cleaned := strings.TrimRight(strings.TrimSpace(raw), "/")
	cleaned = strings.TrimSuffix(cleaned, ".git")

	m := urlPattern.FindStringSubmatch(cleaned)
	if m == nil {
		return nil
	}

	ref := &Ref{
		Owner:   m[1],
		Repo:    m[2],
		Branch:  m[3],
		Subpath: m[4],
	}
	if ref.Branch == "" {
		ref.Branch = "main"
	}
	return ref
}
