package repo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	gh "github.com/google/go-github/v80/github"
)

const (
	// DefaultMaxFiles bounds how many file contents one ingestion run
	// will fetch, to keep the prompt within reasonable token limits.
	DefaultMaxFiles = 15

	// DefaultMaxFileSize excludes files at or above this many bytes.
	DefaultMaxFileSize = 100000
)

// gitService is the slice of the GitHub Git API the ingestor uses.
type gitService interface {
	GetTree(ctx context.Context, owner, repo, sha string, recursive bool) (*gh.Tree, *gh.Response, error)
}

// contentService is the slice of the GitHub Repositories API the
// ingestor uses for per-file content.
type contentService interface {
	GetContents(ctx context.Context, owner, repo, path string, opts *gh.RepositoryContentGetOptions) (*gh.RepositoryContent, []*gh.RepositoryContent, *gh.Response, error)
}

// File is one fetched, decoded repository file.
type File struct {
	Path    string
	Content string
	Size    int
}

// Result is the outcome of a successful ingestion run.
type Result struct {
	Branch   string // branch actually used, after any master fallback
	Files    []File
	Relevant int // relevant entries found in the tree, before capping
	Dropped  int // capped entries whose content fetch failed
}

type authTransport struct {
	token string
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("Authorization", "Bearer "+t.token)
	return http.DefaultTransport.RoundTrip(req)
}

// Ingestor fetches iOS-relevant source files from a public GitHub
// repository. Fetches are strictly sequential; a run is one-shot and
// re-entrant only by calling Fetch again.
type Ingestor struct {
	git         gitService
	contents    contentService
	MaxFiles    int
	MaxFileSize int

	// Progress, when set, receives human-readable status lines.
	Progress func(format string, a ...any)
}

// NewIngestor creates an Ingestor backed by the GitHub REST API. An
// empty token means unauthenticated access (public repos only, lower
// rate limits).
func NewIngestor(token string) *Ingestor {
	var httpClient *http.Client
	if token != "" {
		httpClient = &http.Client{Transport: &authTransport{token: token}}
	}
	client := gh.NewClient(httpClient)
	return &Ingestor{
		git:         client.Git,
		contents:    client.Repositories,
		MaxFiles:    DefaultMaxFiles,
		MaxFileSize: DefaultMaxFileSize,
	}
}

func (ing *Ingestor) progress(format string, a ...any) {
	if ing.Progress != nil {
		ing.Progress(format, a...)
	}
}

func isNotFound(err error) bool {
	var ghErr *gh.ErrorResponse
	return errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound
}

func statusOf(err error) int {
	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		return ghErr.Response.StatusCode
	}
	return 0
}

// Fetch runs the full ingestion pipeline for ref: recursive tree
// fetch (with a single main-to-master fallback on 404), relevance and
// size filtering, capping, and sequential content fetches. Per-file
// fetch failures are skipped and counted in Result.Dropped; only a
// total failure returns an error.
func (ing *Ingestor) Fetch(ctx context.Context, ref *Ref) (*Result, error) {
	if ref == nil {
		return nil, errors.New("invalid GitHub URL: expected format https://github.com/owner/repo")
	}

	branch := ref.Branch
	ing.progress("fetching repository tree for %s/%s@%s", ref.Owner, ref.Repo, branch)

	tree, _, err := ing.git.GetTree(ctx, ref.Owner, ref.Repo, branch, true)
	if err != nil {
		if !isNotFound(err) {
			if status := statusOf(err); status != 0 {
				return nil, fmt.Errorf("GitHub API error (status %d): %w", status, err)
			}
			return nil, fmt.Errorf("GitHub API error: %w", err)
		}
		// If the fallback also fails, the error reports the primary
		// branch's status, not the fallback's.
		primaryStatus := statusOf(err)

		// Single fallback: repos created before the default-branch
		// rename often still live on master.
		branch = "master"
		ing.progress("branch %s not found, retrying %s", ref.Branch, branch)
		tree, _, err = ing.git.GetTree(ctx, ref.Owner, ref.Repo, branch, true)
		if err != nil {
			return nil, fmt.Errorf("repository not found or not public (status %d)", primaryStatus)
		}
	}

	relevant := ing.filterEntries(tree.Entries, ref.Subpath)
	if len(relevant) == 0 {
		return nil, errors.New("no iOS-relevant source files found in this repository (looked for .swift, .m, .h, .plist, .entitlements, and other iOS files)")
	}

	capped := relevant
	if len(capped) > ing.MaxFiles {
		capped = capped[:ing.MaxFiles]
	}
	ing.progress("fetching %d of %d iOS files", len(capped), len(relevant))

	result := &Result{Branch: branch, Relevant: len(relevant)}
	for i, entry := range capped {
		path := entry.GetPath()
		ing.progress("fetching file %d/%d: %s", i+1, len(capped), path)

		content, decodeErr := ing.fetchContent(ctx, ref.Owner, ref.Repo, path, branch)
		if decodeErr != nil {
			result.Dropped++
			continue
		}

		size := int(entry.GetSize())
		if size == 0 {
			size = len(content)
		}
		result.Files = append(result.Files, File{Path: path, Content: content, Size: size})
	}

	if len(result.Files) == 0 {
		return nil, errors.New("could not fetch any file contents from the repository")
	}
	return result, nil
}

// filterEntries keeps blob entries that pass the relevance filter,
// fall under the size cap, and (when a subpath was given) live inside
// that directory. Tree order is preserved.
func (ing *Ingestor) filterEntries(entries []*gh.TreeEntry, subpath string) []*gh.TreeEntry {
	var out []*gh.TreeEntry
	for _, e := range entries {
		if e.GetType() != "blob" {
			continue
		}
		if !IsRelevantFile(e.GetPath()) {
			continue
		}
		if int(e.GetSize()) >= ing.MaxFileSize {
			continue
		}
		if subpath != "" && !strings.HasPrefix(e.GetPath(), subpath) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// fetchContent retrieves and decodes one file. Only base64 payloads
// are accepted; go-github strips the embedded newlines and decodes.
func (ing *Ingestor) fetchContent(ctx context.Context, owner, repo, path, branch string) (string, error) {
	opts := &gh.RepositoryContentGetOptions{Ref: branch}
	content, _, _, err := ing.contents.GetContents(ctx, owner, repo, path, opts)
	if err != nil {
		return "", err
	}
	if content == nil || content.GetEncoding() != "base64" {
		return "", fmt.Errorf("unexpected encoding for %s", path)
	}
	return content.GetContent()
}
