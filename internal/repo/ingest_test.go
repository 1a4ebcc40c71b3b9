package repo

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"testing"

	gh "github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGit serves canned trees per branch and records requested branches.
type fakeGit struct {
	trees    map[string]*gh.Tree
	errs     map[string]error
	requests []string
}

func (f *fakeGit) GetTree(_ context.Context, _, _, sha string, _ bool) (*gh.Tree, *gh.Response, error) {
	f.requests = append(f.requests, sha)
	if err, ok := f.errs[sha]; ok {
		return nil, nil, err
	}
	if tree, ok := f.trees[sha]; ok {
		return tree, nil, nil
	}
	return nil, nil, notFoundErr()
}

// fakeContents serves canned file contents and records fetch order.
type fakeContents struct {
	files   map[string]string // path -> plaintext, base64-encoded on the way out
	errs    map[string]error
	fetched []string
}

func (f *fakeContents) GetContents(_ context.Context, _, _, path string, _ *gh.RepositoryContentGetOptions) (*gh.RepositoryContent, []*gh.RepositoryContent, *gh.Response, error) {
	f.fetched = append(f.fetched, path)
	if err, ok := f.errs[path]; ok {
		return nil, nil, nil, err
	}
	content, ok := f.files[path]
	if !ok {
		return nil, nil, nil, notFoundErr()
	}
	encoded := base64.StdEncoding.EncodeToString([]byte(content))
	return &gh.RepositoryContent{
		Content:  gh.Ptr(encoded),
		Encoding: gh.Ptr("base64"),
	}, nil, nil, nil
}

func notFoundErr() error {
	return &gh.ErrorResponse{Response: &http.Response{StatusCode: http.StatusNotFound}}
}

func blobEntry(path string, size int) *gh.TreeEntry {
	return &gh.TreeEntry{
		Path: gh.Ptr(path),
		Type: gh.Ptr("blob"),
		Size: gh.Ptr(size),
	}
}

func newTestIngestor(git *fakeGit, contents *fakeContents) *Ingestor {
	return &Ingestor{
		git:         git,
		contents:    contents,
		MaxFiles:    DefaultMaxFiles,
		MaxFileSize: DefaultMaxFileSize,
	}
}

func TestFetch_HappyPath(t *testing.T) {
	git := &fakeGit{trees: map[string]*gh.Tree{
		"main": {Entries: []*gh.TreeEntry{
			blobEntry("App/AppDelegate.swift", 400),
			blobEntry("App/Info.plist", 200),
			{Path: gh.Ptr("App"), Type: gh.Ptr("tree")},
			blobEntry("docs/readme.md", 100),
		}},
	}}
	contents := &fakeContents{files: map[string]string{
		"App/AppDelegate.swift": "import UIKit",
		"App/Info.plist":        "<plist/>",
	}}

	ing := newTestIngestor(git, contents)
	result, err := ing.Fetch(context.Background(), ParseURL("https://github.com/acme/photosync"))
	require.NoError(t, err)

	assert.Equal(t, "main", result.Branch)
	assert.Equal(t, 2, result.Relevant)
	assert.Zero(t, result.Dropped)
	require.Len(t, result.Files, 2)
	assert.Equal(t, "App/AppDelegate.swift", result.Files[0].Path)
	assert.Equal(t, "import UIKit", result.Files[0].Content)
	assert.Equal(t, 400, result.Files[0].Size)
}

func TestFetch_CapsAtMaxFilesPreservingOrder(t *testing.T) {
	var entries []*gh.TreeEntry
	files := map[string]string{}
	for i := 0; i < 20; i++ {
		path := fmt.Sprintf("Sources/File%02d.swift", i)
		entries = append(entries, blobEntry(path, 100))
		files[path] = "// swift"
	}
	git := &fakeGit{trees: map[string]*gh.Tree{"main": {Entries: entries}}}
	contents := &fakeContents{files: files}

	ing := newTestIngestor(git, contents)
	result, err := ing.Fetch(context.Background(), ParseURL("https://github.com/acme/big"))
	require.NoError(t, err)

	assert.Equal(t, 20, result.Relevant)
	require.Len(t, contents.fetched, 15, "fetch attempts capped at 15")
	require.Len(t, result.Files, 15)
	for i, f := range result.Files {
		assert.Equal(t, fmt.Sprintf("Sources/File%02d.swift", i), f.Path)
	}
}

func TestFetch_MasterFallbackOn404(t *testing.T) {
	git := &fakeGit{
		trees: map[string]*gh.Tree{
			"master": {Entries: []*gh.TreeEntry{blobEntry("App.swift", 50)}},
		},
		errs: map[string]error{"main": notFoundErr()},
	}
	contents := &fakeContents{files: map[string]string{"App.swift": "let a = 1"}}

	ing := newTestIngestor(git, contents)
	result, err := ing.Fetch(context.Background(), ParseURL("https://github.com/acme/old-repo"))
	require.NoError(t, err)

	assert.Equal(t, []string{"main", "master"}, git.requests)
	assert.Equal(t, "master", result.Branch)
}

func TestFetch_FallbackAlsoFails(t *testing.T) {
	git := &fakeGit{errs: map[string]error{
		"main":   notFoundErr(),
		"master": notFoundErr(),
	}}
	ing := newTestIngestor(git, &fakeContents{})

	_, err := ing.Fetch(context.Background(), ParseURL("https://github.com/acme/gone"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found or not public")
	assert.Contains(t, err.Error(), "status 404")
}

func TestFetch_FallbackErrorReportsPrimaryStatus(t *testing.T) {
	// The fallback attempt dying on a transport error still reports
	// the primary branch's 404, not a bogus status 0.
	git := &fakeGit{errs: map[string]error{
		"main":   notFoundErr(),
		"master": errors.New("connection reset"),
	}}
	ing := newTestIngestor(git, &fakeContents{})

	_, err := ing.Fetch(context.Background(), ParseURL("https://github.com/acme/gone"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
	assert.NotContains(t, err.Error(), "status 0")
}

func TestFetch_TransportErrorOmitsStatus(t *testing.T) {
	git := &fakeGit{errs: map[string]error{
		"main": errors.New("connection reset"),
	}}
	ing := newTestIngestor(git, &fakeContents{})

	_, err := ing.Fetch(context.Background(), ParseURL("https://github.com/acme/flaky"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GitHub API error")
	assert.NotContains(t, err.Error(), "status")
	assert.Equal(t, []string{"main"}, git.requests)
}

func TestFetch_NonNotFoundErrorDoesNotFallBack(t *testing.T) {
	git := &fakeGit{errs: map[string]error{
		"main": &gh.ErrorResponse{Response: &http.Response{StatusCode: http.StatusForbidden}},
	}}
	ing := newTestIngestor(git, &fakeContents{})

	_, err := ing.Fetch(context.Background(), ParseURL("https://github.com/acme/limited"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
	assert.Equal(t, []string{"main"}, git.requests)
}

func TestFetch_FiltersBySizeAndSubpath(t *testing.T) {
	git := &fakeGit{trees: map[string]*gh.Tree{
		"main": {Entries: []*gh.TreeEntry{
			blobEntry("ios/App.swift", 100),
			blobEntry("ios/Huge.swift", 250000),
			blobEntry("android/Main.kt", 100),
			blobEntry("server/Handler.swift", 100),
		}},
	}}
	contents := &fakeContents{files: map[string]string{"ios/App.swift": "ok"}}

	ing := newTestIngestor(git, contents)
	result, err := ing.Fetch(context.Background(), ParseURL("https://github.com/acme/mono/tree/main/ios"))
	require.NoError(t, err)

	require.Len(t, result.Files, 1)
	assert.Equal(t, "ios/App.swift", result.Files[0].Path)
}

func TestFetch_NoRelevantFiles(t *testing.T) {
	git := &fakeGit{trees: map[string]*gh.Tree{
		"main": {Entries: []*gh.TreeEntry{blobEntry("main.go", 100)}},
	}}
	ing := newTestIngestor(git, &fakeContents{})

	_, err := ing.Fetch(context.Background(), ParseURL("https://github.com/acme/server"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no iOS-relevant source files")
}

func TestFetch_PartialContentFailuresAreSkipped(t *testing.T) {
	var entries []*gh.TreeEntry
	for i := 0; i < 5; i++ {
		entries = append(entries, blobEntry(fmt.Sprintf("F%d.swift", i), 10))
	}
	git := &fakeGit{trees: map[string]*gh.Tree{"main": {Entries: entries}}}
	contents := &fakeContents{
		files: map[string]string{"F1.swift": "a", "F3.swift": "b"},
		errs: map[string]error{
			"F0.swift": errors.New("network"),
			"F2.swift": errors.New("network"),
			"F4.swift": errors.New("network"),
		},
	}

	ing := newTestIngestor(git, contents)
	result, err := ing.Fetch(context.Background(), ParseURL("https://github.com/acme/flaky"))
	require.NoError(t, err)

	require.Len(t, result.Files, 2)
	assert.Equal(t, 3, result.Dropped)
	assert.Len(t, contents.fetched, 5, "later files are still attempted after a failure")
}

func TestFetch_AllContentFailures(t *testing.T) {
	git := &fakeGit{trees: map[string]*gh.Tree{
		"main": {Entries: []*gh.TreeEntry{blobEntry("A.swift", 10), blobEntry("B.swift", 10)}},
	}}
	contents := &fakeContents{errs: map[string]error{
		"A.swift": errors.New("network"),
		"B.swift": errors.New("network"),
	}}

	ing := newTestIngestor(git, contents)
	_, err := ing.Fetch(context.Background(), ParseURL("https://github.com/acme/dead"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not fetch any file contents")
}

func TestFetch_RejectsNonBase64Encoding(t *testing.T) {
	git := &fakeGit{trees: map[string]*gh.Tree{
		"main": {Entries: []*gh.TreeEntry{blobEntry("A.swift", 10)}},
	}}
	contents := &rawContents{}

	ing := &Ingestor{git: git, contents: contents, MaxFiles: DefaultMaxFiles, MaxFileSize: DefaultMaxFileSize}
	_, err := ing.Fetch(context.Background(), ParseURL("https://github.com/acme/odd"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not fetch any file contents")
}

// rawContents returns a payload without base64 encoding.
type rawContents struct{}

func (rawContents) GetContents(context.Context, string, string, string, *gh.RepositoryContentGetOptions) (*gh.RepositoryContent, []*gh.RepositoryContent, *gh.Response, error) {
	return &gh.RepositoryContent{
		Content:  gh.Ptr("plain text"),
		Encoding: gh.Ptr("none"),
	}, nil, nil, nil
}

func TestFetch_NilRef(t *testing.T) {
	ing := newTestIngestor(&fakeGit{}, &fakeContents{})
	_, err := ing.Fetch(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid GitHub URL")
}
