package repo

import "strings"

// iOS-ecosystem file extensions worth sending to the analyzer.
var iosExtensions = []string{
	".swift", ".m", ".mm", ".h", ".plist", ".storyboard", ".xib",
	".entitlements", ".xcconfig", ".pbxproj", ".podfile", ".podspec",
}

// IsRelevantFile reports whether a repository path looks like iOS
// source or build configuration. Case-insensitive, name heuristics
// only, no I/O.
func IsRelevantFile(path string) bool {
	lower := strings.ToLower(path)

	for _, ext := range iosExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	if strings.Contains(lower, "podfile") ||
		strings.Contains(lower, "cartfile") ||
		strings.Contains(lower, "package.swift") ||
		strings.Contains(lower, "info.plist") {
		return true
	}
	// JSON files only when they look like project configuration.
	if strings.HasSuffix(lower, ".json") &&
		(strings.Contains(lower, "config") || strings.Contains(lower, "package")) {
		return true
	}
	return false
}
