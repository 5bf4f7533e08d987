// Package githuburl rewrites GitHub blob URLs to raw content URLs so file
// pages can be fetched directly instead of going through the reader API.
package githuburl

import (
	"regexp"
	"strings"
)

var (
	blobPattern = regexp.MustCompile(`^https?://github\.com/([^/]+)/([^/]+)/blob/([^/]+)/(.+)$`)
	commitHash  = regexp.MustCompile(`^[0-9a-fA-F]{40}$`)
)

// Rewrite converts a GitHub blob URL into its raw.githubusercontent.com
// equivalent. Branch refs get a refs/heads/ prefix, 40-hex commit hashes are
// used as-is. URLs that mention /blob/ but don't match the full pattern fall
// back to a textual host swap. Everything else passes through unchanged, with
// false as the second return value.
func Rewrite(rawURL string) (string, bool) {
	if m := blobPattern.FindStringSubmatch(rawURL); m != nil {
		owner, repo, ref, path := m[1], m[2], m[3], m[4]
		if commitHash.MatchString(ref) {
			return "https://raw.githubusercontent.com/" + owner + "/" + repo + "/" + ref + "/" + path, true
		}
		return "https://raw.githubusercontent.com/" + owner + "/" + repo + "/refs/heads/" + ref + "/" + path, true
	}

	// Naive fallback for blob URLs the pattern doesn't anticipate.
	if strings.Contains(rawURL, "github.com") && strings.Contains(rawURL, "/blob/") {
		out := strings.Replace(rawURL, "github.com", "raw.githubusercontent.com", 1)
		out = strings.Replace(out, "/blob/", "/", 1)
		return out, true
	}

	return rawURL, false
}
