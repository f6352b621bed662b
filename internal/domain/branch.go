package domain

import (
	"regexp"
	"strings"
)

// BranchContext captures the branch the run executes on and the remote's
// default branch, resolved once per run.
type BranchContext struct {
	Current string
	Default string
}

// OnDefault reports whether the run executes on the default branch.
func (b BranchContext) OnDefault() bool {
	return b.Current == b.Default
}

// tagUnsafeRegex matches runs of characters that may not appear in a
// prerelease tag suffix.
var tagUnsafeRegex = regexp.MustCompile(`[^0-9A-Za-z]+`)

// SanitizedRef turns a branch name into a tag-safe suffix: every run of
// characters outside [0-9A-Za-z] becomes a single hyphen.
func SanitizedRef(branch string) string {
	return strings.Trim(tagUnsafeRegex.ReplaceAllString(branch, "-"), "-")
}
