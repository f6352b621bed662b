package domain

import (
	"fmt"
	"path"
	"strings"
	"time"
	"unicode"

	"github.com/Masterminds/semver/v3"
)

// DateSentinel is the declaration content that requests a date-based version.
const DateSentinel = "date"

// Declaration is a single Version file found in the working tree.
type Declaration struct {
	Location string // directory relative to the tree root, "" for the root
	Content  string // raw file content
}

// BaseVersion is the namespaced tag name before any prerelease or counter
// suffix is applied.
type BaseVersion struct {
	Name        string
	Date        bool // resolved from the date sentinel
	Declaration Declaration
}

// Value returns the declaration content with all whitespace stripped.
func (d Declaration) Value() string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, d.Content)
}

// IsDate reports whether the declaration uses the date sentinel.
func (d Declaration) IsDate() bool {
	return d.Value() == DateSentinel
}

// Namespace returns the tag prefix derived from the declaration location:
// empty for the tree root, otherwise the location with a trailing slash.
func (d Declaration) Namespace() string {
	if d.Location == "" || d.Location == "." {
		return ""
	}
	return d.Location + "/"
}

// Path returns the declaration file path relative to the tree root.
func (d Declaration) Path() string {
	return path.Join(d.Location, "Version")
}

// Resolve computes the base version for the declaration. Date declarations
// use the given clock reading with month and day rendered without leading
// zeros; anything else passes through verbatim after whitespace stripping.
// Date versions must be recomputed per invocation, never cached.
func (d Declaration) Resolve(now time.Time) BaseVersion {
	if d.IsDate() {
		name := fmt.Sprintf("%sv%d.%d.%d", d.Namespace(), now.Year(), int(now.Month()), now.Day())
		return BaseVersion{Name: name, Date: true, Declaration: d}
	}
	return BaseVersion{Name: d.Namespace() + "v" + d.Value(), Declaration: d}
}

// SemverLike reports whether the declaration content parses as a semantic
// version. Resolution never rejects malformed content; this exists for
// advisory logging only.
func (d Declaration) SemverLike() bool {
	_, err := semver.NewVersion(d.Value())
	return err == nil
}
