// Package textdiff renders unified diffs between two versions of a file.
package textdiff

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
)

// DefaultContext is the number of unchanged lines shown around each change.
const DefaultContext = 3

// Unified returns the unified diff turning before into after, labelled with
// the "a/" and "b/" prefixes git uses. Identical inputs give an empty string.
func Unified(path string, before, after []byte, context int) (string, error) {
	if string(before) == string(after) {
		return "", nil
	}

	if context < 0 {
		context = DefaultContext
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  context,
	})
	if err != nil {
		return "", fmt.Errorf("failed to diff %s: %w", path, err)
	}

	return diff, nil
}

// Stats counts the added and removed lines of a unified diff.
func Stats(diff string) (added, removed int) {
	for _, line := range difflib.SplitLines(diff) {
		switch {
		case len(line) >= 3 && (line[:3] == "+++" || line[:3] == "---"):
		case len(line) > 0 && line[0] == '+':
			added++
		case len(line) > 0 && line[0] == '-':
			removed++
		}
	}

	return added, removed
}
