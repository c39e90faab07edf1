// Package diff compares feed files against their canonical serialization.
package diff

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"

	"github.com/gerunddev/orgsocial/internal/social"
)

// Canonical parses text and serializes it back, yielding the canonical form:
// fixed property order, dropped empties, single blank line separators.
func Canonical(text, source string) string {
	return social.SerializeDocument(social.ParseDocument(text, source))
}

// Unified returns a unified diff between two texts.
func Unified(oldName, newName, oldText, newText string) string {
	edits := myers.ComputeEdits(span.URIFromPath(oldName), oldText, newText)
	return fmt.Sprint(gotextdiff.ToUnified(oldName, newName, oldText, edits))
}

// CheckFile reads a feed file and diffs it against its canonical form. An
// empty result means the file is already canonical.
func CheckFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read feed file: %w", err)
	}

	name := filepath.Base(path)
	canonical := Canonical(string(content), "")

	return Unified(name, name+" (canonical)", string(content), canonical), nil
}
