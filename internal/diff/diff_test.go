package diff

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const canonicalFeed = `#+NICK: me

* Posts
**
:PROPERTIES:
:ID: 2025-05-01T10:00:00+0100
:END:

Hello`

func TestCanonicalIsFixedPoint(t *testing.T) {
	got := Canonical(canonicalFeed, "")
	if got != canonicalFeed {
		t.Errorf("canonical input should be unchanged:\n got:\n%s\nwant:\n%s", got, canonicalFeed)
	}
}

func TestCanonicalNormalizes(t *testing.T) {
	messy := `#+NICK: me

* Posts
** :PROPERTIES:
:MOOD: calm
:ID: 2025-05-01T10:00:00+0100
:END:


Hello`

	got := Canonical(messy, "")
	idIdx := strings.Index(got, ":ID:")
	moodIdx := strings.Index(got, ":MOOD:")
	if idIdx < 0 || moodIdx < 0 || idIdx > moodIdx {
		t.Errorf("canonical form should order ID before MOOD:\n%s", got)
	}
}

func TestUnifiedEmptyForIdenticalInputs(t *testing.T) {
	if d := Unified("a", "b", "same\n", "same\n"); d != "" {
		t.Errorf("identical inputs should produce no diff, got:\n%s", d)
	}
}

func TestUnifiedShowsChanges(t *testing.T) {
	d := Unified("old", "new", "line one\nline two\n", "line one\nline 2\n")
	if !strings.Contains(d, "-line two") || !strings.Contains(d, "+line 2") {
		t.Errorf("diff missing expected hunks:\n%s", d)
	}
}

func TestCheckFileCanonical(t *testing.T) {
	path := filepath.Join(t.TempDir(), "social.org")
	if err := os.WriteFile(path, []byte(canonicalFeed), 0644); err != nil {
		t.Fatal(err)
	}

	d, err := CheckFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if d != "" {
		t.Errorf("canonical file should produce no diff, got:\n%s", d)
	}
}

func TestCheckFileNonCanonical(t *testing.T) {
	path := filepath.Join(t.TempDir(), "social.org")
	messy := canonicalFeed + "\n\n\n"
	if err := os.WriteFile(path, []byte(messy), 0644); err != nil {
		t.Fatal(err)
	}

	d, err := CheckFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if d == "" {
		t.Error("non-canonical file should produce a diff")
	}
}

func TestCheckFileMissing(t *testing.T) {
	if _, err := CheckFile(filepath.Join(t.TempDir(), "nope.org")); err == nil {
		t.Error("expected error for missing file")
	}
}
