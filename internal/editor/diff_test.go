package editor

import (
	"strings"
	"testing"
)

// reconstruct joins the diff lines of every kind except skip.
func reconstruct(lines []DiffLine, skip DiffKind) string {
	var parts []string
	for _, l := range lines {
		if l.Kind != skip {
			parts = append(parts, l.Text)
		}
	}
	return strings.Join(parts, "\n")
}

func TestDiffIdentical(t *testing.T) {
	content := "a\nb\nc"
	for _, l := range ComputeDiff(content, content) {
		if l.Kind != Unchanged {
			t.Fatalf("line %q classified as %v", l.Text, l.Kind)
		}
	}
}

func TestDiffPureAddition(t *testing.T) {
	lines := ComputeDiff("a\nc", "a\nb\nc")
	var added []string
	for _, l := range lines {
		if l.Kind == Added {
			added = append(added, l.Text)
		}
	}
	if len(added) != 1 || added[0] != "b" {
		t.Fatalf("added = %v, want [b]", added)
	}
}

func TestDiffPureRemoval(t *testing.T) {
	lines := ComputeDiff("a\nb\nc", "a\nc")
	var removed []string
	for _, l := range lines {
		if l.Kind == Removed {
			removed = append(removed, l.Text)
		}
	}
	if len(removed) != 1 || removed[0] != "b" {
		t.Fatalf("removed = %v, want [b]", removed)
	}
}

func TestDiffReplacement(t *testing.T) {
	lines := ComputeDiff("x", "y")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0].Kind != Removed || lines[0].Text != "x" {
		t.Errorf("line 0 = %+v, want removed x", lines[0])
	}
	if lines[1].Kind != Added || lines[1].Text != "y" {
		t.Errorf("line 1 = %+v, want added y", lines[1])
	}
}

// The two reconstruction identities hold for arbitrary inputs: dropping
// removed lines yields the new content, dropping added lines yields the old.
func TestDiffReconstruction(t *testing.T) {
	cases := []struct{ old, new string }{
		{"", ""},
		{"a\nb\nc", "a\nb\nc"},
		{"a\nb\nc", "a\nX\nc"},
		{"jobs:\n  test:\n    runs-on: ubuntu", "jobs:\n  lint:\n    runs-on: ubuntu"},
		{"a\nb\nc\nd\ne", "c\nd\ne\nf"},
		{"one\ntwo", "one\ntwo\nthree\nfour\nfive\nsix\nseven"},
		{"1\n2\n3\n4\n5\n6\n7", "7"},
		{"stage: test\nimage: rust", "stage: build\nimage: golang\nscript:\n  - go test"},
	}
	for _, tc := range cases {
		lines := ComputeDiff(tc.old, tc.new)
		if got := reconstruct(lines, Removed); got != tc.new {
			t.Errorf("non-removed lines = %q, want new content %q", got, tc.new)
		}
		if got := reconstruct(lines, Added); got != tc.old {
			t.Errorf("non-added lines = %q, want old content %q", got, tc.old)
		}
	}
}

func TestDiffResyncWithinWindow(t *testing.T) {
	// The matcher scans at most four lines ahead; "e" is found and the
	// inserted block becomes additions rather than pairwise replacements.
	lines := ComputeDiff("a\ne", "a\nb\nc\nd\ne")
	addCount := 0
	for _, l := range lines {
		switch l.Kind {
		case Added:
			addCount++
		case Removed:
			t.Fatalf("no removals expected, got %+v", l)
		}
	}
	if addCount != 3 {
		t.Errorf("added %d lines, want 3", addCount)
	}
}
