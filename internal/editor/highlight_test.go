package editor

import (
	"regexp"
	"strings"
	"testing"
)

var ansiPattern = regexp.MustCompile("\x1b\\[[0-9;]*m")

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// Styling must never change the text itself, only wrap it in escape codes.
func TestHighlightPreservesText(t *testing.T) {
	lines := []string{
		"# a comment",
		"name: ci",
		"  runs-on: ubuntu-latest",
		"  enabled: true",
		"  timeout-minutes: 30",
		"  image: \"rust:latest\"",
		"  - main",
		"plain text",
		"",
	}
	for _, line := range lines {
		if got := stripANSI(HighlightLine(line)); got != line {
			t.Errorf("HighlightLine(%q) text = %q", line, got)
		}
	}
}

func TestRenderPlainLineCount(t *testing.T) {
	content := "a\nb\nc"
	got := stripANSI(RenderPlain(content))
	if got != content {
		t.Errorf("RenderPlain text = %q, want %q", got, content)
	}
}

func TestRenderDiffMarkers(t *testing.T) {
	out := stripANSI(RenderDiff([]DiffLine{
		{Text: "kept", Kind: Unchanged},
		{Text: "gone", Kind: Removed},
		{Text: "fresh", Kind: Added},
	}))
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if lines[0] != "  kept" {
		t.Errorf("unchanged line = %q", lines[0])
	}
	if lines[1] != "- gone" {
		t.Errorf("removed line = %q", lines[1])
	}
	if lines[2] != "+ fresh" {
		t.Errorf("added line = %q", lines[2])
	}
}
