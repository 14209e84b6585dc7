package editor

// highlight.go — lightweight YAML syntax highlighting for the preview pane.
// This is prefix recognition on single lines, not a YAML parse: comments,
// "key:" heads, quoted scalars, booleans, numbers, and list bullets cover
// what the emitters produce.

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	commentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	keyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	stringStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	boolStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	numberStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	bulletStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	addedStyle   = lipgloss.NewStyle().Background(lipgloss.Color("2")).Foreground(lipgloss.Color("0"))
	removedStyle = lipgloss.NewStyle().Background(lipgloss.Color("1")).Foreground(lipgloss.Color("0"))
)

// HighlightLine styles one preview line.
func HighlightLine(line string) string {
	trimmed := strings.TrimSpace(line)

	if strings.HasPrefix(trimmed, "#") {
		return commentStyle.Render(line)
	}

	if idx := strings.Index(line, ":"); idx >= 0 && !strings.HasPrefix(trimmed, "- ") {
		key := line[:idx]
		rest := line[idx+1:]
		return keyStyle.Render(key) + ":" + highlightValue(rest)
	}

	if strings.HasPrefix(trimmed, "- ") {
		indent := line[:len(line)-len(trimmed)]
		return indent + bulletStyle.Render("- ") + trimmed[2:]
	}

	return line
}

// highlightValue styles the text after a "key:" head, preserving leading
// whitespace.
func highlightValue(rest string) string {
	value := strings.TrimSpace(rest)
	if value == "" {
		return rest
	}
	pad := rest[:strings.Index(rest, value)]

	switch {
	case strings.HasPrefix(value, "\"") || strings.HasPrefix(value, "'"):
		return pad + stringStyle.Render(value)
	case value == "true" || value == "false":
		return pad + boolStyle.Render(value)
	default:
		if _, err := strconv.ParseFloat(value, 64); err == nil {
			return pad + numberStyle.Render(value)
		}
		return pad + value
	}
}

// RenderDiff styles a diff: added lines on green, removed on red, unchanged
// lines syntax highlighted.
func RenderDiff(lines []DiffLine) string {
	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		switch l.Kind {
		case Added:
			b.WriteString(addedStyle.Render("+ " + l.Text))
		case Removed:
			b.WriteString(removedStyle.Render("- " + l.Text))
		default:
			b.WriteString("  " + HighlightLine(l.Text))
		}
	}
	return b.String()
}

// RenderPlain syntax highlights a whole preview without diff markers.
func RenderPlain(content string) string {
	lines := strings.Split(content, "\n")
	for i, l := range lines {
		lines[i] = HighlightLine(l)
	}
	return strings.Join(lines, "\n")
}
