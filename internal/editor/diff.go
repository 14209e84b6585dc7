package editor

// diff.go — line diff between the generated preview and the file already on
// disk. A full LCS is overkill for CI files; a greedy matcher with a small
// lookahead window keeps runs of unchanged lines aligned and is linear in
// practice.

import "strings"

// DiffKind classifies one preview line relative to the existing file.
type DiffKind int

const (
	Unchanged DiffKind = iota
	Added
	Removed
)

// DiffLine is one row of the diff view.
type DiffLine struct {
	Text string
	Kind DiffKind
}

const diffLookahead = 5

// ComputeDiff compares the existing content against the newly generated one.
// Equal lines pass through unchanged. On a mismatch it first scans a short
// window ahead in the new content for the current old line (the skipped lines
// were added), then the same window in the old content for the current new
// line (the skipped lines were removed). When neither resyncs, the pair is
// reported as one removal plus one addition.
func ComputeDiff(oldContent, newContent string) []DiffLine {
	oldLines := strings.Split(oldContent, "\n")
	newLines := strings.Split(newContent, "\n")

	var out []DiffLine
	oldIdx, newIdx := 0, 0

	for oldIdx < len(oldLines) && newIdx < len(newLines) {
		if oldLines[oldIdx] == newLines[newIdx] {
			out = append(out, DiffLine{Text: newLines[newIdx], Kind: Unchanged})
			oldIdx++
			newIdx++
			continue
		}

		if at, ok := findLine(newLines, newIdx+1, oldLines[oldIdx]); ok {
			for ; newIdx < at; newIdx++ {
				out = append(out, DiffLine{Text: newLines[newIdx], Kind: Added})
			}
			continue
		}
		if at, ok := findLine(oldLines, oldIdx+1, newLines[newIdx]); ok {
			for ; oldIdx < at; oldIdx++ {
				out = append(out, DiffLine{Text: oldLines[oldIdx], Kind: Removed})
			}
			continue
		}

		out = append(out, DiffLine{Text: oldLines[oldIdx], Kind: Removed})
		out = append(out, DiffLine{Text: newLines[newIdx], Kind: Added})
		oldIdx++
		newIdx++
	}

	for ; newIdx < len(newLines); newIdx++ {
		out = append(out, DiffLine{Text: newLines[newIdx], Kind: Added})
	}
	for ; oldIdx < len(oldLines); oldIdx++ {
		out = append(out, DiffLine{Text: oldLines[oldIdx], Kind: Removed})
	}
	return out
}

// findLine scans lines[from:from+diffLookahead) for an exact match.
func findLine(lines []string, from int, want string) (int, bool) {
	end := from + diffLookahead - 1
	if end > len(lines) {
		end = len(lines)
	}
	for i := from; i < end; i++ {
		if lines[i] == want {
			return i, true
		}
	}
	return 0, false
}
