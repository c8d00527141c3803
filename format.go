package diffscope

import (
	"fmt"
	"strings"
	"time"
)

// FormatStats renders stats as a compact one-line summary, e.g.
// "+12 -4 (1 file, 3.2ms)".
func FormatStats(s Stats) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "+%d -%d", s.LinesAdded, s.LinesDeleted)
	noun := "files"
	if s.FilesChanged == 1 {
		noun = "file"
	}
	fmt.Fprintf(&sb, " (%d %s", s.FilesChanged, noun)
	if s.Duration > 0 {
		fmt.Fprintf(&sb, ", %s", s.Duration.Round(10*time.Microsecond))
	}
	sb.WriteString(")")
	return sb.String()
}

// Summarize renders a short human-readable description of a file diff.
func Summarize(f *FileDiff) string {
	if f.IsBinary {
		return fmt.Sprintf("binary file %s (%s), diff not shown", f.Path(), f.Status)
	}
	var sb strings.Builder
	switch f.Status {
	case StatusRenamed, StatusCopied:
		fmt.Fprintf(&sb, "%s %s -> %s", f.Status, f.OldPath, f.NewPath)
	default:
		fmt.Fprintf(&sb, "%s %s", f.Status, f.Path())
	}
	if f.IsEmpty() {
		sb.WriteString(": no changes")
		return sb.String()
	}
	added, deleted := f.LineCounts()
	noun := "hunks"
	if len(f.Hunks) == 1 {
		noun = "hunk"
	}
	fmt.Fprintf(&sb, ": +%d -%d across %d %s", added, deleted, len(f.Hunks), noun)
	return sb.String()
}

// Complexity scores how much review attention a diff deserves. Line volume
// dominates; each hunk adds a fixed cost and whole-file operations carry an
// extra weight.
func Complexity(f *FileDiff) int {
	added, deleted := f.LineCounts()
	score := added + deleted + len(f.Hunks)*5
	switch f.Status {
	case StatusAdded, StatusDeleted:
		score += 10
	case StatusRenamed, StatusCopied:
		score += 5
	}
	return score
}
