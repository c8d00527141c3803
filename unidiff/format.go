package unidiff

import (
	"fmt"
	"strings"

	"github.com/fwojciec/diffscope"
)

// Format renders the diff as canonical unified text: explicit hunk counts,
// "---"/"+++" headers whenever a path is known, and no-newline markers
// after the lines that carry them. Parsing the output reproduces the diff,
// which makes Format the payload for clipboard yanks.
func Format(fd *diffscope.FileDiff) string {
	if fd == nil {
		return ""
	}

	var b strings.Builder

	if fd.IsBinary {
		fmt.Fprintf(&b, "Binary files %s and %s differ\n", headerName(fd.OldPath), headerName(fd.NewPath))
		return b.String()
	}

	if fd.OldPath != "" || fd.NewPath != "" {
		fmt.Fprintf(&b, "--- %s\n", headerName(fd.OldPath))
		fmt.Fprintf(&b, "+++ %s\n", headerName(fd.NewPath))
	}

	for _, hunk := range fd.Hunks {
		b.WriteString(diffscope.FormatHunkHeader(hunk.OldStart, hunk.OldCount, hunk.NewStart, hunk.NewCount))
		if hunk.Section != "" {
			b.WriteByte(' ')
			b.WriteString(hunk.Section)
		}
		b.WriteByte('\n')

		for _, line := range hunk.Lines {
			b.WriteByte(linePrefix(line.Type))
			b.WriteString(line.Content)
			b.WriteByte('\n')
			if line.NoNewline {
				b.WriteString("\\ No newline at end of file\n")
			}
		}
	}
	return b.String()
}

func linePrefix(t diffscope.LineType) byte {
	switch t {
	case diffscope.LineAdded:
		return '+'
	case diffscope.LineDeleted:
		return '-'
	default:
		return ' '
	}
}

func headerName(path string) string {
	if path == "" {
		return "/dev/null"
	}
	return path
}
