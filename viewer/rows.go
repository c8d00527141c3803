package viewer

import (
	"github.com/fwojciec/diffscope"
)

// DisplayMode identifies the diff layout.
type DisplayMode int

// Display modes. Inline shares the unified row order; the two differ only
// in how a renderer draws changed lines.
const (
	ModeSideBySide DisplayMode = iota
	ModeUnified
	ModeInline
)

// String returns the lowercase name of the display mode.
func (m DisplayMode) String() string {
	switch m {
	case ModeUnified:
		return "unified"
	case ModeInline:
		return "inline"
	default:
		return "side-by-side"
	}
}

// RowKind identifies what a row displays.
type RowKind int

// Row kinds.
const (
	RowHunkHeader RowKind = iota
	RowLine
	RowPair
)

// Row is one renderable unit of the current layout. It references lines in
// the session's diff by index instead of copying their content.
//
// HunkIndex is always set. For RowLine, LineIndex addresses a line within
// the hunk. For RowPair, Left and Right address the lines shown in each
// column; -1 leaves that column blank. Indexes that do not apply are -1.
type Row struct {
	Kind      RowKind
	HunkIndex int
	LineIndex int
	Left      int
	Right     int
}

// rowArena holds the rows of one display mode plus the row index of each
// hunk's header, used to scroll a selected hunk into view.
type rowArena struct {
	rows      []Row
	hunkFirst []int
}

// buildUnifiedRows lays out every hunk as a header row followed by its
// lines in hunk order.
func buildUnifiedRows(diff *diffscope.FileDiff) rowArena {
	if diff == nil || len(diff.Hunks) == 0 {
		return rowArena{}
	}

	total := len(diff.Hunks)
	for _, hunk := range diff.Hunks {
		total += len(hunk.Lines)
	}

	arena := rowArena{
		rows:      make([]Row, 0, total),
		hunkFirst: make([]int, len(diff.Hunks)),
	}
	for hi, hunk := range diff.Hunks {
		arena.hunkFirst[hi] = len(arena.rows)
		arena.rows = append(arena.rows, Row{Kind: RowHunkHeader, HunkIndex: hi, LineIndex: -1, Left: -1, Right: -1})
		for li := range hunk.Lines {
			arena.rows = append(arena.rows, Row{Kind: RowLine, HunkIndex: hi, LineIndex: li, Left: -1, Right: -1})
		}
	}
	return arena
}

// buildSideBySideRows lays out every hunk as a header row followed by
// paired rows: context lines occupy both columns, and each run of
// deletions pairs positionally with the following run of insertions, the
// shorter side padded with blanks.
func buildSideBySideRows(diff *diffscope.FileDiff) rowArena {
	if diff == nil || len(diff.Hunks) == 0 {
		return rowArena{}
	}

	arena := rowArena{
		hunkFirst: make([]int, len(diff.Hunks)),
	}
	for hi, hunk := range diff.Hunks {
		arena.hunkFirst[hi] = len(arena.rows)
		arena.rows = append(arena.rows, Row{Kind: RowHunkHeader, HunkIndex: hi, LineIndex: -1, Left: -1, Right: -1})

		lines := hunk.Lines
		for i := 0; i < len(lines); {
			if lines[i].Type != diffscope.LineDeleted && lines[i].Type != diffscope.LineAdded {
				arena.rows = append(arena.rows, Row{Kind: RowPair, HunkIndex: hi, LineIndex: -1, Left: i, Right: i})
				i++
				continue
			}

			delStart := i
			for i < len(lines) && lines[i].Type == diffscope.LineDeleted {
				i++
			}
			addStart := i
			for i < len(lines) && lines[i].Type == diffscope.LineAdded {
				i++
			}
			dels, adds := addStart-delStart, i-addStart

			for k := 0; k < max(dels, adds); k++ {
				row := Row{Kind: RowPair, HunkIndex: hi, LineIndex: -1, Left: -1, Right: -1}
				if k < dels {
					row.Left = delStart + k
				}
				if k < adds {
					row.Right = addStart + k
				}
				arena.rows = append(arena.rows, row)
			}
		}
	}
	return arena
}
