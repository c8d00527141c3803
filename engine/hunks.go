package engine

import (
	"github.com/fwojciec/diffscope"
)

// hunkBuilder groups an edit script into hunks with bounded context.
type hunkBuilder struct {
	oldLines     []string
	newLines     []string
	contextLines int

	hunks []diffscope.Hunk
	lines []diffscope.Line

	open    bool
	oldFrom int // 0-based index of the hunk's first old line
	newFrom int // 0-based index of the hunk's first new line
	oldN    int // lines contributed to the old side so far
	newN    int // lines contributed to the new side so far
}

// buildHunks converts an edit script into hunks. A change region keeps up to
// contextLines of equal context on each side; an equal run longer than
// 2*contextLines separates two regions into distinct hunks.
func buildHunks(oldLines, newLines []string, ops []edit, contextLines int) []diffscope.Hunk {
	b := &hunkBuilder{
		oldLines:     oldLines,
		newLines:     newLines,
		contextLines: contextLines,
	}

	for idx, op := range ops {
		switch op.kind {
		case editEqual:
			if !b.open {
				continue
			}
			last := idx == len(ops)-1
			if last || op.n > 2*contextLines {
				b.appendContext(op.old, op.new, min(contextLines, op.n))
				b.close()
			} else {
				// Short gap: the run bridges two change regions.
				b.appendContext(op.old, op.new, op.n)
			}

		case editDelete:
			b.openForChange(ops, idx, op.old, op.new)
			for k := 0; k < op.n; k++ {
				b.lines = append(b.lines, diffscope.Line{
					Type:       diffscope.LineDeleted,
					Content:    oldLines[op.old+k],
					OldLineNum: op.old + k + 1,
				})
			}
			b.oldN += op.n

		case editInsert:
			b.openForChange(ops, idx, op.old, op.new)
			for k := 0; k < op.n; k++ {
				b.lines = append(b.lines, diffscope.Line{
					Type:       diffscope.LineAdded,
					Content:    newLines[op.new+k],
					NewLineNum: op.new + k + 1,
				})
			}
			b.newN += op.n
		}
	}
	if b.open {
		b.close()
	}
	return b.hunks
}

// openForChange opens a hunk at the given positions if none is open,
// pulling leading context from the preceding equal run.
func (b *hunkBuilder) openForChange(ops []edit, idx, oldIdx, newIdx int) {
	if b.open {
		return
	}
	lead := 0
	if idx > 0 && ops[idx-1].kind == editEqual {
		lead = min(b.contextLines, ops[idx-1].n)
	}
	b.oldFrom = oldIdx - lead
	b.newFrom = newIdx - lead
	b.oldN = 0
	b.newN = 0
	b.open = true
	if lead > 0 {
		prev := ops[idx-1]
		b.appendContext(prev.old+prev.n-lead, prev.new+prev.n-lead, lead)
	}
}

func (b *hunkBuilder) appendContext(oldIdx, newIdx, n int) {
	for k := 0; k < n; k++ {
		b.lines = append(b.lines, diffscope.Line{
			Type:       diffscope.LineContext,
			Content:    b.oldLines[oldIdx+k],
			OldLineNum: oldIdx + k + 1,
			NewLineNum: newIdx + k + 1,
		})
	}
	b.oldN += n
	b.newN += n
}

// close finalizes the open hunk. A side that contributed no lines reports
// the predecessor line number as its start, matching unified-diff
// conventions for pure insertions and deletions.
func (b *hunkBuilder) close() {
	oldStart := b.oldFrom + 1
	if b.oldN == 0 {
		oldStart = b.oldFrom
	}
	newStart := b.newFrom + 1
	if b.newN == 0 {
		newStart = b.newFrom
	}
	b.hunks = append(b.hunks, diffscope.Hunk{
		Header:   diffscope.FormatHunkHeader(oldStart, b.oldN, newStart, b.newN),
		OldStart: oldStart,
		OldCount: b.oldN,
		NewStart: newStart,
		NewCount: b.newN,
		Lines:    b.lines,
	})
	b.lines = nil
	b.open = false
}

// markNoNewline flags hunk lines that correspond to an unterminated final
// line of either buffer. Only the last hunk can contain them.
func markNoNewline(hunks []diffscope.Hunk, oldTotal, newTotal int, oldTerminated, newTerminated bool) {
	if len(hunks) == 0 || (oldTerminated && newTerminated) {
		return
	}
	last := hunks[len(hunks)-1].Lines
	for i := range last {
		line := &last[i]
		if !oldTerminated && oldTotal > 0 && line.OldLineNum == oldTotal && line.Type != diffscope.LineAdded {
			line.NoNewline = true
		}
		if !newTerminated && newTotal > 0 && line.NewLineNum == newTotal && line.Type != diffscope.LineDeleted {
			line.NoNewline = true
		}
	}
}
