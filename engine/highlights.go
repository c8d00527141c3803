package engine

import (
	"github.com/fwojciec/diffscope"
	"github.com/fwojciec/diffscope/worddiff"
)

// attachHighlights computes intra-line highlight spans for changed line
// pairs in every hunk. A run of consecutive deleted lines immediately
// followed by a run of added lines is treated as a modification: the lines
// pair up 1:1 in order and each pair is word-diffed. Highlighting is only
// attached when both sides keep meaningful shared content, otherwise a
// fully-changed line would light up end to end for no benefit.
func attachHighlights(hunks []diffscope.Hunk, differ diffscope.WordDiffer) {
	if differ == nil {
		return
	}
	for h := range hunks {
		lines := hunks[h].Lines

		for i := 0; i < len(lines); i++ {
			if lines[i].Type != diffscope.LineDeleted {
				continue
			}

			deleteStart := i
			deleteEnd := i
			for deleteEnd < len(lines) && lines[deleteEnd].Type == diffscope.LineDeleted {
				deleteEnd++
			}

			if deleteEnd >= len(lines) || lines[deleteEnd].Type != diffscope.LineAdded {
				i = deleteEnd - 1
				continue
			}

			addStart := deleteEnd
			addEnd := addStart
			for addEnd < len(lines) && lines[addEnd].Type == diffscope.LineAdded {
				addEnd++
			}

			pairCount := min(deleteEnd-deleteStart, addEnd-addStart)
			for j := 0; j < pairCount; j++ {
				delIdx := deleteStart + j
				addIdx := addStart + j

				oldSegs, newSegs := differ.Diff(lines[delIdx].Content, lines[addIdx].Content)
				if !significantUnchanged(oldSegs) || !significantUnchanged(newSegs) {
					continue
				}
				lines[delIdx].Highlights = worddiff.Spans(oldSegs)
				lines[addIdx].Highlights = worddiff.Spans(newSegs)
			}

			i = addEnd - 1
		}
	}
}

// significantUnchanged reports whether at least 30% of the segment text is
// unchanged, the threshold below which word-level highlighting stops being
// useful.
func significantUnchanged(segs []diffscope.Segment) bool {
	if len(segs) == 0 {
		return false
	}
	var unchanged, total int
	for _, seg := range segs {
		total += len(seg.Text)
		if !seg.Changed {
			unchanged += len(seg.Text)
		}
	}
	if total == 0 {
		return false
	}
	return float64(unchanged)/float64(total) >= 0.30
}
