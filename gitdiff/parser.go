// Package gitdiff ingests git patch output using bluekeyes/go-gitdiff.
//
// This is the only producer of StatusRenamed and StatusCopied: the diff
// engine sees two buffers and cannot know their history, but a git patch
// carries rename and copy detection in its extended headers.
package gitdiff

import (
	"io"

	"github.com/bluekeyes/go-gitdiff/gitdiff"

	"github.com/fwojciec/diffscope"
)

// Compile-time interface verification.
var _ diffscope.Parser = (*Parser)(nil)

// Parser parses git patch content, possibly spanning many files.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads patch content and returns the parsed result.
func (p *Parser) Parse(r io.Reader) (*diffscope.Diff, error) {
	files, _, err := gitdiff.Parse(r)
	if err != nil {
		return nil, err
	}

	result := &diffscope.Diff{
		Files: make([]diffscope.FileDiff, 0, len(files)),
	}
	for _, f := range files {
		result.Files = append(result.Files, convertFile(f))
	}
	return result, nil
}

func convertFile(f *gitdiff.File) diffscope.FileDiff {
	fd := diffscope.FileDiff{
		OldPath:  f.OldName,
		NewPath:  f.NewName,
		IsBinary: f.IsBinary,
		OldMode:  f.OldMode,
		NewMode:  f.NewMode,
	}

	switch {
	case f.IsNew:
		fd.Status = diffscope.StatusAdded
	case f.IsDelete:
		fd.Status = diffscope.StatusDeleted
	case f.IsRename:
		fd.Status = diffscope.StatusRenamed
	case f.IsCopy:
		fd.Status = diffscope.StatusCopied
	default:
		fd.Status = diffscope.StatusModified
	}

	fd.Hunks = make([]diffscope.Hunk, 0, len(f.TextFragments))
	for _, frag := range f.TextFragments {
		fd.Hunks = append(fd.Hunks, convertFragment(frag))
	}

	added, deleted := fd.LineCounts()
	fd.Stats = diffscope.Stats{
		LinesAdded:   added,
		LinesDeleted: deleted,
		FilesChanged: 1,
	}
	return fd
}

func convertFragment(frag *gitdiff.TextFragment) diffscope.Hunk {
	hunk := diffscope.Hunk{
		Header: diffscope.FormatHunkHeader(
			int(frag.OldPosition), int(frag.OldLines),
			int(frag.NewPosition), int(frag.NewLines)),
		OldStart: int(frag.OldPosition),
		OldCount: int(frag.OldLines),
		NewStart: int(frag.NewPosition),
		NewCount: int(frag.NewLines),
		Section:  frag.Comment,
	}

	// Line numbers advance independently on each side.
	oldLineNum := int(frag.OldPosition)
	newLineNum := int(frag.NewPosition)

	for _, l := range frag.Lines {
		line := diffscope.Line{
			Content:   trimNewline(l.Line),
			NoNewline: l.NoEOL(),
		}

		switch l.Op {
		case gitdiff.OpContext:
			line.Type = diffscope.LineContext
			line.OldLineNum = oldLineNum
			line.NewLineNum = newLineNum
			oldLineNum++
			newLineNum++
		case gitdiff.OpAdd:
			line.Type = diffscope.LineAdded
			line.NewLineNum = newLineNum
			newLineNum++
		case gitdiff.OpDelete:
			line.Type = diffscope.LineDeleted
			line.OldLineNum = oldLineNum
			oldLineNum++
		}

		hunk.Lines = append(hunk.Lines, line)
	}

	return hunk
}

// trimNewline strips the trailing newline go-gitdiff keeps on line content.
// Domain lines store content without terminators.
func trimNewline(s string) string {
	if n := len(s); n > 0 && s[n-1] == '\n' {
		return s[:n-1]
	}
	return s
}
