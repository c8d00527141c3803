// Package unidiff parses and formats unified diff text for a single file.
//
// The parser is strict where it matters for correctness: hunk headers must
// match the "@@ -a[,b] +c[,d] @@" grammar, hunk bodies must contain exactly
// the declared number of lines, and no diff line is ever silently dropped.
// Preamble lines before the first hunk ("diff --git", "index", mode lines)
// carry no line content and are skipped; "---"/"+++" file headers are
// honored when present but not required.
package unidiff

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fwojciec/diffscope"
)

// Compile-time interface verification.
var _ diffscope.Parser = (*Parser)(nil)

// Parser parses single-file unified diff text.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads unified diff text describing one file and returns it wrapped
// in a Diff. Input describing no change at all yields ErrNoChanges.
func (p *Parser) Parse(r io.Reader) (*diffscope.Diff, error) {
	fd, err := p.ParseFile(r)
	if err != nil {
		return nil, err
	}
	return &diffscope.Diff{Files: []diffscope.FileDiff{*fd}}, nil
}

// ParseFile reads unified diff text describing one file.
func (p *Parser) ParseFile(r io.Reader) (*diffscope.FileDiff, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return parse(string(data))
}

func parse(text string) (*diffscope.FileDiff, error) {
	lines := strings.Split(text, "\n")
	// A terminated final line leaves an empty slot behind.
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	fd := &diffscope.FileDiff{Status: diffscope.StatusModified}

	var (
		hunk     *diffscope.Hunk
		hunkLine int // header position, for truncation errors
		oldLeft  int // declared old lines not yet consumed
		newLeft  int
		oldNum   int
		newNum   int
	)

	markNoNewline := func(num int) error {
		if hunk == nil || len(hunk.Lines) == 0 {
			return fmt.Errorf("line %d: no-newline marker without a preceding diff line", num)
		}
		last := &hunk.Lines[len(hunk.Lines)-1]
		if last.NoNewline {
			return fmt.Errorf("line %d: repeated no-newline marker", num)
		}
		last.NoNewline = true
		return nil
	}

	flush := func() error {
		if hunk == nil {
			return nil
		}
		if oldLeft > 0 || newLeft > 0 {
			return fmt.Errorf("hunk at line %d: body ends before the declared counts are met", hunkLine)
		}
		fd.Hunks = append(fd.Hunks, *hunk)
		hunk = nil
		return nil
	}

	for i, raw := range lines {
		num := i + 1

		// Inside a hunk body, the declared counts decide what is legal;
		// a "-" or "+" here is content even if it looks like a file header.
		if hunk != nil && (oldLeft > 0 || newLeft > 0) {
			switch {
			case strings.HasPrefix(raw, "+"):
				if newLeft == 0 {
					return nil, fmt.Errorf("line %d: hunk body exceeds the declared new line count", num)
				}
				hunk.Lines = append(hunk.Lines, diffscope.Line{
					Type:       diffscope.LineAdded,
					Content:    raw[1:],
					NewLineNum: newNum,
				})
				newNum++
				newLeft--
			case strings.HasPrefix(raw, "-"):
				if oldLeft == 0 {
					return nil, fmt.Errorf("line %d: hunk body exceeds the declared old line count", num)
				}
				hunk.Lines = append(hunk.Lines, diffscope.Line{
					Type:       diffscope.LineDeleted,
					Content:    raw[1:],
					OldLineNum: oldNum,
				})
				oldNum++
				oldLeft--
			case strings.HasPrefix(raw, " "), raw == "":
				// Some producers strip the leading space from empty
				// context lines; the content is empty either way.
				if oldLeft == 0 || newLeft == 0 {
					return nil, fmt.Errorf("line %d: hunk body exceeds the declared line counts", num)
				}
				hunk.Lines = append(hunk.Lines, diffscope.Line{
					Type:       diffscope.LineContext,
					Content:    strings.TrimPrefix(raw, " "),
					OldLineNum: oldNum,
					NewLineNum: newNum,
				})
				oldNum++
				newNum++
				oldLeft--
				newLeft--
			case strings.HasPrefix(raw, `\`):
				if err := markNoNewline(num); err != nil {
					return nil, err
				}
			default:
				return nil, fmt.Errorf("line %d: %q does not match a hunk line prefix", num, raw)
			}
			continue
		}

		switch {
		case strings.HasPrefix(raw, "@@"):
			if err := flush(); err != nil {
				return nil, err
			}
			h, err := parseHunkHeader(num, raw)
			if err != nil {
				return nil, err
			}
			hunk = &h
			hunkLine = num
			oldLeft, newLeft = h.OldCount, h.NewCount
			oldNum, newNum = h.OldStart, h.NewStart
		case strings.HasPrefix(raw, `\`):
			if err := markNoNewline(num); err != nil {
				return nil, err
			}
		case len(fd.Hunks) > 0 || hunk != nil:
			if raw == "" {
				continue
			}
			return nil, fmt.Errorf("line %d: unexpected content %q after hunks", num, raw)
		case strings.HasPrefix(raw, "--- "):
			fd.OldPath = headerPath(raw[4:])
		case strings.HasPrefix(raw, "+++ "):
			fd.NewPath = headerPath(raw[4:])
		case strings.HasPrefix(raw, "Binary files ") && strings.HasSuffix(raw, " differ"):
			fd.IsBinary = true
		default:
			// Preamble such as "diff --git", "index", or mode lines.
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}

	switch {
	case fd.OldPath == "" && fd.NewPath != "":
		fd.Status = diffscope.StatusAdded
	case fd.OldPath != "" && fd.NewPath == "":
		fd.Status = diffscope.StatusDeleted
	}

	if len(fd.Hunks) == 0 && !fd.IsBinary && fd.OldPath == "" && fd.NewPath == "" {
		return nil, diffscope.ErrNoChanges
	}

	added, deleted := fd.LineCounts()
	fd.Stats = diffscope.Stats{
		LinesAdded:   added,
		LinesDeleted: deleted,
		FilesChanged: 1,
	}
	return fd, nil
}

func parseHunkHeader(num int, line string) (diffscope.Hunk, error) {
	malformed := &diffscope.MalformedHunkHeaderError{LineNum: num, Line: line}

	rest, ok := strings.CutPrefix(line, "@@ -")
	if !ok {
		return diffscope.Hunk{}, malformed
	}
	oldPart, rest, ok := strings.Cut(rest, " +")
	if !ok {
		return diffscope.Hunk{}, malformed
	}
	newPart, section, ok := strings.Cut(rest, " @@")
	if !ok {
		return diffscope.Hunk{}, malformed
	}
	if section != "" && !strings.HasPrefix(section, " ") {
		return diffscope.Hunk{}, malformed
	}

	oldStart, oldCount, ok := parseRange(oldPart)
	if !ok {
		return diffscope.Hunk{}, malformed
	}
	newStart, newCount, ok := parseRange(newPart)
	if !ok {
		return diffscope.Hunk{}, malformed
	}

	return diffscope.Hunk{
		Header:   diffscope.FormatHunkHeader(oldStart, oldCount, newStart, newCount),
		OldStart: oldStart,
		OldCount: oldCount,
		NewStart: newStart,
		NewCount: newCount,
		Section:  strings.TrimPrefix(section, " "),
	}, nil
}

// parseRange parses "start,count" or the elided "start" form, which git
// emits for single-line ranges.
func parseRange(s string) (start, count int, ok bool) {
	startStr, countStr, hasCount := strings.Cut(s, ",")
	start, err := strconv.Atoi(startStr)
	if err != nil || start < 0 {
		return 0, 0, false
	}
	count = 1
	if hasCount {
		count, err = strconv.Atoi(countStr)
		if err != nil || count < 0 {
			return 0, 0, false
		}
	}
	return start, count, true
}

// headerPath extracts the path from a "---"/"+++" header value. Classic
// unified diffs append a tab and timestamp; /dev/null means no file.
func headerPath(s string) string {
	if tab := strings.IndexByte(s, '\t'); tab >= 0 {
		s = s[:tab]
	}
	if s == "/dev/null" {
		return ""
	}
	return s
}
