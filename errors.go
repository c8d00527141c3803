package diffscope

import (
	"errors"
	"fmt"
)

// ErrNoChanges indicates a diff source produced nothing to display.
var ErrNoChanges = errors.New("no changes")

// ContentTooLargeError reports an input buffer exceeding the configured
// size limit. Computation fails fast; no partial result accompanies it.
type ContentTooLargeError struct {
	Side  string // "old" or "new"
	Size  int64
	Limit int64
}

func (e *ContentTooLargeError) Error() string {
	return fmt.Sprintf("%s content is %d bytes, exceeds limit of %d bytes", e.Side, e.Size, e.Limit)
}

// MalformedHunkHeaderError reports a hunk header line that does not match
// the "@@ -a,b +c,d @@" grammar during patch ingestion.
type MalformedHunkHeaderError struct {
	LineNum int    // 1-based line number within the parsed text
	Line    string // The offending line
}

func (e *MalformedHunkHeaderError) Error() string {
	return fmt.Sprintf("malformed hunk header at line %d: %q", e.LineNum, e.Line)
}

// ComputeError wraps an unexpected internal failure during diff computation.
type ComputeError struct {
	Op  string // Pipeline stage that failed
	Err error
}

func (e *ComputeError) Error() string {
	return fmt.Sprintf("diff computation failed in %s: %v", e.Op, e.Err)
}

func (e *ComputeError) Unwrap() error { return e.Err }
