// Package diffscope provides domain types for computing and viewing diffs.
package diffscope

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"time"
)

// Diff represents a complete diff containing one or more file changes.
type Diff struct {
	Files []FileDiff
}

// FileDiff represents the computed difference between two versions of a
// single file.
type FileDiff struct {
	OldPath   string      // "a/file.go" or empty for new files
	NewPath   string      // "b/file.go" or empty for deleted files
	Status    FileStatus  // Added, Deleted, Modified, Renamed, Copied
	IsBinary  bool        // Binary files have no hunks
	Algorithm Algorithm   // Algorithm that actually produced the hunks
	OldMode   fs.FileMode // 0 if unchanged
	NewMode   fs.FileMode // For permission changes
	Hunks     []Hunk
	Stats     Stats
}

// Path returns the most relevant display path for the file.
func (f FileDiff) Path() string {
	if f.NewPath != "" {
		return f.NewPath
	}
	return f.OldPath
}

// LineCounts returns the number of added and deleted lines across all hunks.
func (f FileDiff) LineCounts() (added, deleted int) {
	for _, hunk := range f.Hunks {
		for _, line := range hunk.Lines {
			switch line.Type {
			case LineAdded:
				added++
			case LineDeleted:
				deleted++
			}
		}
	}
	return added, deleted
}

// TotalLines returns the number of lines across all hunks.
func (f FileDiff) TotalLines() int {
	n := 0
	for _, hunk := range f.Hunks {
		n += len(hunk.Lines)
	}
	return n
}

// IsEmpty reports whether the diff carries no visible change.
func (f FileDiff) IsEmpty() bool {
	return !f.IsBinary && len(f.Hunks) == 0
}

// FileStatus represents the kind of change applied to a file.
type FileStatus int

// File statuses. The diff engine infers only the first three from buffer
// emptiness; Renamed and Copied enter the model through patch ingestion.
const (
	StatusModified FileStatus = iota
	StatusAdded
	StatusDeleted
	StatusRenamed
	StatusCopied
)

// String returns the lowercase name of the status.
func (s FileStatus) String() string {
	switch s {
	case StatusAdded:
		return "added"
	case StatusDeleted:
		return "deleted"
	case StatusRenamed:
		return "renamed"
	case StatusCopied:
		return "copied"
	default:
		return "modified"
	}
}

// Hunk represents a contiguous block of changes within a file, including
// surrounding context lines.
type Hunk struct {
	Header   string // "@@ -OldStart,OldCount +NewStart,NewCount @@"
	OldStart int    // From @@ -X,...
	OldCount int    // From @@ -X,Y ...
	NewStart int    // From @@ ...,+X
	NewCount int    // From @@ ...,+X,Y
	Section  string // Optional function name after @@ ... @@
	Lines    []Line
}

// FormatHunkHeader renders the canonical unified-diff header for the given
// ranges. Counts are always explicit.
func FormatHunkHeader(oldStart, oldCount, newStart, newCount int) string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", oldStart, oldCount, newStart, newCount)
}

// Line represents a single line within a hunk.
type Line struct {
	Type       LineType
	Content    string
	OldLineNum int    // 0 if line is Added
	NewLineNum int    // 0 if line is Deleted
	Highlights []Span // Changed byte ranges within Content, ascending
	NoNewline  bool   // "\ No newline at end of file" marker
}

// Span is a half-open [Start, End) byte range into a line's content.
type Span struct {
	Start int
	End   int
}

// LineType represents the type of a diff line.
type LineType int

// Line types. LineModified is reserved for intra-line merging of a
// delete/add pair; the engine never emits it.
const (
	LineContext LineType = iota
	LineAdded
	LineDeleted
	LineModified
)

// String returns the lowercase name of the line type.
func (t LineType) String() string {
	switch t {
	case LineAdded:
		return "added"
	case LineDeleted:
		return "deleted"
	case LineModified:
		return "modified"
	default:
		return "context"
	}
}

// Stats aggregates the line counts of a computed diff.
type Stats struct {
	LinesAdded   int
	LinesDeleted int
	FilesChanged int
	Duration     time.Duration // Wall-clock computation time
}

// Algorithm selects the edit-script strategy used by the diff engine.
type Algorithm int

// Diff algorithms. Histogram is declared but not implemented; requesting it
// falls back to Myers and the result's Algorithm field records the
// substitution. Minimal is an alias for Myers, which already produces a
// minimal edit script.
const (
	AlgorithmMyers Algorithm = iota
	AlgorithmPatience
	AlgorithmHistogram
	AlgorithmMinimal
)

// String returns the lowercase name of the algorithm.
func (a Algorithm) String() string {
	switch a {
	case AlgorithmPatience:
		return "patience"
	case AlgorithmHistogram:
		return "histogram"
	case AlgorithmMinimal:
		return "minimal"
	default:
		return "myers"
	}
}

// Supported reports whether the algorithm has a genuine implementation.
func (a Algorithm) Supported() bool {
	switch a {
	case AlgorithmMyers, AlgorithmPatience, AlgorithmMinimal:
		return true
	default:
		return false
	}
}

// ParseAlgorithm maps a name to an Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch name {
	case "myers", "":
		return AlgorithmMyers, nil
	case "patience":
		return AlgorithmPatience, nil
	case "histogram":
		return AlgorithmHistogram, nil
	case "minimal":
		return AlgorithmMinimal, nil
	default:
		return AlgorithmMyers, fmt.Errorf("unknown diff algorithm %q", name)
	}
}

// Segment represents a portion of text within a line for word-level diffing.
// Used to highlight specific changed words/characters within modified lines.
type Segment struct {
	Text    string // The text content of this segment
	Changed bool   // True if this segment differs between old/new versions
}

// Engine computes the difference between two versions of a file's content.
type Engine interface {
	// Compute diffs old against new. The path is used for cache keying and
	// carried into the result; no file I/O happens here.
	Compute(ctx context.Context, old, new, path string) (*FileDiff, error)
}

// WordDiffer computes word-level differences between two strings.
type WordDiffer interface {
	// Diff returns segments for both the old and new strings,
	// marking which portions changed between them.
	Diff(old, new string) (oldSegs, newSegs []Segment)
}

// Parser turns unified diff text into domain values.
type Parser interface {
	Parse(r io.Reader) (*Diff, error)
}

// Runner provides access to git operations that produce diff text.
type Runner interface {
	// Diff returns unified diff text between rev and the working tree at
	// repoPath. An empty rev diffs the working tree against HEAD.
	Diff(ctx context.Context, repoPath, rev string) (string, error)
	// Show returns the diff introduced by a single commit hash.
	Show(ctx context.Context, repoPath, hash string) (string, error)
}

// Copier places text on the system clipboard.
type Copier interface {
	Copy(text string) error
}
