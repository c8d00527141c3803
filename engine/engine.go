// Package engine computes line-level diffs between two versions of a file.
//
// The entry point is Processor, which runs content through a fixed
// pipeline: result cache lookup, size guard, binary detection, line
// splitting, edit script search (Myers middle-snake or patience), boundary
// shifting, hunk segmentation with context bridging, and optional
// word-level highlight attachment. Results are cached in a bounded
// LRU+TTL cache and duplicate concurrent computations collapse through
// singleflight.
package engine

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/fwojciec/diffscope"
	"github.com/fwojciec/diffscope/worddiff"
)

// Processor implements diffscope.Engine.
type Processor struct {
	cfg    Config
	differ diffscope.WordDiffer
	cache  *diffCache
	group  singleflight.Group
}

// Compile-time interface verification.
var _ diffscope.Engine = (*Processor)(nil)

// Option configures a Processor.
type Option func(*Processor)

// WithWordDiffer replaces the word-level differ used for intra-line
// highlights.
func WithWordDiffer(d diffscope.WordDiffer) Option {
	return func(p *Processor) {
		p.differ = d
	}
}

// New creates a Processor for the given configuration.
func New(cfg Config, opts ...Option) *Processor {
	if cfg.ContextLines < 0 {
		cfg.ContextLines = 0
	}
	p := &Processor{
		cfg:    cfg,
		differ: worddiff.NewDiffer(),
	}
	if cfg.EnableCache {
		p.cache = newDiffCache(cfg.CacheCapacity, cfg.CacheTTL)
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Compute diffs two versions of the file at path. oldContent and
// newContent are full file bodies; path is carried into the result and
// used for status inference only, never read from disk.
func (p *Processor) Compute(ctx context.Context, oldContent, newContent, path string) (*diffscope.FileDiff, error) {
	if p.cache == nil {
		if err := p.guardSize(oldContent, newContent); err != nil {
			return nil, err
		}
		return p.compute(ctx, oldContent, newContent, path)
	}

	key := cacheKey(oldContent, newContent, path, p.cfg)
	if d, ok := p.cache.get(key); ok {
		return d, nil
	}
	if err := p.guardSize(oldContent, newContent); err != nil {
		return nil, err
	}

	// Identical misses in flight share one computation. The winning
	// call's context drives the work, but every waiter still honors its
	// own cancellation.
	ch := p.group.DoChan(key, func() (any, error) {
		if d, ok := p.cache.peek(key); ok {
			return d, nil
		}
		d, err := p.compute(ctx, oldContent, newContent, path)
		if err != nil {
			return nil, err
		}
		p.cache.put(key, d)
		return d, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*diffscope.FileDiff), nil
	}
}

// CacheMetrics returns a snapshot of the result cache counters. The zero
// snapshot is returned when caching is disabled.
func (p *Processor) CacheMetrics() CacheMetrics {
	if p.cache == nil {
		return CacheMetrics{}
	}
	return p.cache.metrics()
}

func (p *Processor) guardSize(oldContent, newContent string) error {
	if p.cfg.MaxFileSize <= 0 {
		return nil
	}
	if int64(len(oldContent)) > p.cfg.MaxFileSize {
		return &diffscope.ContentTooLargeError{
			Side:  "old",
			Size:  int64(len(oldContent)),
			Limit: p.cfg.MaxFileSize,
		}
	}
	if int64(len(newContent)) > p.cfg.MaxFileSize {
		return &diffscope.ContentTooLargeError{
			Side:  "new",
			Size:  int64(len(newContent)),
			Limit: p.cfg.MaxFileSize,
		}
	}
	return nil
}

func (p *Processor) compute(ctx context.Context, oldContent, newContent, path string) (*diffscope.FileDiff, error) {
	start := time.Now()

	algo := p.cfg.Algorithm
	if !algo.Supported() {
		algo = diffscope.AlgorithmMyers
	}

	fd := &diffscope.FileDiff{
		OldPath:   path,
		NewPath:   path,
		Status:    inferStatus(oldContent, newContent),
		Algorithm: algo,
	}
	switch fd.Status {
	case diffscope.StatusAdded:
		fd.OldPath = ""
	case diffscope.StatusDeleted:
		fd.NewPath = ""
	}

	if isBinary(oldContent) || isBinary(newContent) {
		fd.IsBinary = true
		fd.Stats = diffscope.Stats{FilesChanged: 1, Duration: time.Since(start)}
		return fd, nil
	}

	oldLines := splitLines(oldContent)
	newLines := splitLines(newContent)

	a, b := intern(oldLines, newLines, p.cfg.IgnoreWhitespace)
	changedA := make([]bool, len(a))
	changedB := make([]bool, len(b))

	m := newMyers(ctx, len(a), len(b))
	var err error
	if algo == diffscope.AlgorithmPatience {
		err = m.patience(a, b, changedA, changedB)
	} else {
		err = m.compare(a, b, changedA, changedB)
	}
	if err != nil {
		return nil, &diffscope.ComputeError{Op: algo.String(), Err: err}
	}

	shiftChanges(a, changedA)
	shiftChanges(b, changedB)

	hunks := buildHunks(oldLines, newLines, script(changedA, changedB), p.cfg.ContextLines)
	markNoNewline(hunks, len(oldLines), len(newLines),
		strings.HasSuffix(oldContent, "\n"), strings.HasSuffix(newContent, "\n"))

	if p.cfg.WordLevelDiff {
		attachHighlights(hunks, p.differ)
	}

	fd.Hunks = hunks
	added, deleted := fd.LineCounts()
	fd.Stats = diffscope.Stats{
		LinesAdded:   added,
		LinesDeleted: deleted,
		FilesChanged: 1,
		Duration:     time.Since(start),
	}
	return fd, nil
}

// inferStatus derives the file status from content emptiness. Renames and
// copies cannot be detected from two buffers; those statuses only arrive
// through patch ingestion.
func inferStatus(oldContent, newContent string) diffscope.FileStatus {
	switch {
	case oldContent == "" && newContent != "":
		return diffscope.StatusAdded
	case oldContent != "" && newContent == "":
		return diffscope.StatusDeleted
	default:
		return diffscope.StatusModified
	}
}

// isBinary reports whether content looks binary, using the same heuristic
// as git: any NUL byte.
func isBinary(content string) bool {
	return strings.IndexByte(content, 0) >= 0
}

// splitLines splits content into lines without their trailing newlines.
// A terminating newline does not produce an empty final line; an
// unterminated final line is kept.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
