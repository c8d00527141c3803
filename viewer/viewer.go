// Package viewer holds the presentation state of a diff view: which diff
// is shown, the scroll position, the selected hunk, and the display
// toggles. It knows nothing about rendering or key handling; a UI drives
// it through its methods and draws whatever Window returns.
//
// A Session is not safe for concurrent use. It is meant to live inside a
// single UI update loop, with slow work (such as diff computation) done
// elsewhere and handed back through BeginLoad and Apply.
package viewer

import (
	"github.com/fwojciec/diffscope"
)

// Phase identifies the loading state of a session.
type Phase int

// Session phases. PhaseEmpty exists only before the first load; after
// that a session moves between Loading, Ready, and Error.
const (
	PhaseEmpty Phase = iota
	PhaseLoading
	PhaseReady
	PhaseError
)

// String returns the lowercase name of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseError:
		return "error"
	default:
		return "empty"
	}
}

// Session tracks what a diff view displays and how. Loads are tied to a
// generation counter so that only the most recently requested result can
// change the view; anything slower arriving later is dropped.
type Session struct {
	cfg Config

	phase      Phase
	generation uint64
	diff       *diffscope.FileDiff
	err        error

	scroll       int
	selectedHunk int

	arenas [3]rowArena // Indexed by DisplayMode
}

// NewSession creates a session in PhaseEmpty. Non-positive LinesPerPage
// and unknown display modes fall back to defaults.
func NewSession(cfg Config) *Session {
	if cfg.LinesPerPage <= 0 {
		cfg.LinesPerPage = DefaultLinesPerPage
	}
	switch cfg.DisplayMode {
	case ModeSideBySide, ModeUnified, ModeInline:
	default:
		cfg.DisplayMode = ModeSideBySide
	}
	return &Session{cfg: cfg}
}

// Config returns the current configuration, including any toggled flags.
func (s *Session) Config() Config {
	return s.cfg
}

// Phase returns the current loading state.
func (s *Session) Phase() Phase {
	return s.phase
}

// Diff returns the most recently applied diff, or nil before the first
// successful load. A failed load does not clear it.
func (s *Session) Diff() *diffscope.FileDiff {
	return s.diff
}

// Err returns the reason for PhaseError, or nil in any other phase.
func (s *Session) Err() error {
	return s.err
}

// Scroll returns the index of the first row in the window.
func (s *Session) Scroll() int {
	return s.scroll
}

// SelectedHunk returns the index of the selected hunk. It is 0 when the
// diff has no hunks.
func (s *Session) SelectedHunk() int {
	return s.selectedHunk
}

// TotalRows returns the number of rows in the current display mode.
func (s *Session) TotalRows() int {
	return len(s.currentRows())
}

// BeginLoad marks the start of a new load and returns its generation.
// The session enters PhaseLoading but keeps showing the previous diff
// until a matching Apply arrives.
func (s *Session) BeginLoad() uint64 {
	s.generation++
	s.phase = PhaseLoading
	s.err = nil
	return s.generation
}

// Apply delivers the outcome of a load. It reports whether the outcome
// was accepted: results whose generation is not the latest are dropped,
// so a stale slow computation can neither replace a newer diff nor flash
// a stale error.
//
// On success the new diff replaces the old one wholesale, scroll and hunk
// selection reset, and the row layouts are rebuilt. On failure the
// session enters PhaseError but keeps the previous diff and rows visible.
func (s *Session) Apply(gen uint64, diff *diffscope.FileDiff, err error) bool {
	if gen != s.generation {
		return false
	}
	if err != nil {
		s.phase = PhaseError
		s.err = err
		return true
	}
	s.phase = PhaseReady
	s.err = nil
	s.diff = diff
	s.scroll = 0
	s.selectedHunk = 0
	s.rebuildRows()
	return true
}

func (s *Session) rebuildRows() {
	unified := buildUnifiedRows(s.diff)
	s.arenas[ModeSideBySide] = buildSideBySideRows(s.diff)
	s.arenas[ModeUnified] = unified
	s.arenas[ModeInline] = unified
}

// ScrollTo moves the window so it starts at row, clamped so the window
// never extends past the last row nor before the first.
func (s *Session) ScrollTo(row int) {
	s.scroll = s.clampScroll(row)
}

// ScrollUp moves the window up by n rows, clamping at the top.
func (s *Session) ScrollUp(n int) {
	s.scroll = s.clampScroll(s.scroll - n)
}

// ScrollDown moves the window down by n rows, clamping at the bottom.
func (s *Session) ScrollDown(n int) {
	s.scroll = s.clampScroll(s.scroll + n)
}

func (s *Session) clampScroll(row int) int {
	maxStart := len(s.currentRows()) - s.cfg.LinesPerPage
	if maxStart < 0 {
		maxStart = 0
	}
	if row > maxStart {
		row = maxStart
	}
	if row < 0 {
		row = 0
	}
	return row
}

// SetLinesPerPage resizes the window, re-clamping the scroll position.
// Non-positive values are ignored. Used by renderers tracking a resizable
// surface.
func (s *Session) SetLinesPerPage(n int) {
	if n <= 0 {
		return
	}
	s.cfg.LinesPerPage = n
	s.scroll = s.clampScroll(s.scroll)
}

// NextHunk selects the following hunk and scrolls it into view. Selection
// stops at the last hunk; there is no wraparound.
func (s *Session) NextHunk() {
	s.selectHunk(s.selectedHunk + 1)
}

// PrevHunk selects the preceding hunk and scrolls it into view. Selection
// stops at the first hunk; there is no wraparound.
func (s *Session) PrevHunk() {
	s.selectHunk(s.selectedHunk - 1)
}

func (s *Session) selectHunk(i int) {
	n := 0
	if s.diff != nil {
		n = len(s.diff.Hunks)
	}
	if n == 0 {
		return
	}
	if i < 0 {
		i = 0
	}
	if i > n-1 {
		i = n - 1
	}
	s.selectedHunk = i
	s.scrollIntoView(i)
}

// scrollIntoView brings the hunk's header row to the top of the window
// unless it is already visible.
func (s *Session) scrollIntoView(hunk int) {
	firsts := s.arenas[s.cfg.DisplayMode].hunkFirst
	if hunk < 0 || hunk >= len(firsts) {
		return
	}
	row := firsts[hunk]
	if row < s.scroll || row >= s.scroll+s.cfg.LinesPerPage {
		s.ScrollTo(row)
	}
}

// ToggleDisplayMode cycles side-by-side, unified, inline and returns the
// new mode. Row layouts differ in length across modes, so the scroll
// position re-clamps; the diff itself is never recomputed.
func (s *Session) ToggleDisplayMode() DisplayMode {
	switch s.cfg.DisplayMode {
	case ModeSideBySide:
		s.cfg.DisplayMode = ModeUnified
	case ModeUnified:
		s.cfg.DisplayMode = ModeInline
	default:
		s.cfg.DisplayMode = ModeSideBySide
	}
	s.scroll = s.clampScroll(s.scroll)
	return s.cfg.DisplayMode
}

// ToggleLineNumbers flips line number rendering and returns the new value.
func (s *Session) ToggleLineNumbers() bool {
	s.cfg.ShowLineNumbers = !s.cfg.ShowLineNumbers
	return s.cfg.ShowLineNumbers
}

// ToggleWhitespace flips visible whitespace rendering and returns the new
// value.
func (s *Session) ToggleWhitespace() bool {
	s.cfg.ShowWhitespace = !s.cfg.ShowWhitespace
	return s.cfg.ShowWhitespace
}

// ToggleWordWrap flips word wrapping and returns the new value.
func (s *Session) ToggleWordWrap() bool {
	s.cfg.WordWrap = !s.cfg.WordWrap
	return s.cfg.WordWrap
}

// Window returns the rows a renderer should draw: at most LinesPerPage
// rows starting at the scroll position. With virtual scrolling disabled
// it returns every row of the current mode.
func (s *Session) Window() []Row {
	rows := s.currentRows()
	if !s.cfg.EnableVirtualScrolling {
		return rows
	}
	start := s.clampScroll(s.scroll)
	return rows[start:min(start+s.cfg.LinesPerPage, len(rows))]
}

func (s *Session) currentRows() []Row {
	return s.arenas[s.cfg.DisplayMode].rows
}
