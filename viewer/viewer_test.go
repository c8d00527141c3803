package viewer_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwojciec/diffscope"
	"github.com/fwojciec/diffscope/viewer"
)

func TestSession_NewSession_StartsEmpty(t *testing.T) {
	t.Parallel()

	s := viewer.NewSession(viewer.DefaultConfig())

	assert.Equal(t, viewer.PhaseEmpty, s.Phase())
	assert.Nil(t, s.Diff())
	assert.NoError(t, s.Err())
	assert.Equal(t, 0, s.TotalRows())
	assert.Empty(t, s.Window())
}

func TestSession_NewSession_NormalizesConfig(t *testing.T) {
	t.Parallel()

	s := viewer.NewSession(viewer.Config{
		DisplayMode:  viewer.DisplayMode(42),
		LinesPerPage: -1,
	})

	cfg := s.Config()
	assert.Equal(t, viewer.ModeSideBySide, cfg.DisplayMode)
	assert.Equal(t, viewer.DefaultLinesPerPage, cfg.LinesPerPage)
}

func TestSession_Apply_ReplacesDiffAndResetsView(t *testing.T) {
	t.Parallel()

	s := viewer.NewSession(viewer.DefaultConfig())
	diff := contextDiff(t, 10)

	gen := s.BeginLoad()
	assert.Equal(t, viewer.PhaseLoading, s.Phase())

	require.True(t, s.Apply(gen, diff, nil))

	assert.Equal(t, viewer.PhaseReady, s.Phase())
	assert.Same(t, diff, s.Diff())
	assert.NoError(t, s.Err())
	assert.Equal(t, 0, s.Scroll())
	assert.Equal(t, 0, s.SelectedHunk())
	assert.Equal(t, 10, s.TotalRows())
}

func TestSession_Apply_DropsStaleResults(t *testing.T) {
	t.Parallel()

	t.Run("stale success never regresses the view", func(t *testing.T) {
		t.Parallel()

		s := viewer.NewSession(viewer.DefaultConfig())
		stale := contextDiff(t, 5)
		fresh := contextDiff(t, 20)

		first := s.BeginLoad()
		second := s.BeginLoad()

		require.True(t, s.Apply(second, fresh, nil))
		assert.False(t, s.Apply(first, stale, nil))

		assert.Same(t, fresh, s.Diff())
		assert.Equal(t, viewer.PhaseReady, s.Phase())
		assert.Equal(t, 20, s.TotalRows())
	})

	t.Run("stale failure never flashes an error", func(t *testing.T) {
		t.Parallel()

		s := viewer.NewSession(viewer.DefaultConfig())
		fresh := contextDiff(t, 20)

		first := s.BeginLoad()
		second := s.BeginLoad()

		require.True(t, s.Apply(second, fresh, nil))
		assert.False(t, s.Apply(first, nil, errors.New("read failed")))

		assert.Equal(t, viewer.PhaseReady, s.Phase())
		assert.NoError(t, s.Err())
	})

	t.Run("stale result while loading is dropped", func(t *testing.T) {
		t.Parallel()

		s := viewer.NewSession(viewer.DefaultConfig())
		stale := contextDiff(t, 5)

		first := s.BeginLoad()
		s.BeginLoad()

		assert.False(t, s.Apply(first, stale, nil))
		assert.Equal(t, viewer.PhaseLoading, s.Phase())
		assert.Nil(t, s.Diff())
	})
}

func TestSession_Apply_ErrorKeepsPreviousDiff(t *testing.T) {
	t.Parallel()

	diff := contextDiff(t, 15)
	s := loadedSession(t, viewer.DefaultConfig(), diff)
	s.ScrollDown(3)

	gen := s.BeginLoad()
	loadErr := errors.New("file vanished")
	require.True(t, s.Apply(gen, nil, loadErr))

	assert.Equal(t, viewer.PhaseError, s.Phase())
	assert.ErrorIs(t, s.Err(), loadErr)
	assert.Same(t, diff, s.Diff())
	assert.Equal(t, 15, s.TotalRows())
}

func TestSession_BeginLoad_KeepsPreviousDiffVisible(t *testing.T) {
	t.Parallel()

	diff := contextDiff(t, 15)
	s := loadedSession(t, viewer.DefaultConfig(), diff)

	gen := s.BeginLoad()

	assert.Equal(t, viewer.PhaseLoading, s.Phase())
	assert.Same(t, diff, s.Diff())
	assert.Equal(t, 15, s.TotalRows())
	assert.Greater(t, gen, uint64(1))
}

func TestSession_Scrolling_ClampsToContent(t *testing.T) {
	t.Parallel()

	cfg := viewer.DefaultConfig()
	cfg.DisplayMode = viewer.ModeUnified
	cfg.LinesPerPage = 10

	t.Run("scroll down clamps the viewport end to the last row", func(t *testing.T) {
		t.Parallel()

		s := loadedSession(t, cfg, contextDiff(t, 100))
		s.ScrollDown(1000)

		assert.Equal(t, 90, s.Scroll())
		window := s.Window()
		require.Len(t, window, 10)
		assert.Equal(t, 98, window[9].LineIndex)
	})

	t.Run("scroll up clamps the viewport start to zero", func(t *testing.T) {
		t.Parallel()

		s := loadedSession(t, cfg, contextDiff(t, 100))
		s.ScrollDown(1000)
		s.ScrollUp(1000)

		assert.Equal(t, 0, s.Scroll())
		assert.Equal(t, viewer.RowHunkHeader, s.Window()[0].Kind)
	})

	t.Run("scroll to clamps negative targets", func(t *testing.T) {
		t.Parallel()

		s := loadedSession(t, cfg, contextDiff(t, 100))
		s.ScrollTo(-5)
		assert.Equal(t, 0, s.Scroll())

		s.ScrollTo(55)
		assert.Equal(t, 55, s.Scroll())
	})

	t.Run("diff shorter than one page never scrolls", func(t *testing.T) {
		t.Parallel()

		s := loadedSession(t, cfg, contextDiff(t, 5))
		s.ScrollDown(3)

		assert.Equal(t, 0, s.Scroll())
		assert.Len(t, s.Window(), 5)
	})
}

func TestSession_SetLinesPerPage_ReclampsScroll(t *testing.T) {
	t.Parallel()

	cfg := viewer.DefaultConfig()
	cfg.DisplayMode = viewer.ModeUnified
	cfg.LinesPerPage = 10
	s := loadedSession(t, cfg, contextDiff(t, 100))
	s.ScrollDown(1000)
	require.Equal(t, 90, s.Scroll())

	s.SetLinesPerPage(40)

	assert.Equal(t, 60, s.Scroll())
	assert.Len(t, s.Window(), 40)

	s.SetLinesPerPage(0)
	assert.Equal(t, 40, s.Config().LinesPerPage)
}

func TestSession_Window_FollowsScrollPosition(t *testing.T) {
	t.Parallel()

	cfg := viewer.DefaultConfig()
	cfg.DisplayMode = viewer.ModeUnified
	cfg.LinesPerPage = 10
	s := loadedSession(t, cfg, contextDiff(t, 100))

	s.ScrollDown(10)

	window := s.Window()
	require.Len(t, window, 10)
	assert.Equal(t, viewer.RowLine, window[0].Kind)
	assert.Equal(t, 9, window[0].LineIndex)
}

func TestSession_Window_VirtualScrollingDisabled(t *testing.T) {
	t.Parallel()

	cfg := viewer.DefaultConfig()
	cfg.LinesPerPage = 10
	cfg.EnableVirtualScrolling = false
	s := loadedSession(t, cfg, contextDiff(t, 100))

	s.ScrollDown(30)

	assert.Len(t, s.Window(), 100)
}

func TestSession_HunkNavigation_ClampsWithoutWrap(t *testing.T) {
	t.Parallel()

	s := loadedSession(t, viewer.DefaultConfig(), multiHunkDiff(t, 3, 5))

	for i := 0; i < 5; i++ {
		s.NextHunk()
	}
	assert.Equal(t, 2, s.SelectedHunk())

	for i := 0; i < 5; i++ {
		s.PrevHunk()
	}
	assert.Equal(t, 0, s.SelectedHunk())
}

func TestSession_HunkNavigation_ScrollsSelectionIntoView(t *testing.T) {
	t.Parallel()

	cfg := viewer.DefaultConfig()
	cfg.LinesPerPage = 4
	// Three hunks of five lines each: header rows sit at 0, 6, and 12.
	s := loadedSession(t, cfg, multiHunkDiff(t, 3, 5))

	s.NextHunk()
	assert.Equal(t, 1, s.SelectedHunk())
	assert.Equal(t, 6, s.Scroll())

	s.NextHunk()
	assert.Equal(t, 12, s.Scroll())

	s.PrevHunk()
	s.PrevHunk()
	assert.Equal(t, 0, s.Scroll())
}

func TestSession_HunkNavigation_VisibleSelectionKeepsWindow(t *testing.T) {
	t.Parallel()

	s := loadedSession(t, viewer.DefaultConfig(), multiHunkDiff(t, 3, 5))

	s.NextHunk()

	assert.Equal(t, 1, s.SelectedHunk())
	assert.Equal(t, 0, s.Scroll())
}

func TestSession_HunkNavigation_WithoutDiffIsNoOp(t *testing.T) {
	t.Parallel()

	s := viewer.NewSession(viewer.DefaultConfig())

	s.NextHunk()
	s.PrevHunk()

	assert.Equal(t, 0, s.SelectedHunk())
	assert.Equal(t, 0, s.Scroll())
}

func TestSession_ToggleDisplayMode_Cycles(t *testing.T) {
	t.Parallel()

	s := viewer.NewSession(viewer.DefaultConfig())
	require.Equal(t, viewer.ModeSideBySide, s.Config().DisplayMode)

	assert.Equal(t, viewer.ModeUnified, s.ToggleDisplayMode())
	assert.Equal(t, viewer.ModeInline, s.ToggleDisplayMode())
	assert.Equal(t, viewer.ModeSideBySide, s.ToggleDisplayMode())
	assert.Equal(t, viewer.ModeSideBySide, s.Config().DisplayMode)
}

func TestSession_ToggleDisplayMode_ReclampsScroll(t *testing.T) {
	t.Parallel()

	cfg := viewer.DefaultConfig()
	cfg.LinesPerPage = 4
	// A full rewrite of five lines: 11 unified rows, but only 6
	// side-by-side rows because deletions and insertions share rows.
	var lines []diffscope.Line
	for i := 1; i <= 5; i++ {
		lines = append(lines, diffscope.Line{Type: diffscope.LineDeleted, Content: fmt.Sprintf("old %d", i), OldLineNum: i})
	}
	for i := 1; i <= 5; i++ {
		lines = append(lines, diffscope.Line{Type: diffscope.LineAdded, Content: fmt.Sprintf("new %d", i), NewLineNum: i})
	}
	diff := &diffscope.FileDiff{
		OldPath: "a/notes.txt",
		NewPath: "b/notes.txt",
		Hunks: []diffscope.Hunk{{
			Header:   diffscope.FormatHunkHeader(1, 5, 1, 5),
			OldStart: 1, OldCount: 5, NewStart: 1, NewCount: 5,
			Lines: lines,
		}},
	}

	cfg.DisplayMode = viewer.ModeUnified
	s := loadedSession(t, cfg, diff)
	s.ScrollDown(1000)
	require.Equal(t, 7, s.Scroll())

	s.ToggleDisplayMode() // to inline, same layout
	assert.Equal(t, 7, s.Scroll())

	s.ToggleDisplayMode() // to side-by-side, shorter layout
	assert.Equal(t, 2, s.Scroll())
}

func TestSession_Toggles_FlipPresentationFlags(t *testing.T) {
	t.Parallel()

	s := viewer.NewSession(viewer.DefaultConfig())

	assert.False(t, s.ToggleLineNumbers())
	assert.True(t, s.ToggleLineNumbers())

	assert.True(t, s.ToggleWhitespace())
	assert.False(t, s.ToggleWhitespace())

	assert.True(t, s.ToggleWordWrap())
	cfg := s.Config()
	assert.True(t, cfg.ShowLineNumbers)
	assert.False(t, cfg.ShowWhitespace)
	assert.True(t, cfg.WordWrap)
}

func TestSession_Rows_UnifiedInterleavesHunkHeaders(t *testing.T) {
	t.Parallel()

	cfg := viewer.DefaultConfig()
	cfg.DisplayMode = viewer.ModeUnified
	s := loadedSession(t, cfg, multiHunkDiff(t, 2, 2))

	want := []viewer.Row{
		{Kind: viewer.RowHunkHeader, HunkIndex: 0, LineIndex: -1, Left: -1, Right: -1},
		{Kind: viewer.RowLine, HunkIndex: 0, LineIndex: 0, Left: -1, Right: -1},
		{Kind: viewer.RowLine, HunkIndex: 0, LineIndex: 1, Left: -1, Right: -1},
		{Kind: viewer.RowHunkHeader, HunkIndex: 1, LineIndex: -1, Left: -1, Right: -1},
		{Kind: viewer.RowLine, HunkIndex: 1, LineIndex: 0, Left: -1, Right: -1},
		{Kind: viewer.RowLine, HunkIndex: 1, LineIndex: 1, Left: -1, Right: -1},
	}
	assert.Equal(t, want, s.Window())
}

func TestSession_Rows_SideBySidePairsDeletionsWithInsertions(t *testing.T) {
	t.Parallel()

	diff := &diffscope.FileDiff{
		OldPath: "a/main.go",
		NewPath: "b/main.go",
		Hunks: []diffscope.Hunk{{
			Header:   diffscope.FormatHunkHeader(1, 4, 1, 3),
			OldStart: 1, OldCount: 4, NewStart: 1, NewCount: 3,
			Lines: []diffscope.Line{
				{Type: diffscope.LineContext, Content: "func main() {", OldLineNum: 1, NewLineNum: 1},
				{Type: diffscope.LineDeleted, Content: "\tgreet()", OldLineNum: 2},
				{Type: diffscope.LineDeleted, Content: "\twave()", OldLineNum: 3},
				{Type: diffscope.LineAdded, Content: "\tgreetAndWave()", NewLineNum: 2},
				{Type: diffscope.LineContext, Content: "}", OldLineNum: 4, NewLineNum: 3},
			},
		}},
	}
	s := loadedSession(t, viewer.DefaultConfig(), diff)

	want := []viewer.Row{
		{Kind: viewer.RowHunkHeader, HunkIndex: 0, LineIndex: -1, Left: -1, Right: -1},
		{Kind: viewer.RowPair, HunkIndex: 0, LineIndex: -1, Left: 0, Right: 0},
		{Kind: viewer.RowPair, HunkIndex: 0, LineIndex: -1, Left: 1, Right: 3},
		{Kind: viewer.RowPair, HunkIndex: 0, LineIndex: -1, Left: 2, Right: -1},
		{Kind: viewer.RowPair, HunkIndex: 0, LineIndex: -1, Left: 4, Right: 4},
	}
	assert.Equal(t, want, s.Window())
}

func TestSession_Rows_SideBySidePadsInsertionOnlyRegions(t *testing.T) {
	t.Parallel()

	diff := &diffscope.FileDiff{
		OldPath: "a/list.txt",
		NewPath: "b/list.txt",
		Hunks: []diffscope.Hunk{{
			Header:   diffscope.FormatHunkHeader(1, 1, 1, 3),
			OldStart: 1, OldCount: 1, NewStart: 1, NewCount: 3,
			Lines: []diffscope.Line{
				{Type: diffscope.LineContext, Content: "first", OldLineNum: 1, NewLineNum: 1},
				{Type: diffscope.LineAdded, Content: "second", NewLineNum: 2},
				{Type: diffscope.LineAdded, Content: "third", NewLineNum: 3},
			},
		}},
	}
	s := loadedSession(t, viewer.DefaultConfig(), diff)

	want := []viewer.Row{
		{Kind: viewer.RowHunkHeader, HunkIndex: 0, LineIndex: -1, Left: -1, Right: -1},
		{Kind: viewer.RowPair, HunkIndex: 0, LineIndex: -1, Left: 0, Right: 0},
		{Kind: viewer.RowPair, HunkIndex: 0, LineIndex: -1, Left: -1, Right: 1},
		{Kind: viewer.RowPair, HunkIndex: 0, LineIndex: -1, Left: -1, Right: 2},
	}
	assert.Equal(t, want, s.Window())
}

func TestSession_Rows_InlineSharesUnifiedLayout(t *testing.T) {
	t.Parallel()

	cfg := viewer.DefaultConfig()
	cfg.DisplayMode = viewer.ModeUnified
	s := loadedSession(t, cfg, multiHunkDiff(t, 2, 3))

	unified := s.Window()
	require.Equal(t, viewer.ModeInline, s.ToggleDisplayMode())

	assert.Equal(t, unified, s.Window())
}

func TestDisplayMode_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "side-by-side", viewer.ModeSideBySide.String())
	assert.Equal(t, "unified", viewer.ModeUnified.String())
	assert.Equal(t, "inline", viewer.ModeInline.String())
}

// loadedSession returns a session in PhaseReady showing diff.
func loadedSession(t *testing.T, cfg viewer.Config, diff *diffscope.FileDiff) *viewer.Session {
	t.Helper()

	s := viewer.NewSession(cfg)
	gen := s.BeginLoad()
	require.True(t, s.Apply(gen, diff, nil))
	return s
}

// contextDiff returns a single-hunk diff whose layout has exactly total
// rows in every display mode: one header row plus total-1 context lines.
func contextDiff(t *testing.T, total int) *diffscope.FileDiff {
	t.Helper()

	lines := make([]diffscope.Line, total-1)
	for i := range lines {
		lines[i] = diffscope.Line{
			Type:       diffscope.LineContext,
			Content:    fmt.Sprintf("line %d", i+1),
			OldLineNum: i + 1,
			NewLineNum: i + 1,
		}
	}
	return &diffscope.FileDiff{
		OldPath: "a/main.go",
		NewPath: "b/main.go",
		Hunks: []diffscope.Hunk{{
			Header:   diffscope.FormatHunkHeader(1, len(lines), 1, len(lines)),
			OldStart: 1, OldCount: len(lines), NewStart: 1, NewCount: len(lines),
			Lines: lines,
		}},
	}
}

// multiHunkDiff returns a diff with hunks hunks of linesPer context lines
// each, so every hunk occupies linesPer+1 rows in every display mode.
func multiHunkDiff(t *testing.T, hunks, linesPer int) *diffscope.FileDiff {
	t.Helper()

	diff := &diffscope.FileDiff{OldPath: "a/main.go", NewPath: "b/main.go"}
	for h := 0; h < hunks; h++ {
		start := h*linesPer*3 + 1
		hunk := diffscope.Hunk{
			Header:   diffscope.FormatHunkHeader(start, linesPer, start, linesPer),
			OldStart: start, OldCount: linesPer, NewStart: start, NewCount: linesPer,
		}
		for i := 0; i < linesPer; i++ {
			hunk.Lines = append(hunk.Lines, diffscope.Line{
				Type:       diffscope.LineContext,
				Content:    fmt.Sprintf("line %d", start+i),
				OldLineNum: start + i,
				NewLineNum: start + i,
			})
		}
		diff.Hunks = append(diff.Hunks, hunk)
	}
	return diff
}
