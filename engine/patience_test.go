package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwojciec/diffscope"
	"github.com/fwojciec/diffscope/engine"
)

func newPatienceProcessor() *engine.Processor {
	cfg := engine.DefaultConfig()
	cfg.Algorithm = diffscope.AlgorithmPatience
	return engine.New(cfg)
}

func TestProcessor_Compute_Patience_SingleLineChange(t *testing.T) {
	t.Parallel()

	p := newPatienceProcessor()

	fd, err := p.Compute(context.Background(), "a\nb\nc\n", "a\nx\nc\n", "main.go")

	require.NoError(t, err)
	assert.Equal(t, diffscope.AlgorithmPatience, fd.Algorithm)
	require.Len(t, fd.Hunks, 1)

	lines := fd.Hunks[0].Lines
	require.Len(t, lines, 4)
	assert.Equal(t, diffscope.LineContext, lines[0].Type)
	assert.Equal(t, diffscope.LineDeleted, lines[1].Type)
	assert.Equal(t, "b", lines[1].Content)
	assert.Equal(t, diffscope.LineAdded, lines[2].Type)
	assert.Equal(t, "x", lines[2].Content)
	assert.Equal(t, diffscope.LineContext, lines[3].Type)
}

func TestProcessor_Compute_Patience_AlignsOnUniqueCommonLines(t *testing.T) {
	t.Parallel()

	// Lines U and V appear exactly once on both sides and become
	// anchors; the repeated noise lines around them are diffed in the
	// gaps between anchors.
	p := newPatienceProcessor()

	old := "x\nU\nx\nV\nx\n"
	new := "y\nU\ny\nV\ny\n"
	fd, err := p.Compute(context.Background(), old, new, "f.txt")

	require.NoError(t, err)
	require.Len(t, fd.Hunks, 1)
	assert.Equal(t, "@@ -1,5 +1,5 @@", fd.Hunks[0].Header)

	type step struct {
		kind    diffscope.LineType
		content string
	}
	var got []step
	for _, ln := range fd.Hunks[0].Lines {
		got = append(got, step{ln.Type, ln.Content})
	}
	want := []step{
		{diffscope.LineDeleted, "x"},
		{diffscope.LineAdded, "y"},
		{diffscope.LineContext, "U"},
		{diffscope.LineDeleted, "x"},
		{diffscope.LineAdded, "y"},
		{diffscope.LineContext, "V"},
		{diffscope.LineDeleted, "x"},
		{diffscope.LineAdded, "y"},
	}
	assert.Equal(t, want, got)
}

func TestProcessor_Compute_Patience_PrefersAnchorsOverMinimality(t *testing.T) {
	t.Parallel()

	// Moving a unique line across a repeated block: patience holds the
	// unique line in place and rewrites the block, while Myers moves the
	// single line. Both are valid diffs; the line counts tell them apart.
	old := "a\na\nb\n"
	new := "b\na\na\n"

	patience := newPatienceProcessor()
	fd, err := patience.Compute(context.Background(), old, new, "f.txt")
	require.NoError(t, err)
	assert.Equal(t, 2, fd.Stats.LinesDeleted)
	assert.Equal(t, 2, fd.Stats.LinesAdded)

	require.Len(t, fd.Hunks, 1)
	lines := fd.Hunks[0].Lines
	require.Len(t, lines, 5)
	assert.Equal(t, diffscope.LineContext, lines[2].Type)
	assert.Equal(t, "b", lines[2].Content)

	myers := engine.New(engine.DefaultConfig())
	fd, err = myers.Compute(context.Background(), old, new, "f.txt")
	require.NoError(t, err)
	assert.Equal(t, 1, fd.Stats.LinesDeleted)
	assert.Equal(t, 1, fd.Stats.LinesAdded)
}

func TestProcessor_Compute_Patience_NoUniqueLinesFallsBack(t *testing.T) {
	t.Parallel()

	p := newPatienceProcessor()

	// Every line repeats, so no anchors exist.
	old := "x\nx\ny\ny\n"
	new := "y\ny\nx\nx\n"
	fd, err := p.Compute(context.Background(), old, new, "f.txt")

	require.NoError(t, err)
	got := applyHunks(t, splitForTest(old), fd.Hunks)
	assert.Equal(t, splitForTest(new), got)
}

func TestProcessor_Compute_Patience_EmptySides(t *testing.T) {
	t.Parallel()

	p := newPatienceProcessor()

	t.Run("added", func(t *testing.T) {
		t.Parallel()
		fd, err := p.Compute(context.Background(), "", "x\n", "f.txt")
		require.NoError(t, err)
		assert.Equal(t, diffscope.StatusAdded, fd.Status)
		assert.Equal(t, 1, fd.Stats.LinesAdded)
	})

	t.Run("deleted", func(t *testing.T) {
		t.Parallel()
		fd, err := p.Compute(context.Background(), "x\n", "", "f.txt")
		require.NoError(t, err)
		assert.Equal(t, diffscope.StatusDeleted, fd.Status)
		assert.Equal(t, 1, fd.Stats.LinesDeleted)
	})

	t.Run("identical", func(t *testing.T) {
		t.Parallel()
		fd, err := p.Compute(context.Background(), "x\ny\n", "x\ny\n", "f.txt")
		require.NoError(t, err)
		assert.Empty(t, fd.Hunks)
	})
}
