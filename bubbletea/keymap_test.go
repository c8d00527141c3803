package bubbletea_test

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/diffscope/bubbletea"
	"github.com/stretchr/testify/assert"
)

func runeMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestDefaultKeyMap_HasExpectedBindings(t *testing.T) {
	t.Parallel()

	km := bubbletea.DefaultKeyMap()

	t.Run("Up binding", func(t *testing.T) {
		t.Parallel()
		assert.True(t, key.Matches(runeMsg('k'), km.Up), "k should match Up binding")
		assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyUp}, km.Up), "arrow up should match Up binding")
	})

	t.Run("Down binding", func(t *testing.T) {
		t.Parallel()
		assert.True(t, key.Matches(runeMsg('j'), km.Down), "j should match Down binding")
		assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyDown}, km.Down), "arrow down should match Down binding")
	})

	t.Run("half page bindings", func(t *testing.T) {
		t.Parallel()
		assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyCtrlU}, km.HalfPageUp))
		assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyCtrlD}, km.HalfPageDown))
		assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyPgUp}, km.HalfPageUp))
		assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyPgDown}, km.HalfPageDown))
	})

	t.Run("goto bindings", func(t *testing.T) {
		t.Parallel()
		assert.True(t, key.Matches(runeMsg('g'), km.GotoTop))
		assert.True(t, key.Matches(runeMsg('G'), km.GotoBottom))
		assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyHome}, km.GotoTop))
		assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyEnd}, km.GotoBottom))
	})

	t.Run("hunk bindings", func(t *testing.T) {
		t.Parallel()
		assert.True(t, key.Matches(runeMsg('n'), km.NextHunk))
		assert.True(t, key.Matches(runeMsg('p'), km.PrevHunk))
	})

	t.Run("toggle bindings", func(t *testing.T) {
		t.Parallel()
		assert.True(t, key.Matches(runeMsg('m'), km.ToggleMode))
		assert.True(t, key.Matches(runeMsg('l'), km.ToggleLineNumbers))
		assert.True(t, key.Matches(runeMsg('w'), km.ToggleWhitespace))
		assert.True(t, key.Matches(runeMsg('W'), km.ToggleWrap))
	})

	t.Run("action bindings", func(t *testing.T) {
		t.Parallel()
		assert.True(t, key.Matches(runeMsg('y'), km.Yank))
		assert.True(t, key.Matches(runeMsg('r'), km.Reload))
		assert.True(t, key.Matches(runeMsg('?'), km.Help))
	})

	t.Run("Quit binding", func(t *testing.T) {
		t.Parallel()
		assert.True(t, key.Matches(runeMsg('q'), km.Quit), "q should match Quit binding")
		assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyCtrlC}, km.Quit), "ctrl+c should match Quit binding")
	})

	t.Run("case sensitivity", func(t *testing.T) {
		t.Parallel()
		assert.False(t, key.Matches(runeMsg('W'), km.ToggleWhitespace), "W must not toggle whitespace")
		assert.False(t, key.Matches(runeMsg('g'), km.GotoBottom), "g must not go to bottom")
	})
}
