package lipgloss_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwojciec/diffscope"
	"github.com/fwojciec/diffscope/lipgloss"
)

func TestDefaultTheme(t *testing.T) {
	t.Parallel()

	t.Run("implements Theme interface", func(t *testing.T) {
		t.Parallel()

		var _ diffscope.Theme = lipgloss.DefaultTheme()
	})

	t.Run("is the mocha theme", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "catppuccin-mocha", lipgloss.DefaultTheme().Name())
	})

	t.Run("returns styles with added line coloring", func(t *testing.T) {
		t.Parallel()

		styles := lipgloss.DefaultTheme().Styles()

		assert.NotEmpty(t, styles.Added.Foreground)
		assert.NotEmpty(t, styles.Added.Background)
	})

	t.Run("returns styles with deleted line coloring", func(t *testing.T) {
		t.Parallel()

		styles := lipgloss.DefaultTheme().Styles()

		assert.NotEmpty(t, styles.Deleted.Foreground)
		assert.NotEmpty(t, styles.Deleted.Background)
	})

	t.Run("returns styles for every syntax kind", func(t *testing.T) {
		t.Parallel()

		styles := lipgloss.DefaultTheme().Styles()

		assert.NotEmpty(t, styles.Keyword.Foreground)
		assert.NotEmpty(t, styles.String.Foreground)
		assert.NotEmpty(t, styles.Comment.Foreground)
	})

	t.Run("returns styles for viewer chrome", func(t *testing.T) {
		t.Parallel()

		styles := lipgloss.DefaultTheme().Styles()

		assert.NotEmpty(t, styles.StatusBar.Background)
		assert.NotEmpty(t, styles.Binary.Foreground)
		assert.NotEmpty(t, styles.Selected.Foreground)
	})
}

func TestLatteTheme(t *testing.T) {
	t.Parallel()

	t.Run("differs from mocha", func(t *testing.T) {
		t.Parallel()

		mocha := lipgloss.MochaTheme().Styles()
		latte := lipgloss.LatteTheme().Styles()

		assert.NotEqual(t, mocha.Added.Foreground, latte.Added.Foreground)
		assert.NotEqual(t, mocha.StatusBar.Background, latte.StatusBar.Background)
	})

	t.Run("highlight styles carry backgrounds", func(t *testing.T) {
		t.Parallel()

		styles := lipgloss.LatteTheme().Styles()

		assert.NotEmpty(t, styles.AddedHighlight.Background)
		assert.NotEmpty(t, styles.DeletedHighlight.Background)
	})
}

func TestByName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		want  string
		found bool
	}{
		{name: "catppuccin-mocha", want: "catppuccin-mocha", found: true},
		{name: "catppuccin-latte", want: "catppuccin-latte", found: true},
		{name: "dark", want: "catppuccin-mocha", found: true},
		{name: "light", want: "catppuccin-latte", found: true},
		{name: "", want: "catppuccin-mocha", found: true},
		{name: "solarized", found: false},
	}

	for _, tt := range tests {
		t.Run("name "+tt.name, func(t *testing.T) {
			t.Parallel()

			theme, ok := lipgloss.ByName(tt.name)

			require.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.want, theme.Name())
			}
		})
	}
}
