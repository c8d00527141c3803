// Package lipgloss provides theme implementations using the Lipgloss styling library.
package lipgloss

import "github.com/fwojciec/diffscope"

// Compile-time interface verification.
var _ diffscope.Theme = (*Theme)(nil)

// Theme implements diffscope.Theme with Lipgloss-compatible colors.
type Theme struct {
	name   string
	styles diffscope.Styles
}

// Name returns the theme's registered name.
func (t *Theme) Name() string {
	return t.name
}

// Styles returns the color styles for this theme.
func (t *Theme) Styles() diffscope.Styles {
	return t.styles
}

// DefaultTheme returns the default theme (dark background optimized).
func DefaultTheme() *Theme {
	return MochaTheme()
}

// ByName resolves a theme by its registered name. Unknown names report
// false so callers can fall back explicitly.
func ByName(name string) (*Theme, bool) {
	switch name {
	case "catppuccin-mocha", "dark", "":
		return MochaTheme(), true
	case "catppuccin-latte", "light":
		return LatteTheme(), true
	default:
		return nil, false
	}
}

// MochaTheme returns a Catppuccin Mocha theme for dark terminal backgrounds.
// Change backgrounds are very dark so syntax foregrounds stay readable.
func MochaTheme() *Theme {
	return &Theme{
		name: "catppuccin-mocha",
		styles: diffscope.Styles{
			Added: diffscope.ColorPair{
				Foreground: "#a6e3a1", // Green
				Background: "#004000", // Very dark green
			},
			Deleted: diffscope.ColorPair{
				Foreground: "#f38ba8", // Red
				Background: "#3f0001", // Very dark red
			},
			Context: diffscope.ColorPair{
				Foreground: "#6c7086", // Muted gray (dimmed for change visibility)
			},
			HunkHeader: diffscope.ColorPair{
				Foreground: "#89b4fa", // Blue
			},
			FileHeader: diffscope.ColorPair{
				Foreground: "#f9e2af", // Yellow
				Background: "#313244", // Dark surface
			},
			LineNumber: diffscope.ColorPair{
				Foreground: "#6c7086", // Muted gray
			},
			AddedHighlight: diffscope.ColorPair{
				Foreground: "#1e1e2e", // Dark text on bright background
				Background: "#a6e3a1", // Bright green background
			},
			DeletedHighlight: diffscope.ColorPair{
				Foreground: "#1e1e2e", // Dark text on bright background
				Background: "#f38ba8", // Bright red background
			},
			Keyword: diffscope.ColorPair{
				Foreground: "#cba6f7", // Mauve
			},
			String: diffscope.ColorPair{
				Foreground: "#a6e3a1", // Green
			},
			Comment: diffscope.ColorPair{
				Foreground: "#6c7086", // Muted gray
			},
			Binary: diffscope.ColorPair{
				Foreground: "#f9e2af", // Yellow
			},
			StatusBar: diffscope.ColorPair{
				Foreground: "#a6adc8", // Subtext
				Background: "#313244", // Dark surface
			},
			Selected: diffscope.ColorPair{
				Foreground: "#89b4fa", // Blue
			},
		},
	}
}

// LatteTheme returns a Catppuccin Latte theme for light terminal backgrounds.
func LatteTheme() *Theme {
	return &Theme{
		name: "catppuccin-latte",
		styles: diffscope.Styles{
			Added: diffscope.ColorPair{
				Foreground: "#40a02b", // Green
				Background: "#d4f4d4", // Subtle green background
			},
			Deleted: diffscope.ColorPair{
				Foreground: "#d20f39", // Red
				Background: "#f4d4d4", // Subtle red background
			},
			Context: diffscope.ColorPair{
				Foreground: "#9ca0b0", // Muted gray (dimmed for change visibility)
			},
			HunkHeader: diffscope.ColorPair{
				Foreground: "#1e66f5", // Blue
			},
			FileHeader: diffscope.ColorPair{
				Foreground: "#df8e1d", // Yellow
				Background: "#e6e9ef", // Light surface
			},
			LineNumber: diffscope.ColorPair{
				Foreground: "#9ca0b0", // Muted gray
			},
			AddedHighlight: diffscope.ColorPair{
				Foreground: "#ffffff", // White text on dark background
				Background: "#40a02b", // Bright green background
			},
			DeletedHighlight: diffscope.ColorPair{
				Foreground: "#ffffff", // White text on dark background
				Background: "#d20f39", // Bright red background
			},
			Keyword: diffscope.ColorPair{
				Foreground: "#8839ef", // Mauve
			},
			String: diffscope.ColorPair{
				Foreground: "#40a02b", // Green
			},
			Comment: diffscope.ColorPair{
				Foreground: "#9ca0b0", // Muted gray
			},
			Binary: diffscope.ColorPair{
				Foreground: "#df8e1d", // Yellow
			},
			StatusBar: diffscope.ColorPair{
				Foreground: "#6c6f85", // Subtext
				Background: "#e6e9ef", // Light surface
			},
			Selected: diffscope.ColorPair{
				Foreground: "#1e66f5", // Blue
			},
		},
	}
}
