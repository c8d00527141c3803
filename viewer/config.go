package viewer

// DefaultLinesPerPage is the window height used when Config.LinesPerPage
// is not positive.
const DefaultLinesPerPage = 50

// Config controls session presentation state. The zero value is not
// useful; start from DefaultConfig.
type Config struct {
	DisplayMode            DisplayMode // Initial layout
	ShowLineNumbers        bool        // Render old/new line numbers in the gutter
	ShowWhitespace         bool        // Render tabs and trailing spaces visibly
	WordWrap               bool        // Wrap long lines instead of truncating
	LinesPerPage           int         // Window height in rows
	EnableVirtualScrolling bool        // When false, Window returns every row
}

// DefaultConfig returns the standard viewer configuration.
func DefaultConfig() Config {
	return Config{
		DisplayMode:            ModeSideBySide,
		ShowLineNumbers:        true,
		ShowWhitespace:         false,
		WordWrap:               false,
		LinesPerPage:           DefaultLinesPerPage,
		EnableVirtualScrolling: true,
	}
}
