package chroma

// DefaultMaxFileSize is the size above which files skip tokenization.
const DefaultMaxFileSize = 1 << 20

// Config controls language detection and tokenization.
type Config struct {
	Enabled         bool   // Tokenize at all; disabled yields plain tokens
	DefaultLanguage string // Tag reported for unknown paths
	ThemeName       string // Color theme consumed by the renderer
	MaxFileSize     int64  // Files larger than this bypass tokenization
}

// DefaultConfig returns the standard tokenizer settings.
func DefaultConfig() Config {
	return Config{
		Enabled:         true,
		DefaultLanguage: "text",
		ThemeName:       "catppuccin-mocha",
		MaxFileSize:     DefaultMaxFileSize,
	}
}
