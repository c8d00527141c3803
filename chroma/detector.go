package chroma

import (
	"path/filepath"
	"strings"

	"github.com/fwojciec/diffscope"
)

// Compile-time interface verification.
var _ diffscope.LanguageDetector = (*Detector)(nil)

// languagesByExtension maps lowercase file extensions (without the dot) to
// language tags understood by the chroma lexer registry.
var languagesByExtension = map[string]string{
	"rs":         "rust",
	"py":         "python",
	"js":         "javascript",
	"mjs":        "javascript",
	"ts":         "typescript",
	"jsx":        "jsx",
	"tsx":        "tsx",
	"html":       "html",
	"htm":        "html",
	"css":        "css",
	"scss":       "scss",
	"sass":       "scss",
	"json":       "json",
	"yaml":       "yaml",
	"yml":        "yaml",
	"toml":       "toml",
	"md":         "markdown",
	"markdown":   "markdown",
	"sh":         "bash",
	"bash":       "bash",
	"zsh":        "shell",
	"fish":       "shell",
	"c":          "c",
	"cpp":        "cpp",
	"cc":         "cpp",
	"cxx":        "cpp",
	"h":          "c",
	"hpp":        "c",
	"go":         "go",
	"java":       "java",
	"kt":         "kotlin",
	"kts":        "kotlin",
	"swift":      "swift",
	"php":        "php",
	"rb":         "ruby",
	"pl":         "perl",
	"pm":         "perl",
	"lua":        "lua",
	"vim":        "vim",
	"xml":        "xml",
	"sql":        "sql",
	"dockerfile": "dockerfile",
	"tf":         "terraform",
}

// languagesByBasename maps well-known extensionless or dotted file names.
var languagesByBasename = map[string]string{
	"makefile":       "makefile",
	"gnumakefile":    "makefile",
	"dockerfile":     "dockerfile",
	"cargo.toml":     "toml",
	"pyproject.toml": "toml",
	"package.json":   "json",
	"tsconfig.json":  "json",
	".gitignore":     "gitignore",
	".dockerignore":  "gitignore",
	".env":           "dotenv",
	".env.local":     "dotenv",
	".env.example":   "dotenv",
}

// Detector maps file paths to language tags with a pure table lookup, so
// identical paths always detect identically regardless of file contents.
type Detector struct {
	defaultLanguage string
}

// NewDetector creates a detector that falls back to the configured default
// language.
func NewDetector(cfg Config) *Detector {
	return &Detector{defaultLanguage: cfg.DefaultLanguage}
}

// DetectLanguage returns the language tag for the given path.
// Strips "a/" or "b/" prefixes common in diff output.
func (d *Detector) DetectLanguage(path string) string {
	// Strip common diff prefixes
	path = strings.TrimPrefix(path, "a/")
	path = strings.TrimPrefix(path, "b/")

	base := strings.ToLower(filepath.Base(path))
	if lang, ok := languagesByBasename[base]; ok {
		return lang
	}

	ext := strings.TrimPrefix(filepath.Ext(base), ".")
	if lang, ok := languagesByExtension[ext]; ok {
		return lang
	}
	return d.defaultLanguage
}
