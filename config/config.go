// Package config loads diffscope configuration from a TOML file, layered
// over the defaults of the packages it configures.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/fwojciec/diffscope"
	"github.com/fwojciec/diffscope/chroma"
	"github.com/fwojciec/diffscope/engine"
	"github.com/fwojciec/diffscope/viewer"
)

// Config is the file-facing configuration. Enum-valued settings are
// strings here and converted when building the package configs, so a
// config file stays human-editable.
type Config struct {
	Theme  string       `toml:"theme"`
	Engine EngineConfig `toml:"engine"`
	Viewer ViewerConfig `toml:"viewer"`
	Syntax SyntaxConfig `toml:"syntax"`
}

// EngineConfig mirrors engine.Config in TOML-friendly form.
type EngineConfig struct {
	Algorithm        string `toml:"algorithm"`
	ContextLines     int    `toml:"context_lines"`
	WordLevelDiff    bool   `toml:"word_level_diff"`
	IgnoreWhitespace bool   `toml:"ignore_whitespace"`
	MaxFileSize      int64  `toml:"max_file_size"`
	EnableCache      bool   `toml:"enable_cache"`
	CacheCapacity    int    `toml:"cache_capacity"`
	CacheTTLSecs     int    `toml:"cache_ttl_secs"`
}

// ViewerConfig mirrors viewer.Config in TOML-friendly form.
type ViewerConfig struct {
	DisplayMode            string `toml:"display_mode"`
	ShowLineNumbers        bool   `toml:"show_line_numbers"`
	ShowWhitespace         bool   `toml:"show_whitespace"`
	WordWrap               bool   `toml:"word_wrap"`
	LinesPerPage           int    `toml:"lines_per_page"`
	EnableVirtualScrolling bool   `toml:"enable_virtual_scrolling"`
}

// SyntaxConfig mirrors chroma.Config in TOML-friendly form.
type SyntaxConfig struct {
	Enabled         bool   `toml:"enabled"`
	DefaultLanguage string `toml:"default_language"`
	MaxFileSize     int64  `toml:"max_file_size"`
}

// Default returns the configuration matching each package's defaults.
func Default() Config {
	e := engine.DefaultConfig()
	v := viewer.DefaultConfig()
	s := chroma.DefaultConfig()
	return Config{
		Theme: s.ThemeName,
		Engine: EngineConfig{
			Algorithm:        e.Algorithm.String(),
			ContextLines:     e.ContextLines,
			WordLevelDiff:    e.WordLevelDiff,
			IgnoreWhitespace: e.IgnoreWhitespace,
			MaxFileSize:      e.MaxFileSize,
			EnableCache:      e.EnableCache,
			CacheCapacity:    e.CacheCapacity,
			CacheTTLSecs:     int(e.CacheTTL / time.Second),
		},
		Viewer: ViewerConfig{
			DisplayMode:            v.DisplayMode.String(),
			ShowLineNumbers:        v.ShowLineNumbers,
			ShowWhitespace:         v.ShowWhitespace,
			WordWrap:               v.WordWrap,
			LinesPerPage:           v.LinesPerPage,
			EnableVirtualScrolling: v.EnableVirtualScrolling,
		},
		Syntax: SyntaxConfig{
			Enabled:         s.Enabled,
			DefaultLanguage: s.DefaultLanguage,
			MaxFileSize:     s.MaxFileSize,
		},
	}
}

// Load reads a TOML file over the defaults. A missing file is not an
// error: defaults are returned so a fresh install works unconfigured.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	meta, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("loading config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("loading config %s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("loading config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if _, err := diffscope.ParseAlgorithm(c.Engine.Algorithm); err != nil {
		return err
	}
	if _, err := parseDisplayMode(c.Viewer.DisplayMode); err != nil {
		return err
	}
	if c.Engine.ContextLines < 0 {
		return fmt.Errorf("context_lines must be >= 0, got %d", c.Engine.ContextLines)
	}
	if c.Viewer.LinesPerPage <= 0 {
		return fmt.Errorf("lines_per_page must be > 0, got %d", c.Viewer.LinesPerPage)
	}
	return nil
}

// EngineConfig builds the engine configuration.
func (c Config) EngineConfig() engine.Config {
	algo, _ := diffscope.ParseAlgorithm(c.Engine.Algorithm)
	return engine.Config{
		Algorithm:        algo,
		ContextLines:     c.Engine.ContextLines,
		WordLevelDiff:    c.Engine.WordLevelDiff,
		IgnoreWhitespace: c.Engine.IgnoreWhitespace,
		MaxFileSize:      c.Engine.MaxFileSize,
		EnableCache:      c.Engine.EnableCache,
		CacheCapacity:    c.Engine.CacheCapacity,
		CacheTTL:         time.Duration(c.Engine.CacheTTLSecs) * time.Second,
	}
}

// ViewerConfig builds the viewer configuration.
func (c Config) ViewerConfig() viewer.Config {
	mode, _ := parseDisplayMode(c.Viewer.DisplayMode)
	return viewer.Config{
		DisplayMode:            mode,
		ShowLineNumbers:        c.Viewer.ShowLineNumbers,
		ShowWhitespace:         c.Viewer.ShowWhitespace,
		WordWrap:               c.Viewer.WordWrap,
		LinesPerPage:           c.Viewer.LinesPerPage,
		EnableVirtualScrolling: c.Viewer.EnableVirtualScrolling,
	}
}

// SyntaxConfig builds the tokenizer configuration.
func (c Config) SyntaxConfig() chroma.Config {
	return chroma.Config{
		Enabled:         c.Syntax.Enabled,
		DefaultLanguage: c.Syntax.DefaultLanguage,
		ThemeName:       c.Theme,
		MaxFileSize:     c.Syntax.MaxFileSize,
	}
}

func parseDisplayMode(name string) (viewer.DisplayMode, error) {
	switch name {
	case "side-by-side", "":
		return viewer.ModeSideBySide, nil
	case "unified":
		return viewer.ModeUnified, nil
	case "inline":
		return viewer.ModeInline, nil
	default:
		return viewer.ModeSideBySide, fmt.Errorf("unknown display mode %q", name)
	}
}
