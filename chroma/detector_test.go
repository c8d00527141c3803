package chroma_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fwojciec/diffscope/chroma"
)

func TestDetector_DetectLanguage(t *testing.T) {
	t.Parallel()

	t.Run("detects Rust from .rs files", func(t *testing.T) {
		t.Parallel()

		detector := chroma.NewDetector(chroma.DefaultConfig())
		lang := detector.DetectLanguage("main.rs")

		assert.Equal(t, "rust", lang)
	})

	t.Run("detects common languages", func(t *testing.T) {
		t.Parallel()

		detector := chroma.NewDetector(chroma.DefaultConfig())

		cases := []struct {
			path string
			want string
		}{
			{"src/main.go", "go"},
			{"app.py", "python"},
			{"component.tsx", "tsx"},
			{"main.js", "javascript"},
			{"style.css", "css"},
			{"query.sql", "sql"},
			{"deploy.yaml", "yaml"},
			{"notes.md", "markdown"},
		}

		for _, tc := range cases {
			lang := detector.DetectLanguage(tc.path)
			assert.Equal(t, tc.want, lang, "path: %s", tc.path)
		}
	})

	t.Run("detects special file names", func(t *testing.T) {
		t.Parallel()

		detector := chroma.NewDetector(chroma.DefaultConfig())

		cases := []struct {
			path string
			want string
		}{
			{"Makefile", "makefile"},
			{"docker/Dockerfile", "dockerfile"},
			{".gitignore", "gitignore"},
			{"config/.env", "dotenv"},
			{"Cargo.toml", "toml"},
			{"package.json", "json"},
		}

		for _, tc := range cases {
			lang := detector.DetectLanguage(tc.path)
			assert.Equal(t, tc.want, lang, "path: %s", tc.path)
		}
	})

	t.Run("strips b/ prefix from diff paths", func(t *testing.T) {
		t.Parallel()

		detector := chroma.NewDetector(chroma.DefaultConfig())
		lang := detector.DetectLanguage("b/src/foo.go")

		assert.Equal(t, "go", lang)
	})

	t.Run("strips a/ prefix from diff paths", func(t *testing.T) {
		t.Parallel()

		detector := chroma.NewDetector(chroma.DefaultConfig())
		lang := detector.DetectLanguage("a/src/foo.go")

		assert.Equal(t, "go", lang)
	})

	t.Run("uses uppercase extensions", func(t *testing.T) {
		t.Parallel()

		detector := chroma.NewDetector(chroma.DefaultConfig())
		lang := detector.DetectLanguage("README.MD")

		assert.Equal(t, "markdown", lang)
	})

	t.Run("falls back to the default language", func(t *testing.T) {
		t.Parallel()

		detector := chroma.NewDetector(chroma.DefaultConfig())
		lang := detector.DetectLanguage("file.unknownext")

		assert.Equal(t, "text", lang)
	})

	t.Run("respects a custom default language", func(t *testing.T) {
		t.Parallel()

		cfg := chroma.DefaultConfig()
		cfg.DefaultLanguage = "plain"
		detector := chroma.NewDetector(cfg)

		assert.Equal(t, "plain", detector.DetectLanguage("mystery.bin"))
	})
}
