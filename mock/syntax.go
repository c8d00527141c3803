package mock

import (
	"github.com/fwojciec/diffscope"
)

// Compile-time interface verification.
var (
	_ diffscope.Tokenizer        = (*Tokenizer)(nil)
	_ diffscope.LanguageDetector = (*LanguageDetector)(nil)
	_ diffscope.WordDiffer       = (*WordDiffer)(nil)
)

// Tokenizer is a mock implementation of diffscope.Tokenizer.
type Tokenizer struct {
	TokenizeLineFn func(line, language string) []diffscope.Token
}

func (t *Tokenizer) TokenizeLine(line, language string) []diffscope.Token {
	return t.TokenizeLineFn(line, language)
}

// LanguageDetector is a mock implementation of diffscope.LanguageDetector.
type LanguageDetector struct {
	DetectLanguageFn func(path string) string
}

func (d *LanguageDetector) DetectLanguage(path string) string {
	return d.DetectLanguageFn(path)
}

// WordDiffer is a mock implementation of diffscope.WordDiffer.
type WordDiffer struct {
	DiffFn func(old, new string) (oldSegs, newSegs []diffscope.Segment)
}

func (w *WordDiffer) Diff(old, new string) (oldSegs, newSegs []diffscope.Segment) {
	return w.DiffFn(old, new)
}
