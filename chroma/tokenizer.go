// Package chroma classifies source lines into display tokens using the
// chroma lexer library and detects languages from file paths.
package chroma

import (
	"strings"

	chromalib "github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/fwojciec/diffscope"
)

// Compile-time interface verification.
var _ diffscope.Tokenizer = (*Tokenizer)(nil)

// maxLineBytes bounds the per-line work handed to the lexer. Minified or
// generated lines past this length render as plain text.
const maxLineBytes = 1000

// Tokenizer extracts syntax tokens using chroma.
type Tokenizer struct {
	cfg Config
}

// NewTokenizer creates a chroma-based tokenizer.
func NewTokenizer(cfg Config) *Tokenizer {
	return &Tokenizer{cfg: cfg}
}

// TokenizeLine splits one line of source code into classified tokens. The
// concatenated token texts always reproduce the line exactly. Disabled
// config, unknown languages, overlong lines, and lexer failures all degrade
// to a single plain token.
func (t *Tokenizer) TokenizeLine(line, language string) []diffscope.Token {
	if line == "" {
		return nil
	}
	if !t.cfg.Enabled || len(line) > maxLineBytes {
		return plainLine(line)
	}

	lexer := lexers.Get(language)
	if lexer == nil {
		return plainLine(line)
	}

	// Coalesce for better performance with consecutive tokens of the same type
	lexer = chromalib.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, line)
	if err != nil {
		return plainLine(line)
	}

	var tokens []diffscope.Token
	for token := iterator(); token != chromalib.EOF; token = iterator() {
		// Some lexers force a trailing newline onto the input; the
		// line itself never contains one.
		text := strings.ReplaceAll(token.Value, "\n", "")
		if text == "" {
			continue
		}
		tokens = append(tokens, diffscope.Token{
			Text: text,
			Kind: foldKind(token.Type),
		})
	}
	if len(tokens) == 0 {
		return plainLine(line)
	}
	return tokens
}

func plainLine(line string) []diffscope.Token {
	return []diffscope.Token{{Text: line, Kind: diffscope.TokenPlain}}
}

// foldKind collapses chroma's token taxonomy into the four display kinds.
func foldKind(tt chromalib.TokenType) diffscope.TokenKind {
	switch tt {
	// Keywords, including type keywords
	case chromalib.Keyword, chromalib.KeywordConstant, chromalib.KeywordDeclaration,
		chromalib.KeywordNamespace, chromalib.KeywordPseudo, chromalib.KeywordReserved,
		chromalib.KeywordType:
		return diffscope.TokenKeyword

	// Strings
	case chromalib.String, chromalib.StringAffix, chromalib.StringBacktick, chromalib.StringChar,
		chromalib.StringDelimiter, chromalib.StringDoc, chromalib.StringDouble,
		chromalib.StringEscape, chromalib.StringHeredoc, chromalib.StringInterpol,
		chromalib.StringOther, chromalib.StringRegex, chromalib.StringSingle,
		chromalib.StringSymbol:
		return diffscope.TokenString

	// Comments
	case chromalib.Comment, chromalib.CommentHashbang, chromalib.CommentMultiline,
		chromalib.CommentPreproc, chromalib.CommentPreprocFile, chromalib.CommentSingle,
		chromalib.CommentSpecial:
		return diffscope.TokenComment

	default:
		return diffscope.TokenPlain
	}
}
