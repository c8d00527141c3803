package diffscope

// Token represents a syntax-classified segment of a source line.
type Token struct {
	Text string    // The text content of this token
	Kind TokenKind // Display classification
}

// TokenKind classifies a token for display styling.
type TokenKind int

// Token kinds. Anything the tokenizer cannot classify is Plain.
const (
	TokenPlain TokenKind = iota
	TokenKeyword
	TokenString
	TokenComment
)

// String returns the lowercase name of the token kind.
func (k TokenKind) String() string {
	switch k {
	case TokenKeyword:
		return "keyword"
	case TokenString:
		return "string"
	case TokenComment:
		return "comment"
	default:
		return "plain"
	}
}

// Tokenizer splits a source line into classified tokens.
type Tokenizer interface {
	// TokenizeLine splits one line of source code into tokens for the given
	// language. Unsupported languages and overlong lines yield a single
	// Plain token covering the whole line; an empty line yields nil.
	TokenizeLine(line, language string) []Token
}

// LanguageDetector determines the programming language from a file path.
type LanguageDetector interface {
	// DetectLanguage returns the language tag for the given path, or the
	// detector's default when the extension is unknown. Accepts paths with
	// or without "a/" or "b/" prefixes (common in diffs).
	DetectLanguage(path string) string
}
