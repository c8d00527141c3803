// Package mock provides test doubles for diffscope interfaces.
package mock

import (
	"io"

	"github.com/fwojciec/diffscope"
)

// Compile-time interface verification.
var _ diffscope.Parser = (*Parser)(nil)

// Parser is a mock implementation of diffscope.Parser.
type Parser struct {
	ParseFn func(r io.Reader) (*diffscope.Diff, error)
}

func (p *Parser) Parse(r io.Reader) (*diffscope.Diff, error) {
	return p.ParseFn(r)
}
