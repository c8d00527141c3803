package mock

import (
	"github.com/fwojciec/diffscope"
)

// Compile-time interface verification.
var _ diffscope.Copier = (*Copier)(nil)

// Copier is a mock implementation of diffscope.Copier.
type Copier struct {
	CopyFn func(text string) error
}

func (c *Copier) Copy(text string) error {
	return c.CopyFn(text)
}
