// Package clipboard provides system clipboard access for diff yanking.
package clipboard

import (
	"github.com/atotto/clipboard"

	"github.com/fwojciec/diffscope"
)

// Compile-time interface verification.
var _ diffscope.Copier = (*Copier)(nil)

// Copier implements diffscope.Copier via atotto/clipboard, which resolves
// the platform mechanism (pbcopy, xclip, wl-copy, windows API) at runtime.
type Copier struct{}

// NewCopier returns a new system clipboard copier.
func NewCopier() *Copier {
	return &Copier{}
}

// Copy places text on the system clipboard.
func (c *Copier) Copy(text string) error {
	return clipboard.WriteAll(text)
}
