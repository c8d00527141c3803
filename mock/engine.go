package mock

import (
	"context"

	"github.com/fwojciec/diffscope"
)

// Compile-time interface verification.
var _ diffscope.Engine = (*Engine)(nil)

// Engine is a mock implementation of diffscope.Engine.
type Engine struct {
	ComputeFn func(ctx context.Context, old, new, path string) (*diffscope.FileDiff, error)
}

func (e *Engine) Compute(ctx context.Context, old, new, path string) (*diffscope.FileDiff, error) {
	return e.ComputeFn(ctx, old, new, path)
}
