package mock

import (
	"context"

	"github.com/fwojciec/diffscope"
)

// Compile-time interface verification.
var _ diffscope.Runner = (*Runner)(nil)

// Runner is a mock implementation of diffscope.Runner.
type Runner struct {
	DiffFn func(ctx context.Context, repoPath, rev string) (string, error)
	ShowFn func(ctx context.Context, repoPath, hash string) (string, error)
}

func (r *Runner) Diff(ctx context.Context, repoPath, rev string) (string, error) {
	return r.DiffFn(ctx, repoPath, rev)
}

func (r *Runner) Show(ctx context.Context, repoPath, hash string) (string, error) {
	return r.ShowFn(ctx, repoPath, hash)
}
