// Package git provides access to git operations via shell commands.
package git

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/fwojciec/diffscope"
)

// Compile-time interface verification.
var _ diffscope.Runner = (*Runner)(nil)

// Runner executes git commands via shell.
type Runner struct{}

// NewRunner creates a new git runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Diff returns unified diff text between rev and the working tree at
// repoPath. An empty rev diffs the working tree against HEAD.
func (r *Runner) Diff(ctx context.Context, repoPath, rev string) (string, error) {
	args := []string{"-C", repoPath, "diff"}
	if rev != "" {
		args = append(args, rev)
	}
	return run(ctx, "git diff", args)
}

// Show returns the diff introduced by a single commit hash.
func (r *Runner) Show(ctx context.Context, repoPath, hash string) (string, error) {
	args := []string{"-C", repoPath, "show", "--format=", hash}
	return run(ctx, "git show", args)
}

func run(ctx context.Context, op string, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("%s failed: %s", op, string(exitErr.Stderr))
		}
		return "", fmt.Errorf("%s failed: %w", op, err)
	}
	return string(output), nil
}
