// Package fs handles the filesystem concerns around the diff pipeline:
// locating the config file, loading input files, and watching them for
// changes.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

// DefaultConfigPath returns the default config file location. Uses
// XDG_CONFIG_HOME if set, otherwise falls back to ~/.config/diffscope,
// or the system temp directory if home is unavailable.
func DefaultConfigPath() string {
	return filepath.Join(configDir(), "config.toml")
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "diffscope")
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(os.TempDir(), "diffscope")
	}
	return filepath.Join(home, ".config", "diffscope")
}

// LoadFiles reads every path concurrently and returns the contents in the
// same order. Any single failure fails the whole load.
func LoadFiles(ctx context.Context, paths ...string) ([]string, error) {
	contents := make([]string, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			contents[i] = string(data)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return contents, nil
}
