package engine

import (
	"time"

	"github.com/fwojciec/diffscope"
)

// Default configuration values.
const (
	DefaultContextLines  = 3
	DefaultMaxFileSize   = 10 * 1024 * 1024 // 10 MiB
	DefaultCacheCapacity = 256
	DefaultCacheTTL      = 10 * time.Minute
)

// Config controls diff computation.
type Config struct {
	Algorithm        diffscope.Algorithm // Edit-script strategy
	ContextLines     int                 // Unchanged lines kept around each change
	WordLevelDiff    bool                // Attach intra-line highlight spans
	IgnoreWhitespace bool                // Compare lines with surrounding whitespace trimmed
	MaxFileSize      int64               // Per-buffer size limit in bytes, 0 disables the guard
	EnableCache      bool                // Reuse previously computed results
	CacheCapacity    int                 // Maximum cached results
	CacheTTL         time.Duration       // Cached result lifetime, 0 disables expiry
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Algorithm:        diffscope.AlgorithmMyers,
		ContextLines:     DefaultContextLines,
		WordLevelDiff:    true,
		IgnoreWhitespace: false,
		MaxFileSize:      DefaultMaxFileSize,
		EnableCache:      true,
		CacheCapacity:    DefaultCacheCapacity,
		CacheTTL:         DefaultCacheTTL,
	}
}
