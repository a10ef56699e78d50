// Package cache provides result caching for the solve and render pipelines.
//
// Scene documents are pure inputs: the same document and bounds always
// resolve to the same frames, so solve results and rendered artifacts are
// safe to cache keyed on a content hash. Backends share one interface:
//
//   - FileCache for CLI usage (entries on disk with optional expiry)
//   - RedisCache for the HTTP server
//   - NullCache to disable caching
package cache

import (
	"context"
	"time"
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any backend resources.
	Close() error
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// SolveKey generates a key for resolved frames, keyed on the scene
	// document hash.
	SolveKey(docHash string) string

	// RenderKey generates a key for rendered artifacts (DOT, SVG).
	RenderKey(docHash, format string) string
}

// DefaultKeyer is the standard key scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// SolveKey generates a key for resolved frames.
func (k *DefaultKeyer) SolveKey(docHash string) string {
	return "solve:" + docHash
}

// RenderKey generates a key for rendered artifacts.
func (k *DefaultKeyer) RenderKey(docHash, format string) string {
	return hashKey("render", docHash, format)
}
