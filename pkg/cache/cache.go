// Package cache memoizes render work between runs.
//
// Scenes are expensive to build (the label solver is quadratic in the number
// of labels), and rendering the same workbook twice is common: the CLI is
// re-run after editing unrelated files, and the server re-renders on every
// reload. Entries are keyed by a hash of everything the output depends on,
// so a changed input never hits a stale entry.
//
// The cache is disposable. Deleting it at any time only costs recomputation.
//
// # Backends
//
//   - [FileCache]: one file per entry under a directory (CLI default)
//   - [RedisCache]: a shared Redis instance (server deployments)
//   - [NullCache]: caching disabled
package cache

import (
	"context"
	"time"
)

// Default lifetimes for cached entries.
const (
	SceneTTL    = 7 * 24 * time.Hour
	ArtifactTTL = 7 * 24 * time.Hour
)

// Cache stores opaque byte values under string keys.
type Cache interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A non-positive ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by backends that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Clear drops every entry of c if the backend supports it.
func Clear(ctx context.Context, c Cache) error {
	if cl, ok := c.(Clearer); ok {
		return cl.Clear(ctx)
	}
	return nil
}

// SceneKeyOpts are the render options a scene depends on.
type SceneKeyOpts struct {
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Iterations int     `json:"iterations"`
}

// ArtifactKeyOpts are the options an output artifact depends on.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Scale  float64 `json:"scale,omitempty"`
	Axes   bool    `json:"axes"`

	ExportHeight float64 `json:"export_height,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// SceneKey keys a laid-out scene by the hash of its dataset.
	SceneKey(datasetHash string, opts SceneKeyOpts) string
	// ArtifactKey keys a serialized output by the scene it was made from.
	ArtifactKey(sceneID string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes every option into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) SceneKey(datasetHash string, opts SceneKeyOpts) string {
	return hashKey("scene", datasetHash, opts)
}

func (DefaultKeyer) ArtifactKey(sceneID string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sceneID, opts)
}
