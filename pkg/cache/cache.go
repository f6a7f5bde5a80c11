// Package cache provides content-addressed caching for graph models and
// rendered artifacts.
//
// Building a model from a post directory is cheap, but rasterizing artifacts
// (PNG via Graphviz in particular) is not, so the pipeline caches both
// stages keyed by content hashes. Backends:
//   - file: per-user cache directory for CLI usage
//   - redis: shared cache for multi-instance serve deployments
//   - mongo: shared cache where an operator already runs MongoDB
//   - null: caching disabled
package cache

import (
	"context"
	"time"
)

// TTLs for the cached stages.
const (
	// TTLModel is how long built graph models stay cached.
	TTLModel = 24 * time.Hour

	// TTLArtifact is how long rendered artifacts stay cached.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ModelKeyOpts are the inputs that change a built model beyond the post
// content itself.
type ModelKeyOpts struct {
	// Today is the day-normalized current date, RFC 3339.
	Today string
	// RowHeight through LabelWidth mirror the layout configuration.
	RowHeight     float64
	PaddingTop    float64
	PaddingBottom float64
	MainX         float64
	BranchSpacing float64
	LabelWidth    float64
}

// ArtifactKeyOpts are the inputs that change a rendered artifact for a
// fixed model.
type ArtifactKeyOpts struct {
	Format   string
	Style    string
	View     string
	NoLabels bool
	Detailed bool
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// ModelKey keys a built graph model by the posts' content hash and the
	// build options.
	ModelKey(postsHash string, opts ModelKeyOpts) string

	// ArtifactKey keys a rendered artifact by the model's content hash and
	// the render options.
	ArtifactKey(modelHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ModelKey generates a key for model caching.
func (k *DefaultKeyer) ModelKey(postsHash string, opts ModelKeyOpts) string {
	return hashKey("model", postsHash, opts)
}

// ArtifactKey generates a key for artifact caching.
func (k *DefaultKeyer) ArtifactKey(modelHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", modelHash, opts)
}
