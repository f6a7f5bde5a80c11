package cache

// ScopedKeyer wraps a Keyer with a prefix, isolating cache namespaces when
// several post sources share one backend (e.g. two serve instances pointed
// at different directories but the same Redis).
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to all keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ModelKey generates a prefixed key for model caching.
func (k *ScopedKeyer) ModelKey(postsHash string, opts ModelKeyOpts) string {
	return k.prefix + k.inner.ModelKey(postsHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(modelHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(modelHash, opts)
}
