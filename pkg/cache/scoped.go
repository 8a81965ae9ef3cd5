package cache

// ScopedKeyer wraps a Keyer with a prefix, giving one process its own key
// namespace inside a shared backend. The server uses it so that several
// instances behind one Redis do not evict each other's artifacts.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "serve:fishmarket:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// A nil inner keyer means the default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) SceneKey(datasetHash string, opts SceneKeyOpts) string {
	return k.prefix + k.inner.SceneKey(datasetHash, opts)
}

func (k *ScopedKeyer) ArtifactKey(sceneID string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(sceneID, opts)
}
