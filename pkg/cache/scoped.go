package cache

// ScopedKeyer wraps a Keyer with a prefix so that several tools or users can
// share one backend, typically a Redis instance:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "vestools:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// A nil inner keyer means NewDefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) ComponentsKey(contentHash string) string {
	return k.prefix + k.inner.ComponentsKey(contentHash)
}

func (k *ScopedKeyer) ArtifactKey(componentsHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(componentsHash, opts)
}
