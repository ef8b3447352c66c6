package cache

// ScopedKeyer wraps a Keyer with a prefix so several reveal instances can
// share one cache without reading each other's entries.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "instance:"+seq.ID()+":")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// LayerKey generates a prefixed key for layer caching.
func (k *ScopedKeyer) LayerKey(imageHash string, opts LayerKeyOpts) string {
	return k.prefix + k.inner.LayerKey(imageHash, opts)
}
