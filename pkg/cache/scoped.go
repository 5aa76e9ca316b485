package cache

// ScopedKeyer prefixes every key from an inner Keyer. The CLI scopes keys by
// build version so an upgrade never serves images drawn by older code.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner uses
// [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// RenderKey implements [Keyer].
func (k *ScopedKeyer) RenderKey(inputHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(inputHash, opts)
}
