package cache

// ScopedKeyer wraps a Keyer with a prefix so several product lines can share
// one backend, typically a Redis instance used by many CI pipelines.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "todoapp:")
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

// ReportKey generates a prefixed report key.
func (k *ScopedKeyer) ReportKey(contentHash string) string {
	return k.prefix + k.inner.ReportKey(contentHash)
}

// ModelKey generates a prefixed model key.
func (k *ScopedKeyer) ModelKey(contentHash string) string {
	return k.prefix + k.inner.ModelKey(contentHash)
}
