package cache

// Keyer builds cache keys for the artifacts aplet caches.
type Keyer interface {
	// ReportKey identifies the parsed outcomes of a test report by the hash
	// of its contents.
	ReportKey(contentHash string) string

	// ModelKey identifies a parsed feature model by the hash of its contents.
	ModelKey(contentHash string) string
}

// keyVersion is bumped whenever the cached encoding changes.
const keyVersion = "v1"

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ReportKey implements Keyer.
func (DefaultKeyer) ReportKey(contentHash string) string {
	return hashKey("report", keyVersion, contentHash)
}

// ModelKey implements Keyer.
func (DefaultKeyer) ModelKey(contentHash string) string {
	return hashKey("model", keyVersion, contentHash)
}
