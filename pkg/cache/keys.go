package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Keyer derives cache keys.
type Keyer interface {
	// DiagramKey identifies the diagram produced from a forest.
	DiagramKey(forestHash string, opts DiagramKeyOpts) string
	// ArtifactKey identifies one rendered output of a diagram.
	ArtifactKey(diagramHash string, opts ArtifactKeyOpts) string
}

// DiagramKeyOpts holds everything besides the forest that changes a layout.
type DiagramKeyOpts struct {
	Strategy  string   `json:"strategy"`
	Anchors   []string `json:"anchors,omitempty"`
	Selection []string `json:"selection,omitempty"`
	Layout    any      `json:"layout"`
}

// ArtifactKeyOpts holds everything besides the diagram that changes an
// artifact.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Style  string  `json:"style,omitempty"`
	Labels bool    `json:"labels"`
	Scale  float64 `json:"scale,omitempty"`
	Margin float64 `json:"margin,omitempty"`
}

// DefaultKeyer builds keys as "<kind>:<sha256 of the inputs>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// DiagramKey implements [Keyer].
func (DefaultKeyer) DiagramKey(forestHash string, opts DiagramKeyOpts) string {
	return hashKey("diagram", forestHash, opts)
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(diagramHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", diagramHash, opts)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// ScopedKeyer prefixes the keys of another Keyer. The CLI scopes keys by
// build so a changed walker never serves a diagram laid out by an older one.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), buildinfo.CacheScope())
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = DefaultKeyer{}
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) DiagramKey(forestHash string, opts DiagramKeyOpts) string {
	return k.prefix + k.inner.DiagramKey(forestHash, opts)
}

func (k *ScopedKeyer) ArtifactKey(diagramHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(diagramHash, opts)
}
