package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

// ArtifactKeyOpts holds the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Style      string  `json:"style,omitempty"`
	Scale      float64 `json:"scale,omitempty"`
	Dimensions bool    `json:"dimensions,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey returns the key for the layout computed from an input hash.
	LayoutKey(inputHash string) string

	// ArtifactKey returns the key for an artifact rendered from a layout hash.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces "layout:<input hash>" and
// "artifact:<format>:<hash of layout hash and options>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer as a Keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) LayoutKey(inputHash string) string {
	return "layout:" + inputHash
}

// ArtifactKey keeps the format readable so entries can be told apart in
// redis-cli without decoding them.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	// Marshalling a flat struct of scalars cannot fail.
	data, _ := json.Marshal(struct {
		Layout string          `json:"layout"`
		Opts   ArtifactKeyOpts `json:"opts"`
	}{layoutHash, opts})
	return "artifact:" + opts.Format + ":" + Hash(data)
}

// Namespace prefixes every key of inner with the given parts joined by
// colons, e.g. Namespace(nil, "doorpanels", "v1") yields
// "doorpanels:v1:layout:<hash>". A nil inner uses the DefaultKeyer.
func Namespace(inner Keyer, parts ...string) Keyer {
	if inner == nil {
		inner = DefaultKeyer{}
	}
	prefix := strings.Join(parts, ":")
	if prefix != "" {
		prefix += ":"
	}
	return namespaced{inner: inner, prefix: prefix}
}

type namespaced struct {
	inner  Keyer
	prefix string
}

func (k namespaced) LayoutKey(inputHash string) string {
	return k.prefix + k.inner.LayoutKey(inputHash)
}

func (k namespaced) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashJSON hashes the JSON encoding of v. Struct fields encode in
// declaration order, so equal values hash equally. Values json cannot
// encode, such as NaN, return an error.
func HashJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return Hash(data), nil
}
