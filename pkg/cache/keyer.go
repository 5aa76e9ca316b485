package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// RenderKeyOpts lists everything besides the input that changes a rendering.
type RenderKeyOpts struct {
	Engine   string  `json:"engine"`
	Format   string  `json:"format"`
	DPI      int     `json:"dpi"`
	WidthIn  float64 `json:"width_in"`
	HeightIn float64 `json:"height_in"`
	Title    string  `json:"title"`
	Seed     int64   `json:"seed"`
}

// Keyer derives cache keys.
type Keyer interface {
	// RenderKey returns the key for rendering the input whose content hash
	// is inputHash with the given options.
	RenderKey(inputHash string, opts RenderKeyOpts) string
}

// DefaultKeyer hashes the input hash together with the options.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// RenderKey implements [Keyer]. The key is "render:" followed by the
// SHA-256 of the input hash and options encoded as one JSON object.
func (DefaultKeyer) RenderKey(inputHash string, opts RenderKeyOpts) string {
	data, _ := json.Marshal(struct {
		Input string        `json:"input"`
		Opts  RenderKeyOpts `json:"opts"`
	}{inputHash, opts})
	return "render:" + Hash(data)
}

// Hash returns the hex SHA-256 of data. Datasets are identified by the
// hash of their raw JSON, and file cache entries are named by the hash of
// their key.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
