// Package cache stores prepared render layers between runs.
//
// Decoding an image, fitting it to the canvas and running the sketch filter
// are the expensive steps of every render. Their outputs depend only on the
// image bytes and a handful of options, so they are cached as PNG bytes under
// a content-derived key.
//
// [FileCache] serves the CLI from the XDG cache directory. [RedisCache] and
// [MongoCache] share layers between hosts. [NullCache] disables caching.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long prepared layers stay valid.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the cached value and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// LayerKeyOpts holds the options that affect a prepared layer.
type LayerKeyOpts struct {
	Layer     string  `json:"layer"` // "color" or "sketch"
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Fit       string  `json:"fit"`
	Theme     string  `json:"theme,omitempty"`
	Slope     float64 `json:"slope,omitempty"`
	Intercept float64 `json:"intercept,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// LayerKey generates a key for a prepared layer of the image with the given hash.
	LayerKey(imageHash string, opts LayerKeyOpts) string
}

// DefaultKeyer generates unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a keyer without a prefix.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayerKey hashes the image hash together with the layer options.
func (DefaultKeyer) LayerKey(imageHash string, opts LayerKeyOpts) string {
	return layerDigest(imageHash, opts)
}
