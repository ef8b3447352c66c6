package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// layerVersion is bumped when the encoding of cached layers changes, so old
// entries stop matching instead of decoding into wrong pixels.
const layerVersion = "v1"

// Hash returns the hex SHA-256 of data. Images are keyed by their bytes: the
// same photo loaded from a path or a URL shares its cached layers.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// layerDigest returns "layer:v1:<sha256>" over the image hash and the JSON
// form of opts. Struct field order keeps the encoding stable.
func layerDigest(imageHash string, opts LayerKeyOpts) string {
	h := sha256.New()
	h.Write([]byte(imageHash))
	h.Write([]byte{0})
	enc, _ := json.Marshal(opts)
	h.Write(enc)
	return "layer:" + layerVersion + ":" + hex.EncodeToString(h.Sum(nil))
}
