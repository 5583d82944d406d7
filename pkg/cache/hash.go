package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// ResponseKey is the key of a cached aggregation response:
// response:<endpoint>:<sha256(url)>.
func ResponseKey(endpoint, url string) string {
	return "response:" + endpoint + ":" + Hash([]byte(url))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
