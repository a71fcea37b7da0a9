package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// ETag returns a strong entity tag derived from the SHA-256 of data.
func ETag(data []byte) string {
	sum := sha256.Sum256(data)
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}
