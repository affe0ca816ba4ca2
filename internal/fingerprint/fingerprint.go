package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
)

// Compute returns the hex-encoded SHA-256 digest of the raw image bytes.
// Pure function of the input: same bytes, same digest, across processes and
// time. The digest doubles as an anti-replay key, so a cryptographic hash is
// required here, not a fast content hash.
func Compute(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// FromReader streams the input through the hasher without buffering it all.
func FromReader(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
