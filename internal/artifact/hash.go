package artifact

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashContent returns the SHA-256 digest of content, hex-encoded.
//
// The digest is the deduplication key for versions: two saves with the same
// digest are treated as the same content. Collisions are treated as
// statistically impossible rather than as a recoverable error case.
func HashContent(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
