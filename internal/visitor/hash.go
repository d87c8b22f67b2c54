package visitor

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hasher turns visitor IPs into salted digests so raw addresses are never
// stored.
type Hasher struct {
	salt string
}

func NewHasher(salt string) *Hasher {
	return &Hasher{salt: salt}
}

// HashIP returns the hex SHA-256 of ip+salt.
func (h *Hasher) HashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + h.salt))
	return hex.EncodeToString(sum[:])
}
