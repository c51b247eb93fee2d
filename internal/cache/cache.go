package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores serialized detector scores
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// ScoreKey builds a cache key for one detector answer. Claim text and
// evidence both feed the hash: the same sentence checked against
// different evidence is a different question.
func ScoreKey(kind, claimText, evidence string) string {
	h := sha256.New()
	h.Write([]byte(kind))
	h.Write([]byte{0})
	h.Write([]byte(claimText))
	h.Write([]byte{0})
	h.Write([]byte(evidence))
	return "thindex:v1:" + hex.EncodeToString(h.Sum(nil))
}
