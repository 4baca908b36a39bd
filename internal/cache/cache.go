package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for response caching
type Cache interface {
	Get(key string) (string, bool)
	Set(key string, value string, ttl time.Duration)
	Clear()
}

// Key generates a cache key from a model name and prompt
func Key(model, prompt string) string {
	hash := sha256.Sum256([]byte(model + "\x00" + prompt))
	return "canoncheck:v1:" + hex.EncodeToString(hash[:])
}
