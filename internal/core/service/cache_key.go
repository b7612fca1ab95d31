package service

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// CacheKey derives the cache key for a translation. The prompt already embeds
// the sanitized fields and target language, so identical sanitized requests
// map to the same key.
func CacheKey(model, language, prompt string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%s", model, language, prompt)))
	return hex.EncodeToString(sum[:])
}
