// Package cache stores serialized engine analysis results so repeated
// checks of the same text do not repeat remote engine calls.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Cache is the storage interface shared by the memory, disk and layered
// implementations.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) error
	Delete(key string) error
	Clear() error
}

// Key derives a stable cache key from the parts that determine an
// analysis result: backend model, text, ignore list.
func Key(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return "textcheck:v1:" + hex.EncodeToString(hash[:])
}
