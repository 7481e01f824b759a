package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// HashString computes an HMAC-SHA256 signature over the given string
// using the provided hash key and returns the result as a hex-encoded string.
//
// A new HMAC instance is created on each call.
//
// Example usage:
//
//	signature := utils.HashString("some data", "my-secret-key")
func HashString(data string, hashKey string) string {
	return hex.EncodeToString(hashString([]byte(data), hashKey))
}

// hashString computes an HMAC-SHA256 digest over the given byte slice
// using the provided hash key.
func hashString(data []byte, hashKey string) []byte {
	hasher := hmac.New(sha256.New, []byte(hashKey))
	hasher.Write(data)
	return hasher.Sum(nil)
}

// Redactor replaces personal data in log fields with a short keyed digest,
// so entries about the same address can still be correlated.
type Redactor struct {
	hashKey string
}

// NewRedactor returns a Redactor keyed with hashKey.
func NewRedactor(hashKey string) *Redactor {
	return &Redactor{hashKey: hashKey}
}

// Redact returns the first 16 hex characters of the HMAC of value.
// A nil receiver returns a constant placeholder.
func (r *Redactor) Redact(value string) string {
	if r == nil {
		return "redacted"
	}
	return HashString(value, r.hashKey)[:16]
}
