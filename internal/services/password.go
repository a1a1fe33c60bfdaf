package services

import (
	"crypto/subtle"
	"encoding/base64"

	"golang.org/x/crypto/blake2b"
)

// HashPassword returns the base64-encoded one-way digest of plaintext.
// Deliberately deterministic and unsalted: verification is recompute and
// compare, and the same password always yields the same stored value.
func HashPassword(plaintext string) string {
	sum := blake2b.Sum256([]byte(plaintext))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// VerifyPassword reports whether plaintext hashes to digest.
func VerifyPassword(plaintext, digest string) bool {
	computed := HashPassword(plaintext)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(digest)) == 1
}
