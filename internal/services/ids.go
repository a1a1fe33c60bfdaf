package services

import (
	"crypto/rand"
	"fmt"
	"regexp"
)

const idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// DefaultIDLength is the length of generated share links.
const DefaultIDLength = 8

const maxSlugLength = 100

var slugPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// GenerateID returns a random alphanumeric identifier of the given length.
// Collision handling is the caller's job (existence check before write).
func GenerateID(length int) (string, error) {
	if length <= 0 {
		length = DefaultIDLength
	}
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate id: %w", err)
	}
	for i, b := range buf {
		buf[i] = idAlphabet[int(b)%len(idAlphabet)]
	}
	return string(buf), nil
}

// ValidateSlug checks a user-supplied custom link against the allowed
// charset and length.
func ValidateSlug(slug string) error {
	if len(slug) < 1 || len(slug) > maxSlugLength {
		return ErrInvalidSlug
	}
	if !slugPattern.MatchString(slug) {
		return ErrInvalidSlug
	}
	return nil
}
