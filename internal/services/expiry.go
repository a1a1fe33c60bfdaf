package services

import (
	"time"
)

// ExpiryNever is the duration token for shares that never expire.
const ExpiryNever = "never"

// expiryOffsets maps duration tokens to their offsets from creation time.
var expiryOffsets = map[string]time.Duration{
	"1h":  time.Hour,
	"1d":  24 * time.Hour,
	"7d":  7 * 24 * time.Hour,
	"30d": 30 * 24 * time.Hour,
}

// CalculateExpiry resolves a duration token relative to now. "never" yields
// nil; an unrecognized token falls back to the 1d offset rather than
// erroring.
func CalculateExpiry(token string, now time.Time) *time.Time {
	if token == ExpiryNever {
		return nil
	}
	offset, ok := expiryOffsets[token]
	if !ok {
		offset = expiryOffsets["1d"]
	}
	t := now.Add(offset)
	return &t
}

// IsExpired reports whether expiresAt lies before now. nil never expires.
func IsExpired(expiresAt *time.Time, now time.Time) bool {
	if expiresAt == nil {
		return false
	}
	return now.After(*expiresAt)
}
