package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordRoundTrip(t *testing.T) {
	passwords := []string{"a", "secret", "pa55w0rd!", "日本語", "with spaces here"}
	for _, p := range passwords {
		digest := HashPassword(p)
		assert.True(t, VerifyPassword(p, digest), "password %q must verify against its own digest", p)
		assert.False(t, VerifyPassword(p+"x", digest), "modified password must not verify")
	}
}

func TestPasswordDigestDeterministic(t *testing.T) {
	assert.Equal(t, HashPassword("secret"), HashPassword("secret"))
	assert.NotEqual(t, HashPassword("secret"), HashPassword("Secret"))
}

func TestPasswordVerifyMismatch(t *testing.T) {
	assert.False(t, VerifyPassword("p", HashPassword("q")))
	assert.False(t, VerifyPassword("secret", "not-a-digest"))
}
