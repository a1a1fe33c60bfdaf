package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateExpiry(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		token string
		want  *time.Duration
	}{
		{name: "one hour", token: "1h", want: dur(time.Hour)},
		{name: "one day", token: "1d", want: dur(24 * time.Hour)},
		{name: "seven days", token: "7d", want: dur(7 * 24 * time.Hour)},
		{name: "thirty days", token: "30d", want: dur(30 * 24 * time.Hour)},
		{name: "never", token: "never", want: nil},
		{name: "unknown token falls back to one day", token: "2w", want: dur(24 * time.Hour)},
		{name: "empty token falls back to one day", token: "", want: dur(24 * time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateExpiry(tt.token, now)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, now.Add(*tt.want), *got)
		})
	}
}

func dur(d time.Duration) *time.Duration {
	return &d
}

func TestIsExpired(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	assert.False(t, IsExpired(nil, now), "nil expiry never expires")
	assert.True(t, IsExpired(&past, now))
	assert.False(t, IsExpired(&future, now))
}
