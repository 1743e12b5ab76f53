package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenExpiryBoundary(t *testing.T) {
	expiry := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	token := &EmailVerificationToken{ExpiresAt: expiry}

	assert.False(t, token.IsExpired(expiry.Add(-time.Second)))
	assert.True(t, token.IsExpired(expiry), "the expiry instant itself is expired")
	assert.True(t, token.IsExpired(expiry.Add(time.Second)))

	assert.True(t, token.IsLive(expiry.Add(-time.Second)))
	assert.False(t, token.IsLive(expiry))

	token.IsUsed = true
	assert.False(t, token.IsLive(expiry.Add(-time.Second)))
}
