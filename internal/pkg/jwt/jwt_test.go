package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRevokeToken_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", "15m", "168h")

	assert.False(t, svc.IsTokenRevoked("tok"))
	svc.RevokeToken("tok")
	assert.True(t, svc.IsTokenRevoked("tok"))
}

func TestPruneRevokedTokens_DropsExpiredEntries(t *testing.T) {
	svc := NewJWTService("test-secret", "15m", "168h")

	svc.RevokeToken("stale")
	svc.RevokeToken("fresh")

	// Nothing predates the refresh TTL yet.
	assert.Equal(t, 0, svc.PruneRevokedTokens(time.Now()))
	assert.True(t, svc.IsTokenRevoked("stale"))
	assert.True(t, svc.IsTokenRevoked("fresh"))

	// Once the clock moves past the TTL both entries are droppable; the
	// tokens they blocked have expired on their own.
	removed := svc.PruneRevokedTokens(time.Now().Add(169 * time.Hour))
	assert.Equal(t, 2, removed)
	assert.False(t, svc.IsTokenRevoked("stale"))
	assert.False(t, svc.IsTokenRevoked("fresh"))
}
