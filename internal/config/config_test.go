package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 20, cfg.App.RateLimitPerMinute)
	assert.Equal(t, 5, cfg.Vector.TopK)
	assert.InDelta(t, 0.75, cfg.Vector.MinScore, 1e-9)
	assert.Equal(t, 3600, cfg.Session.TTLSeconds)
	assert.Equal(t, 16, cfg.Session.ShortWindow)
	assert.False(t, cfg.Events.NatsEnabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("RAG_MIN_SCORE", "0.8")
	t.Setenv("SESSION_STORE", "redis")
	t.Setenv("NATS_ENABLED", "true")
	t.Setenv("RAG_TOP_K", "not-a-number")

	cfg := Load()

	assert.InDelta(t, 0.8, cfg.Vector.MinScore, 1e-9)
	assert.Equal(t, "redis", cfg.Session.Store)
	assert.True(t, cfg.Events.NatsEnabled)
	assert.Equal(t, 5, cfg.Vector.TopK)
}
