package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.AggregateTimeout)
	assert.Equal(t, int32(16), cfg.Database.MaxConns)
	assert.Equal(t, int32(2), cfg.Database.MinConns)
	assert.Equal(t, 120, cfg.RateLimit.Requests)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Empty(t, cfg.Audit.Brokers)
	assert.Equal(t, "fundsight.query-audit", cfg.Audit.Topic)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("FUNDSIGHT_ADDR", ":9090")
	t.Setenv("FUNDSIGHT_AGGREGATE_TIMEOUT", "3s")
	t.Setenv("DATABASE_MAX_CONNS", "32")
	t.Setenv("AUDIT_BROKERS", "broker1:9092, broker2:9092 ,")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 3*time.Second, cfg.AggregateTimeout)
	assert.Equal(t, int32(32), cfg.Database.MaxConns)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.Audit.Brokers)
}

func TestFromEnvRejectsMalformedValues(t *testing.T) {
	t.Run("non-numeric conn count", func(t *testing.T) {
		t.Setenv("DATABASE_MAX_CONNS", "many")
		_, err := FromEnv()
		assert.Error(t, err)
	})

	t.Run("non-duration timeout", func(t *testing.T) {
		t.Setenv("FUNDSIGHT_AGGREGATE_TIMEOUT", "soon")
		_, err := FromEnv()
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	valid := Server{
		Database:         Database{URL: "postgres://localhost/fundsight", MaxConns: 8, MinConns: 2},
		AggregateTimeout: 10 * time.Second,
		RateLimit:        RateLimit{Requests: 100, Window: time.Minute},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Server)
	}{
		{"missing database URL", func(c *Server) { c.Database.URL = "" }},
		{"zero max conns", func(c *Server) { c.Database.MaxConns = 0 }},
		{"min conns above max", func(c *Server) { c.Database.MinConns = 9 }},
		{"zero aggregate timeout", func(c *Server) { c.AggregateTimeout = 0 }},
		{"zero rate limit requests", func(c *Server) { c.RateLimit.Requests = 0 }},
		{"zero rate limit window", func(c *Server) { c.RateLimit.Window = 0 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
