package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, newCmd(cfg).ParseFlags([]string{"--discord-token", "token"}))
	assert.NoError(t, cfg.validate())

	cfg.port = 0
	assert.Error(t, cfg.validate())

	cfg.port = 8080
	cfg.frameEvery = 0
	assert.Error(t, cfg.validate())

	cfg.frameEvery = 5
	cfg.discordToken = ""
	assert.Error(t, cfg.validate())
}

func TestFlagsFromEnvironment(t *testing.T) {
	t.Setenv("LUNCHWHEEL_PORT", "9090")
	t.Setenv("LUNCHWHEEL_DOCUMENT_ID", "team_list")

	cfg := &Config{}
	cmd := newCmd(cfg)
	require.NoError(t, cmd.ParseFlags(nil))

	assert.Equal(t, 9090, cfg.port)
	assert.Equal(t, "team_list", cfg.documentID)
	assert.Equal(t, "localhost:6379", cfg.redisAddr)
}

func TestResolvedPublicURL(t *testing.T) {
	cfg := &Config{bind: "0.0.0.0", port: 8080}
	assert.Equal(t, "http://localhost:8080", cfg.resolvedPublicURL())

	cfg.bind = "10.0.0.2"
	assert.Equal(t, "http://10.0.0.2:8080", cfg.resolvedPublicURL())

	cfg.publicURL = "https://wheel.example.com"
	assert.Equal(t, "https://wheel.example.com", cfg.resolvedPublicURL())
}
