package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestServerConfig(t *testing.T) {
	cfg := serverConfig("wire-secret", time.Hour, "/tmp/spool")
	assert.Equal(t, []byte("wire-secret"), cfg.Secret)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, "/tmp/spool", cfg.SpoolDir)
}

func TestServerConfig_EmptySecretStaysEmpty(t *testing.T) {
	cfg := serverConfig("", time.Hour, "spool")
	assert.Empty(t, cfg.Secret)
}
