package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_PATH", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("TOKEN_DURATION", "")
	t.Setenv("LOG_LEVEL", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "./data/tripledger.db", cfg.DBPath)
	assert.Equal(t, 24*time.Hour, cfg.TokenDuration)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_PATH", "/tmp/ledger.db")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("TOKEN_DURATION", "30m")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "/tmp/ledger.db", cfg.DBPath)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 30*time.Minute, cfg.TokenDuration)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_BadDurationFallsBack(t *testing.T) {
	t.Setenv("TOKEN_DURATION", "soon")

	cfg := Load()
	assert.Equal(t, 24*time.Hour, cfg.TokenDuration)
}

func TestValidate(t *testing.T) {
	valid := &Config{Port: "8080", JWTSecret: "s3cret", TokenDuration: time.Hour}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name string
		cfg  *Config
		want string
	}{
		{
			name: "non-numeric port",
			cfg:  &Config{Port: "http", JWTSecret: "s3cret", TokenDuration: time.Hour},
			want: "invalid port",
		},
		{
			name: "port out of range",
			cfg:  &Config{Port: "70000", JWTSecret: "s3cret", TokenDuration: time.Hour},
			want: "invalid port",
		},
		{
			name: "missing secret",
			cfg:  &Config{Port: "8080", TokenDuration: time.Hour},
			want: "JWT_SECRET",
		},
		{
			name: "non-positive duration",
			cfg:  &Config{Port: "8080", JWTSecret: "s3cret"},
			want: "token duration",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
