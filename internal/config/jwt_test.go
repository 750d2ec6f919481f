package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJWTConfig_DefaultValues(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-0123")
	t.Setenv("JWT_EXPIRATION_HOURS", "")
	t.Setenv("JWT_ISSUER", "")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, "test-secret-key-0123", cfg.Secret)
	assert.Equal(t, 24, cfg.ExpirationHours, "should use default expiration of 24 hours")
	assert.Equal(t, DefaultJWTIssuer, cfg.Issuer)
}

func TestNewJWTConfig_CustomValues(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-0123")
	t.Setenv("JWT_EXPIRATION_HOURS", "48")
	t.Setenv("JWT_ISSUER", "studio-test")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, 48, cfg.ExpirationHours)
	assert.Equal(t, "studio-test", cfg.Issuer)
}

func TestNewJWTConfig_Errors(t *testing.T) {
	tests := []struct {
		name       string
		secret     string
		expiration string
		wantErr    string
	}{
		{"missing secret", "", "", "JWT_SECRET is required"},
		{"short secret", "short", "", "at least 16 characters"},
		{"non-numeric expiration", "test-secret-key-0123", "soon", "invalid JWT_EXPIRATION_HOURS"},
		{"zero expiration", "test-secret-key-0123", "0", "at least 1 hour"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", tt.secret)
			t.Setenv("JWT_EXPIRATION_HOURS", tt.expiration)

			cfg, err := NewJWTConfig()
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
