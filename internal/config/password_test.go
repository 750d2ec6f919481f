package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPasswordConfig_Defaults(t *testing.T) {
	t.Setenv("BCRYPT_COST", "")
	t.Setenv("PASSWORD_PEPPER", "")

	cfg, err := NewPasswordConfig()
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Empty(t, cfg.Pepper)
}

func TestNewPasswordConfig_CostOutOfRange(t *testing.T) {
	for _, cost := range []string{"9", "15", "abc"} {
		t.Run(cost, func(t *testing.T) {
			t.Setenv("BCRYPT_COST", cost)
			_, err := NewPasswordConfig()
			assert.Error(t, err)
		})
	}
}

func TestPasswordConfig_HashAndVerify(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: 10}

	hash, err := cfg.HashPassword("correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", hash)

	assert.True(t, cfg.VerifyPassword("correct horse battery", hash))
	assert.False(t, cfg.VerifyPassword("wrong", hash))
}

func TestPasswordConfig_PepperChangesVerification(t *testing.T) {
	peppered := &PasswordConfig{BcryptCost: 10, Pepper: "pepper"}
	plain := &PasswordConfig{BcryptCost: 10}

	hash, err := peppered.HashPassword("secret-password")
	require.NoError(t, err)

	assert.True(t, peppered.VerifyPassword("secret-password", hash))
	assert.False(t, plain.VerifyPassword("secret-password", hash))
}

func TestPasswordConfig_RejectsOverlongPassword(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: 10}
	long := make([]byte, 80)
	for i := range long {
		long[i] = 'a'
	}

	_, err := cfg.HashPassword(string(long))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "password too long")
}
