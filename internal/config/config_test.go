package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_DSN", "postgres://localhost:5432/dispatch_test")
	t.Setenv("JWT_SECRET", "unit-test-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.IsProduction)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 15*time.Minute, cfg.JWTAccessTokenTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, GuardNativeExclusion, cfg.ConflictGuard)
	assert.Equal(t, "./data/photos", cfg.StoragePath)
}

func TestLoadRequiresDSN(t *testing.T) {
	t.Setenv("DB_DSN", "")
	t.Setenv("JWT_SECRET", "unit-test-secret")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost:5432/dispatch_test")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadConflictGuard(t *testing.T) {
	for _, guard := range []string{GuardNativeExclusion, GuardSerialized, GuardAdvisoryOnly} {
		t.Run(guard, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv("CONFLICT_GUARD", guard)

			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, guard, cfg.ConflictGuard)
		})
	}

	t.Run("unknown guard rejected", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("CONFLICT_GUARD", "optimistic")

		_, err := Load()
		assert.Error(t, err)
	})
}

func TestLoadProduction(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_ENV", "prod")
	t.Setenv("PROD_ORIGINS", "https://app.tidyops.dev")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction)
	assert.Equal(t, "https://app.tidyops.dev", cfg.ProdOrigins)
}

func TestLoadInvalidTTL(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_ACCESS_TOKEN_TTL", "soon")

	_, err := Load()
	assert.Error(t, err)
}
