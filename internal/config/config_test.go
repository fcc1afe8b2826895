package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "file", cfg.StoreBackend)
	assert.Equal(t, "./data", cfg.DataDir)
	assert.Equal(t, float64(15000), cfg.TankCapacity)
	assert.Equal(t, float64(3000), cfg.LowFuelThreshold)
	assert.Equal(t, 5, cfg.SyncCBFailureThreshold)
	assert.Equal(t, 2, cfg.SyncCBSuccessThreshold)
	assert.Equal(t, 60, cfg.SyncCBOpenTimeoutSec)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SYNC_CB_FAILURE_THRESHOLD", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 3, cfg.SyncCBFailureThreshold)
}
