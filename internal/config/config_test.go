package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GHL_API_KEY", "key-123")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 10, cfg.Sync.ThresholdDays)
	assert.Equal(t, 500, cfg.Sync.PageSize)
	assert.Equal(t, 1000, cfg.Sync.MaxPages)
	assert.Equal(t, "inactive_10days", cfg.Sync.InactiveTag)
	assert.Equal(t, "0 8 * * *", cfg.Sync.Schedule)
	assert.Equal(t, 250*time.Millisecond, cfg.Sync.WriteDelay)
	assert.False(t, cfg.Sync.DryRun)
	assert.Empty(t, cfg.Sync.TestEmail)
}

func TestLoadRequiresAPIKey(t *testing.T) {
	t.Setenv("GHL_API_KEY", "")

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GHL_API_KEY", "key-123")
	t.Setenv("INACTIVITY_THRESHOLD_DAYS", "21")
	t.Setenv("INACTIVE_TAG", "inactive_21days")
	t.Setenv("DRY_RUN", "true")
	t.Setenv("TEST_EMAIL", "qa@method3fitness.com")
	t.Setenv("WRITE_DELAY", "50ms")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 21, cfg.Sync.ThresholdDays)
	assert.Equal(t, "inactive_21days", cfg.Sync.InactiveTag)
	assert.True(t, cfg.Sync.DryRun)
	assert.Equal(t, "qa@method3fitness.com", cfg.Sync.TestEmail)
	assert.Equal(t, 50*time.Millisecond, cfg.Sync.WriteDelay)
}

func TestPageSizeClampedToAPILimit(t *testing.T) {
	t.Setenv("GHL_API_KEY", "key-123")
	t.Setenv("REPORT_PAGE_SIZE", "5000")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 500, cfg.Sync.PageSize)

	t.Setenv("REPORT_PAGE_SIZE", "-1")
	cfg, err = Load()

	require.NoError(t, err)
	assert.Equal(t, 500, cfg.Sync.PageSize)
}

func TestMalformedValuesFallBack(t *testing.T) {
	t.Setenv("GHL_API_KEY", "key-123")
	t.Setenv("INACTIVITY_THRESHOLD_DAYS", "ten")
	t.Setenv("DRY_RUN", "maybe")
	t.Setenv("RETRY_BASE_DELAY", "soon")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Sync.ThresholdDays)
	assert.False(t, cfg.Sync.DryRun)
	assert.Equal(t, time.Second, cfg.Sync.RetryBaseDelay)
}
