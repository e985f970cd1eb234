package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 2*time.Hour, cfg.JWT.AccessTTL)
	assert.Equal(t, int64(100), cfg.Loyalty.CentsPerPoint)
	assert.Equal(t, 5, cfg.Notify.MaxAttempts)
	assert.Equal(t, "local", cfg.Storage.Provider)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := "server:\n  port: \"9090\"\nloyalty:\n  gold_threshold: 3000\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))
	t.Setenv("PHARMA_JWT_SECRET", "from-env")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, int64(3000), cfg.Loyalty.GoldThreshold)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
}
