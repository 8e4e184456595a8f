package config

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	AppFs = afero.NewMemMapFs()
	t.Cleanup(func() { AppFs = afero.NewOsFs() })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.MaxConns)
	assert.Equal(t, 5, cfg.MaxIdleConns)
	assert.Equal(t, 10*time.Second, cfg.ConnectTimeout)
}

func TestLoad_DatabaseURLFromEnv(t *testing.T) {
	AppFs = afero.NewMemMapFs()
	t.Cleanup(func() { AppFs = afero.NewOsFs() })

	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/app")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@localhost/app", cfg.DatabaseURL)
}

func TestLoad_PrefixedEnvOverride(t *testing.T) {
	AppFs = afero.NewMemMapFs()
	t.Cleanup(func() { AppFs = afero.NewOsFs() })

	t.Setenv("SQLBRIDGE_MAX_CONNS", "3")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.MaxConns)
}
