package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unset clears environment variables for the duration of the test. t.Setenv
// registers the restore; Unsetenv removes the empty value it just set.
func unset(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad(t *testing.T) {
	t.Run("defaults when nothing is set", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		unset(t, "LEADFORM_API_URL", "LEADFORM_TIMEOUT", "LEADFORM_CREDENTIALS_DIR")

		cfg, err := Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8000/api", cfg.APIURL)
		assert.Equal(t, 30*time.Second, cfg.Timeout)
		assert.Empty(t, cfg.CredentialsDir)
	})

	t.Run("environment overrides the defaults", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		t.Setenv("LEADFORM_API_URL", "https://api.example.com/api")
		t.Setenv("LEADFORM_TIMEOUT", "10s")

		cfg, err := Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "https://api.example.com/api", cfg.APIURL)
		assert.Equal(t, 10*time.Second, cfg.Timeout)
	})

	t.Run("config file overrides the environment", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		t.Setenv("LEADFORM_API_URL", "https://env.example.com/api")
		unset(t, "LEADFORM_TIMEOUT", "LEADFORM_CREDENTIALS_DIR")

		dir := filepath.Join(home, ".leadform")
		require.NoError(t, os.MkdirAll(dir, 0700))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(
			"api_url: https://file.example.com/api\ntimeout: 45s\n",
		), 0600))

		cfg, err := Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "https://file.example.com/api", cfg.APIURL)
		assert.Equal(t, 45*time.Second, cfg.Timeout)
	})

	t.Run("missing config file is not an error", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		unset(t, "LEADFORM_API_URL", "LEADFORM_TIMEOUT", "LEADFORM_CREDENTIALS_DIR")

		cfg, err := Load(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, cfg)
	})
}

func TestConfig_ApplyFile(t *testing.T) {
	t.Run("partial file keeps unset fields", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("credentials_dir: /tmp/creds\n"), 0600))

		cfg := Config{APIURL: "http://localhost:8000/api", Timeout: 30 * time.Second}
		require.NoError(t, cfg.applyFile(path))

		assert.Equal(t, "http://localhost:8000/api", cfg.APIURL)
		assert.Equal(t, 30*time.Second, cfg.Timeout)
		assert.Equal(t, "/tmp/creds", cfg.CredentialsDir)
	})

	t.Run("rejects a malformed timeout", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("timeout: soon\n"), 0600))

		cfg := Config{}
		assert.Error(t, cfg.applyFile(path))
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("api_url: [\n"), 0600))

		cfg := Config{}
		assert.Error(t, cfg.applyFile(path))
	})
}
