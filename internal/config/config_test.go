package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go-firme/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := config.Load("")

	assert.NoError(t, err)
	assert.Equal(t, "https://www.listafirme.ro/api", cfg.ListaFirme.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.ListaFirme.Timeout)
	assert.Equal(t, 10*time.Second, cfg.ListaFirme.OpenTimeout)
	assert.Equal(t, "14837428", cfg.ListaFirme.TestCUI)
	assert.False(t, cfg.ListaFirme.DemoMode)
	assert.Empty(t, cfg.ListaFirme.APIKey)
	assert.Equal(t, 30, cfg.Retention.Days)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("listafirme:\n  demo_mode: true\n  timeout: 5s\ndatabase:\n  driver: postgres\n")
	assert.NoError(t, os.WriteFile(path, content, 0o600))

	t.Setenv("FIRME_LISTAFIRME_API_KEY", "abcdef123456xyz")

	cfg, err := config.Load(path)

	assert.NoError(t, err)
	assert.True(t, cfg.ListaFirme.DemoMode)
	assert.Equal(t, 5*time.Second, cfg.ListaFirme.Timeout)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "abcdef123456xyz", cfg.ListaFirme.APIKey)
}

func TestLoad_Invalid(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("FIRME_DATABASE_DRIVER", "mysql")

	_, err := config.Load("")

	assert.Error(t, err)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))

	assert.Error(t, err)
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
