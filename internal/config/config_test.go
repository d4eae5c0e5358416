package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetenv clears keys for the duration of the test.
func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestParse_Defaults(t *testing.T) {
	unsetenv(t, "BOOKSHELF_CATALOG", "BOOKSHELF_FORMAT", "BOOKSHELF_LOG_LEVEL", "BOOKSHELF_STYLE", "BOOKSHELF_NO_COLOR")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, FormatText, cfg.Format)
	assert.Equal(t, "monokai", cfg.Style)
	assert.Empty(t, cfg.CatalogPath)
}

func TestParse_FromEnv(t *testing.T) {
	t.Setenv("BOOKSHELF_CATALOG", "/tmp/books.yaml")
	t.Setenv("BOOKSHELF_FORMAT", "json")
	t.Setenv("BOOKSHELF_NO_COLOR", "true")
	t.Setenv("BOOKSHELF_LOG_LEVEL", "debug")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/books.yaml", cfg.CatalogPath)
	assert.Equal(t, FormatJSON, cfg.Format)
	assert.True(t, cfg.NoColor)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestParse_LeavesFormatToValidate(t *testing.T) {
	t.Setenv("BOOKSHELF_FORMAT", "pdf")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "pdf", cfg.Format)
	assert.ErrorContains(t, cfg.Validate(), "pdf")
}

func TestValidate(t *testing.T) {
	for _, format := range []string{FormatText, FormatJSON, FormatHTML} {
		assert.NoError(t, Config{Format: format}.Validate(), format)
	}
	assert.Error(t, Config{}.Validate())
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookshelf.env")
	require.NoError(t, os.WriteFile(path, []byte("BOOKSHELF_STYLE=dracula\n"), 0o600))
	t.Setenv("BOOKSHELF_ENV_FILE", path)
	// godotenv does not override variables that already exist.
	unsetenv(t, "BOOKSHELF_FORMAT", "BOOKSHELF_STYLE")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "dracula", cfg.Style)
}

func TestLoad_MissingExplicitEnvFile(t *testing.T) {
	unsetenv(t, "BOOKSHELF_FORMAT")
	t.Setenv("BOOKSHELF_ENV_FILE", filepath.Join(t.TempDir(), "nope.env"))
	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_MissingDefaultEnvFile(t *testing.T) {
	t.Chdir(t.TempDir())
	unsetenv(t, "BOOKSHELF_ENV_FILE", "BOOKSHELF_FORMAT")

	_, err := Load()
	assert.NoError(t, err)
}
