package pubadmin

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	cfg.setDefaults()

	assert.Equal(t, ":3000", cfg.Addr)
	assert.Equal(t, 100, cfg.ItemsPerPage)
	assert.Equal(t, 6, cfg.MaxVisiblePages)
	assert.Equal(t, 30*time.Second, cfg.PageCacheTTL)
	assert.Equal(t, "data/admin.db", cfg.DatabasePath)
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{}
	cfg.setDefaults()
	assert.Error(t, cfg.Validate(), "session secret is required")

	cfg.SessionSecret = "s"
	assert.NoError(t, cfg.Validate())

	cfg.APIBaseURL = "ftp://example.com"
	assert.Error(t, cfg.Validate())
}

func TestLoadConfigFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pubadmin.yaml")
	yaml := "addr: \":8080\"\nitems_per_page: 50\nfetch_wait: 2s\nsession_secret: from-file\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	t.Setenv("PUBADMIN_SESSION_SECRET", "from-env")
	t.Setenv("PUBADMIN_API_BASE_URL", "https://cms.example.com/api/v1")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 50, cfg.ItemsPerPage)
	assert.Equal(t, 2*time.Second, cfg.FetchWait)
	assert.Equal(t, "from-env", cfg.SessionSecret)
	assert.Equal(t, "https://cms.example.com/api/v1", cfg.APIBaseURL)
	assert.Equal(t, 6, cfg.MaxVisiblePages)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PUBADMIN_ITEMS_PER_PAGE", "25")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.ItemsPerPage)
	assert.Equal(t, ":3000", cfg.Addr)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, log.DEBUG, ParseLogLevel("debug"))
	assert.Equal(t, log.WARN, ParseLogLevel(" Warning "))
	assert.Equal(t, log.OFF, ParseLogLevel("off"))
	assert.Equal(t, log.INFO, ParseLogLevel("loud"))
}
