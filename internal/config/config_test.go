package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Victor-Haefner/github-repo-stats/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, config.DefaultTopN, cfg.Report.TopN)
	assert.Equal(t, "light", cfg.Report.Theme)
	assert.Equal(t, config.FormatHTML, cfg.Report.Format)
	assert.Equal(t, "*views_clones*.csv", cfg.Input.ViewsClonesGlob)
	assert.Equal(t, "_top_referrers_snapshot.csv", cfg.Input.ReferrerSuffix)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoad_FromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ghrs.yaml")
	content := "report:\n  top_n: 10\n  theme: dark\n  format: yaml\nlogging:\n  level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Report.TopN)
	assert.Equal(t, "dark", cfg.Report.Theme)
	assert.Equal(t, config.FormatYAML, cfg.Report.Format)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("GHRS_REPORT_TOP_N", "3")
	t.Setenv("GHRS_REPORT_THEME", "dark")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Report.TopN)
	assert.Equal(t, "dark", cfg.Report.Theme)
}

func TestLoad_InvalidTopN(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ghrs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("report:\n  top_n: 0\n"), 0o600))

	_, err := config.Load(path)
	require.ErrorIs(t, err, config.ErrInvalidTopN)
}

func TestLoad_InvalidTheme(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ghrs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("report:\n  theme: sepia\n"), 0o600))

	_, err := config.Load(path)
	require.ErrorIs(t, err, config.ErrInvalidTheme)
}

func TestLoad_InvalidFormat(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ghrs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("report:\n  format: xml\n"), 0o600))

	_, err := config.Load(path)
	require.ErrorIs(t, err, config.ErrInvalidFormat)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Parallel()

	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
