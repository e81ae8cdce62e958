package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data", cfg.Paths.DataDir)
	assert.Equal(t, "reports", cfg.Paths.ReportsDir)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "console", cfg.Logging.Output)
	assert.Equal(t, filepath.Join("logs", "salesctl.log"), cfg.Logging.FilePath)
}

func TestLoadFrom_ExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("paths:\n  data_dir: archives\nlogging:\n  level: warn\n")
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "archives", cfg.Paths.DataDir)
	assert.Equal(t, "warn", cfg.Logging.Level)
	// Untouched fields keep their defaults
	assert.Equal(t, "reports", cfg.Paths.ReportsDir)
}

func TestLoadFrom_MissingExplicitPath(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config from file")
}

func TestLoadFrom_LogPathFollowsLogsDir(t *testing.T) {
	t.Setenv("SALES_PATHS_LOGS_DIR", "run-logs")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("run-logs", "salesctl.log"), cfg.Logging.FilePath)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SALES_PATHS_DATA_DIR", "archives")
	t.Setenv("SALES_LOGGING_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "archives", cfg.Paths.DataDir)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_InvalidLevel(t *testing.T) {
	t.Setenv("SALES_LOGGING_LEVEL", "verbose")

	_, err := Load()
	assert.Error(t, err)
}

func TestMergeConfigs(t *testing.T) {
	fileCfg := Config{
		Paths:   PathsConfig{DataDir: "from-file"},
		Logging: LoggingConfig{Level: "warn"},
	}
	envCfg := *Default()

	merged := mergeConfigs(fileCfg, envCfg)

	assert.Equal(t, "from-file", merged.Paths.DataDir)
	assert.Equal(t, "warn", merged.Logging.Level)
	// Untouched fields keep the env/default side
	assert.Equal(t, "reports", merged.Paths.ReportsDir)
	assert.Equal(t, "json", merged.Logging.Format)
}

func TestEnsureDirectories(t *testing.T) {
	tmp := t.TempDir()
	cfg := Default()
	cfg.Paths.DataDir = filepath.Join(tmp, "data")
	cfg.Paths.ReportsDir = filepath.Join(tmp, "reports")
	cfg.Paths.LogsDir = filepath.Join(tmp, "logs")

	require.NoError(t, cfg.EnsureDirectories())

	assert.DirExists(t, cfg.Paths.ReportsDir)
	assert.DirExists(t, cfg.Paths.LogsDir)

	// Data directory is input, never created
	_, err := os.Stat(cfg.Paths.DataDir)
	assert.True(t, os.IsNotExist(err))
}

func TestGetReportPath(t *testing.T) {
	cfg := Default()
	cfg.Paths.ReportsDir = "out"

	assert.Equal(t, filepath.Join("out", "monthly_sales.csv"), cfg.GetReportPath("monthly_sales.csv"))
}
