package configs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "configs.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_ValidConfig(t *testing.T) {
	path := writeConfig(t, `report_size: 50
report_dir: /var/reports
log_dir: /var/log/nginx
log:
  level: debug
  file: /var/log/log-analyzer.log
parser:
  error_threshold: 0.2
metrics:
  textfile: /var/lib/node_exporter/log_analyzer.prom
server:
  port: 9090
`)

	cfg, err := LoadConfig(path, false)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.ReportSize)
	assert.Equal(t, "/var/reports", cfg.ReportDir)
	assert.Equal(t, "/var/log/nginx", cfg.LogDir)
	assert.Equal(t, "nginx-access-ui.log", cfg.LogPrefix)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/var/log/log-analyzer.log", cfg.Log.File)
	assert.Equal(t, 0.2, cfg.Parser.ErrorThreshold)
	assert.Equal(t, "/var/lib/node_exporter/log_analyzer.prom", cfg.Metrics.Textfile)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5, cfg.Server.ReadHeaderTimeout)
}

func TestLoadConfig_MergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `report_size: 10
`)

	cfg, err := LoadConfig(path, false)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.ReportSize)
	assert.Equal(t, "./reports", cfg.ReportDir)
	assert.Equal(t, "./log", cfg.LogDir)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 60, cfg.Server.IdleTimeout)
}

func TestLoadConfig_MissingOptionalFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yml")

	cfg, err := LoadConfig(path, true)
	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.ReportSize)
	assert.Equal(t, "./reports", cfg.ReportDir)
	assert.Equal(t, "./log", cfg.LogDir)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yml")

	cfg, err := LoadConfig(path, false)
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("LOG_ANALYZER_REPORT_SIZE", "7")
	t.Setenv("LOG_ANALYZER_LOG_LEVEL", "warn")

	cfg, err := LoadConfig("", true)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.ReportSize)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		contains string
	}{
		{
			name:     "negative report size",
			content:  "report_size: -1\n",
			contains: "reportsize (min=0)",
		},
		{
			name:     "error threshold above one",
			content:  "parser:\n  error_threshold: 1.5\n",
			contains: "parser.errorthreshold (max=1)",
		},
		{
			name:     "port out of range",
			content:  "server:\n  port: 70000\n",
			contains: "server.port (max=65535)",
		},
		{
			name:     "unknown log level",
			content:  "log:\n  level: verbose\n",
			contains: `log.level (unknown log level "verbose")`,
		},
		{
			name:     "log prefix with directory",
			content:  "log_prefix: nginx/access.log\n",
			contains: "logprefix (must be a bare file name)",
		},
		{
			name:     "empty log dir",
			content:  "log_dir: \"\"\n",
			contains: "logdir (required)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(writeConfig(t, tt.content), false)
			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "validation failed")
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}
