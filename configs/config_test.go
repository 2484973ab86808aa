package configs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseYAML = `app:
  name: wansilog
  log_file: ./logs/app.log
  log_level: info
ledger:
  path: ./transactions.txt
  backup_path: ./transactions_backup.txt
metrics:
  enabled: false
  addr: :9091
auth:
  seed_accounts:
    - username: karl
      password: Lonely123
`

func writeConfigDir(t *testing.T, base string, overlays map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "base.yaml"), []byte(base), 0o644))
	for name, content := range overlays {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestLoadBase(t *testing.T) {
	dir := writeConfigDir(t, baseYAML, nil)

	cfg, err := Load(dir, "dev")
	require.NoError(t, err)
	assert.Equal(t, "wansilog", cfg.App.Name)
	assert.Equal(t, "./transactions.txt", cfg.Ledger.Path)
	assert.Equal(t, "./transactions_backup.txt", cfg.Ledger.BackupPath)
	assert.False(t, cfg.Metrics.Enabled)
	require.Len(t, cfg.Auth.SeedAccounts, 1)
	assert.Equal(t, "karl", cfg.Auth.SeedAccounts[0].Username)
}

func TestLoadEnvOverlay(t *testing.T) {
	dir := writeConfigDir(t, baseYAML, map[string]string{
		"prod.yaml": "ledger:\n  path: /var/lib/wansilog/transactions.txt\n",
	})

	cfg, err := Load(dir, "prod")
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/wansilog/transactions.txt", cfg.Ledger.Path)
	// Untouched keys come from base.
	assert.Equal(t, "./transactions_backup.txt", cfg.Ledger.BackupPath)
}

func TestLoadEnvVarOverride(t *testing.T) {
	dir := writeConfigDir(t, baseYAML, nil)
	t.Setenv("WANSILOG_LEDGER__PATH", "/tmp/override.txt")

	cfg, err := Load(dir, "dev")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/override.txt", cfg.Ledger.Path)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			"missing ledger path",
			func(c *Config) { c.Ledger.Path = "" },
			"ledger.path required",
		},
		{
			"missing backup path",
			func(c *Config) { c.Ledger.BackupPath = "" },
			"ledger.backup_path required",
		},
		{
			"same primary and backup",
			func(c *Config) { c.Ledger.BackupPath = c.Ledger.Path },
			"must differ",
		},
		{
			"metrics enabled without addr",
			func(c *Config) { c.Metrics.Enabled = true; c.Metrics.Addr = "" },
			"metrics.addr required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg Config
			cfg.Ledger.Path = "a.txt"
			cfg.Ledger.BackupPath = "b.txt"
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
