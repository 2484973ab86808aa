package configs

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type SeedAccount struct {
	Username string `koanf:"username"`
	Password string `koanf:"password"`
}

type Config struct {
	App struct {
		Name     string `koanf:"name"`
		LogFile  string `koanf:"log_file"`
		LogLevel string `koanf:"log_level"`
	} `koanf:"app"`

	Ledger struct {
		Path       string `koanf:"path"`
		BackupPath string `koanf:"backup_path"`
	} `koanf:"ledger"`

	Metrics struct {
		Enabled bool   `koanf:"enabled"`
		Addr    string `koanf:"addr"`
	} `koanf:"metrics"`

	Auth struct {
		SeedAccounts []SeedAccount `koanf:"seed_accounts"`
	} `koanf:"auth"`
}

func Load(pathDir, envName string) (Config, error) {
	k := koanf.New(".")
	// 1) base
	if err := k.Load(file.Provider(fmt.Sprintf("%s/base.yaml", pathDir)), yaml.Parser()); err != nil {
		return Config{}, fmt.Errorf("load base: %w", err)
	}

	// 2) env override (dev/staging/prod). Optional: allow missing for local runs.
	_ = k.Load(file.Provider(fmt.Sprintf("%s/%s.yaml", pathDir, envName)), yaml.Parser())

	// 3) environment variables override (prefix WANSILOG_, nested with __)
	// e.g. WANSILOG_LEDGER__PATH, WANSILOG_METRICS__ADDR
	if err := k.Load(env.Provider("WANSILOG_", ".", func(s string) string {
		s = strings.TrimPrefix(s, "WANSILOG_")
		s = strings.ReplaceAll(s, "__", ".")
		return strings.ToLower(s)
	}), nil); err != nil {
		return Config{}, fmt.Errorf("env overlay: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Ledger.Path == "" {
		return fmt.Errorf("ledger.path required")
	}
	if c.Ledger.BackupPath == "" {
		return fmt.Errorf("ledger.backup_path required")
	}
	if c.Ledger.Path == c.Ledger.BackupPath {
		return fmt.Errorf("ledger.backup_path must differ from ledger.path")
	}
	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		return fmt.Errorf("metrics.addr required when metrics.enabled")
	}
	return nil
}
