package app

import (
	"os"

	"github.com/pasumbalss/wansilog/configs"
	"github.com/pasumbalss/wansilog/internal/adapter/cli"
	"github.com/pasumbalss/wansilog/internal/adapter/repo"
	domain "github.com/pasumbalss/wansilog/internal/entity"
	"github.com/pasumbalss/wansilog/internal/logging"
	"github.com/pasumbalss/wansilog/internal/observ"
	"github.com/pasumbalss/wansilog/internal/security"
	"github.com/pasumbalss/wansilog/internal/usecase"
)

type App struct {
	Session *cli.Session
}

func InitWithConfig(cfg configs.Config) (*App, func(), error) {
	logging.Init(cfg.App.Name, cfg.App.LogFile, cfg.App.LogLevel)

	// Ledger recovery runs once, before any order activity.
	ledger, err := repo.NewFileLedger(cfg.Ledger.Path, cfg.Ledger.BackupPath, logging.New("ledger"))
	if err != nil {
		return nil, nil, err
	}

	seed := make([]security.Account, 0, len(cfg.Auth.SeedAccounts))
	for _, a := range cfg.Auth.SeedAccounts {
		seed = append(seed, security.Account{Username: a.Username, Password: a.Password})
	}

	checkout := usecase.NewCheckout(ledger, logging.New("checkout"))
	session := cli.NewSession(
		os.Stdin, os.Stdout,
		domain.DefaultCatalog(),
		checkout,
		security.NewCredentialStore(seed),
		logging.New("session"),
	)

	var stopMetrics func()
	if cfg.Metrics.Enabled {
		stopMetrics = observ.StartServer(cfg.Metrics.Addr, logging.New("metrics"))
	}

	cleanup := func() {
		if stopMetrics != nil {
			stopMetrics()
		}
	}
	return &App{Session: session}, cleanup, nil
}
