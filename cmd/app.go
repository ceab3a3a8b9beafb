package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/zoomvault/zoomvault/internal/config"
	"github.com/zoomvault/zoomvault/internal/instrumentation"
	"github.com/zoomvault/zoomvault/internal/logging"
	"github.com/zoomvault/zoomvault/internal/note"
	"github.com/zoomvault/zoomvault/internal/state"
	"github.com/zoomvault/zoomvault/internal/syncer"
	"github.com/zoomvault/zoomvault/internal/vault"
	"github.com/zoomvault/zoomvault/internal/zoom"
)

// app bundles the wired-up components a command needs.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	syncer *syncer.Syncer
}

// loadConfig loads and validates the configuration from the --config file
// and the environment.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newApp wires the full sync engine from a validated configuration.
// metrics may be nil when the caller does not export metrics.
func newApp(cfg *config.Config, metrics *instrumentation.Metrics) *app {
	logger := logging.Setup(cfg.LogLevel)

	exec := zoom.NewExecutor(logger)
	tokens := zoom.NewTokenManager(zoom.Credentials{
		AccountID:    cfg.Zoom.AccountID,
		ClientID:     cfg.Zoom.ClientID,
		ClientSecret: cfg.Zoom.ClientSecret,
	}, cfg.Zoom.TokenURL, exec, logger)
	if metrics != nil {
		tokens.SetRefreshHook(func() {
			metrics.RecordTokenRefresh(context.Background())
		})
	}
	client := zoom.NewClient(cfg.Zoom.BaseURL, tokens, exec, logger)

	store := vault.NewDirStore(cfg.VaultDir)

	s := syncer.New(syncer.Options{
		API:        client,
		Tokens:     tokens,
		Writer:     note.NewWriter(store, cfg.Folder, logger),
		State:      state.NewStore(store, cfg.Folder, logger),
		Identities: cfg.Identities,
		Since:      cfg.Since(time.Now()),
		Recordings: cfg.Sources.Recordings,
		Sessions:   cfg.Sources.Sessions,
		Metrics:    metrics,
		Logger:     logger,
	})

	return &app{cfg: cfg, logger: logger, syncer: s}
}

// report prints the run outcome to the user. Runs that changed nothing stay
// silent so periodic invocations do not accumulate noise.
func report(out syncer.Outcome) error {
	if summary := out.Summary(); summary != "" {
		fmt.Println(summary)
	}
	if out.Err != nil {
		return fmt.Errorf("sync run failed: %w", out.Err)
	}
	return nil
}
