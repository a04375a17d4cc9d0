package root

import (
	"context"
	"os"

	"github.com/mrboora04/focuspoint/internal/config"
	"github.com/mrboora04/focuspoint/internal/engine"
	"github.com/mrboora04/focuspoint/internal/observability"
	"github.com/mrboora04/focuspoint/internal/storage"
	"github.com/mrboora04/focuspoint/internal/storage/memory"
	"github.com/mrboora04/focuspoint/internal/storage/postgres"
)

func loadConfig() (config.Config, error) {
	path := flagConfig
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return config.Config{}, err
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if flagDB != "" {
		cfg.DBPath = flagDB
	}
	if flagTZ != "" {
		cfg.Timezone = flagTZ
	}
	if flagEphemeral {
		cfg.StorageBackend = config.BackendMemory
	}
	if flagVerbose && cfg.LogLevel == "warn" {
		cfg.LogLevel = "info"
	}
	return cfg, cfg.Validate()
}

func openStore(ctx context.Context, cfg config.Config) (engine.Store, error) {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		return memory.NewStore(), nil
	case config.BackendPostgres:
		s, err := postgres.Open(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		path, err := storage.ResolveDBPath(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		s, err := storage.OpenStore(ctx, path)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

func openService(ctx context.Context) (*engine.Service, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, err
	}
	store, err := openStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = store.Close()
	}
	logger := observability.NewLogger(os.Stderr, cfg.LogFormat, cfg.LogLevel)
	svc := engine.NewService(store,
		engine.WithLocation(loc),
		engine.WithLogger(logger),
	)
	return svc, cleanup, nil
}
