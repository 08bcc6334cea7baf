package main

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Storage backends supported by the application.
const (
	backendMemory    = "memory"
	backendPostgres  = "postgres"
	backendFirestore = "firestore"
)

type config struct {
	Storage struct {
		Backend string `default:"memory" envconfig:"STORAGE_BACKEND"`
	}

	Database struct {
		URL string `envconfig:"DATABASE_URL"`
	}

	Firestore struct {
		ProjectID string `envconfig:"FIRESTORE_PROJECT_ID"`
	}

	History struct {
		Limit int `default:"0" envconfig:"HISTORY_LIMIT"`
	}
}

func parseConfig() (*config, error) {
	var cfg config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse from env, %w", err)
	}

	switch cfg.Storage.Backend {
	case backendMemory:
	case backendPostgres:
		if cfg.Database.URL == "" {
			return nil, fmt.Errorf("config: DATABASE_URL is required by the %s backend", backendPostgres)
		}
	case backendFirestore:
		if cfg.Firestore.ProjectID == "" {
			return nil, fmt.Errorf("config: FIRESTORE_PROJECT_ID is required by the %s backend", backendFirestore)
		}
	default:
		return nil, fmt.Errorf("config: unsupported storage backend %q", cfg.Storage.Backend)
	}

	return &cfg, nil
}
