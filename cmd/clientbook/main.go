// Package main contains a small application showing how to add a Client
// through a command.Manager, and how to undo it.
package main

import (
	"context"
	"errors"
	"fmt"

	gcpfirestore "cloud.google.com/go/firestore"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/get-eventually/go-command/client"
	"github.com/get-eventually/go-command/command"
	"github.com/get-eventually/go-command/firestore"
	"github.com/get-eventually/go-command/logger"
	"github.com/get-eventually/go-command/logger/zaplogger"
	"github.com/get-eventually/go-command/opentelemetry"
	"github.com/get-eventually/go-command/postgres"
)

func newRepository(ctx context.Context, cfg *config) (client.Repository, func(), error) {
	switch cfg.Storage.Backend {
	case backendPostgres:
		if err := postgres.RunMigrations(cfg.Database.URL); err != nil {
			return nil, nil, err
		}

		pool, err := pgxpool.New(ctx, cfg.Database.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to postgres, %w", err)
		}

		return postgres.NewClientRepository(pool, client.JSONSerde), pool.Close, nil

	case backendFirestore:
		firestoreClient, err := gcpfirestore.NewClient(ctx, cfg.Firestore.ProjectID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to firestore, %w", err)
		}

		repository := firestore.ClientRepository{
			Client: firestoreClient,
			Serde:  client.ProtoJSONSerde,
		}

		//nolint:errcheck // Nothing to do if closing fails on shutdown.
		return repository, func() { firestoreClient.Close() }, nil

	default:
		return client.NewInMemoryRepository(), func() {}, nil
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := parseConfig()
	if err != nil {
		return fmt.Errorf("clientbook.main: failed to parse config, %w", err)
	}

	zapLogger, err := zap.NewDevelopment()
	if err != nil {
		return fmt.Errorf("clientbook.main: failed to initialize logger, %w", err)
	}

	//nolint:errcheck // No need for this error to come up if it happens.
	defer zapLogger.Sync()

	log := zaplogger.Wrap(zapLogger)

	baseRepository, closeRepository, err := newRepository(ctx, cfg)
	if err != nil {
		return fmt.Errorf("clientbook.main: failed to create %s repository, %w", cfg.Storage.Backend, err)
	}

	defer closeRepository()

	repository, err := opentelemetry.NewInstrumentedRepository(baseRepository)
	if err != nil {
		return fmt.Errorf("clientbook.main: failed to instrument repository, %w", err)
	}

	manager, err := opentelemetry.NewInstrumentedInvoker(command.NewManager(
		command.WithLogger(log),
		command.WithHistoryLimit(cfg.History.Limit),
	))
	if err != nil {
		return fmt.Errorf("clientbook.main: failed to instrument command manager, %w", err)
	}

	alice := &client.Client{ID: 1, Name: "Alice"}

	if err := manager.Invoke(ctx, client.NewAddCommand(repository, alice)); err != nil {
		return fmt.Errorf("clientbook.main: failed to add client, %w", err)
	}

	stored, err := repository.Get(ctx, alice.ID)
	if err != nil {
		return fmt.Errorf("clientbook.main: failed to get client, %w", err)
	}

	logger.Info(log, "client added", logger.With("client.id", stored.ID), logger.With("client.name", stored.Name))

	if err := manager.Undo(ctx); err != nil {
		return fmt.Errorf("clientbook.main: failed to undo, %w", err)
	}

	if _, err := repository.Get(ctx, alice.ID); !errors.Is(err, client.ErrNotFound) {
		return fmt.Errorf("clientbook.main: client still present after undo, %v", err)
	}

	logger.Info(log, "client removed by undo", logger.With("client.id", alice.ID))

	return nil
}

func main() {
	if err := run(); err != nil {
		panic(err)
	}
}
