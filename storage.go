package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ledger-zero/backend/internal/config"
	"github.com/ledger-zero/backend/internal/storage"
	"github.com/ledger-zero/backend/internal/storage/memory"
	"github.com/ledger-zero/backend/internal/storage/remote"
	"github.com/ledger-zero/backend/internal/storage/sqlstore"
	"github.com/rs/zerolog/log"
)

// openStorage opens the storage backend selected by the configuration.
func openStorage(cfg *config.Config) (storage.Storage, error) {
	log.Debug().Str("backend", cfg.StorageBackend).Msg("opening storage backend")

	switch cfg.StorageBackend {
	case config.BackendMemory:
		return memory.New(), nil

	case config.BackendSQLite:
		// Create data directory
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, os.ModePerm); err != nil {
				return nil, fmt.Errorf("creating directory for the database: %w", err)
			}
		}

		return sqlstore.OpenSQLite(cfg.SQLitePath)

	case config.BackendPostgres:
		return sqlstore.OpenPostgres(cfg.PostgresDSN)

	case config.BackendRemote:
		transport, err := openTransport(cfg)
		if err != nil {
			return nil, err
		}

		return remote.New(transport, cfg.RPCTimeout), nil
	}

	return nil, fmt.Errorf("unsupported storage backend: %s", cfg.StorageBackend)
}

func openTransport(cfg *config.Config) (remote.Transport, error) {
	switch cfg.RemoteTransport {
	case config.TransportHTTP:
		return remote.NewHTTPTransport(cfg.RemoteURL, nil), nil
	case config.TransportAMQP:
		return remote.NewAMQPTransport(cfg.AMQPURL, cfg.AMQPQueue)
	}

	return nil, fmt.Errorf("unsupported remote transport: %s", cfg.RemoteTransport)
}
