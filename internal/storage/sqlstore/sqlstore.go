// Package sqlstore implements a durable storage backend on top of gorm.
//
// SQLite and PostgreSQL are supported.
package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/ledger-zero/backend/internal/models"
	"github.com/ledger-zero/backend/internal/storage"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var _ storage.Storage = (*Storage)(nil)

// Storage persists the ledger in a relational database.
type Storage struct {
	db *gorm.DB
}

// OpenSQLite opens the SQLite database at path and migrates it to the
// current schema version.
func OpenSQLite(path string) (*Storage, error) {
	s, err := open(sqlite.Open(path))
	if err != nil {
		return nil, err
	}

	sqlDB, err := s.db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}

	// This is done to prevent SQLITE_BUSY errors.
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	return s, nil
}

// OpenPostgres connects to the PostgreSQL database at dsn and migrates it
// to the current schema version.
func OpenPostgres(dsn string) (*Storage, error) {
	return open(postgres.Open(dsn))
}

func open(dialector gorm.Dialector) (*Storage, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: newQueryLogger(log.Logger),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	err = registerCallbacks(db)
	if err != nil {
		return nil, err
	}

	err = migrate(db)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}

	return &Storage{db: db}, nil
}

func registerCallbacks(db *gorm.DB) error {
	callbacks := []struct {
		processor interface {
			Register(string, func(*gorm.DB)) error
		}
		name string
	}{
		{db.Callback().Query().After("*"), "ledger:after_query_general"},
		{db.Callback().Create().After("*"), "ledger:after_create_general"},
		{db.Callback().Update().After("*"), "ledger:after_update_general"},
		{db.Callback().Delete().After("*"), "ledger:after_delete_general"},
		{db.Callback().Raw().After("*"), "ledger:after_raw_general"},
		{db.Callback().Row().After("*"), "ledger:after_row_general"},
	}

	for _, c := range callbacks {
		if err := c.processor.Register(c.name, generalCallback); err != nil {
			return err
		}
	}

	return nil
}

// generalCallback logs errors of the database driver.
//
// The storage layer wraps every error in models.ErrStorage, the driver
// details are only useful for server admins.
func generalCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	var driverErr *go_sqlite.Error
	if errors.As(db.Error, &driverErr) {
		log.Error().Int("code", driverErr.Code()).Str("table", db.Statement.Table).Msg(driverErr.Error())
		return
	}

	// "sql: database is closed" is hard-coded in the sql module
	if db.Error.Error() == "sql: database is closed" {
		log.Error().Str("table", db.Statement.Table).Msg(db.Error.Error())
	}
}

// wrap marks err as a storage error.
func wrap(err error) error {
	if err == nil || errors.Is(err, models.ErrStorage) || errors.Is(err, models.ErrNotFound) {
		return err
	}

	return fmt.Errorf("%w: %w", models.ErrStorage, err)
}

// write runs fn in a database transaction.
func (s *Storage) write(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return wrap(s.db.WithContext(ctx).Transaction(fn))
}

// read runs fn with the context set on the database handle.
func (s *Storage) read(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return wrap(fn(s.db.WithContext(ctx)))
}

// exists reports whether a record of the model with the ID exists.
func exists(tx *gorm.DB, model interface{}, id uint64) (bool, error) {
	var count int64
	err := tx.Model(model).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Close closes the database connection.
func (s *Storage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return wrap(err)
	}

	return wrap(sqlDB.Close())
}
