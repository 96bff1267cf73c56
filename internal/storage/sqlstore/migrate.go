package sqlstore

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const schemaVersionTag = "schema_version"

// ErrSchemaTooNew is returned when the database was migrated by a newer
// version of the backend.
var ErrSchemaTooNew = errors.New("the database schema is newer than this version of the backend supports")

// migrations contains all schema changes in the order they are applied.
// The schema version is the number of applied migrations.
//
// Migrations are never edited or removed once released, changes are
// appended as new migrations.
var migrations = []func(tx *gorm.DB) error{
	// 1: initial schema
	func(tx *gorm.DB) error {
		return tx.Migrator().CreateTable(
			&accountRecord{},
			&transactionRecord{},
			&transactionCategoryRecord{},
			&budgetRecord{},
			&categoryRecord{},
			&billRecord{},
			&billTransactionRecord{},
		)
	},

	// 2: indices for the range and association queries
	func(tx *gorm.DB) error {
		for _, statement := range []string{
			"CREATE INDEX idx_transactions_date ON transactions (date)",
			"CREATE INDEX idx_transactions_source ON transactions (source_account_id)",
			"CREATE INDEX idx_transactions_destination ON transactions (destination_account_id)",
			"CREATE INDEX idx_transactions_budget ON transactions (budget_id)",
			"CREATE INDEX idx_transaction_category_category ON transaction_category (category_id)",
		} {
			if err := tx.Exec(statement).Error; err != nil {
				return err
			}
		}
		return nil
	},
}

// SchemaVersion is the schema version this version of the backend migrates to.
func SchemaVersion() int {
	return len(migrations)
}

// migrate applies all migrations newer than the schema version stored in
// the database. Each migration runs in its own transaction together with
// the update of the schema version.
func migrate(db *gorm.DB) error {
	err := db.AutoMigrate(&databaseInfo{})
	if err != nil {
		return fmt.Errorf("error during DB migration: %w", err)
	}

	version, err := schemaVersion(db)
	if err != nil {
		return err
	}

	if version > len(migrations) {
		return fmt.Errorf("%w: database is at version %d, latest known version is %d", ErrSchemaTooNew, version, len(migrations))
	}

	for i := version; i < len(migrations); i++ {
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := migrations[i](tx); err != nil {
				return err
			}

			return tx.Save(&databaseInfo{Tag: schemaVersionTag, Value: strconv.Itoa(i + 1)}).Error
		})
		if err != nil {
			return fmt.Errorf("error during DB migration to version %d: %w", i+1, err)
		}

		log.Info().Int("version", i+1).Msg("migrated database schema")
	}

	return nil
}

// schemaVersion returns the schema version stored in the database, 0 for a new database.
func schemaVersion(db *gorm.DB) (int, error) {
	var info []databaseInfo
	err := db.Where("tag = ?", schemaVersionTag).Limit(1).Find(&info).Error
	if err != nil {
		return 0, fmt.Errorf("could not read schema version: %w", err)
	}

	if len(info) == 0 {
		return 0, nil
	}

	version, err := strconv.Atoi(info[0].Value)
	if err != nil {
		return 0, fmt.Errorf("could not parse schema version %q: %w", info[0].Value, err)
	}

	return version, nil
}
