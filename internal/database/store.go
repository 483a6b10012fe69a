package database

import (
	"context"
	"fmt"
	"log/slog"

	"leave-api/internal/config"
	"leave-api/internal/model"
)

// Store reads and writes the whole document. Implementations keep no state
// between calls; every Load observes the last successful Save.
type Store interface {
	Load(ctx context.Context) (*model.Document, error)
	Save(ctx context.Context, doc *model.Document) error
}

// NewStore builds the store selected by STORE_DRIVER
func NewStore(cfg *config.Config, logger *slog.Logger) (Store, error) {
	switch cfg.StoreDriver {
	case config.DriverFile:
		return NewFileStore(cfg.DBFile, logger), nil
	case config.DriverPostgres, config.DriverSQLite:
		db, err := NewConnection(cfg.StoreDriver, cfg.DBDSN)
		if err != nil {
			return nil, err
		}
		return NewGormStore(db), nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
}
