package database

import (
	"fmt"

	"leave-api/internal/config"
	"leave-api/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewConnection opens a GORM connection for the given driver and migrates the store tables
func NewConnection(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case config.DriverPostgres:
		dialector = postgres.Open(dsn)
	case config.DriverSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}

	// Auto-migrate store tables
	if err := db.AutoMigrate(
		&model.User{},
		&model.LeaveRequest{},
		&model.AuditLog{},
		&model.Sequence{},
	); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate store tables: %w", err)
	}

	return db, nil
}
