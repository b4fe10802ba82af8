package database

import (
	"fmt"

	"github.com/Salvaberticci/proyecto-laboratorio/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect opens the relational database selected by cfg.StorageDriver.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.StorageDriver {
	case config.StorageSQLite:
		dialector = sqlite.Open(cfg.SQLitePath)
	case config.StoragePostgres:
		dialector = postgres.Open(cfg.DSN())
	default:
		return nil, fmt.Errorf("storage driver %q has no database", cfg.StorageDriver)
	}

	logLevel := gormlogger.Warn
	if cfg.GinMode == "debug" {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}
