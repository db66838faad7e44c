package database

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/regieops/tpe-manager/internal/common/config"
	"gorm.io/gorm"
)

// NewSQLite creates a new SQLite-backed database
func NewSQLite(cfg *config.DatabaseConfig) (Database, error) {
	gormDB, err := gorm.Open(sqlite.Open(cfg.GetDSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := gormDB.AutoMigrate(&User{}, &TPE{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &store{db: gormDB}, nil
}
