package database

import (
	"fmt"

	"github.com/regieops/tpe-manager/internal/common/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewPostgres creates a new PostgreSQL-backed database
func NewPostgres(cfg *config.DatabaseConfig) (Database, error) {
	gormDB, err := gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := gormDB.AutoMigrate(&User{}, &TPE{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &store{db: gormDB}, nil
}
