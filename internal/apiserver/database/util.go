package database

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// IsUniqueViolation reports whether err is a unique-constraint failure.
// Driver error types differ, so this falls back to message matching the
// way the underlying drivers phrase the violation.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate entry")
}

// InitDefaultUsers seeds the bootstrap administrator account when the
// user directory is empty.
func InitDefaultUsers(ctx context.Context, db Database, username, password string) error {
	if username == "" || password == "" {
		return nil
	}

	count, err := db.CountUsers(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return db.CreateUser(ctx, &User{
		Username: username,
		Password: string(hashed),
		Role:     RoleAdmin,
		IsActive: true,
	})
}
