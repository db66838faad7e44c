package service

import (
	"context"
	"errors"
	"strings"

	"github.com/regieops/tpe-manager/internal/apiserver/database"
	"github.com/regieops/tpe-manager/internal/common/cnst"
	"github.com/regieops/tpe-manager/internal/common/dto"
	"github.com/regieops/tpe-manager/internal/common/errorx"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService validates user-directory writes and owns password hashing
type UserService struct {
	db database.Database
}

// NewUserService creates a new user service
func NewUserService(db database.Database) *UserService {
	return &UserService{db: db}
}

// NormalizeCreate validates a create request and builds the account to
// persist, with the password hashed. Uniqueness checks run against the
// store and are backed by its unique index.
func (s *UserService) NormalizeCreate(ctx context.Context, req *dto.CreateUserRequest) (*database.User, error) {
	if strings.TrimSpace(req.Username) == "" {
		return nil, errorx.ErrUsernameRequired
	}
	if len(req.Password) < cnst.MinPasswordLength {
		return nil, errorx.ErrPasswordTooShort
	}
	role := database.UserRole(req.Role)
	if !role.Valid() {
		return nil, errorx.ErrInvalidRole.WithDetail("role", req.Role)
	}

	if _, err := s.db.GetUserByUsername(ctx, req.Username); err == nil {
		return nil, errorx.ErrUsernameExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if req.Email != "" {
		if _, err := s.db.GetUserByEmail(ctx, req.Email); err == nil {
			return nil, errorx.ErrEmailExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &database.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashed),
		Role:     role,
		IsActive: true,
	}, nil
}

// NormalizeUpdate applies a partial update onto an existing account.
// An omitted or empty password keeps the stored hash; the username
// never changes.
func (s *UserService) NormalizeUpdate(existing *database.User, req *dto.UpdateUserRequest) error {
	if req.Role != nil {
		role := database.UserRole(*req.Role)
		if !role.Valid() {
			return errorx.ErrInvalidRole.WithDetail("role", *req.Role)
		}
		existing.Role = role
	}
	if req.Email != nil {
		existing.Email = *req.Email
	}
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}
	if req.Password != nil && *req.Password != "" {
		if len(*req.Password) < cnst.MinPasswordLength {
			return errorx.ErrPasswordTooShort
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		existing.Password = string(hashed)
	}
	return nil
}

// CheckPassword compares a plaintext password against the stored hash
func CheckPassword(user *database.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil
}
