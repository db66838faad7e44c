package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/regieops/tpe-manager/internal/apiserver/database"
	"github.com/regieops/tpe-manager/internal/apiserver/service"
	"github.com/regieops/tpe-manager/internal/auth/jwt"
	"github.com/regieops/tpe-manager/internal/common/dto"
	"github.com/regieops/tpe-manager/internal/common/errorx"
	"go.uber.org/zap"
)

// Handler carries the dependencies shared by all API handlers
type Handler struct {
	db         database.Database
	jwtService *jwt.Service
	tpeSvc     *service.TPEService
	userSvc    *service.UserService
	errHandler *errorx.ErrorHandler
	logger     *zap.Logger
	timeout    time.Duration
}

// NewHandler creates a new API handler
func NewHandler(db database.Database, jwtService *jwt.Service, logger *zap.Logger, timeout time.Duration) *Handler {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Handler{
		db:         db,
		jwtService: jwtService,
		tpeSvc:     service.NewTPEService(db),
		userSvc:    service.NewUserService(db),
		errHandler: errorx.NewErrorHandler(logger),
		logger:     logger,
		timeout:    timeout,
	}
}

// requestContext bounds every store call by the configured timeout
func (h *Handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), h.timeout)
}

func toUserResponse(user *database.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      string(user.Role),
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
