package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/regieops/tpe-manager/internal/apiserver/database"
	"github.com/regieops/tpe-manager/internal/apiserver/middleware"
	"github.com/regieops/tpe-manager/internal/common/dto"
	"github.com/regieops/tpe-manager/internal/common/errorx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func parseIDParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, errorx.ErrBadRequest.WithDetail("id", c.Param("id"))
	}
	return uint(id), nil
}

// ListUsers handles listing all users (admin only)
func (h *Handler) ListUsers(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	users, err := h.db.ListUsers(ctx)
	if err != nil {
		h.errHandler.Handle(c, err)
		return
	}

	responses := make([]*dto.UserResponse, len(users))
	for i, user := range users {
		responses[i] = toUserResponse(user)
	}
	c.JSON(http.StatusOK, responses)
}

// CreateUser handles user creation (admin only)
func (h *Handler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errHandler.Handle(c, errorx.ErrBadRequest.WithDetail("cause", err.Error()))
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	var user *database.User
	err := h.db.Transaction(ctx, func(ctx context.Context) error {
		normalized, err := h.userSvc.NormalizeCreate(ctx, &req)
		if err != nil {
			return err
		}
		user = normalized
		return h.db.CreateUser(ctx, user)
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			err = errorx.ErrUsernameExists
		}
		h.errHandler.Handle(c, err)
		return
	}

	h.logger.Info("user created", zap.String("username", user.Username), zap.String("role", string(user.Role)))
	c.JSON(http.StatusCreated, toUserResponse(user))
}

// UpdateUser handles partial user updates (admin only)
func (h *Handler) UpdateUser(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.errHandler.Handle(c, err)
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errHandler.Handle(c, errorx.ErrBadRequest.WithDetail("cause", err.Error()))
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	var user *database.User
	err = h.db.Transaction(ctx, func(ctx context.Context) error {
		existing, err := h.db.GetUser(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errorx.ErrUserNotFound
			}
			return err
		}
		if err := h.userSvc.NormalizeUpdate(existing, &req); err != nil {
			return err
		}
		user = existing
		return h.db.UpdateUser(ctx, user)
	})
	if err != nil {
		h.errHandler.Handle(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

// DeleteUser handles user deletion (admin only)
func (h *Handler) DeleteUser(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.errHandler.Handle(c, err)
		return
	}

	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		h.errHandler.Handle(c, errorx.ErrUnauthorized)
		return
	}
	if claims.UserID == id {
		h.errHandler.Handle(c, errorx.ErrSelfDelete)
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	if err := h.db.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = errorx.ErrUserNotFound
		}
		h.errHandler.Handle(c, err)
		return
	}

	h.logger.Info("user deleted", zap.Uint("id", id))
	c.Status(http.StatusNoContent)
}
