package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/regieops/tpe-manager/internal/apiserver/middleware"
	"github.com/regieops/tpe-manager/internal/apiserver/service"
	"github.com/regieops/tpe-manager/internal/common/dto"
	"github.com/regieops/tpe-manager/internal/common/errorx"
	"go.uber.org/zap"
)

// Login handles user login
func (h *Handler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errHandler.Handle(c, errorx.ErrBadRequest.WithDetail("cause", err.Error()))
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	user, err := h.db.GetUserByUsername(ctx, req.Username)
	if err != nil {
		// Same answer for unknown user and wrong password.
		h.errHandler.Handle(c, errorx.ErrInvalidCredentials)
		return
	}
	if !user.IsActive {
		h.errHandler.Handle(c, errorx.ErrUserDisabled)
		return
	}
	if !service.CheckPassword(user, req.Password) {
		h.errHandler.Handle(c, errorx.ErrInvalidCredentials)
		return
	}

	token, err := h.jwtService.GenerateToken(user.ID, user.Username, string(user.Role))
	if err != nil {
		h.errHandler.Handle(c, err)
		return
	}

	h.logger.Info("user logged in", zap.String("username", user.Username))

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token: token,
		User:  toUserResponse(user),
	})
}

// Me returns the profile of the authenticated user
func (h *Handler) Me(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		h.errHandler.Handle(c, errorx.ErrUnauthorized)
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	user, err := h.db.GetUserByUsername(ctx, claims.Username)
	if err != nil {
		h.errHandler.Handle(c, errorx.ErrUserNotFound)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}
