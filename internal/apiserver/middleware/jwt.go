package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/regieops/tpe-manager/internal/auth/jwt"
	"github.com/regieops/tpe-manager/internal/common/cnst"
	"github.com/regieops/tpe-manager/internal/common/errorx"
)

// JWTAuthMiddleware creates a middleware that validates JWT tokens
func JWTAuthMiddleware(jwtService *jwt.Service, errHandler *errorx.ErrorHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			errHandler.Handle(c, errorx.ErrUnauthorized)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			errHandler.Handle(c, errorx.ErrUnauthorized)
			return
		}

		claims, err := jwtService.ValidateToken(parts[1])
		if err != nil {
			if errors.Is(err, jwt.ErrExpiredToken) {
				errHandler.Handle(c, errorx.ErrTokenExpired)
			} else {
				errHandler.Handle(c, errorx.ErrUnauthorized)
			}
			return
		}

		c.Set(cnst.XClaims, claims)
		c.Next()
	}
}

// AdminAuthMiddleware creates a middleware that checks if the user has admin role
func AdminAuthMiddleware(errHandler *errorx.ErrorHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, exists := c.Get(cnst.XClaims)
		if !exists {
			errHandler.Handle(c, errorx.ErrUnauthorized)
			return
		}

		jwtClaims, ok := claims.(*jwt.Claims)
		if !ok || jwtClaims.Role != "admin" {
			errHandler.Handle(c, errorx.ErrAdminRequired)
			return
		}
		c.Next()
	}
}

// ClaimsFromContext returns the validated claims set by JWTAuthMiddleware
func ClaimsFromContext(c *gin.Context) (*jwt.Claims, bool) {
	claims, exists := c.Get(cnst.XClaims)
	if !exists {
		return nil, false
	}
	jwtClaims, ok := claims.(*jwt.Claims)
	return jwtClaims, ok
}
