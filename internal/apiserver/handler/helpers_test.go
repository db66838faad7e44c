package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/regieops/tpe-manager/internal/apiserver/database"
	"github.com/regieops/tpe-manager/internal/apiserver/middleware"
	"github.com/regieops/tpe-manager/internal/auth/jwt"
	"github.com/regieops/tpe-manager/internal/common/config"
	"github.com/regieops/tpe-manager/internal/common/errorx"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type testEnv struct {
	router *gin.Engine
	db     database.Database
	jwtSvc *jwt.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewSQLite(&config.DatabaseConfig{
		Type:   "sqlite",
		DBName: filepath.Join(t.TempDir(), "handler_test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	jwtSvc, err := jwt.NewService(jwt.Config{
		SecretKey: "this-is-a-very-long-secret-key-for-testing",
		Duration:  time.Hour,
	})
	require.NoError(t, err)

	logger := zap.NewNop()
	h := NewHandler(db, jwtSvc, logger, 5*time.Second)
	errHandler := errorx.NewErrorHandler(logger)

	r := gin.New()
	r.GET("/health", h.Health)
	r.POST("/api/auth/login", h.Login)

	authorized := r.Group("/api", middleware.JWTAuthMiddleware(jwtSvc, errHandler))
	authorized.GET("/auth/me", h.Me)
	authorized.GET("/tpe", h.ListTPEs)
	authorized.GET("/tpe/stats/summary", h.GetTPEStats)
	authorized.GET("/tpe/export/excel", h.ExportTPEs)
	authorized.GET("/tpe/:id", h.GetTPE)
	authorized.POST("/tpe", h.CreateTPE)
	authorized.PUT("/tpe/:id", h.UpdateTPE)
	authorized.DELETE("/tpe/:id", h.DeleteTPE)

	admin := authorized.Group("/users", middleware.AdminAuthMiddleware(errHandler))
	admin.GET("", h.ListUsers)
	admin.POST("", h.CreateUser)
	admin.PUT("/:id", h.UpdateUser)
	admin.DELETE("/:id", h.DeleteUser)

	return &testEnv{router: r, db: db, jwtSvc: jwtSvc}
}

// seedUser inserts an account directly and returns a valid token for it
func (e *testEnv) seedUser(t *testing.T, username, password string, role database.UserRole) (*database.User, string) {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := &database.User{Username: username, Password: string(hashed), Role: role, IsActive: true}
	require.NoError(t, e.db.CreateUser(context.Background(), user))

	token, err := e.jwtSvc.GenerateToken(user.ID, user.Username, string(user.Role))
	require.NoError(t, err)
	return user, token
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
