package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/regieops/tpe-manager/internal/apiserver/database"
	"github.com/regieops/tpe-manager/internal/apiserver/handler"
	"github.com/regieops/tpe-manager/internal/apiserver/middleware"
	"github.com/regieops/tpe-manager/internal/auth/jwt"
	"github.com/regieops/tpe-manager/internal/common/config"
	"github.com/regieops/tpe-manager/internal/common/errorx"
	"github.com/regieops/tpe-manager/pkg/logger"
	"github.com/regieops/tpe-manager/pkg/version"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of apiserver",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("apiserver version %s\n", version.Get())
		},
	}

	rootCmd = &cobra.Command{
		Use:   "apiserver",
		Short: "TPE administration API server",
		Long:  `apiserver exposes the administration API for payment-terminal deployment records`,
		Run: func(cmd *cobra.Command, args []string) {
			run()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "conf", "configs/apiserver.yaml", "path to configuration file")
	rootCmd.AddCommand(versionCmd)
}

func run() {
	cfg, err := config.LoadConfig[config.APIServerConfig](configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.NewLogger(&cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to initialize database",
			zap.String("type", cfg.Database.Type),
			zap.Error(err))
	}
	defer db.Close()

	if err := database.InitDefaultUsers(context.Background(), db,
		cfg.SuperAdmin.Username, cfg.SuperAdmin.Password); err != nil {
		zapLogger.Fatal("Failed to initialize default users", zap.Error(err))
	}

	jwtService, err := jwt.NewService(jwt.Config{
		SecretKey: cfg.JWT.SecretKey,
		Duration:  cfg.JWT.Duration,
	})
	if err != nil {
		zapLogger.Fatal("Failed to initialize JWT service", zap.Error(err))
	}

	zapLogger.Info("Starting apiserver",
		zap.String("version", version.Get()),
		zap.Int("port", cfg.Server.Port))

	h := handler.NewHandler(db, jwtService, zapLogger, cfg.Server.Timeout)
	errHandler := errorx.NewErrorHandler(zapLogger)

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", h.Health)
	r.POST("/api/auth/login", h.Login)

	authorized := r.Group("/api", middleware.JWTAuthMiddleware(jwtService, errHandler))
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

	if err := r.Run(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		zapLogger.Fatal("Server exited", zap.Error(err))
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
