package main

import (
	"context"
	"net/http"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"gear-system/internal/routes"
	"gear-system/pkg/config"
	"gear-system/pkg/customvalidator"
	"gear-system/pkg/database/postgresql"
	apperrors "gear-system/pkg/errors"
	"gear-system/pkg/eventbus"
	applogger "gear-system/pkg/logger"
	"gear-system/pkg/utils"
	"gear-system/pkg/websocket"
)

func main() {
	e := echo.New()
	logger := applogger.NewLogger()
	defer logger.Sync()

	cfg := config.New()
	cfg.MustValidate()

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("panic recovered",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "internal server error", err)
				_ = utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"http://localhost:5173", cfg.Server.BaseURL},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		ExposeHeaders:    []string{"Content-Disposition"},
	}))

	absUploads, err := filepath.Abs(cfg.Storage.UploadDir)
	if err != nil {
		logger.Fatal("failed to resolve uploads path", zap.Error(err))
	}
	e.Static("/uploads", absUploads)

	v := validator.New()
	if err := customvalidator.RegisterCustomValidations(v); err != nil {
		logger.Fatal("failed to register custom validations", zap.Error(err))
	}
	e.Validator = utils.NewValidator(v)

	pool := postgresql.ConnectDB(cfg.Postgres.DSN, logger)
	defer pool.Close()
	postgresql.RunMigrations(pool, "migrations", logger)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err), zap.String("address", cfg.Redis.Address))
	}

	hub := websocket.NewHub(logger)
	go hub.Run()
	bus := eventbus.New(logger)

	sched, err := routes.InitRouter(e, pool, redisClient, cfg, hub, bus, logger)
	if err != nil {
		logger.Fatal("failed to initialize router", zap.Error(err))
	}
	defer sched.Stop()

	logger.Info("server starting", zap.String("port", cfg.Server.Port))
	if err := e.Start(":" + cfg.Server.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
