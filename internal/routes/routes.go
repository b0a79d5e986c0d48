package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gear-system/internal/controllers"
	"gear-system/internal/listeners"
	"gear-system/internal/repositories"
	"gear-system/internal/scheduler"
	"gear-system/internal/services"
	"gear-system/pkg/config"
	"gear-system/pkg/eventbus"
	"gear-system/pkg/filestorage"
	"gear-system/pkg/middleware"
	"gear-system/pkg/service"
	"gear-system/pkg/websocket"
)

// InitRouter builds the whole dependency graph and mounts every route group.
// It returns the scheduler so main can stop it on shutdown.
func InitRouter(
	e *echo.Echo,
	pool *pgxpool.Pool,
	redisClient *redis.Client,
	cfg *config.Config,
	hub *websocket.Hub,
	bus *eventbus.Bus,
	logger *zap.Logger,
) (*scheduler.Scheduler, error) {
	fileStorage, err := filestorage.NewLocalFileStorage(cfg.Storage.UploadDir)
	if err != nil {
		return nil, err
	}

	txManager := repositories.NewTxManager(pool)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)
	userRepo := repositories.NewUserRepository(pool, logger)
	equipmentRepo := repositories.NewEquipmentRepository(pool, logger)
	requestRepo := repositories.NewRequestRepository(pool, logger)
	checkinRepo := repositories.NewCheckinRepository(pool, logger)
	activityRepo := repositories.NewActivityRepository(pool, logger)
	notificationRepo := repositories.NewNotificationRepository(pool, logger)

	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL)
	authSvc := services.NewAuthService(userRepo, jwtSvc, logger)
	equipmentSvc := services.NewEquipmentService(equipmentRepo, fileStorage, logger)
	requestSvc := services.NewRequestService(txManager, requestRepo, equipmentRepo, checkinRepo, activityRepo, bus, logger)
	checkinSvc := services.NewCheckinService(txManager, checkinRepo, equipmentRepo, activityRepo, bus, logger)
	notificationSvc := services.NewNotificationService(notificationRepo, cacheRepo, logger)
	dashboardSvc := services.NewDashboardService(equipmentRepo, requestRepo, checkinRepo, cacheRepo, logger)
	reportSvc := services.NewReportService(equipmentRepo, userRepo, requestRepo, activityRepo, logger)

	notificationListener := listeners.NewNotificationListener(notificationSvc, userRepo, hub, logger)
	notificationListener.Register(bus)

	authMw := middleware.NewAuthMiddleware(jwtSvc, logger)
	api := e.Group("/api/v1")

	registerAuthRoutes(api, controllers.NewAuthController(authSvc, logger), authMw)
	registerEquipmentRoutes(api, controllers.NewEquipmentController(equipmentSvc, logger), authMw)
	registerRequestRoutes(api, controllers.NewRequestController(requestSvc, logger), authMw)
	registerCheckinRoutes(api, controllers.NewCheckinController(checkinSvc, logger), authMw)
	registerNotificationRoutes(api, controllers.NewNotificationController(notificationSvc, logger), authMw)
	registerDashboardRoutes(api, controllers.NewDashboardController(dashboardSvc, logger), authMw)
	registerReportRoutes(api, controllers.NewReportController(reportSvc, logger), authMw)

	e.GET("/ws", controllers.NewWebsocketController(hub, jwtSvc, logger).Serve)

	sched := scheduler.New(reportSvc, fileStorage, cfg.Report.ArchiveDir, bus, logger)
	if err := sched.Start(cfg.Report.WeeklyCron); err != nil {
		return nil, err
	}
	return sched, nil
}
