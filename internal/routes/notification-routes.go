package routes

import (
	"github.com/labstack/echo/v4"

	"gear-system/internal/controllers"
	"gear-system/pkg/middleware"
)

func registerNotificationRoutes(api *echo.Group, c *controllers.NotificationController, authMw *middleware.AuthMiddleware) {
	notifications := api.Group("/notifications", authMw.Auth)
	notifications.GET("", c.GetNotifications)
	notifications.GET("/unread-count", c.UnreadCount)
	notifications.PATCH("/:id/read", c.MarkRead)
	notifications.POST("/read-all", c.MarkAllRead)
}
