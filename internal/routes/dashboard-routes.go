package routes

import (
	"github.com/labstack/echo/v4"

	"gear-system/internal/controllers"
	"gear-system/pkg/middleware"
)

func registerDashboardRoutes(api *echo.Group, c *controllers.DashboardController, authMw *middleware.AuthMiddleware) {
	api.GET("/dashboard/summary", c.Summary, authMw.Auth)
}
