package routes

import (
	"github.com/labstack/echo/v4"

	"gear-system/internal/controllers"
	"gear-system/pkg/middleware"
)

func registerReportRoutes(api *echo.Group, c *controllers.ReportController, authMw *middleware.AuthMiddleware) {
	api.GET("/reports", c.GetReport, authMw.Auth, authMw.AdminOnly)
}
