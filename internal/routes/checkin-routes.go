package routes

import (
	"github.com/labstack/echo/v4"

	"gear-system/internal/controllers"
	"gear-system/pkg/middleware"
)

func registerCheckinRoutes(api *echo.Group, c *controllers.CheckinController, authMw *middleware.AuthMiddleware) {
	checkins := api.Group("/checkins", authMw.Auth, authMw.AdminOnly)
	checkins.GET("", c.GetCheckins)
	checkins.GET("/:id", c.FindCheckin)
	checkins.POST("/:id/approve", c.ApproveCheckin)
}
