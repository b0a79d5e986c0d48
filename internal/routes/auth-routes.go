package routes

import (
	"github.com/labstack/echo/v4"

	"gear-system/internal/controllers"
	"gear-system/pkg/middleware"
)

func registerAuthRoutes(api *echo.Group, c *controllers.AuthController, authMw *middleware.AuthMiddleware) {
	auth := api.Group("/auth")
	auth.POST("/register", c.Register)
	auth.POST("/login", c.Login)
	auth.POST("/refresh", c.Refresh)
	auth.GET("/me", c.Me, authMw.Auth)
}
