package routes

import (
	"github.com/labstack/echo/v4"

	"gear-system/internal/controllers"
	"gear-system/pkg/middleware"
)

func registerRequestRoutes(api *echo.Group, c *controllers.RequestController, authMw *middleware.AuthMiddleware) {
	requests := api.Group("/requests", authMw.Auth)
	requests.POST("", c.CreateRequest)
	requests.GET("", c.GetRequests)
	requests.GET("/:id", c.FindRequest)
	requests.POST("/:id/cancel", c.CancelRequest)
	requests.POST("/:id/return", c.ReturnRequest)

	requests.POST("/:id/approve", c.ApproveRequest, authMw.AdminOnly)
	requests.POST("/:id/reject", c.RejectRequest, authMw.AdminOnly)
	requests.POST("/:id/checkout", c.CheckoutRequest, authMw.AdminOnly)
}
