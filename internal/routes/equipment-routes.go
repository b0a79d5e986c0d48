package routes

import (
	"github.com/labstack/echo/v4"

	"gear-system/internal/controllers"
	"gear-system/pkg/middleware"
)

func registerEquipmentRoutes(api *echo.Group, c *controllers.EquipmentController, authMw *middleware.AuthMiddleware) {
	equipments := api.Group("/equipments", authMw.Auth)
	equipments.GET("", c.GetEquipments)
	equipments.GET("/:id", c.FindEquipment)

	equipments.POST("", c.CreateEquipment, authMw.AdminOnly)
	equipments.PATCH("/:id", c.UpdateEquipment, authMw.AdminOnly)
	equipments.DELETE("/:id", c.DeleteEquipment, authMw.AdminOnly)
	equipments.POST("/:id/image", c.UploadImage, authMw.AdminOnly)
}
