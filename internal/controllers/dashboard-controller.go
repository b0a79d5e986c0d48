package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gear-system/internal/services"
	"gear-system/pkg/utils"
)

type DashboardController struct {
	dashboardSvc services.DashboardServiceInterface
	logger       *zap.Logger
}

func NewDashboardController(dashboardSvc services.DashboardServiceInterface, logger *zap.Logger) *DashboardController {
	return &DashboardController{dashboardSvc: dashboardSvc, logger: logger}
}

func (c *DashboardController) Summary(ctx echo.Context) error {
	summary, err := c.dashboardSvc.Summary(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, summary, "dashboard summary", http.StatusOK)
}
