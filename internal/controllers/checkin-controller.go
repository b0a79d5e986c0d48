package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gear-system/internal/services"
	"gear-system/pkg/utils"
)

type CheckinController struct {
	checkinSvc services.CheckinServiceInterface
	logger     *zap.Logger
}

func NewCheckinController(checkinSvc services.CheckinServiceInterface, logger *zap.Logger) *CheckinController {
	return &CheckinController{checkinSvc: checkinSvc, logger: logger}
}

func (c *CheckinController) GetCheckins(ctx echo.Context) error {
	params := utils.ParseQuery(ctx.QueryParams(), "status")
	checkins, total, err := c.checkinSvc.GetCheckins(ctx.Request().Context(), params)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.ListResponse(ctx, checkins, total, int(params.Page), int(params.Limit), "checkins")
}

func (c *CheckinController) FindCheckin(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	checkin, err := c.checkinSvc.FindCheckin(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, checkin, "checkin", http.StatusOK)
}

func (c *CheckinController) ApproveCheckin(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.checkinSvc.ApproveCheckin(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "checkin approved", http.StatusOK)
}
