package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gear-system/internal/dto"
	"gear-system/internal/services"
	"gear-system/pkg/utils"
)

type NotificationController struct {
	notificationSvc services.NotificationServiceInterface
	logger          *zap.Logger
}

func NewNotificationController(notificationSvc services.NotificationServiceInterface, logger *zap.Logger) *NotificationController {
	return &NotificationController{notificationSvc: notificationSvc, logger: logger}
}

func (c *NotificationController) GetNotifications(ctx echo.Context) error {
	params := utils.ParseQuery(ctx.QueryParams(), "unread")
	notifications, total, err := c.notificationSvc.GetNotifications(ctx.Request().Context(), params)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.ListResponse(ctx, notifications, total, int(params.Page), int(params.Limit), "notifications")
}

func (c *NotificationController) UnreadCount(ctx echo.Context) error {
	count, err := c.notificationSvc.UnreadCount(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, dto.UnreadCountDTO{Count: count}, "unread count", http.StatusOK)
}

func (c *NotificationController) MarkRead(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	data := dto.MarkReadDTO{IsRead: true}
	if err := ctx.Bind(&data); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.notificationSvc.MarkRead(ctx.Request().Context(), id, data.IsRead); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "notification updated", http.StatusOK)
}

func (c *NotificationController) MarkAllRead(ctx echo.Context) error {
	if err := c.notificationSvc.MarkAllRead(ctx.Request().Context()); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "all notifications read", http.StatusOK)
}
