package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gear-system/internal/dto"
	"gear-system/internal/services"
	"gear-system/pkg/utils"
)

type RequestController struct {
	requestSvc services.RequestServiceInterface
	logger     *zap.Logger
}

func NewRequestController(requestSvc services.RequestServiceInterface, logger *zap.Logger) *RequestController {
	return &RequestController{requestSvc: requestSvc, logger: logger}
}

func (c *RequestController) CreateRequest(ctx echo.Context) error {
	var data dto.CreateRequestDTO
	if err := ctx.Bind(&data); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&data); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	id, err := c.requestSvc.CreateRequest(ctx.Request().Context(), data)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, echo.Map{"id": id}, "request created", http.StatusCreated)
}

// GetRequests lists all requests for admins; everyone else sees only their
// own. ?my=true forces the personal view for admins too.
func (c *RequestController) GetRequests(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	params := utils.ParseQuery(ctx.QueryParams(), "status")
	onlyOwn := !utils.IsAdmin(reqCtx) || ctx.QueryParam("my") == "true"

	requests, total, err := c.requestSvc.GetRequests(reqCtx, params, onlyOwn)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.ListResponse(ctx, requests, total, int(params.Page), int(params.Limit), "requests")
}

func (c *RequestController) FindRequest(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	request, err := c.requestSvc.FindRequest(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, request, "request", http.StatusOK)
}

func (c *RequestController) ApproveRequest(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.requestSvc.ApproveRequest(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "request approved", http.StatusOK)
}

func (c *RequestController) RejectRequest(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var data dto.RejectRequestDTO
	if err := ctx.Bind(&data); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&data); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.requestSvc.RejectRequest(ctx.Request().Context(), id, data.Reason); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "request rejected", http.StatusOK)
}

func (c *RequestController) CancelRequest(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.requestSvc.CancelRequest(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "request cancelled", http.StatusOK)
}

func (c *RequestController) CheckoutRequest(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.requestSvc.CheckoutRequest(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "equipment checked out", http.StatusOK)
}

func (c *RequestController) ReturnRequest(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var data dto.ReturnRequestDTO
	if err := ctx.Bind(&data); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&data); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.requestSvc.ReturnRequest(ctx.Request().Context(), id, data); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "return submitted", http.StatusOK)
}
