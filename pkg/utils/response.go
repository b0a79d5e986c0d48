package utils

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "gear-system/pkg/errors"
)

type HttpResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
}

type ListBody struct {
	List       interface{} `json:"list"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type Pagination struct {
	TotalCount uint64 `json:"total_count"`
	TotalPages int    `json:"total_pages"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int) error {
	return ctx.JSON(code, &HttpResponse{
		Status:  true,
		Body:    body,
		Message: message,
	})
}

func ListResponse(ctx echo.Context, list interface{}, total uint64, page, limit int, message string) error {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + uint64(limit) - 1) / uint64(limit))
	}
	return ctx.JSON(200, &HttpResponse{
		Status:  true,
		Message: message,
		Body: &ListBody{
			List: list,
			Pagination: &Pagination{
				TotalCount: total,
				TotalPages: totalPages,
				Page:       page,
				Limit:      limit,
			},
		},
	})
}

func ErrorResponse(ctx echo.Context, err error, logger *zap.Logger) error {
	code, message := apperrors.StatusAndMessage(err)
	if code >= 500 && logger != nil {
		logger.Error("request failed",
			zap.String("method", ctx.Request().Method),
			zap.String("uri", ctx.Request().RequestURI),
			zap.Error(err),
		)
	}
	return ctx.JSON(code, &HttpResponse{
		Status:  false,
		Message: message,
	})
}
