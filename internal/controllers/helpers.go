package controllers

import (
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "gear-system/pkg/errors"
)

func idParam(ctx echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewInvalidInputError("invalid id %q", ctx.Param("id"))
	}
	return id, nil
}
