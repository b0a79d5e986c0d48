package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gear-system/internal/dto"
	"gear-system/internal/services"
	"gear-system/pkg/utils"
)

type AuthController struct {
	authSvc services.AuthServiceInterface
	logger  *zap.Logger
}

func NewAuthController(authSvc services.AuthServiceInterface, logger *zap.Logger) *AuthController {
	return &AuthController{authSvc: authSvc, logger: logger}
}

func (c *AuthController) Register(ctx echo.Context) error {
	var data dto.RegisterDTO
	if err := ctx.Bind(&data); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&data); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	tokens, err := c.authSvc.Register(ctx.Request().Context(), data)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, tokens, "registered", http.StatusCreated)
}

func (c *AuthController) Login(ctx echo.Context) error {
	var data dto.LoginDTO
	if err := ctx.Bind(&data); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&data); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	tokens, err := c.authSvc.Login(ctx.Request().Context(), data)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, tokens, "logged in", http.StatusOK)
}

func (c *AuthController) Refresh(ctx echo.Context) error {
	var data dto.RefreshDTO
	if err := ctx.Bind(&data); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&data); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	tokens, err := c.authSvc.Refresh(ctx.Request().Context(), data.RefreshToken)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, tokens, "token refreshed", http.StatusOK)
}

func (c *AuthController) Me(ctx echo.Context) error {
	profile, err := c.authSvc.Me(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, profile, "profile", http.StatusOK)
}
