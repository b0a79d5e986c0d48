package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gear-system/internal/dto"
	"gear-system/internal/services"
	"gear-system/pkg/utils"
)

type EquipmentController struct {
	equipmentSvc services.EquipmentServiceInterface
	logger       *zap.Logger
}

func NewEquipmentController(equipmentSvc services.EquipmentServiceInterface, logger *zap.Logger) *EquipmentController {
	return &EquipmentController{equipmentSvc: equipmentSvc, logger: logger}
}

func (c *EquipmentController) GetEquipments(ctx echo.Context) error {
	params := utils.ParseQuery(ctx.QueryParams(), "status", "category")
	equipments, total, err := c.equipmentSvc.GetEquipments(ctx.Request().Context(), params)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.ListResponse(ctx, equipments, total, int(params.Page), int(params.Limit), "equipments")
}

func (c *EquipmentController) FindEquipment(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	equipment, err := c.equipmentSvc.FindEquipment(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, equipment, "equipment", http.StatusOK)
}

func (c *EquipmentController) CreateEquipment(ctx echo.Context) error {
	var data dto.CreateEquipmentDTO
	if err := ctx.Bind(&data); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&data); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	id, err := c.equipmentSvc.CreateEquipment(ctx.Request().Context(), data)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, echo.Map{"id": id}, "equipment created", http.StatusCreated)
}

func (c *EquipmentController) UpdateEquipment(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var data dto.UpdateEquipmentDTO
	if err := ctx.Bind(&data); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.equipmentSvc.UpdateEquipment(ctx.Request().Context(), id, data); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "equipment updated", http.StatusOK)
}

func (c *EquipmentController) DeleteEquipment(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.equipmentSvc.DeleteEquipment(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "equipment deleted", http.StatusOK)
}

func (c *EquipmentController) UploadImage(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	fileHeader, err := ctx.FormFile("image")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	file, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	defer file.Close()

	imageURL, err := c.equipmentSvc.UploadImage(ctx.Request().Context(), id, file, fileHeader.Filename)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, echo.Map{"image_url": imageURL}, "image uploaded", http.StatusOK)
}
