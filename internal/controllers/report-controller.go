package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gear-system/internal/dto"
	"gear-system/internal/entities"
	"gear-system/internal/services"
	"gear-system/pkg/utils"
)

type ReportController struct {
	reportSvc services.ReportServiceInterface
	logger    *zap.Logger
}

func NewReportController(reportSvc services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportSvc: reportSvc, logger: logger}
}

type reportBody struct {
	Report     *entities.Report               `json:"report"`
	Comparison entities.PerformanceComparison `json:"comparison"`
}

// GetReport builds a usage report for ?from=...&to=... (both inclusive
// dates). format=json returns the report with a previous-period comparison;
// csv, pdf and xlsx stream a download.
func (c *ReportController) GetReport(ctx echo.Context) error {
	var query dto.ReportQueryDTO
	if err := ctx.Bind(&query); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&query); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	from, _ := time.Parse("2006-01-02", query.From)
	to, _ := time.Parse("2006-01-02", query.To)
	filter := entities.ReportFilter{From: from, To: to.AddDate(0, 0, 1)}

	report, err := c.reportSvc.GenerateReport(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	format := query.Format
	if format == "" || format == "json" {
		comparison, err := c.reportSvc.CompareWithPrevious(ctx.Request().Context(), filter, report)
		if err != nil {
			return utils.ErrorResponse(ctx, err, c.logger)
		}
		return utils.SuccessResponse(ctx, reportBody{Report: report, Comparison: comparison}, "report", http.StatusOK)
	}

	data, fileName, contentType, err := c.reportSvc.ExportReport(report, format)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	ctx.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", fileName))
	return ctx.Blob(http.StatusOK, contentType, data)
}
