package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"gear-system/internal/entities"
	"gear-system/internal/repositories"
	apperrors "gear-system/pkg/errors"
	"gear-system/pkg/export"
)

type ReportServiceInterface interface {
	GenerateReport(ctx context.Context, filter entities.ReportFilter) (*entities.Report, error)
	CompareWithPrevious(ctx context.Context, filter entities.ReportFilter, current *entities.Report) (entities.PerformanceComparison, error)
	ExportReport(report *entities.Report, format string) (data []byte, fileName, contentType string, err error)
}

type ReportService struct {
	equipmentRepo repositories.EquipmentRepositoryInterface
	userRepo      repositories.UserRepositoryInterface
	requestRepo   repositories.RequestRepositoryInterface
	activityRepo  repositories.ActivityRepositoryInterface
	logger        *zap.Logger
}

func NewReportService(
	equipmentRepo repositories.EquipmentRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	requestRepo repositories.RequestRepositoryInterface,
	activityRepo repositories.ActivityRepositoryInterface,
	logger *zap.Logger,
) ReportServiceInterface {
	return &ReportService{
		equipmentRepo: equipmentRepo,
		userRepo:      userRepo,
		requestRepo:   requestRepo,
		activityRepo:  activityRepo,
		logger:        logger,
	}
}

func (s *ReportService) GenerateReport(ctx context.Context, filter entities.ReportFilter) (*entities.Report, error) {
	if !filter.To.After(filter.From) {
		return nil, apperrors.NewInvalidInputError("report period end must be after its start")
	}
	data := s.fetchSources(ctx, filter)
	return BuildReport(filter, data), nil
}

// CompareWithPrevious builds the adjacent equal-length window right before the
// current one and diffs the two periods.
func (s *ReportService) CompareWithPrevious(ctx context.Context, filter entities.ReportFilter, current *entities.Report) (entities.PerformanceComparison, error) {
	span := filter.To.Sub(filter.From)
	previousFilter := entities.ReportFilter{From: filter.From.Add(-span), To: filter.From}
	previous, err := s.GenerateReport(ctx, previousFilter)
	if err != nil {
		return entities.PerformanceComparison{}, err
	}
	return ComparePerformance(current, previous), nil
}

// fetchSources pulls the four source datasets concurrently. A failing source
// is logged and degrades to an empty slice so one broken query never takes
// down the whole report.
func (s *ReportService) fetchSources(ctx context.Context, filter entities.ReportFilter) entities.SourceData {
	var data entities.SourceData
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		equipments, err := s.equipmentRepo.GetAllEquipments(gctx)
		if err != nil {
			s.logger.Warn("report source failed: equipments", zap.Error(err))
			return nil
		}
		data.Equipments = equipments
		return nil
	})
	g.Go(func() error {
		users, err := s.userRepo.GetUsers(gctx)
		if err != nil {
			s.logger.Warn("report source failed: users", zap.Error(err))
			return nil
		}
		data.Users = users
		return nil
	})
	g.Go(func() error {
		requests, err := s.requestRepo.GetRequestsInRange(gctx, filter.From, filter.To)
		if err != nil {
			s.logger.Warn("report source failed: requests", zap.Error(err))
			return nil
		}
		data.Requests = requests
		return nil
	})
	g.Go(func() error {
		activities, err := s.activityRepo.GetActivitiesInRange(gctx, filter.From, filter.To)
		if err != nil {
			s.logger.Warn("report source failed: activities", zap.Error(err))
			return nil
		}
		data.Activities = activities
		return nil
	})

	// Closures never return errors, so this only propagates a cancelled ctx.
	_ = g.Wait()
	return data
}

func (s *ReportService) ExportReport(report *entities.Report, format string) ([]byte, string, string, error) {
	base := fmt.Sprintf("gear-report_%s_%s",
		report.PeriodStart.Format("2006-01-02"), report.PeriodEnd.Format("2006-01-02"))

	switch format {
	case "csv":
		data, err := export.RenderCSV(report)
		return data, base + ".csv", "text/csv", err
	case "pdf":
		data, err := export.RenderPDF(report)
		return data, base + ".pdf", "application/pdf", err
	case "xlsx":
		data, err := export.RenderXLSX(report)
		return data, base + ".xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", err
	default:
		return nil, "", "", apperrors.NewInvalidInputError("unsupported report format %q", format)
	}
}
