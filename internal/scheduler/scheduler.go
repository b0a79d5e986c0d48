package scheduler

import (
	"bytes"
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"gear-system/internal/entities"
	"gear-system/internal/events"
	"gear-system/internal/services"
	"gear-system/pkg/eventbus"
	"gear-system/pkg/filestorage"
)

// Scheduler runs the weekly report job. Monday morning it builds the report
// for the previous calendar week, archives CSV and PDF exports and announces
// them on the bus.
type Scheduler struct {
	cron        *cron.Cron
	reportSvc   services.ReportServiceInterface
	fileStorage filestorage.FileStorageInterface
	archiveDir  string
	bus         *eventbus.Bus
	logger      *zap.Logger
}

func New(
	reportSvc services.ReportServiceInterface,
	fileStorage filestorage.FileStorageInterface,
	archiveDir string,
	bus *eventbus.Bus,
	logger *zap.Logger,
) *Scheduler {
	return &Scheduler{
		cron:        cron.New(),
		reportSvc:   reportSvc,
		fileStorage: fileStorage,
		archiveDir:  archiveDir,
		bus:         bus,
		logger:      logger,
	}
}

func (s *Scheduler) Start(weeklySpec string) error {
	if _, err := s.cron.AddFunc(weeklySpec, s.runWeeklyReport); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("scheduler started", zap.String("weeklyReport", weeklySpec))
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) runWeeklyReport() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	filter := previousWeek(time.Now())
	report, err := s.reportSvc.GenerateReport(ctx, filter)
	if err != nil {
		s.logger.Error("weekly report generation failed", zap.Error(err))
		return
	}

	csvPath, err := s.archive(report, "csv")
	if err != nil {
		s.logger.Error("weekly report csv archive failed", zap.Error(err))
		return
	}
	pdfPath, err := s.archive(report, "pdf")
	if err != nil {
		s.logger.Error("weekly report pdf archive failed", zap.Error(err))
		return
	}

	s.logger.Info("weekly report archived",
		zap.String("csv", csvPath), zap.String("pdf", pdfPath))
	s.bus.Publish(ctx, events.WeeklyReportReadyEvent{
		Report:  report,
		CSVPath: "/uploads/" + csvPath,
		PDFPath: "/uploads/" + pdfPath,
	})
}

func (s *Scheduler) archive(report *entities.Report, format string) (string, error) {
	data, fileName, _, err := s.reportSvc.ExportReport(report, format)
	if err != nil {
		return "", err
	}
	return s.fileStorage.SaveNamed(bytes.NewReader(data), fileName, s.archiveDir)
}

// previousWeek is the Monday-to-Monday window ending before now.
func previousWeek(now time.Time) entities.ReportFilter {
	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	thisMonday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, -(weekday - 1))
	return entities.ReportFilter{From: thisMonday.AddDate(0, 0, -7), To: thisMonday}
}
