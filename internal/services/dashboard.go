package services

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"gear-system/internal/dto"
	"gear-system/internal/entities"
	"gear-system/internal/repositories"
)

const (
	dashboardSummaryKey = "dashboard:summary"
	dashboardSummaryTTL = 30 * time.Second
)

type DashboardServiceInterface interface {
	Summary(ctx context.Context) (*dto.DashboardSummaryDTO, error)
}

type DashboardService struct {
	equipmentRepo repositories.EquipmentRepositoryInterface
	requestRepo   repositories.RequestRepositoryInterface
	checkinRepo   repositories.CheckinRepositoryInterface
	cache         repositories.CacheRepositoryInterface
	logger        *zap.Logger
}

func NewDashboardService(
	equipmentRepo repositories.EquipmentRepositoryInterface,
	requestRepo repositories.RequestRepositoryInterface,
	checkinRepo repositories.CheckinRepositoryInterface,
	cache repositories.CacheRepositoryInterface,
	logger *zap.Logger,
) DashboardServiceInterface {
	return &DashboardService{
		equipmentRepo: equipmentRepo,
		requestRepo:   requestRepo,
		checkinRepo:   checkinRepo,
		cache:         cache,
		logger:        logger,
	}
}

func (s *DashboardService) Summary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	if cached, err := s.cache.Get(ctx, dashboardSummaryKey); err == nil {
		var summary dto.DashboardSummaryDTO
		if err := json.Unmarshal([]byte(cached), &summary); err == nil {
			return &summary, nil
		}
	}

	byStatus, err := s.equipmentRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	pendingRequests, err := s.requestRepo.CountPending(ctx)
	if err != nil {
		return nil, err
	}
	pendingCheckins, err := s.checkinRepo.CountPending(ctx)
	if err != nil {
		return nil, err
	}

	summary := &dto.DashboardSummaryDTO{
		AvailableEquipment: byStatus[entities.EquipmentAvailable],
		CheckedOut:         byStatus[entities.EquipmentCheckedOut],
		UnderRepair:        byStatus[entities.EquipmentUnderRepair],
		PendingCheckin:     byStatus[entities.EquipmentPendingCheckin],
		PendingRequests:    pendingRequests,
		PendingCheckins:    pendingCheckins,
	}
	for _, count := range byStatus {
		summary.TotalEquipment += count
	}

	if payload, err := json.Marshal(summary); err == nil {
		if err := s.cache.Set(ctx, dashboardSummaryKey, payload, dashboardSummaryTTL); err != nil {
			s.logger.Warn("failed to cache dashboard summary", zap.Error(err))
		}
	}
	return summary, nil
}
