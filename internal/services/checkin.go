package services

import (
	"context"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"gear-system/internal/entities"
	"gear-system/internal/events"
	"gear-system/internal/repositories"
	apperrors "gear-system/pkg/errors"
	"gear-system/pkg/eventbus"
	"gear-system/pkg/utils"
)

type CheckinServiceInterface interface {
	GetCheckins(ctx context.Context, params utils.QueryParams) ([]entities.Checkin, uint64, error)
	FindCheckin(ctx context.Context, id uint64) (*entities.Checkin, error)
	ApproveCheckin(ctx context.Context, id uint64) error
}

type CheckinService struct {
	txManager     repositories.TxManagerInterface
	checkinRepo   repositories.CheckinRepositoryInterface
	equipmentRepo repositories.EquipmentRepositoryInterface
	activityRepo  repositories.ActivityRepositoryInterface
	bus           *eventbus.Bus
	logger        *zap.Logger
}

func NewCheckinService(
	txManager repositories.TxManagerInterface,
	checkinRepo repositories.CheckinRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	activityRepo repositories.ActivityRepositoryInterface,
	bus *eventbus.Bus,
	logger *zap.Logger,
) CheckinServiceInterface {
	return &CheckinService{
		txManager:     txManager,
		checkinRepo:   checkinRepo,
		equipmentRepo: equipmentRepo,
		activityRepo:  activityRepo,
		bus:           bus,
		logger:        logger,
	}
}

func (s *CheckinService) GetCheckins(ctx context.Context, params utils.QueryParams) ([]entities.Checkin, uint64, error) {
	return s.checkinRepo.GetCheckins(ctx, params)
}

func (s *CheckinService) FindCheckin(ctx context.Context, id uint64) (*entities.Checkin, error) {
	return s.checkinRepo.FindCheckin(ctx, id)
}

// ApproveCheckin confirms the condition report and settles the equipment:
// damaged gear goes under repair, good gear becomes available again. Either
// way the holder and due date are cleared and a check-in activity is logged.
func (s *CheckinService) ApproveCheckin(ctx context.Context, id uint64) error {
	actorID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return err
	}

	var checkin *entities.Checkin
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		c, err := s.checkinRepo.FindCheckinForUpdateInTx(ctx, tx, id)
		if err != nil {
			return err
		}
		if c.Status != entities.CheckinPending {
			return apperrors.NewInvalidInputError("check-in is already %s", c.Status)
		}
		checkin = c

		equipmentStatus := entities.EquipmentAvailable
		if c.Condition == entities.ConditionDamaged {
			equipmentStatus = entities.EquipmentUnderRepair
		}
		err = s.equipmentRepo.SetStatusInTx(ctx, tx, c.EquipmentID, equipmentStatus, null.Uint64{}, null.Time{})
		if err != nil {
			return err
		}
		if err := s.activityRepo.LogInTx(ctx, tx, c.RequesterID, c.EquipmentID, entities.ActionCheckin); err != nil {
			return err
		}
		return s.checkinRepo.ApproveInTx(ctx, tx, id)
	})
	if err != nil {
		s.logger.Error("failed to approve check-in", zap.Uint64("checkinID", id), zap.Error(err))
		return err
	}

	s.bus.Publish(ctx, events.CheckinApprovedEvent{
		Checkin:   checkin,
		ActorID:   actorID,
		Condition: checkin.Condition,
	})
	return nil
}
