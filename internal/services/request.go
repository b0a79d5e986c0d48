package services

import (
	"context"
	"strings"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"gear-system/internal/dto"
	"gear-system/internal/entities"
	"gear-system/internal/events"
	"gear-system/internal/repositories"
	apperrors "gear-system/pkg/errors"
	"gear-system/pkg/eventbus"
	"gear-system/pkg/utils"
)

type RequestServiceInterface interface {
	CreateRequest(ctx context.Context, data dto.CreateRequestDTO) (uint64, error)
	GetRequests(ctx context.Context, params utils.QueryParams, onlyOwn bool) ([]entities.Request, uint64, error)
	FindRequest(ctx context.Context, id uint64) (*entities.Request, error)
	ApproveRequest(ctx context.Context, id uint64) error
	RejectRequest(ctx context.Context, id uint64, reason string) error
	CancelRequest(ctx context.Context, id uint64) error
	CheckoutRequest(ctx context.Context, id uint64) error
	ReturnRequest(ctx context.Context, id uint64, data dto.ReturnRequestDTO) error
}

type RequestService struct {
	txManager     repositories.TxManagerInterface
	requestRepo   repositories.RequestRepositoryInterface
	equipmentRepo repositories.EquipmentRepositoryInterface
	checkinRepo   repositories.CheckinRepositoryInterface
	activityRepo  repositories.ActivityRepositoryInterface
	bus           *eventbus.Bus
	logger        *zap.Logger
}

func NewRequestService(
	txManager repositories.TxManagerInterface,
	requestRepo repositories.RequestRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	checkinRepo repositories.CheckinRepositoryInterface,
	activityRepo repositories.ActivityRepositoryInterface,
	bus *eventbus.Bus,
	logger *zap.Logger,
) RequestServiceInterface {
	return &RequestService{
		txManager:     txManager,
		requestRepo:   requestRepo,
		equipmentRepo: equipmentRepo,
		checkinRepo:   checkinRepo,
		activityRepo:  activityRepo,
		bus:           bus,
		logger:        logger,
	}
}

func (s *RequestService) CreateRequest(ctx context.Context, data dto.CreateRequestDTO) (uint64, error) {
	requesterID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return 0, err
	}

	var newID uint64
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		id, err := s.requestRepo.CreateRequestInTx(ctx, tx, requesterID, data)
		if err != nil {
			return err
		}
		newID = id
		return nil
	})
	if err != nil {
		s.logger.Error("failed to create request", zap.Uint64("requesterID", requesterID), zap.Error(err))
		return 0, err
	}

	if request, err := s.requestRepo.FindRequest(ctx, newID); err == nil {
		s.bus.Publish(ctx, events.RequestCreatedEvent{Request: request, ActorID: requesterID})
	}

	return newID, nil
}

func (s *RequestService) GetRequests(ctx context.Context, params utils.QueryParams, onlyOwn bool) ([]entities.Request, uint64, error) {
	var requesterID uint64
	if onlyOwn {
		id, err := utils.GetUserIDFromCtx(ctx)
		if err != nil {
			return nil, 0, err
		}
		requesterID = id
	}
	return s.requestRepo.GetRequests(ctx, params, requesterID)
}

func (s *RequestService) FindRequest(ctx context.Context, id uint64) (*entities.Request, error) {
	request, err := s.requestRepo.FindRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	// Non-admins only see their own requests.
	if !utils.IsAdmin(ctx) {
		userID, err := utils.GetUserIDFromCtx(ctx)
		if err != nil {
			return nil, err
		}
		if request.RequesterID != userID {
			return nil, apperrors.ErrRequestNotOwned
		}
	}
	return request, nil
}

// ApproveRequest moves a pending request to approved after verifying every
// requested item is still in stock. The whole check-and-set runs under row
// locks so concurrent approvals cannot double-book an item.
func (s *RequestService) ApproveRequest(ctx context.Context, id uint64) error {
	return s.transition(ctx, id, entities.RequestPending, entities.RequestApproved, "", func(tx pgx.Tx, request *entities.Request) error {
		ids := make([]uint64, 0, len(request.Items))
		for _, item := range request.Items {
			ids = append(ids, item.EquipmentID)
		}
		available, err := s.equipmentRepo.CountAvailableInTx(ctx, tx, ids)
		if err != nil {
			return err
		}
		for _, item := range request.Items {
			if available[item.EquipmentID] < uint64(item.Quantity) {
				return apperrors.ErrInsufficientStock
			}
		}
		return nil
	})
}

func (s *RequestService) RejectRequest(ctx context.Context, id uint64, reason string) error {
	return s.transition(ctx, id, entities.RequestPending, entities.RequestRejected, reason, nil)
}

// CancelRequest is requester-initiated and only valid while the request is
// still pending. The status check is case-insensitive to tolerate legacy
// rows with mixed-case statuses.
func (s *RequestService) CancelRequest(ctx context.Context, id uint64) error {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return err
	}

	var request *entities.Request
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		req, err := s.requestRepo.FindRequestForUpdateInTx(ctx, tx, id)
		if err != nil {
			return err
		}
		if req.RequesterID != userID && !utils.IsAdmin(ctx) {
			return apperrors.ErrRequestNotOwned
		}
		if !strings.EqualFold(req.Status, entities.RequestPending) {
			return apperrors.ErrRequestNotPending
		}
		request = req
		return s.requestRepo.SetStatusInTx(ctx, tx, id, entities.RequestCancelled)
	})
	if err != nil {
		return err
	}

	s.bus.Publish(ctx, events.RequestStatusChangedEvent{
		Request:   request,
		ActorID:   userID,
		OldStatus: request.Status,
		NewStatus: entities.RequestCancelled,
	})
	return nil
}

// CheckoutRequest hands the approved gear to the requester: every item flips
// to checked_out with a due date derived from the requested duration, and a
// checkout row lands in the activity log.
func (s *RequestService) CheckoutRequest(ctx context.Context, id uint64) error {
	return s.transition(ctx, id, entities.RequestApproved, entities.RequestCheckedOut, "", func(tx pgx.Tx, request *entities.Request) error {
		dueDate := time.Now().AddDate(0, 0, request.DurationDays)
		for _, item := range request.Items {
			equipment, err := s.equipmentRepo.FindEquipmentForUpdateInTx(ctx, tx, item.EquipmentID)
			if err != nil {
				return err
			}
			if equipment.Status != entities.EquipmentAvailable {
				return apperrors.NewInvalidInputError("equipment %q is no longer available", equipment.Name)
			}
			err = s.equipmentRepo.SetStatusInTx(ctx, tx, item.EquipmentID, entities.EquipmentCheckedOut,
				null.Uint64From(request.RequesterID), null.TimeFrom(dueDate))
			if err != nil {
				return err
			}
			if err := s.activityRepo.LogInTx(ctx, tx, request.RequesterID, item.EquipmentID, entities.ActionCheckout); err != nil {
				return err
			}
		}
		return s.requestRepo.SetDueDateInTx(ctx, tx, id, dueDate)
	})
}

// ReturnRequest starts the check-in workflow: each returned item goes to
// pending_checkin with a condition report, damage reports are logged, and the
// request itself reaches its terminal returned state.
func (s *RequestService) ReturnRequest(ctx context.Context, id uint64, data dto.ReturnRequestDTO) error {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return err
	}

	var request *entities.Request
	var created []entities.Checkin
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		req, err := s.requestRepo.FindRequestForUpdateInTx(ctx, tx, id)
		if err != nil {
			return err
		}
		if req.RequesterID != userID && !utils.IsAdmin(ctx) {
			return apperrors.ErrRequestNotOwned
		}
		if req.Status != entities.RequestCheckedOut {
			return apperrors.NewInvalidInputError("request is not checked out")
		}
		request = req

		requested := make(map[uint64]bool, len(req.Items))
		for _, item := range req.Items {
			requested[item.EquipmentID] = true
		}

		for _, item := range data.Items {
			if !requested[item.EquipmentID] {
				return apperrors.NewInvalidInputError("equipment %d is not part of this request", item.EquipmentID)
			}
			equipment, err := s.equipmentRepo.FindEquipmentForUpdateInTx(ctx, tx, item.EquipmentID)
			if err != nil {
				return err
			}
			if !equipment.HolderID.Valid || equipment.HolderID.Uint64 != req.RequesterID {
				return apperrors.NewInvalidInputError("equipment %q is not held by the requester", equipment.Name)
			}

			err = s.equipmentRepo.SetStatusInTx(ctx, tx, item.EquipmentID, entities.EquipmentPendingCheckin,
				equipment.HolderID, equipment.DueDate)
			if err != nil {
				return err
			}

			checkin := entities.Checkin{
				RequesterID: req.RequesterID,
				EquipmentID: item.EquipmentID,
				RequestID:   null.Uint64From(req.ID),
				Condition:   item.Condition,
				Notes:       null.NewString(item.Notes, item.Notes != ""),
			}
			checkinID, err := s.checkinRepo.CreateCheckinInTx(ctx, tx, checkin)
			if err != nil {
				return err
			}
			checkin.ID = checkinID
			created = append(created, checkin)
			if item.Condition == entities.ConditionDamaged {
				if err := s.activityRepo.LogInTx(ctx, tx, req.RequesterID, item.EquipmentID, entities.ActionDamageReport); err != nil {
					return err
				}
			}
		}

		return s.requestRepo.SetStatusInTx(ctx, tx, id, entities.RequestReturned)
	})
	if err != nil {
		return err
	}

	s.bus.Publish(ctx, events.RequestStatusChangedEvent{
		Request:   request,
		ActorID:   userID,
		OldStatus: entities.RequestCheckedOut,
		NewStatus: entities.RequestReturned,
	})
	for i := range created {
		s.bus.Publish(ctx, events.CheckinCreatedEvent{Checkin: &created[i], ActorID: userID})
	}
	return nil
}

// transition is the shared guarded state change used by the admin workflow
// steps: lock, verify the current status, run the step-specific body, set the
// new status, publish.
func (s *RequestService) transition(ctx context.Context, id uint64, fromStatus, toStatus, reason string, body func(tx pgx.Tx, request *entities.Request) error) error {
	actorID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return err
	}

	var request *entities.Request
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		req, err := s.requestRepo.FindRequestForUpdateInTx(ctx, tx, id)
		if err != nil {
			return err
		}
		if entities.IsTerminalRequestStatus(req.Status) {
			return apperrors.NewInvalidInputError("request is already %s", req.Status)
		}
		if req.Status != fromStatus {
			return apperrors.NewInvalidInputError("request is %s, expected %s", req.Status, fromStatus)
		}
		request = req

		if body != nil {
			if err := body(tx, req); err != nil {
				return err
			}
		}
		return s.requestRepo.SetStatusInTx(ctx, tx, id, toStatus)
	})
	if err != nil {
		return err
	}

	s.bus.Publish(ctx, events.RequestStatusChangedEvent{
		Request:   request,
		ActorID:   actorID,
		OldStatus: fromStatus,
		NewStatus: toStatus,
		Reason:    reason,
	})
	return nil
}
