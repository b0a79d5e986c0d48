package services

import (
	"context"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gear-system/internal/dto"
	"gear-system/internal/entities"
	"gear-system/internal/events"
	"gear-system/pkg/contextkeys"
	apperrors "gear-system/pkg/errors"
	"gear-system/pkg/eventbus"
	"gear-system/pkg/utils"
)

// fakeTxManager runs the body directly; repository fakes ignore the tx handle.
type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

type fakeRequestRepo struct {
	requests map[uint64]*entities.Request
	statuses map[uint64]string
}

func newFakeRequestRepo(requests ...*entities.Request) *fakeRequestRepo {
	repo := &fakeRequestRepo{
		requests: make(map[uint64]*entities.Request),
		statuses: make(map[uint64]string),
	}
	for _, request := range requests {
		repo.requests[request.ID] = request
	}
	return repo
}

func (r *fakeRequestRepo) GetRequests(ctx context.Context, params utils.QueryParams, requesterID uint64) ([]entities.Request, uint64, error) {
	return nil, 0, nil
}

func (r *fakeRequestRepo) GetRequestsInRange(ctx context.Context, from, to time.Time) ([]entities.Request, error) {
	return nil, nil
}

func (r *fakeRequestRepo) FindRequest(ctx context.Context, id uint64) (*entities.Request, error) {
	request, ok := r.requests[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return request, nil
}

func (r *fakeRequestRepo) GetRequestItems(ctx context.Context, requestID uint64) ([]entities.RequestItem, error) {
	return nil, nil
}

func (r *fakeRequestRepo) CreateRequestInTx(ctx context.Context, tx pgx.Tx, requesterID uint64, data dto.CreateRequestDTO) (uint64, error) {
	return 1, nil
}

func (r *fakeRequestRepo) FindRequestForUpdateInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Request, error) {
	return r.FindRequest(ctx, id)
}

func (r *fakeRequestRepo) SetStatusInTx(ctx context.Context, tx pgx.Tx, id uint64, status string) error {
	r.statuses[id] = status
	return nil
}

func (r *fakeRequestRepo) SetDueDateInTx(ctx context.Context, tx pgx.Tx, id uint64, dueDate time.Time) error {
	return nil
}

func (r *fakeRequestRepo) CountPending(ctx context.Context) (uint64, error) { return 0, nil }

type fakeEquipmentRepo struct {
	available map[uint64]uint64
}

func (r *fakeEquipmentRepo) GetEquipments(ctx context.Context, params utils.QueryParams) ([]entities.Equipment, uint64, error) {
	return nil, 0, nil
}
func (r *fakeEquipmentRepo) GetAllEquipments(ctx context.Context) ([]entities.Equipment, error) {
	return nil, nil
}
func (r *fakeEquipmentRepo) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	return nil, apperrors.ErrNotFound
}
func (r *fakeEquipmentRepo) CreateEquipment(ctx context.Context, data dto.CreateEquipmentDTO) (uint64, error) {
	return 0, nil
}
func (r *fakeEquipmentRepo) UpdateEquipment(ctx context.Context, id uint64, data dto.UpdateEquipmentDTO) error {
	return nil
}
func (r *fakeEquipmentRepo) SoftDeleteEquipment(ctx context.Context, id uint64) error { return nil }
func (r *fakeEquipmentRepo) CountByStatus(ctx context.Context) (map[string]uint64, error) {
	return nil, nil
}
func (r *fakeEquipmentRepo) FindEquipmentForUpdateInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Equipment, error) {
	return nil, apperrors.ErrNotFound
}
func (r *fakeEquipmentRepo) SetStatusInTx(ctx context.Context, tx pgx.Tx, id uint64, status string, holderID null.Uint64, dueDate null.Time) error {
	return nil
}
func (r *fakeEquipmentRepo) CountAvailableInTx(ctx context.Context, tx pgx.Tx, ids []uint64) (map[uint64]uint64, error) {
	return r.available, nil
}

type fakeCheckinRepo struct{}

func (fakeCheckinRepo) GetCheckins(ctx context.Context, params utils.QueryParams) ([]entities.Checkin, uint64, error) {
	return nil, 0, nil
}
func (fakeCheckinRepo) FindCheckin(ctx context.Context, id uint64) (*entities.Checkin, error) {
	return nil, apperrors.ErrNotFound
}
func (fakeCheckinRepo) CountPending(ctx context.Context) (uint64, error) { return 0, nil }
func (fakeCheckinRepo) CreateCheckinInTx(ctx context.Context, tx pgx.Tx, checkin entities.Checkin) (uint64, error) {
	return 1, nil
}
func (fakeCheckinRepo) FindCheckinForUpdateInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Checkin, error) {
	return nil, apperrors.ErrNotFound
}
func (fakeCheckinRepo) ApproveInTx(ctx context.Context, tx pgx.Tx, id uint64) error { return nil }

type fakeActivityRepo struct {
	logged []string
}

func (r *fakeActivityRepo) LogInTx(ctx context.Context, tx pgx.Tx, userID, equipmentID uint64, action string) error {
	r.logged = append(r.logged, action)
	return nil
}

func (r *fakeActivityRepo) GetActivitiesInRange(ctx context.Context, from, to time.Time) ([]entities.ActivityLog, error) {
	return nil, nil
}

func userContext(userID uint64, role string) context.Context {
	ctx := context.WithValue(context.Background(), contextkeys.UserIDKey, userID)
	return context.WithValue(ctx, contextkeys.UserRoleKey, role)
}

func newTestRequestService(requestRepo *fakeRequestRepo, equipmentRepo *fakeEquipmentRepo) RequestServiceInterface {
	if equipmentRepo == nil {
		equipmentRepo = &fakeEquipmentRepo{}
	}
	return NewRequestService(
		fakeTxManager{},
		requestRepo,
		equipmentRepo,
		fakeCheckinRepo{},
		&fakeActivityRepo{},
		eventbus.New(zap.NewNop()),
		zap.NewNop(),
	)
}

func TestCancelRequestOnlyPending(t *testing.T) {
	cases := []struct {
		status  string
		wantErr error
	}{
		{entities.RequestPending, nil},
		{"Pending", nil}, // legacy mixed-case rows still cancel
		{"PENDING", nil},
		{entities.RequestApproved, apperrors.ErrRequestNotPending},
		{entities.RequestCheckedOut, apperrors.ErrRequestNotPending},
		{entities.RequestRejected, apperrors.ErrRequestNotPending},
		{entities.RequestCancelled, apperrors.ErrRequestNotPending},
	}

	for _, tc := range cases {
		t.Run(tc.status, func(t *testing.T) {
			repo := newFakeRequestRepo(&entities.Request{ID: 1, RequesterID: 10, Status: tc.status})
			svc := newTestRequestService(repo, nil)

			err := svc.CancelRequest(userContext(10, entities.RoleUser), 1)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Empty(t, repo.statuses)
			} else {
				require.NoError(t, err)
				assert.Equal(t, entities.RequestCancelled, repo.statuses[1])
			}
		})
	}
}

func TestCancelRequestOwnership(t *testing.T) {
	repo := newFakeRequestRepo(&entities.Request{ID: 1, RequesterID: 10, Status: entities.RequestPending})
	svc := newTestRequestService(repo, nil)

	err := svc.CancelRequest(userContext(99, entities.RoleUser), 1)
	assert.ErrorIs(t, err, apperrors.ErrRequestNotOwned)

	// Admins may cancel on the requester's behalf.
	err = svc.CancelRequest(userContext(99, entities.RoleAdmin), 1)
	require.NoError(t, err)
	assert.Equal(t, entities.RequestCancelled, repo.statuses[1])
}

func TestApproveRequestInsufficientStock(t *testing.T) {
	repo := newFakeRequestRepo(&entities.Request{
		ID: 1, RequesterID: 10, Status: entities.RequestPending,
		Items: []entities.RequestItem{{EquipmentID: 5, Quantity: 2}},
	})
	equipmentRepo := &fakeEquipmentRepo{available: map[uint64]uint64{5: 1}}
	svc := newTestRequestService(repo, equipmentRepo)

	err := svc.ApproveRequest(userContext(1, entities.RoleAdmin), 1)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientStock)
	assert.Empty(t, repo.statuses)
}

func TestApproveRequestSucceeds(t *testing.T) {
	repo := newFakeRequestRepo(&entities.Request{
		ID: 1, RequesterID: 10, Status: entities.RequestPending,
		Items: []entities.RequestItem{{EquipmentID: 5, Quantity: 1}},
	})
	equipmentRepo := &fakeEquipmentRepo{available: map[uint64]uint64{5: 3}}
	svc := newTestRequestService(repo, equipmentRepo)

	err := svc.ApproveRequest(userContext(1, entities.RoleAdmin), 1)
	require.NoError(t, err)
	assert.Equal(t, entities.RequestApproved, repo.statuses[1])
}

func TestApproveRequestWrongState(t *testing.T) {
	repo := newFakeRequestRepo(&entities.Request{ID: 1, RequesterID: 10, Status: entities.RequestApproved})
	svc := newTestRequestService(repo, nil)

	err := svc.ApproveRequest(userContext(1, entities.RoleAdmin), 1)
	var invalidInput *apperrors.InvalidInputError
	assert.ErrorAs(t, err, &invalidInput)
}

func TestTransitionRejectsTerminalRequests(t *testing.T) {
	for _, status := range []string{entities.RequestCancelled, entities.RequestRejected, entities.RequestReturned} {
		t.Run(status, func(t *testing.T) {
			repo := newFakeRequestRepo(&entities.Request{ID: 1, RequesterID: 10, Status: status})
			svc := newTestRequestService(repo, nil)

			err := svc.ApproveRequest(userContext(1, entities.RoleAdmin), 1)
			var invalidInput *apperrors.InvalidInputError
			require.ErrorAs(t, err, &invalidInput)
			assert.Contains(t, err.Error(), "already")
			assert.Empty(t, repo.statuses)
		})
	}
}

// heldEquipmentRepo pretends every item is checked out to a fixed holder.
type heldEquipmentRepo struct {
	fakeEquipmentRepo
	holder uint64
}

func (r *heldEquipmentRepo) FindEquipmentForUpdateInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Equipment, error) {
	return &entities.Equipment{
		ID: id, Name: "Camera", Status: entities.EquipmentCheckedOut,
		HolderID: null.Uint64From(r.holder),
	}, nil
}

func TestReturnRequestPublishesCheckinCreated(t *testing.T) {
	repo := newFakeRequestRepo(&entities.Request{
		ID: 1, RequesterID: 10, Status: entities.RequestCheckedOut,
		Items: []entities.RequestItem{{EquipmentID: 5, Quantity: 1}},
	})
	bus := eventbus.New(zap.NewNop())
	published := make(chan eventbus.Event, 1)
	bus.Subscribe(events.CheckinCreated, func(ctx context.Context, event eventbus.Event) error {
		published <- event
		return nil
	})
	svc := NewRequestService(
		fakeTxManager{},
		repo,
		&heldEquipmentRepo{holder: 10},
		fakeCheckinRepo{},
		&fakeActivityRepo{},
		bus,
		zap.NewNop(),
	)

	err := svc.ReturnRequest(userContext(10, entities.RoleUser), 1, dto.ReturnRequestDTO{
		Items: []dto.ReturnItemDTO{{EquipmentID: 5, Condition: entities.ConditionGood}},
	})
	require.NoError(t, err)
	assert.Equal(t, entities.RequestReturned, repo.statuses[1])

	select {
	case event := <-published:
		e, ok := event.(events.CheckinCreatedEvent)
		require.True(t, ok)
		assert.Equal(t, uint64(5), e.Checkin.EquipmentID)
		assert.Equal(t, uint64(10), e.ActorID)
	case <-time.After(time.Second):
		t.Fatal("expected a check-in created event")
	}
}

func TestFindRequestHidesForeignRequests(t *testing.T) {
	repo := newFakeRequestRepo(&entities.Request{ID: 1, RequesterID: 10, Status: entities.RequestPending})
	svc := newTestRequestService(repo, nil)

	_, err := svc.FindRequest(userContext(99, entities.RoleUser), 1)
	assert.ErrorIs(t, err, apperrors.ErrRequestNotOwned)

	request, err := svc.FindRequest(userContext(99, entities.RoleAdmin), 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), request.ID)
}
