package services

import (
	"context"
	"testing"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gear-system/internal/entities"
	apperrors "gear-system/pkg/errors"
	"gear-system/pkg/eventbus"
)

type recordingEquipmentRepo struct {
	fakeEquipmentRepo
	setStatus string
	setHolder null.Uint64
	setDue    null.Time
}

func (r *recordingEquipmentRepo) SetStatusInTx(ctx context.Context, tx pgx.Tx, id uint64, status string, holderID null.Uint64, dueDate null.Time) error {
	r.setStatus = status
	r.setHolder = holderID
	r.setDue = dueDate
	return nil
}

type statefulCheckinRepo struct {
	fakeCheckinRepo
	checkin  *entities.Checkin
	approved bool
}

func (r *statefulCheckinRepo) FindCheckinForUpdateInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Checkin, error) {
	if r.checkin == nil || r.checkin.ID != id {
		return nil, apperrors.ErrNotFound
	}
	return r.checkin, nil
}

func (r *statefulCheckinRepo) ApproveInTx(ctx context.Context, tx pgx.Tx, id uint64) error {
	r.approved = true
	return nil
}

func newTestCheckinService(checkinRepo *statefulCheckinRepo, equipmentRepo *recordingEquipmentRepo, activityRepo *fakeActivityRepo) CheckinServiceInterface {
	return NewCheckinService(
		fakeTxManager{},
		checkinRepo,
		equipmentRepo,
		activityRepo,
		eventbus.New(zap.NewNop()),
		zap.NewNop(),
	)
}

func TestApproveCheckinGoodCondition(t *testing.T) {
	checkinRepo := &statefulCheckinRepo{checkin: &entities.Checkin{
		ID: 1, RequesterID: 10, EquipmentID: 5,
		Condition: entities.ConditionGood, Status: entities.CheckinPending,
	}}
	equipmentRepo := &recordingEquipmentRepo{}
	activityRepo := &fakeActivityRepo{}
	svc := newTestCheckinService(checkinRepo, equipmentRepo, activityRepo)

	err := svc.ApproveCheckin(userContext(1, entities.RoleAdmin), 1)
	require.NoError(t, err)

	assert.True(t, checkinRepo.approved)
	assert.Equal(t, entities.EquipmentAvailable, equipmentRepo.setStatus)
	assert.False(t, equipmentRepo.setHolder.Valid, "holder must be cleared")
	assert.False(t, equipmentRepo.setDue.Valid, "due date must be cleared")
	assert.Contains(t, activityRepo.logged, entities.ActionCheckin)
}

func TestApproveCheckinDamagedGoesToRepair(t *testing.T) {
	checkinRepo := &statefulCheckinRepo{checkin: &entities.Checkin{
		ID: 1, RequesterID: 10, EquipmentID: 5,
		Condition: entities.ConditionDamaged, Status: entities.CheckinPending,
	}}
	equipmentRepo := &recordingEquipmentRepo{}
	svc := newTestCheckinService(checkinRepo, equipmentRepo, &fakeActivityRepo{})

	err := svc.ApproveCheckin(userContext(1, entities.RoleAdmin), 1)
	require.NoError(t, err)
	assert.Equal(t, entities.EquipmentUnderRepair, equipmentRepo.setStatus)
}

func TestApproveCheckinAlreadyApproved(t *testing.T) {
	checkinRepo := &statefulCheckinRepo{checkin: &entities.Checkin{
		ID: 1, RequesterID: 10, EquipmentID: 5,
		Condition: entities.ConditionGood, Status: entities.CheckinApproved,
	}}
	equipmentRepo := &recordingEquipmentRepo{}
	svc := newTestCheckinService(checkinRepo, equipmentRepo, &fakeActivityRepo{})

	err := svc.ApproveCheckin(userContext(1, entities.RoleAdmin), 1)
	var invalidInput *apperrors.InvalidInputError
	assert.ErrorAs(t, err, &invalidInput)
	assert.False(t, checkinRepo.approved)
}
