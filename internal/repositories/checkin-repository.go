package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"gear-system/internal/entities"
	apperrors "gear-system/pkg/errors"
	"gear-system/pkg/utils"
)

const checkinFields = "c.id, c.requester_id, u.fio, c.equipment_id, e.name, c.request_id, c.condition, c.notes, c.status, c.approved_at, c.created_at"

type CheckinRepositoryInterface interface {
	GetCheckins(ctx context.Context, params utils.QueryParams) ([]entities.Checkin, uint64, error)
	FindCheckin(ctx context.Context, id uint64) (*entities.Checkin, error)
	CountPending(ctx context.Context) (uint64, error)

	CreateCheckinInTx(ctx context.Context, tx pgx.Tx, checkin entities.Checkin) (uint64, error)
	FindCheckinForUpdateInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Checkin, error)
	ApproveInTx(ctx context.Context, tx pgx.Tx, id uint64) error
}

type CheckinRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewCheckinRepository(storage *pgxpool.Pool, logger *zap.Logger) CheckinRepositoryInterface {
	return &CheckinRepository{storage: storage, logger: logger}
}

func (r *CheckinRepository) baseSelect() sq.SelectBuilder {
	return psql.Select().
		From("checkins c").
		LeftJoin("users u ON c.requester_id = u.id").
		LeftJoin("equipments e ON c.equipment_id = e.id")
}

func scanCheckin(row pgx.Row) (*entities.Checkin, error) {
	var c entities.Checkin
	err := row.Scan(&c.ID, &c.RequesterID, &c.RequesterFio, &c.EquipmentID, &c.EquipmentName,
		&c.RequestID, &c.Condition, &c.Notes, &c.Status, &c.ApprovedAt, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan checkin: %w", err)
	}
	return &c, nil
}

func (r *CheckinRepository) GetCheckins(ctx context.Context, params utils.QueryParams) ([]entities.Checkin, uint64, error) {
	base := r.baseSelect()
	if status, ok := params.Filters["status"]; ok {
		base = base.Where(sq.Eq{"c.status": status})
	}

	countQuery, countArgs, err := base.Columns("COUNT(c.id)").ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count checkins: %w", err)
	}
	if total == 0 {
		return []entities.Checkin{}, 0, nil
	}

	query, args, err := base.Columns(checkinFields).
		OrderBy("c.id DESC").
		Limit(params.Limit).
		Offset(params.Offset).
		ToSql()
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query checkins: %w", err)
	}
	defer rows.Close()

	var checkins []entities.Checkin
	for rows.Next() {
		var c entities.Checkin
		if err := rows.Scan(&c.ID, &c.RequesterID, &c.RequesterFio, &c.EquipmentID, &c.EquipmentName,
			&c.RequestID, &c.Condition, &c.Notes, &c.Status, &c.ApprovedAt, &c.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan checkin row: %w", err)
		}
		checkins = append(checkins, c)
	}
	return checkins, total, rows.Err()
}

func (r *CheckinRepository) FindCheckin(ctx context.Context, id uint64) (*entities.Checkin, error) {
	query, args, err := r.baseSelect().Columns(checkinFields).Where(sq.Eq{"c.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanCheckin(r.storage.QueryRow(ctx, query, args...))
}

func (r *CheckinRepository) CountPending(ctx context.Context) (uint64, error) {
	query, args, err := psql.Select("COUNT(id)").From("checkins").
		Where(sq.Eq{"status": entities.CheckinPending}).ToSql()
	if err != nil {
		return 0, err
	}
	var count uint64
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count pending checkins: %w", err)
	}
	return count, nil
}

func (r *CheckinRepository) CreateCheckinInTx(ctx context.Context, tx pgx.Tx, checkin entities.Checkin) (uint64, error) {
	query, args, err := psql.Insert("checkins").
		Columns("requester_id", "equipment_id", "request_id", "condition", "notes", "status").
		Values(checkin.RequesterID, checkin.EquipmentID, checkin.RequestID, checkin.Condition, checkin.Notes, entities.CheckinPending).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, err
	}
	var id uint64
	if err := tx.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert checkin: %w", err)
	}
	return id, nil
}

func (r *CheckinRepository) FindCheckinForUpdateInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Checkin, error) {
	query, args, err := psql.Select("id, requester_id, equipment_id, request_id, condition, notes, status, approved_at, created_at").
		From("checkins").
		Where(sq.Eq{"id": id}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, err
	}
	var c entities.Checkin
	err = tx.QueryRow(ctx, query, args...).Scan(&c.ID, &c.RequesterID, &c.EquipmentID,
		&c.RequestID, &c.Condition, &c.Notes, &c.Status, &c.ApprovedAt, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan checkin: %w", err)
	}
	return &c, nil
}

func (r *CheckinRepository) ApproveInTx(ctx context.Context, tx pgx.Tx, id uint64) error {
	query, args, err := psql.Update("checkins").
		Set("status", entities.CheckinApproved).
		Set("approved_at", null.TimeFrom(time.Now())).
		Where(sq.Eq{"id": id, "status": entities.CheckinPending}).
		ToSql()
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to approve checkin: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
