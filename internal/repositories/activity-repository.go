package repositories

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"gear-system/internal/entities"
)

// ActivityRepositoryInterface is append-only: rows are written by workflows
// and read back by the report fetcher, never mutated.
type ActivityRepositoryInterface interface {
	LogInTx(ctx context.Context, tx pgx.Tx, userID, equipmentID uint64, action string) error
	GetActivitiesInRange(ctx context.Context, from, to time.Time) ([]entities.ActivityLog, error)
}

type ActivityRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewActivityRepository(storage *pgxpool.Pool, logger *zap.Logger) ActivityRepositoryInterface {
	return &ActivityRepository{storage: storage, logger: logger}
}

func (r *ActivityRepository) LogInTx(ctx context.Context, tx pgx.Tx, userID, equipmentID uint64, action string) error {
	query, args, err := psql.Insert("activity_logs").
		Columns("user_id", "equipment_id", "action").
		Values(userID, equipmentID, action).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert activity log: %w", err)
	}
	return nil
}

func (r *ActivityRepository) GetActivitiesInRange(ctx context.Context, from, to time.Time) ([]entities.ActivityLog, error) {
	query, args, err := psql.Select("id", "user_id", "equipment_id", "action", "created_at").
		From("activity_logs").
		Where(sq.GtOrEq{"created_at": from}).
		Where(sq.Lt{"created_at": to}).
		OrderBy("created_at").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity logs: %w", err)
	}
	defer rows.Close()

	var logs []entities.ActivityLog
	for rows.Next() {
		var l entities.ActivityLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.EquipmentID, &l.Action, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
