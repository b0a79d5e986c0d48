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

	"gear-system/internal/dto"
	"gear-system/internal/entities"
	apperrors "gear-system/pkg/errors"
	"gear-system/pkg/utils"
)

const equipmentFields = "id, name, category, status, holder_id, due_date, image_url, created_at, updated_at"

type EquipmentRepositoryInterface interface {
	GetEquipments(ctx context.Context, params utils.QueryParams) ([]entities.Equipment, uint64, error)
	GetAllEquipments(ctx context.Context) ([]entities.Equipment, error)
	FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error)
	CreateEquipment(ctx context.Context, data dto.CreateEquipmentDTO) (uint64, error)
	UpdateEquipment(ctx context.Context, id uint64, data dto.UpdateEquipmentDTO) error
	SoftDeleteEquipment(ctx context.Context, id uint64) error
	CountByStatus(ctx context.Context) (map[string]uint64, error)

	FindEquipmentForUpdateInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Equipment, error)
	SetStatusInTx(ctx context.Context, tx pgx.Tx, id uint64, status string, holderID null.Uint64, dueDate null.Time) error
	CountAvailableInTx(ctx context.Context, tx pgx.Tx, ids []uint64) (map[uint64]uint64, error)
}

type EquipmentRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewEquipmentRepository(storage *pgxpool.Pool, logger *zap.Logger) EquipmentRepositoryInterface {
	return &EquipmentRepository{storage: storage, logger: logger}
}

func scanEquipment(row pgx.Row) (*entities.Equipment, error) {
	var e entities.Equipment
	err := row.Scan(&e.ID, &e.Name, &e.Category, &e.Status, &e.HolderID, &e.DueDate, &e.ImageURL, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan equipment: %w", err)
	}
	return &e, nil
}

func collectEquipments(rows pgx.Rows) ([]entities.Equipment, error) {
	defer rows.Close()
	var items []entities.Equipment
	for rows.Next() {
		var e entities.Equipment
		if err := rows.Scan(&e.ID, &e.Name, &e.Category, &e.Status, &e.HolderID, &e.DueDate, &e.ImageURL, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan equipment row: %w", err)
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

func (r *EquipmentRepository) GetEquipments(ctx context.Context, params utils.QueryParams) ([]entities.Equipment, uint64, error) {
	base := psql.Select().From("equipments").Where(sq.Eq{"deleted_at": nil})

	if status, ok := params.Filters["status"]; ok {
		base = base.Where(sq.Eq{"status": status})
	}
	if category, ok := params.Filters["category"]; ok {
		base = base.Where(sq.Eq{"category": category})
	}
	if params.Search != "" {
		base = base.Where(sq.ILike{"name": "%" + params.Search + "%"})
	}

	countQuery, countArgs, err := base.Columns("COUNT(id)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count equipments: %w", err)
	}
	if total == 0 {
		return []entities.Equipment{}, 0, nil
	}

	sortBy := "created_at"
	switch params.SortBy {
	case "name", "category", "status", "due_date", "created_at":
		sortBy = params.SortBy
	}
	order := "DESC"
	if params.SortOrder == "asc" {
		order = "ASC"
	}

	query, args, err := base.Columns(equipmentFields).
		OrderBy(sortBy + " " + order).
		Limit(params.Limit).
		Offset(params.Offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build equipment query: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query equipments: %w", err)
	}
	items, err := collectEquipments(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *EquipmentRepository) GetAllEquipments(ctx context.Context) ([]entities.Equipment, error) {
	query, args, err := psql.Select(equipmentFields).From("equipments").
		Where(sq.Eq{"deleted_at": nil}).OrderBy("id").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query equipments: %w", err)
	}
	return collectEquipments(rows)
}

func (r *EquipmentRepository) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	query, args, err := psql.Select(equipmentFields).From("equipments").
		Where(sq.Eq{"id": id, "deleted_at": nil}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanEquipment(r.storage.QueryRow(ctx, query, args...))
}

func (r *EquipmentRepository) CreateEquipment(ctx context.Context, data dto.CreateEquipmentDTO) (uint64, error) {
	query, args, err := psql.Insert("equipments").
		Columns("name", "category", "status").
		Values(data.Name, data.Category, entities.EquipmentAvailable).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, err
	}
	var id uint64
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert equipment: %w", err)
	}
	return id, nil
}

func (r *EquipmentRepository) UpdateEquipment(ctx context.Context, id uint64, data dto.UpdateEquipmentDTO) error {
	builder := psql.Update("equipments").
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id, "deleted_at": nil})

	if data.Name.Valid {
		builder = builder.Set("name", data.Name.String)
	}
	if data.Category.Valid {
		builder = builder.Set("category", data.Category.String)
	}
	if data.ImageURL.Valid {
		builder = builder.Set("image_url", data.ImageURL.String)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return err
	}
	tag, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update equipment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) SoftDeleteEquipment(ctx context.Context, id uint64) error {
	query, args, err := psql.Update("equipments").
		Set("deleted_at", time.Now()).
		Where(sq.Eq{"id": id, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return err
	}
	tag, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to soft delete equipment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) CountByStatus(ctx context.Context) (map[string]uint64, error) {
	query, args, err := psql.Select("status", "COUNT(id)").From("equipments").
		Where(sq.Eq{"deleted_at": nil}).GroupBy("status").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to count by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]uint64)
	for rows.Next() {
		var status string
		var count uint64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// FindEquipmentForUpdateInTx locks the row for the duration of a workflow
// transaction so two approvals cannot hand the same item to two holders.
func (r *EquipmentRepository) FindEquipmentForUpdateInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Equipment, error) {
	query, args, err := psql.Select(equipmentFields).From("equipments").
		Where(sq.Eq{"id": id, "deleted_at": nil}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanEquipment(tx.QueryRow(ctx, query, args...))
}

func (r *EquipmentRepository) SetStatusInTx(ctx context.Context, tx pgx.Tx, id uint64, status string, holderID null.Uint64, dueDate null.Time) error {
	query, args, err := psql.Update("equipments").
		Set("status", status).
		Set("holder_id", holderID).
		Set("due_date", dueDate).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to set equipment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// CountAvailableInTx returns how many items named by ids are currently
// available, keyed by id. Used by the approval stock check.
func (r *EquipmentRepository) CountAvailableInTx(ctx context.Context, tx pgx.Tx, ids []uint64) (map[uint64]uint64, error) {
	query, args, err := psql.Select("id", "COUNT(id)").From("equipments").
		Where(sq.Eq{"id": ids, "status": entities.EquipmentAvailable, "deleted_at": nil}).
		GroupBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to count available equipment: %w", err)
	}
	defer rows.Close()

	counts := make(map[uint64]uint64)
	for rows.Next() {
		var id, count uint64
		if err := rows.Scan(&id, &count); err != nil {
			return nil, err
		}
		counts[id] = count
	}
	return counts, rows.Err()
}
