package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"gear-system/internal/dto"
	"gear-system/internal/entities"
	apperrors "gear-system/pkg/errors"
	"gear-system/pkg/utils"
)

const requestFields = "r.id, r.requester_id, u.fio, r.status, r.destination, r.reason, r.duration_days, r.due_date, r.created_at, r.updated_at"

type RequestRepositoryInterface interface {
	GetRequests(ctx context.Context, params utils.QueryParams, requesterID uint64) ([]entities.Request, uint64, error)
	GetRequestsInRange(ctx context.Context, from, to time.Time) ([]entities.Request, error)
	FindRequest(ctx context.Context, id uint64) (*entities.Request, error)
	GetRequestItems(ctx context.Context, requestID uint64) ([]entities.RequestItem, error)

	CreateRequestInTx(ctx context.Context, tx pgx.Tx, requesterID uint64, data dto.CreateRequestDTO) (uint64, error)
	FindRequestForUpdateInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Request, error)
	SetStatusInTx(ctx context.Context, tx pgx.Tx, id uint64, status string) error
	SetDueDateInTx(ctx context.Context, tx pgx.Tx, id uint64, dueDate time.Time) error
	CountPending(ctx context.Context) (uint64, error)
}

type RequestRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewRequestRepository(storage *pgxpool.Pool, logger *zap.Logger) RequestRepositoryInterface {
	return &RequestRepository{storage: storage, logger: logger}
}

func scanRequestRow(row pgx.Row) (*entities.Request, error) {
	var r entities.Request
	err := row.Scan(&r.ID, &r.RequesterID, &r.RequesterFio, &r.Status, &r.Destination,
		&r.Reason, &r.DurationDays, &r.DueDate, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan request: %w", err)
	}
	return &r, nil
}

func (r *RequestRepository) baseSelect() sq.SelectBuilder {
	return psql.Select().
		From("requests r").
		LeftJoin("users u ON r.requester_id = u.id")
}

func (r *RequestRepository) GetRequests(ctx context.Context, params utils.QueryParams, requesterID uint64) ([]entities.Request, uint64, error) {
	base := r.baseSelect()
	if requesterID != 0 {
		base = base.Where(sq.Eq{"r.requester_id": requesterID})
	}
	if status, ok := params.Filters["status"]; ok {
		base = base.Where(sq.Eq{"r.status": status})
	}

	countQuery, countArgs, err := base.Columns("COUNT(r.id)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count requests: %w", err)
	}
	if total == 0 {
		return []entities.Request{}, 0, nil
	}

	query, args, err := base.Columns(requestFields).
		OrderBy("r.id DESC").
		Limit(params.Limit).
		Offset(params.Offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build request query: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query requests: %w", err)
	}
	requests, err := r.collectWithItems(ctx, rows)
	if err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

func (r *RequestRepository) GetRequestsInRange(ctx context.Context, from, to time.Time) ([]entities.Request, error) {
	query, args, err := r.baseSelect().Columns(requestFields).
		Where(sq.GtOrEq{"r.created_at": from}).
		Where(sq.Lt{"r.created_at": to}).
		OrderBy("r.id").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query requests in range: %w", err)
	}
	return r.collectWithItems(ctx, rows)
}

func (r *RequestRepository) collectWithItems(ctx context.Context, rows pgx.Rows) ([]entities.Request, error) {
	var requests []entities.Request
	for rows.Next() {
		var req entities.Request
		if err := rows.Scan(&req.ID, &req.RequesterID, &req.RequesterFio, &req.Status, &req.Destination,
			&req.Reason, &req.DurationDays, &req.DueDate, &req.CreatedAt, &req.UpdatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan request row: %w", err)
		}
		requests = append(requests, req)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate requests: %w", err)
	}

	for i := range requests {
		items, err := r.GetRequestItems(ctx, requests[i].ID)
		if err != nil {
			return nil, err
		}
		requests[i].Items = items
	}
	return requests, nil
}

func (r *RequestRepository) FindRequest(ctx context.Context, id uint64) (*entities.Request, error) {
	query, args, err := r.baseSelect().Columns(requestFields).Where(sq.Eq{"r.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	req, err := scanRequestRow(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, err
	}
	items, err := r.GetRequestItems(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Items = items
	return req, nil
}

func (r *RequestRepository) GetRequestItems(ctx context.Context, requestID uint64) ([]entities.RequestItem, error) {
	query, args, err := psql.Select("ri.id", "ri.request_id", "ri.equipment_id", "e.name", "ri.quantity").
		From("request_items ri").
		LeftJoin("equipments e ON ri.equipment_id = e.id").
		Where(sq.Eq{"ri.request_id": requestID}).
		OrderBy("ri.id").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query request items: %w", err)
	}
	defer rows.Close()

	var items []entities.RequestItem
	for rows.Next() {
		var item entities.RequestItem
		if err := rows.Scan(&item.ID, &item.RequestID, &item.EquipmentID, &item.EquipmentName, &item.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan request item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *RequestRepository) CreateRequestInTx(ctx context.Context, tx pgx.Tx, requesterID uint64, data dto.CreateRequestDTO) (uint64, error) {
	query, args, err := psql.Insert("requests").
		Columns("requester_id", "status", "destination", "reason", "duration_days").
		Values(requesterID, entities.RequestPending, data.Destination, data.Reason, data.DurationDays).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, err
	}
	var id uint64
	if err := tx.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert request: %w", err)
	}

	itemsBuilder := psql.Insert("request_items").Columns("request_id", "equipment_id", "quantity")
	for _, item := range data.Items {
		itemsBuilder = itemsBuilder.Values(id, item.EquipmentID, item.Quantity)
	}
	itemsQuery, itemsArgs, err := itemsBuilder.ToSql()
	if err != nil {
		return 0, err
	}
	if _, err := tx.Exec(ctx, itemsQuery, itemsArgs...); err != nil {
		return 0, fmt.Errorf("failed to insert request items: %w", err)
	}

	return id, nil
}

func (r *RequestRepository) FindRequestForUpdateInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Request, error) {
	// FOR UPDATE OF r: the joined users row must stay unlocked.
	query, args, err := r.baseSelect().Columns(requestFields).
		Where(sq.Eq{"r.id": id}).
		Suffix("FOR UPDATE OF r").
		ToSql()
	if err != nil {
		return nil, err
	}
	req, err := scanRequestRow(tx.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, err
	}

	itemsQuery, itemsArgs, err := psql.Select("id", "request_id", "equipment_id", "quantity").
		From("request_items").
		Where(sq.Eq{"request_id": id}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, itemsQuery, itemsArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to query request items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var item entities.RequestItem
		if err := rows.Scan(&item.ID, &item.RequestID, &item.EquipmentID, &item.Quantity); err != nil {
			return nil, err
		}
		req.Items = append(req.Items, item)
	}
	return req, rows.Err()
}

func (r *RequestRepository) SetStatusInTx(ctx context.Context, tx pgx.Tx, id uint64, status string) error {
	query, args, err := psql.Update("requests").
		Set("status", status).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to set request status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *RequestRepository) SetDueDateInTx(ctx context.Context, tx pgx.Tx, id uint64, dueDate time.Time) error {
	query, args, err := psql.Update("requests").
		Set("due_date", dueDate).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to set request due date: %w", err)
	}
	return nil
}

func (r *RequestRepository) CountPending(ctx context.Context) (uint64, error) {
	query, args, err := psql.Select("COUNT(id)").From("requests").
		Where(sq.Eq{"status": entities.RequestPending}).ToSql()
	if err != nil {
		return 0, err
	}
	var count uint64
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count pending requests: %w", err)
	}
	return count, nil
}
