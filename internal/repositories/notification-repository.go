package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"gear-system/internal/entities"
	apperrors "gear-system/pkg/errors"
	"gear-system/pkg/utils"
)

const notificationFields = "id, recipient_id, title, message, category, link, is_read, created_at"

type NotificationRepositoryInterface interface {
	Create(ctx context.Context, n entities.Notification) (uint64, error)
	GetByRecipient(ctx context.Context, recipientID uint64, params utils.QueryParams) ([]entities.Notification, uint64, error)
	FindNotification(ctx context.Context, id uint64) (*entities.Notification, error)
	CountUnread(ctx context.Context, recipientID uint64) (uint64, error)
	MarkRead(ctx context.Context, id, recipientID uint64, isRead bool) error
	MarkAllRead(ctx context.Context, recipientID uint64) error
}

type NotificationRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewNotificationRepository(storage *pgxpool.Pool, logger *zap.Logger) NotificationRepositoryInterface {
	return &NotificationRepository{storage: storage, logger: logger}
}

func (r *NotificationRepository) Create(ctx context.Context, n entities.Notification) (uint64, error) {
	query, args, err := psql.Insert("notifications").
		Columns("recipient_id", "title", "message", "category", "link").
		Values(n.RecipientID, n.Title, n.Message, n.Category, n.Link).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, err
	}
	var id uint64
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert notification: %w", err)
	}
	return id, nil
}

func (r *NotificationRepository) GetByRecipient(ctx context.Context, recipientID uint64, params utils.QueryParams) ([]entities.Notification, uint64, error) {
	base := psql.Select().From("notifications").Where(sq.Eq{"recipient_id": recipientID})
	if unread, ok := params.Filters["unread"]; ok && unread == "true" {
		base = base.Where(sq.Eq{"is_read": false})
	}

	countQuery, countArgs, err := base.Columns("COUNT(id)").ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}
	if total == 0 {
		return []entities.Notification{}, 0, nil
	}

	query, args, err := base.Columns(notificationFields).
		OrderBy("id DESC").
		Limit(params.Limit).
		Offset(params.Offset).
		ToSql()
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []entities.Notification
	for rows.Next() {
		var n entities.Notification
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.Title, &n.Message, &n.Category, &n.Link, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, total, rows.Err()
}

func (r *NotificationRepository) FindNotification(ctx context.Context, id uint64) (*entities.Notification, error) {
	query, args, err := psql.Select(notificationFields).From("notifications").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	var n entities.Notification
	err = r.storage.QueryRow(ctx, query, args...).Scan(&n.ID, &n.RecipientID, &n.Title, &n.Message, &n.Category, &n.Link, &n.IsRead, &n.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan notification: %w", err)
	}
	return &n, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, recipientID uint64) (uint64, error) {
	query, args, err := psql.Select("COUNT(id)").From("notifications").
		Where(sq.Eq{"recipient_id": recipientID, "is_read": false}).ToSql()
	if err != nil {
		return 0, err
	}
	var count uint64
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead flips the read flag. Scoped to the recipient so a user cannot
// touch someone else's notification.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, recipientID uint64, isRead bool) error {
	query, args, err := psql.Update("notifications").
		Set("is_read", isRead).
		Where(sq.Eq{"id": id, "recipient_id": recipientID}).
		ToSql()
	if err != nil {
		return err
	}
	tag, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to mark notification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, recipientID uint64) error {
	query, args, err := psql.Update("notifications").
		Set("is_read", true).
		Where(sq.Eq{"recipient_id": recipientID, "is_read": false}).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.storage.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to mark all notifications read: %w", err)
	}
	return nil
}
