package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gear-system/internal/entities"
	apperrors "gear-system/pkg/errors"
	"gear-system/pkg/utils"
)

type fakeNotificationRepo struct {
	unread     uint64
	countCalls int
}

func (r *fakeNotificationRepo) Create(ctx context.Context, n entities.Notification) (uint64, error) {
	r.unread++
	return 1, nil
}

func (r *fakeNotificationRepo) GetByRecipient(ctx context.Context, recipientID uint64, params utils.QueryParams) ([]entities.Notification, uint64, error) {
	return nil, 0, nil
}

func (r *fakeNotificationRepo) FindNotification(ctx context.Context, id uint64) (*entities.Notification, error) {
	return nil, apperrors.ErrNotFound
}

func (r *fakeNotificationRepo) CountUnread(ctx context.Context, recipientID uint64) (uint64, error) {
	r.countCalls++
	return r.unread, nil
}

func (r *fakeNotificationRepo) MarkRead(ctx context.Context, id, recipientID uint64, isRead bool) error {
	return nil
}

func (r *fakeNotificationRepo) MarkAllRead(ctx context.Context, recipientID uint64) error {
	r.unread = 0
	return nil
}

type fakeCache struct {
	values map[string]string
}

func newFakeCache() *fakeCache { return &fakeCache{values: make(map[string]string)} }

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	c.values[key] = fmt.Sprint(value)
	return nil
}

func (c *fakeCache) Get(ctx context.Context, key string) (string, error) {
	if v, ok := c.values[key]; ok {
		return v, nil
	}
	return "", fmt.Errorf("cache miss")
}

func (c *fakeCache) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(c.values, key)
	}
	return nil
}

func TestUnreadCountUsesCache(t *testing.T) {
	repo := &fakeNotificationRepo{unread: 4}
	cache := newFakeCache()
	svc := NewNotificationService(repo, cache, zap.NewNop())
	ctx := userContext(10, entities.RoleUser)

	count, err := svc.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), count)
	assert.Equal(t, 1, repo.countCalls)

	// Second read is served from the cache.
	count, err = svc.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), count)
	assert.Equal(t, 1, repo.countCalls)
}

func TestUnreadCountInvalidatedOnWrite(t *testing.T) {
	repo := &fakeNotificationRepo{unread: 2}
	cache := newFakeCache()
	svc := NewNotificationService(repo, cache, zap.NewNop())
	ctx := userContext(10, entities.RoleUser)

	_, err := svc.UnreadCount(ctx)
	require.NoError(t, err)

	_, err = svc.Notify(ctx, entities.Notification{RecipientID: 10, Title: "x", Message: "y", Category: entities.NotificationSystem})
	require.NoError(t, err)

	count, err := svc.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)
	assert.Equal(t, 2, repo.countCalls)
}

func TestMarkAllReadDropsCache(t *testing.T) {
	repo := &fakeNotificationRepo{unread: 5}
	cache := newFakeCache()
	svc := NewNotificationService(repo, cache, zap.NewNop())
	ctx := userContext(10, entities.RoleUser)

	_, err := svc.UnreadCount(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.MarkAllRead(ctx))

	count, err := svc.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}
