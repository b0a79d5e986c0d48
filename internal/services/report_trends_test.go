package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gear-system/internal/entities"
)

func TestBucketTrendsOmitsEmptyDays(t *testing.T) {
	filter := weekFilter()
	data := entities.SourceData{
		Requests: []entities.Request{
			{ID: 1, CreatedAt: filter.From.Add(2 * time.Hour)},
			{ID: 2, CreatedAt: filter.From.Add(3 * time.Hour)},
			// day 5
			{ID: 3, CreatedAt: filter.From.Add(4*24*time.Hour + time.Hour)},
		},
		Activities: []entities.ActivityLog{
			{Action: entities.ActionCheckout, CreatedAt: filter.From.Add(2 * time.Hour)},
			{Action: entities.ActionDamageReport, CreatedAt: filter.From.Add(4*24*time.Hour + 2*time.Hour)},
			// check-ins do not produce trend points on their own
			{Action: entities.ActionCheckin, CreatedAt: filter.From.Add(24 * time.Hour)},
		},
	}

	trends := BucketTrends(filter, data)
	require.Len(t, trends, 2)

	assert.Equal(t, "2024-08-05", trends[0].Day)
	assert.Equal(t, 2, trends[0].Requests)
	assert.Equal(t, 1, trends[0].Checkouts)
	assert.Equal(t, 0, trends[0].Damages)

	assert.Equal(t, "2024-08-09", trends[1].Day)
	assert.Equal(t, 1, trends[1].Requests)
	assert.Equal(t, 1, trends[1].Damages)
}

func TestBucketTrendsEmpty(t *testing.T) {
	trends := BucketTrends(weekFilter(), entities.SourceData{})
	assert.Empty(t, trends)
}

func TestBucketTrendsAscendingOrder(t *testing.T) {
	filter := weekFilter()
	data := entities.SourceData{
		Requests: []entities.Request{
			{ID: 1, CreatedAt: filter.From.Add(6 * 24 * time.Hour)},
			{ID: 2, CreatedAt: filter.From},
			{ID: 3, CreatedAt: filter.From.Add(3 * 24 * time.Hour)},
		},
	}

	trends := BucketTrends(filter, data)
	require.Len(t, trends, 3)
	for i := 1; i < len(trends); i++ {
		assert.Less(t, trends[i-1].Day, trends[i].Day)
	}
}
