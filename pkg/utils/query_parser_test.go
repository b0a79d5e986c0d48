package utils

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseQueryDefaults(t *testing.T) {
	params := ParseQuery(url.Values{})

	assert.Equal(t, uint64(10), params.Limit)
	assert.Equal(t, uint64(0), params.Offset)
	assert.Equal(t, uint64(1), params.Page)
	assert.Equal(t, "created_at", params.SortBy)
	assert.Equal(t, "desc", params.SortOrder)
}

func TestParseQueryFiltersAndSort(t *testing.T) {
	query := url.Values{}
	query.Set("filter[status]", "available")
	query.Set("filter[category]", "camera")
	query.Set("search", "canon")
	query.Set("sort", "-name")
	query.Set("limit", "25")
	query.Set("page", "3")

	params := ParseQuery(query)

	assert.Equal(t, "available", params.Filters["status"])
	assert.Equal(t, "camera", params.Filters["category"])
	assert.Equal(t, "canon", params.Search)
	assert.Equal(t, "name", params.SortBy)
	assert.Equal(t, "desc", params.SortOrder)
	assert.Equal(t, uint64(25), params.Limit)
	assert.Equal(t, uint64(50), params.Offset)
	assert.Equal(t, uint64(3), params.Page)
}

func TestParseQueryFilterAllowList(t *testing.T) {
	query := url.Values{}
	query.Set("filter[status]", "available")
	query.Set("filter[holder_id]", "1 OR 1=1")

	params := ParseQuery(query, "status", "category")

	assert.Equal(t, "available", params.Filters["status"])
	assert.NotContains(t, params.Filters, "holder_id")
}

func TestParseQueryLimitCapped(t *testing.T) {
	query := url.Values{}
	query.Set("limit", "5000")

	params := ParseQuery(query)
	assert.Equal(t, uint64(100), params.Limit)
}

func TestParseQueryOffsetWinsOverPage(t *testing.T) {
	query := url.Values{}
	query.Set("limit", "10")
	query.Set("offset", "30")
	query.Set("page", "1")

	params := ParseQuery(query)
	assert.Equal(t, uint64(30), params.Offset)
	assert.Equal(t, uint64(4), params.Page)
}
