package utils

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

type QueryParams struct {
	Filters   map[string]string
	Search    string
	SortBy    string
	SortOrder string
	Limit     uint64
	Offset    uint64
	Page      uint64
}

// ParseQuery understands ?filter[status]=available&search=...&sort=-created_at&limit=10&page=2.
// Callers name the filter keys they honor; anything else in filter[...] is
// dropped so repositories only ever see the columns they advertise. An empty
// allow list accepts every key.
func ParseQuery(query url.Values, allowedFilters ...string) QueryParams {
	params := QueryParams{
		Filters:   parseFilters(query, allowedFilters),
		Search:    query.Get("search"),
		Limit:     defaultLimit,
		Page:      1,
		SortBy:    "created_at",
		SortOrder: "desc",
	}
	params.parsePagination(query)
	params.parseSort(query.Get("sort"))
	return params
}

func parseFilters(query url.Values, allowed []string) map[string]string {
	filters := make(map[string]string)
	for key, values := range query {
		if !strings.HasPrefix(key, "filter[") || !strings.HasSuffix(key, "]") || len(values) == 0 {
			continue
		}
		name := key[len("filter[") : len(key)-1]
		if len(allowed) > 0 && !containsString(allowed, name) {
			continue
		}
		filters[name] = values[0]
	}
	return filters
}

func (p *QueryParams) parsePagination(query url.Values) {
	if limit, err := strconv.ParseUint(query.Get("limit"), 10, 64); err == nil && limit > 0 {
		p.Limit = limit
		if p.Limit > maxLimit {
			p.Limit = maxLimit
		}
	}
	if offset, err := strconv.ParseUint(query.Get("offset"), 10, 64); err == nil && offset > 0 {
		p.Offset = offset
		p.Page = offset/p.Limit + 1
		return
	}
	// page applies only when offset is absent
	if page, err := strconv.ParseUint(query.Get("page"), 10, 64); err == nil && page > 0 {
		p.Page = page
		p.Offset = (page - 1) * p.Limit
	}
}

func (p *QueryParams) parseSort(sort string) {
	if sort == "" {
		return
	}
	if field, found := strings.CutPrefix(sort, "-"); found {
		p.SortBy = field
		p.SortOrder = "desc"
		return
	}
	p.SortBy = sort
	p.SortOrder = "asc"
}

func containsString(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
