package services

import (
	"sort"
	"time"

	"gear-system/internal/entities"
)

const trendDayFormat = "2006-01-02"

// BucketTrends folds requests and activities into per-day counters. Days with
// no events at all are omitted; the result is ordered by day ascending.
func BucketTrends(filter entities.ReportFilter, data entities.SourceData) []entities.TrendPoint {
	days := make(map[string]*entities.TrendPoint)
	point := func(at time.Time) *entities.TrendPoint {
		day := at.Format(trendDayFormat)
		if p, ok := days[day]; ok {
			return p
		}
		p := &entities.TrendPoint{Day: day}
		days[day] = p
		return p
	}

	for _, request := range data.Requests {
		point(request.CreatedAt).Requests++
	}
	for _, activity := range data.Activities {
		switch activity.Action {
		case entities.ActionCheckout:
			point(activity.CreatedAt).Checkouts++
		case entities.ActionDamageReport:
			point(activity.CreatedAt).Damages++
		}
	}

	trends := make([]entities.TrendPoint, 0, len(days))
	for _, p := range days {
		trends = append(trends, *p)
	}
	sort.Slice(trends, func(i, j int) bool { return trends[i].Day < trends[j].Day })
	return trends
}
