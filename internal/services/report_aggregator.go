package services

import (
	"sort"
	"time"

	"gear-system/internal/entities"
)

// BuildReport aggregates raw source data into the full report for the window.
// It is pure and total: empty source slices produce an empty but well-formed
// report, never an error.
func BuildReport(filter entities.ReportFilter, data entities.SourceData) *entities.Report {
	return buildReportAt(filter, data, time.Now())
}

// buildReportAt takes the reference time explicitly. Overdue is judged against
// it, not against the window end: an item stays overdue until it actually
// comes back, even in a report over a past window.
func buildReportAt(filter entities.ReportFilter, data entities.SourceData, now time.Time) *entities.Report {
	report := &entities.Report{
		PeriodStart:    filter.From,
		PeriodEnd:      filter.To,
		Summary:        buildSummary(data, now),
		UserStats:      buildUserStats(data, now),
		EquipmentStats: buildEquipmentStats(filter, data),
		Trends:         BucketTrends(filter, data),
		GeneratedAt:    now,
	}
	report.Insights, report.Recommendations = GenerateInsights(report)
	return report
}

func buildSummary(data entities.SourceData, now time.Time) entities.ReportSummary {
	summary := entities.ReportSummary{
		TotalRequests: len(data.Requests),
	}

	active := make(map[uint64]bool)
	for _, request := range data.Requests {
		active[request.RequesterID] = true
	}
	for _, activity := range data.Activities {
		active[activity.UserID] = true
		switch activity.Action {
		case entities.ActionCheckout:
			summary.TotalCheckouts++
		case entities.ActionCheckin:
			summary.TotalCheckins++
		case entities.ActionDamageReport:
			summary.TotalDamageReports++
		}
	}
	summary.ActiveUsers = len(active)

	for _, item := range data.Equipments {
		if item.Status == entities.EquipmentCheckedOut && item.DueDate.Valid && item.DueDate.Time.Before(now) {
			summary.OverdueItems++
		}
	}

	// Average only over completed loans with a known due date. Requests that
	// never got a due date carry no duration and are excluded from both the
	// numerator and the denominator.
	var totalDays float64
	var counted int
	for _, request := range data.Requests {
		if request.Status != entities.RequestReturned || !request.DueDate.Valid {
			continue
		}
		days := request.DueDate.Time.Sub(request.CreatedAt).Hours() / 24
		if days < 0 {
			continue
		}
		totalDays += days
		counted++
	}
	if counted > 0 {
		summary.AvgRequestDurationDays = totalDays / float64(counted)
	}

	return summary
}

func buildUserStats(data entities.SourceData, now time.Time) []entities.UserStats {
	users := make(map[uint64]*entities.UserStats)
	stat := func(userID uint64) *entities.UserStats {
		if s, ok := users[userID]; ok {
			return s
		}
		s := &entities.UserStats{UserID: userID}
		users[userID] = s
		return s
	}

	names := make(map[uint64]string, len(data.Users))
	for _, user := range data.Users {
		names[user.ID] = user.Fio
	}

	for _, request := range data.Requests {
		stat(request.RequesterID).Requests++
	}
	for _, activity := range data.Activities {
		s := stat(activity.UserID)
		switch activity.Action {
		case entities.ActionCheckout:
			s.Checkouts++
		case entities.ActionCheckin:
			s.Checkins++
		case entities.ActionDamageReport:
			s.DamageReports++
		}
	}
	for _, item := range data.Equipments {
		if item.Status == entities.EquipmentCheckedOut && item.HolderID.Valid &&
			item.DueDate.Valid && item.DueDate.Time.Before(now) {
			stat(item.HolderID.Uint64).Overdue++
		}
	}

	result := make([]entities.UserStats, 0, len(users))
	for _, s := range users {
		s.Fio = names[s.UserID]
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Requests != result[j].Requests {
			return result[i].Requests > result[j].Requests
		}
		return result[i].UserID < result[j].UserID
	})
	return result
}

func buildEquipmentStats(filter entities.ReportFilter, data entities.SourceData) []entities.EquipmentStats {
	stats := make([]entities.EquipmentStats, 0, len(data.Equipments))

	requestsByEquipment := make(map[uint64]int)
	for _, request := range data.Requests {
		for _, item := range request.Items {
			requestsByEquipment[item.EquipmentID]++
		}
	}

	activitiesByEquipment := make(map[uint64][]entities.ActivityLog)
	for _, activity := range data.Activities {
		activitiesByEquipment[activity.EquipmentID] = append(activitiesByEquipment[activity.EquipmentID], activity)
	}

	for _, item := range data.Equipments {
		s := entities.EquipmentStats{
			EquipmentID: item.ID,
			Name:        item.Name,
			Category:    item.Category,
			Requests:    requestsByEquipment[item.ID],
		}
		for _, activity := range activitiesByEquipment[item.ID] {
			switch activity.Action {
			case entities.ActionCheckout:
				s.Checkouts++
			case entities.ActionCheckin:
				s.Checkins++
			case entities.ActionDamageReport:
				s.DamageReports++
			}
		}
		s.Utilization = utilization(filter, item, activitiesByEquipment[item.ID])
		stats = append(stats, s)
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Utilization != stats[j].Utilization {
			return stats[i].Utilization > stats[j].Utilization
		}
		return stats[i].EquipmentID < stats[j].EquipmentID
	})
	return stats
}

// utilization is the share of the window an item spent checked out, as a
// percentage clamped to [0,100]. Checkout/check-in events pair up into
// intervals; a leading check-in counts from the window start and an open
// checkout counts through the window end.
func utilization(filter entities.ReportFilter, item entities.Equipment, activities []entities.ActivityLog) float64 {
	windowDays := filter.To.Sub(filter.From).Hours() / 24
	if windowDays <= 0 {
		return 0
	}

	events := make([]entities.ActivityLog, 0, len(activities))
	for _, a := range activities {
		if a.Action == entities.ActionCheckout || a.Action == entities.ActionCheckin {
			events = append(events, a)
		}
	}
	sort.Slice(events, func(i, j int) bool { return events[i].CreatedAt.Before(events[j].CreatedAt) })

	var busy time.Duration
	var openSince time.Time
	open := item.Status == entities.EquipmentCheckedOut && len(events) == 0
	if open {
		// Checked out before the window with no events inside it.
		openSince = filter.From
	}
	for _, event := range events {
		switch event.Action {
		case entities.ActionCheckout:
			if !open {
				open = true
				openSince = event.CreatedAt
			}
		case entities.ActionCheckin:
			if open {
				busy += event.CreatedAt.Sub(openSince)
				open = false
			} else {
				// Checked out before the window started.
				busy += event.CreatedAt.Sub(filter.From)
			}
		}
	}
	if open {
		busy += filter.To.Sub(openSince)
	}

	pct := busy.Hours() / 24 / windowDays * 100
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return pct
}
