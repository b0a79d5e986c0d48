package services

import (
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gear-system/internal/entities"
)

func weekFilter() entities.ReportFilter {
	from := time.Date(2024, 8, 5, 0, 0, 0, 0, time.UTC)
	return entities.ReportFilter{From: from, To: from.AddDate(0, 0, 7)}
}

func TestBuildReportEmptyData(t *testing.T) {
	report := BuildReport(weekFilter(), entities.SourceData{})
	require.NotNil(t, report)

	assert.Equal(t, 0, report.Summary.TotalRequests)
	assert.Equal(t, 0.0, report.Summary.AvgRequestDurationDays)
	assert.Empty(t, report.UserStats)
	assert.Empty(t, report.EquipmentStats)
	assert.Empty(t, report.Trends)
	// An empty period still yields the no-activity and low-adoption findings.
	assert.NotEmpty(t, report.Insights)
}

func TestBuildReportNoActivityWithRequests(t *testing.T) {
	filter := weekFilter()
	data := entities.SourceData{
		Requests: []entities.Request{
			{ID: 1, RequesterID: 10, Status: entities.RequestPending, CreatedAt: filter.From.Add(24 * time.Hour)},
			{ID: 2, RequesterID: 11, Status: entities.RequestPending, CreatedAt: filter.From.Add(48 * time.Hour)},
		},
	}

	report := BuildReport(filter, data)
	assert.Equal(t, 2, report.Summary.TotalRequests)
	assert.Equal(t, 0, report.Summary.TotalCheckouts)

	var found bool
	for _, insight := range report.Insights {
		if insight.Title == "No equipment activity" {
			found = true
			assert.Equal(t, entities.SeverityWarning, insight.Severity)
		}
	}
	assert.True(t, found, "expected no-activity warning despite pending requests")
}

func TestAvgDurationExcludesRequestsWithoutDueDate(t *testing.T) {
	filter := weekFilter()
	created := filter.From.Add(12 * time.Hour)
	data := entities.SourceData{
		Requests: []entities.Request{
			{ID: 1, RequesterID: 1, Status: entities.RequestReturned,
				CreatedAt: created, DueDate: null.TimeFrom(created.Add(4 * 24 * time.Hour))},
			{ID: 2, RequesterID: 1, Status: entities.RequestReturned,
				CreatedAt: created, DueDate: null.TimeFrom(created.Add(2 * 24 * time.Hour))},
			// no due date: excluded entirely
			{ID: 3, RequesterID: 1, Status: entities.RequestReturned, CreatedAt: created},
			// not returned: excluded
			{ID: 4, RequesterID: 1, Status: entities.RequestCheckedOut,
				CreatedAt: created, DueDate: null.TimeFrom(created.Add(10 * 24 * time.Hour))},
		},
	}

	report := BuildReport(filter, data)
	assert.InDelta(t, 3.0, report.Summary.AvgRequestDurationDays, 0.001)
}

func TestUtilizationClamped(t *testing.T) {
	filter := weekFilter()
	equipment := entities.Equipment{ID: 5, Name: "Camera", Status: entities.EquipmentCheckedOut}

	// Duplicate checkouts with no check-in: the open interval spans the whole
	// window but never exceeds 100%.
	activities := []entities.ActivityLog{
		{EquipmentID: 5, Action: entities.ActionCheckout, CreatedAt: filter.From.Add(-48 * time.Hour)},
		{EquipmentID: 5, Action: entities.ActionCheckout, CreatedAt: filter.From.Add(time.Hour)},
	}

	pct := utilization(filter, equipment, activities)
	assert.GreaterOrEqual(t, pct, 0.0)
	assert.LessOrEqual(t, pct, 100.0)
}

func TestUtilizationLeadingCheckinCountsFromWindowStart(t *testing.T) {
	filter := weekFilter()
	equipment := entities.Equipment{ID: 5, Name: "Camera", Status: entities.EquipmentAvailable}

	// Checked out before the window, returned 3.5 days in: half the week busy.
	activities := []entities.ActivityLog{
		{EquipmentID: 5, Action: entities.ActionCheckin, CreatedAt: filter.From.Add(84 * time.Hour)},
	}

	pct := utilization(filter, equipment, activities)
	assert.InDelta(t, 50.0, pct, 0.1)
}

func TestUtilizationPairsIntervals(t *testing.T) {
	filter := weekFilter()
	equipment := entities.Equipment{ID: 5, Name: "Camera", Status: entities.EquipmentAvailable}

	activities := []entities.ActivityLog{
		{EquipmentID: 5, Action: entities.ActionCheckout, CreatedAt: filter.From.Add(24 * time.Hour)},
		{EquipmentID: 5, Action: entities.ActionCheckin, CreatedAt: filter.From.Add(48 * time.Hour)},
		{EquipmentID: 5, Action: entities.ActionCheckout, CreatedAt: filter.From.Add(96 * time.Hour)},
		{EquipmentID: 5, Action: entities.ActionCheckin, CreatedAt: filter.From.Add(120 * time.Hour)},
	}

	// Two one-day loans over a seven day window.
	pct := utilization(filter, equipment, activities)
	assert.InDelta(t, 2.0/7.0*100, pct, 0.1)
}

func TestUserStatsAggregation(t *testing.T) {
	filter := weekFilter()
	data := entities.SourceData{
		Users: []entities.User{
			{ID: 1, Fio: "Alice Smith"},
			{ID: 2, Fio: "Bob Jones"},
		},
		Requests: []entities.Request{
			{ID: 1, RequesterID: 1, Status: entities.RequestReturned, CreatedAt: filter.From},
			{ID: 2, RequesterID: 1, Status: entities.RequestPending, CreatedAt: filter.From},
			{ID: 3, RequesterID: 2, Status: entities.RequestPending, CreatedAt: filter.From},
		},
		Activities: []entities.ActivityLog{
			{UserID: 1, EquipmentID: 9, Action: entities.ActionCheckout, CreatedAt: filter.From},
			{UserID: 1, EquipmentID: 9, Action: entities.ActionCheckin, CreatedAt: filter.From.Add(time.Hour)},
			{UserID: 1, EquipmentID: 9, Action: entities.ActionDamageReport, CreatedAt: filter.From.Add(time.Hour)},
		},
	}

	report := BuildReport(filter, data)
	require.Len(t, report.UserStats, 2)

	// Sorted by request count descending.
	top := report.UserStats[0]
	assert.Equal(t, uint64(1), top.UserID)
	assert.Equal(t, "Alice Smith", top.Fio)
	assert.Equal(t, 2, top.Requests)
	assert.Equal(t, 1, top.Checkouts)
	assert.Equal(t, 1, top.Checkins)
	assert.Equal(t, 1, top.DamageReports)

	assert.Equal(t, 2, report.Summary.ActiveUsers)
}

func TestSummaryCountsOverdueItems(t *testing.T) {
	filter := weekFilter()
	now := filter.To.Add(5 * 24 * time.Hour)
	data := entities.SourceData{
		Equipments: []entities.Equipment{
			{ID: 1, Status: entities.EquipmentCheckedOut,
				HolderID: null.Uint64From(7), DueDate: null.TimeFrom(filter.From.Add(24 * time.Hour))},
			// Still overdue: not due back until after the window closed, but
			// past due by the time the report runs.
			{ID: 2, Status: entities.EquipmentCheckedOut,
				HolderID: null.Uint64From(7), DueDate: null.TimeFrom(filter.To.Add(24 * time.Hour))},
			{ID: 3, Status: entities.EquipmentCheckedOut,
				HolderID: null.Uint64From(8), DueDate: null.TimeFrom(now.Add(24 * time.Hour))},
			{ID: 4, Status: entities.EquipmentAvailable},
		},
	}

	report := buildReportAt(filter, data, now)
	assert.Equal(t, 2, report.Summary.OverdueItems)
}

func TestOverdueAgreesBetweenSummaryAndUserStats(t *testing.T) {
	filter := weekFilter()
	now := filter.To.Add(5 * 24 * time.Hour)
	// Due back after the report window ended but before the report runs: the
	// summary and the holder's per-user row must both call it overdue.
	data := entities.SourceData{
		Users: []entities.User{{ID: 7, Fio: "Alice Smith"}},
		Equipments: []entities.Equipment{
			{ID: 1, Status: entities.EquipmentCheckedOut,
				HolderID: null.Uint64From(7), DueDate: null.TimeFrom(filter.To.Add(48 * time.Hour))},
		},
	}

	report := buildReportAt(filter, data, now)
	assert.Equal(t, 1, report.Summary.OverdueItems)
	require.Len(t, report.UserStats, 1)
	assert.Equal(t, 1, report.UserStats[0].Overdue)
}
