package entities

import "time"

// ReportFilter bounds a usage report to a date range (inclusive start,
// exclusive end).
type ReportFilter struct {
	From time.Time
	To   time.Time
}

// SourceData is the raw material the fetcher hands to the aggregator. A
// failed source query degrades to an empty slice instead of failing the run.
type SourceData struct {
	Equipments []Equipment
	Users      []User
	Requests   []Request
	Activities []ActivityLog
}

type UserStats struct {
	UserID        uint64 `json:"user_id"`
	Fio           string `json:"fio"`
	Requests      int    `json:"requests"`
	Checkouts     int    `json:"checkouts"`
	Checkins      int    `json:"checkins"`
	Overdue       int    `json:"overdue"`
	DamageReports int    `json:"damage_reports"`
}

type EquipmentStats struct {
	EquipmentID   uint64  `json:"equipment_id"`
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	Requests      int     `json:"requests"`
	Checkouts     int     `json:"checkouts"`
	Checkins      int     `json:"checkins"`
	DamageReports int     `json:"damage_reports"`
	Utilization   float64 `json:"utilization"`
}

// TrendPoint is one calendar day with at least one event. Days with zero
// activity are omitted.
type TrendPoint struct {
	Day       string `json:"day"`
	Requests  int    `json:"requests"`
	Checkouts int    `json:"checkouts"`
	Damages   int    `json:"damages"`
}

const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
	SeverityHigh    = "high"
)

type Insight struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

type ReportSummary struct {
	TotalRequests      int     `json:"total_requests"`
	TotalCheckouts     int     `json:"total_checkouts"`
	TotalCheckins      int     `json:"total_checkins"`
	TotalDamageReports int     `json:"total_damage_reports"`
	OverdueItems       int     `json:"overdue_items"`
	ActiveUsers        int     `json:"active_users"`
	// AvgRequestDurationDays is averaged only over returned requests that have
	// both a creation and a due date; rows without a due date are excluded
	// from numerator and denominator.
	AvgRequestDurationDays float64 `json:"avg_request_duration_days"`
}

// Report is the full aggregate every renderer consumes.
type Report struct {
	PeriodStart     time.Time        `json:"period_start"`
	PeriodEnd       time.Time        `json:"period_end"`
	Summary         ReportSummary    `json:"summary"`
	UserStats       []UserStats      `json:"user_stats"`
	EquipmentStats  []EquipmentStats `json:"equipment_stats"`
	Trends          []TrendPoint     `json:"trends"`
	Insights        []Insight        `json:"insights"`
	Recommendations []string         `json:"recommendations"`
	GeneratedAt     time.Time        `json:"generated_at"`
}

// PerformanceComparison holds percentage deltas between two adjacent report
// periods. A zero prior baseline yields 0, never NaN or Inf.
type PerformanceComparison struct {
	ActivityChange    float64 `json:"activity_change"`
	DamageChange      float64 `json:"damage_change"`
	UtilizationChange float64 `json:"utilization_change"`
}
