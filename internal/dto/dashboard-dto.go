package dto

// DashboardSummaryDTO backs the landing dashboard cards. Served from Redis
// when fresh.
type DashboardSummaryDTO struct {
	TotalEquipment     uint64 `json:"total_equipment"`
	AvailableEquipment uint64 `json:"available_equipment"`
	CheckedOut         uint64 `json:"checked_out"`
	UnderRepair        uint64 `json:"under_repair"`
	PendingCheckin     uint64 `json:"pending_checkin"`
	PendingRequests    uint64 `json:"pending_requests"`
	PendingCheckins    uint64 `json:"pending_checkins"`
}

type ReportQueryDTO struct {
	From   string `query:"from" validate:"required,report_date"`
	To     string `query:"to" validate:"required,report_date"`
	Format string `query:"format" validate:"omitempty,oneof=json csv pdf xlsx"`
}
