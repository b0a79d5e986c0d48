package events

import "gear-system/internal/entities"

const (
	RequestCreated       = "request.created"
	RequestStatusChanged = "request.status_changed"
	CheckinCreated       = "checkin.created"
	CheckinApproved      = "checkin.approved"
	WeeklyReportReady    = "report.weekly_ready"
)

type RequestCreatedEvent struct {
	Request *entities.Request
	ActorID uint64
}

func (RequestCreatedEvent) Name() string { return RequestCreated }

type RequestStatusChangedEvent struct {
	Request   *entities.Request
	ActorID   uint64
	OldStatus string
	NewStatus string
	Reason    string
}

func (RequestStatusChangedEvent) Name() string { return RequestStatusChanged }

type CheckinCreatedEvent struct {
	Checkin *entities.Checkin
	ActorID uint64
}

func (CheckinCreatedEvent) Name() string { return CheckinCreated }

type CheckinApprovedEvent struct {
	Checkin   *entities.Checkin
	ActorID   uint64
	Condition string
}

func (CheckinApprovedEvent) Name() string { return CheckinApproved }

type WeeklyReportReadyEvent struct {
	Report  *entities.Report
	CSVPath string
	PDFPath string
}

func (WeeklyReportReadyEvent) Name() string { return WeeklyReportReady }
