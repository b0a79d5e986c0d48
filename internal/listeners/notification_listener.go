package listeners

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"gear-system/internal/entities"
	"gear-system/internal/events"
	"gear-system/internal/repositories"
	"gear-system/internal/services"
	"gear-system/pkg/eventbus"
	"gear-system/pkg/websocket"
)

const changeDebounce = 2 * time.Second

// NotificationListener turns workflow events into persisted notifications and
// realtime pushes. Collection change broadcasts are debounced so a burst of
// writes (a multi-item checkout, say) triggers one refetch, not ten.
type NotificationListener struct {
	notificationSvc services.NotificationServiceInterface
	userRepo        repositories.UserRepositoryInterface
	hub             *websocket.Hub
	logger          *zap.Logger

	mu      sync.Mutex
	pending map[string]*time.Timer
}

func NewNotificationListener(
	notificationSvc services.NotificationServiceInterface,
	userRepo repositories.UserRepositoryInterface,
	hub *websocket.Hub,
	logger *zap.Logger,
) *NotificationListener {
	return &NotificationListener{
		notificationSvc: notificationSvc,
		userRepo:        userRepo,
		hub:             hub,
		logger:          logger,
		pending:         make(map[string]*time.Timer),
	}
}

func (l *NotificationListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.RequestCreated, l.onRequestCreated)
	bus.Subscribe(events.RequestStatusChanged, l.onRequestStatusChanged)
	bus.Subscribe(events.CheckinCreated, l.onCheckinCreated)
	bus.Subscribe(events.CheckinApproved, l.onCheckinApproved)
	bus.Subscribe(events.WeeklyReportReady, l.onWeeklyReportReady)
}

// onRequestCreated tells every admin a new request is waiting for review.
func (l *NotificationListener) onRequestCreated(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.RequestCreatedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.Name())
	}

	admins, err := l.userRepo.GetAdmins(ctx)
	if err != nil {
		return err
	}
	link := fmt.Sprintf("/requests/%d", e.Request.ID)
	for _, admin := range admins {
		l.deliver(ctx, entities.Notification{
			RecipientID: admin.ID,
			Title:       "New equipment request",
			Message:     fmt.Sprintf("%s requested equipment for %s.", e.Request.RequesterFio, e.Request.Destination),
			Category:    entities.NotificationRequest,
			Link:        null.StringFrom(link),
		})
	}

	l.scheduleChangeBroadcast("requests", e.Request.ID)
	return nil
}

// onRequestStatusChanged notifies the requester, unless they made the change
// themselves.
func (l *NotificationListener) onRequestStatusChanged(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.RequestStatusChangedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.Name())
	}

	if e.Request.RequesterID != e.ActorID {
		message := fmt.Sprintf("Your request #%d is now %s.", e.Request.ID, e.NewStatus)
		if e.Reason != "" {
			message += " Reason: " + e.Reason
		}
		l.deliver(ctx, entities.Notification{
			RecipientID: e.Request.RequesterID,
			Title:       "Request " + e.NewStatus,
			Message:     message,
			Category:    entities.NotificationRequest,
			Link:        null.StringFrom(fmt.Sprintf("/requests/%d", e.Request.ID)),
		})
	}

	l.scheduleChangeBroadcast("requests", e.Request.ID)
	if e.NewStatus == entities.RequestCheckedOut || e.NewStatus == entities.RequestReturned {
		l.scheduleChangeBroadcast("equipments", 0)
	}
	return nil
}

// onCheckinCreated tells admins a returned item is waiting for inspection.
func (l *NotificationListener) onCheckinCreated(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.CheckinCreatedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.Name())
	}

	admins, err := l.userRepo.GetAdmins(ctx)
	if err != nil {
		return err
	}
	message := fmt.Sprintf("Equipment #%d was returned in %s condition and awaits approval.",
		e.Checkin.EquipmentID, e.Checkin.Condition)
	for _, admin := range admins {
		l.deliver(ctx, entities.Notification{
			RecipientID: admin.ID,
			Title:       "Check-in awaiting approval",
			Message:     message,
			Category:    entities.NotificationCheckin,
			Link:        null.StringFrom("/checkins"),
		})
	}

	l.scheduleChangeBroadcast("checkins", e.Checkin.ID)
	return nil
}

func (l *NotificationListener) onCheckinApproved(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.CheckinApprovedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.Name())
	}

	message := "Your returned equipment was checked in."
	if e.Condition == entities.ConditionDamaged {
		message = "Your returned equipment was checked in and sent for repair."
	}
	l.deliver(ctx, entities.Notification{
		RecipientID: e.Checkin.RequesterID,
		Title:       "Check-in confirmed",
		Message:     message,
		Category:    entities.NotificationCheckin,
		Link:        null.StringFrom("/checkins"),
	})

	l.scheduleChangeBroadcast("checkins", e.Checkin.ID)
	l.scheduleChangeBroadcast("equipments", e.Checkin.EquipmentID)
	return nil
}

func (l *NotificationListener) onWeeklyReportReady(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.WeeklyReportReadyEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.Name())
	}

	admins, err := l.userRepo.GetAdmins(ctx)
	if err != nil {
		return err
	}
	message := fmt.Sprintf("Weekly report for %s - %s is ready.",
		e.Report.PeriodStart.Format("2006-01-02"), e.Report.PeriodEnd.Format("2006-01-02"))
	for _, admin := range admins {
		l.deliver(ctx, entities.Notification{
			RecipientID: admin.ID,
			Title:       "Weekly report ready",
			Message:     message,
			Category:    entities.NotificationReport,
			Link:        null.StringFrom(e.CSVPath),
		})
	}
	return nil
}

// deliver persists the notification and pushes it over the socket. Push
// failures are logged only; the stored row is the source of truth.
func (l *NotificationListener) deliver(ctx context.Context, n entities.Notification) {
	if _, err := l.notificationSvc.Notify(ctx, n); err != nil {
		l.logger.Error("failed to persist notification",
			zap.Uint64("recipientID", n.RecipientID), zap.Error(err))
		return
	}

	payload := websocket.NotificationPayload{
		EventID:   uuid.NewString(),
		Category:  n.Category,
		Title:     n.Title,
		Message:   n.Message,
		Link:      n.Link.String,
		CreatedAt: time.Now().UTC(),
	}
	if err := l.hub.SendToUser(n.RecipientID, payload, "notification"); err != nil {
		l.logger.Warn("failed to push notification",
			zap.Uint64("recipientID", n.RecipientID), zap.Error(err))
	}
}

// scheduleChangeBroadcast coalesces repeated change signals for the same
// collection into one broadcast after a short quiet window.
func (l *NotificationListener) scheduleChangeBroadcast(collection string, entityID uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if timer, ok := l.pending[collection]; ok {
		timer.Stop()
	}
	l.pending[collection] = time.AfterFunc(changeDebounce, func() {
		l.mu.Lock()
		delete(l.pending, collection)
		l.mu.Unlock()

		payload := websocket.ChangePayload{Collection: collection, EntityID: entityID}
		if err := l.hub.Broadcast(payload, "change"); err != nil {
			l.logger.Warn("failed to broadcast change", zap.String("collection", collection), zap.Error(err))
		}
	})
}
