package audit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Skenwise/Loan-Management-System/internal/core/events"
)

// EventHandler turns security events from the bus into audit rows. The bus
// invokes it asynchronously, so persistence failures are logged by the bus
// and never surface on the request path.
type EventHandler struct {
	service *Service
	logger  *slog.Logger
}

func NewEventHandler(service *Service, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		service: service,
		logger:  logger,
	}
}

func (h *EventHandler) HandleLoginSucceeded(ctx context.Context, event events.Event) error {
	loginEvent, ok := event.(*events.LoginSucceededEvent)
	if !ok {
		h.logger.Error("invalid event type for login succeeded handler", "event_type", event.EventType())
		return fmt.Errorf("expected LoginSucceededEvent, got %T", event)
	}

	detail := fmt.Sprintf("username=%s", loginEvent.Username)
	return h.service.Record(ctx, loginEvent.IdentityID, events.EventTypeLoginSucceeded, detail)
}

func (h *EventHandler) HandleLoginFailed(ctx context.Context, event events.Event) error {
	loginEvent, ok := event.(*events.LoginFailedEvent)
	if !ok {
		h.logger.Error("invalid event type for login failed handler", "event_type", event.EventType())
		return fmt.Errorf("expected LoginFailedEvent, got %T", event)
	}

	// No identity id: the attempt may not map to a stored identity, and
	// recording a guess would poison the trail.
	detail := fmt.Sprintf("username=%s reason=%s", loginEvent.Username, loginEvent.Reason)
	return h.service.Record(ctx, "", events.EventTypeLoginFailed, detail)
}

func (h *EventHandler) HandlePermissionDenied(ctx context.Context, event events.Event) error {
	deniedEvent, ok := event.(*events.PermissionDeniedEvent)
	if !ok {
		h.logger.Error("invalid event type for permission denied handler", "event_type", event.EventType())
		return fmt.Errorf("expected PermissionDeniedEvent, got %T", event)
	}

	detail := fmt.Sprintf("permission=%s", deniedEvent.PermissionCode)
	return h.service.Record(ctx, deniedEvent.IdentityID, events.EventTypePermissionDenied, detail)
}

func (h *EventHandler) RegisterEventHandlers(eventBus *events.EventBus) {
	eventBus.Subscribe(events.EventTypeLoginSucceeded, h.HandleLoginSucceeded)
	eventBus.Subscribe(events.EventTypeLoginFailed, h.HandleLoginFailed)
	eventBus.Subscribe(events.EventTypePermissionDenied, h.HandlePermissionDenied)

	h.logger.Info("audit event handlers registered",
		"handlers", []string{
			events.EventTypeLoginSucceeded,
			events.EventTypeLoginFailed,
			events.EventTypePermissionDenied,
		})
}
