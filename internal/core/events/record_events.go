package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	EventUserCreated      = "user.created"
	EventTaskCompleted    = "task.completed"
	EventIncidentResolved = "incident.resolved"
)

func newEvent(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
}

func NewUserCreatedEvent(userID int64, username, role string, createdBy int64) Event {
	return newEvent(EventUserCreated, map[string]interface{}{
		"user_id":    userID,
		"username":   username,
		"role":       role,
		"created_by": createdBy,
	})
}

func NewTaskCompletedEvent(taskID int64, name string, completedBy int64) Event {
	return newEvent(EventTaskCompleted, map[string]interface{}{
		"task_id":      taskID,
		"name":         name,
		"completed_by": completedBy,
	})
}

func NewIncidentResolvedEvent(incidentID int64, name, status string, resolvedBy int64) Event {
	return newEvent(EventIncidentResolved, map[string]interface{}{
		"incident_id": incidentID,
		"name":        name,
		"status":      status,
		"resolved_by": resolvedBy,
	})
}

// RegisterAuditSubscriber attaches a handler that writes every lifecycle event
// to the audit log stream.
func RegisterAuditSubscriber(bus *EventBus) {
	audit := func(eventType string) Handler {
		return func(ctx context.Context, event Event) error {
			bus.logger.Info("audit",
				"event_type", eventType,
				"event_id", event.EventID(),
				"occurred_at", event.OccurredAt(),
				"payload", event.Payload())
			return nil
		}
	}

	bus.Subscribe(EventUserCreated, audit(EventUserCreated))
	bus.Subscribe(EventTaskCompleted, audit(EventTaskCompleted))
	bus.Subscribe(EventIncidentResolved, audit(EventIncidentResolved))
}
