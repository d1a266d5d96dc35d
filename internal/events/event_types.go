package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventProductCreated EventType = "product_created"
	EventProductUpdated EventType = "product_updated"
	EventProductDeleted EventType = "product_deleted"
	EventUserCreated    EventType = "user_created"
	EventUserUpdated    EventType = "user_updated"
	EventUserDeleted    EventType = "user_deleted"
	EventLoginSucceeded EventType = "login_succeeded"
	EventLoginFailed    EventType = "login_failed"
)

// AllEventTypes lists every type a subscriber may want to audit.
var AllEventTypes = []EventType{
	EventProductCreated,
	EventProductUpdated,
	EventProductDeleted,
	EventUserCreated,
	EventUserUpdated,
	EventUserDeleted,
	EventLoginSucceeded,
	EventLoginFailed,
}

// Event represents a domain event emitted by services.
type Event struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	Actor      string    `json:"actor,omitempty"`
	ResourceID string    `json:"resource_id,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	Detail     string    `json:"detail,omitempty"`
}
