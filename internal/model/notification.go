package model

import (
	"time"

	"github.com/google/uuid"
)

// Channel is a delivery transport for a notification.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelPush  Channel = "push"
	ChannelInApp Channel = "inapp"
)

// Valid reports whether c is a known delivery channel.
func (c Channel) Valid() bool {
	switch c {
	case ChannelEmail, ChannelPush, ChannelInApp:
		return true
	}
	return false
}

// Status is the lifecycle state of a scheduled notification.
//
// Allowed transitions: pending -> processing -> {sent | pending | failed},
// pending -> cancelled. Terminal states never change again.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusSent       Status = "sent"
	StatusFailed     Status = "failed"
	StatusCancelled  Status = "cancelled"
)

// Terminal reports whether s is a final state.
func (s Status) Terminal() bool {
	return s == StatusSent || s == StatusFailed || s == StatusCancelled
}

// Priority orders due notifications within one scheduler pass.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Type is the logical kind of a notification.
type Type string

const (
	TypeSessionReminder  Type = "session_reminder"
	TypeSessionCancelled Type = "session_cancelled"
	TypeNewMessage       Type = "new_message"
	TypeTaskDue          Type = "task_due"
	TypeSystemAlert      Type = "system_alert"
)

// Valid reports whether t is a known notification type.
func (t Type) Valid() bool {
	switch t {
	case TypeSessionReminder, TypeSessionCancelled, TypeNewMessage, TypeTaskDue, TypeSystemAlert:
		return true
	}
	return false
}

// ScheduledNotification represents one future delivery attempt chain for
// a message to a user over a single channel.
type ScheduledNotification struct {
	ID           uuid.UUID    `json:"id"`
	UserID       uuid.UUID    `json:"user_id"`
	Type         Type         `json:"type"`
	Channel      Channel      `json:"channel"`
	Title        string       `json:"title"`
	Content      string       `json:"content"`
	TemplateData TemplateData `json:"template_data"`
	ScheduledFor time.Time    `json:"scheduled_for"`
	Priority     Priority     `json:"priority"`
	Status       Status       `json:"status"`
	RetryCount   int          `json:"retry_count"`
	MaxRetries   int          `json:"max_retries"`
	LastError    string       `json:"last_error,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
	SentAt       *time.Time   `json:"sent_at,omitempty"`
}

// NotificationFilter narrows list queries over scheduled notifications.
type NotificationFilter struct {
	UserID   uuid.UUID
	Status   Status
	Channel  Channel
	Page     int
	PageSize int
}

// DeliveryStats aggregates notification counts by status for the
// operator-facing statistics surface.
type DeliveryStats struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	Processing int64 `json:"processing"`
	Sent       int64 `json:"sent"`
	Failed     int64 `json:"failed"`
	Cancelled  int64 `json:"cancelled"`
}
