package model

import (
	"time"

	"github.com/google/uuid"
)

// DeliveryStatus is the outcome recorded for one dispatch attempt.
// Engagement states (delivered, opened, clicked) come from provider
// callbacks and only ever appear in the audit log, never on the
// notification row itself.
type DeliveryStatus string

const (
	DeliverySent      DeliveryStatus = "sent"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryFailed    DeliveryStatus = "failed"
	DeliveryOpened    DeliveryStatus = "opened"
	DeliveryClicked   DeliveryStatus = "clicked"
)

// DeliveryLog is one append-only audit row per dispatch attempt.
type DeliveryLog struct {
	ID             uuid.UUID      `json:"id"`
	NotificationID uuid.UUID      `json:"notification_id"`
	Channel        Channel        `json:"channel"`
	Status         DeliveryStatus `json:"status"`
	Error          string         `json:"error,omitempty"`
	AttemptedAt    time.Time      `json:"attempted_at"`
}

// InAppNotification is a row in the user-visible notification store,
// written by the in-app sender and read by the inbox surface.
type InAppNotification struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Type      Type      `json:"type"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
