package model

import (
	"time"

	"github.com/google/uuid"
)

// UserNotificationPreferences holds a user's per-channel toggles,
// reminder lead time, and quiet-hours window. The scheduler only ever
// reads these.
type UserNotificationPreferences struct {
	UserID            uuid.UUID `json:"user_id"`
	EmailEnabled      bool      `json:"email_enabled"`
	PushEnabled       bool      `json:"push_enabled"`
	InAppEnabled      bool      `json:"inapp_enabled"`
	ReminderLeadMins  int       `json:"reminder_lead_minutes"`
	QuietHoursEnabled bool      `json:"quiet_hours_enabled"`
	QuietHoursStart   string    `json:"quiet_hours_start"` // "HH:MM" local
	QuietHoursEnd     string    `json:"quiet_hours_end"`   // "HH:MM" local
	Timezone          string    `json:"timezone"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// DefaultPreferences returns the preferences assumed for a user who has
// never saved any: every channel on, one hour lead, quiet hours off.
func DefaultPreferences(userID uuid.UUID) UserNotificationPreferences {
	return UserNotificationPreferences{
		UserID:           userID,
		EmailEnabled:     true,
		PushEnabled:      true,
		InAppEnabled:     true,
		ReminderLeadMins: 60,
		QuietHoursStart:  "22:00",
		QuietHoursEnd:    "08:00",
		Timezone:         "UTC",
	}
}

// ChannelEnabled reports whether the given channel is switched on.
func (p UserNotificationPreferences) ChannelEnabled(c Channel) bool {
	switch c {
	case ChannelEmail:
		return p.EmailEnabled
	case ChannelPush:
		return p.PushEnabled
	case ChannelInApp:
		return p.InAppEnabled
	}
	return false
}

// Contact is the resolvable address book entry for a user.
type Contact struct {
	UserID   uuid.UUID `json:"user_id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
}

// PushSubscription is one browser push endpoint registered by a user.
// A user may hold several, one per device.
type PushSubscription struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Endpoint  string    `json:"endpoint"`
	P256dhKey string    `json:"p256dh_key"`
	AuthKey   string    `json:"auth_key"`
	UserAgent string    `json:"user_agent,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
