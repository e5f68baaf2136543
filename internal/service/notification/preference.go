package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/coachdesk/notifier/internal/model"
	"github.com/coachdesk/notifier/internal/quiethours"
)

// GetPreferences returns the user's notification preferences, falling
// back to platform defaults for users who never saved any.
func (s *Service) GetPreferences(ctx context.Context, userID uuid.UUID) (model.UserNotificationPreferences, error) {
	prefs, err := s.prefs.GetPreferences(ctx, userID)
	if err != nil {
		return model.UserNotificationPreferences{}, fmt.Errorf("get preferences: %w", err)
	}

	return prefs, nil
}

// SavePreferences validates and persists the user's preferences.
func (s *Service) SavePreferences(ctx context.Context, p model.UserNotificationPreferences) error {
	if p.UserID == uuid.Nil {
		return fmt.Errorf("%w: missing user id", ErrInvalidNotification)
	}
	if p.ReminderLeadMins <= 0 {
		return fmt.Errorf("%w: reminder lead must be positive", ErrInvalidNotification)
	}

	// Reject a window the evaluator could never parse later.
	if p.QuietHoursEnabled {
		if _, err := quiethours.InWindow(s.now(), p.Timezone, p.QuietHoursStart, p.QuietHoursEnd); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidNotification, err)
		}
	}

	if err := s.prefs.UpsertPreferences(ctx, p); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}

	return nil
}

// RegisterPushSubscription stores a device's push subscription.
func (s *Service) RegisterPushSubscription(ctx context.Context, sub model.PushSubscription) (uuid.UUID, error) {
	if sub.UserID == uuid.Nil || sub.Endpoint == "" || sub.P256dhKey == "" || sub.AuthKey == "" {
		return uuid.Nil, fmt.Errorf("%w: incomplete push subscription", ErrInvalidNotification)
	}

	id, err := s.prefs.SavePushSubscription(ctx, sub)
	if err != nil {
		return uuid.Nil, fmt.Errorf("register push subscription: %w", err)
	}

	return id, nil
}

// RemovePushSubscription deletes a device's push subscription.
func (s *Service) RemovePushSubscription(ctx context.Context, id uuid.UUID) error {
	if err := s.prefs.DeletePushSubscription(ctx, id); err != nil {
		return fmt.Errorf("remove push subscription: %w", err)
	}

	return nil
}

// Inbox returns the user's visible in-app notifications, newest first.
func (s *Service) Inbox(ctx context.Context, userID uuid.UUID, limit int) ([]model.InAppNotification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	notifications, err := s.inbox.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list inbox: %w", err)
	}

	return notifications, nil
}

// MarkInboxRead flags one visible notification as read.
func (s *Service) MarkInboxRead(ctx context.Context, id uuid.UUID) error {
	if err := s.inbox.MarkRead(ctx, id); err != nil {
		return fmt.Errorf("mark inbox read: %w", err)
	}

	return nil
}
