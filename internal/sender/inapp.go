package sender

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/coachdesk/notifier/internal/model"
)

//go:generate mockgen -source=inapp.go -destination=../mocks/sender/inapp_mock.go -package=mocks

type inappStore interface {
	Create(ctx context.Context, n model.InAppNotification) (uuid.UUID, error)
}

// InAppSender writes the notification into the user-visible store. It
// is synchronous and only fails on a database error.
type InAppSender struct {
	store inappStore
}

// NewInAppSender creates a new in-app sender.
func NewInAppSender(store inappStore) *InAppSender {
	return &InAppSender{store: store}
}

// Send inserts one visible notification row.
func (s *InAppSender) Send(ctx context.Context, n model.ScheduledNotification) (Result, error) {
	_, err := s.store.Create(ctx, model.InAppNotification{
		UserID:  n.UserID,
		Type:    n.Type,
		Title:   n.Title,
		Content: n.Content,
	})
	if err != nil {
		return Result{}, fmt.Errorf("store in-app notification: %w", err)
	}

	return Result{Recipients: 1}, nil
}
