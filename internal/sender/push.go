package sender

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/zlog"

	"github.com/coachdesk/notifier/internal/model"
	"github.com/coachdesk/notifier/pkg/webpush"
)

//go:generate mockgen -source=push.go -destination=../mocks/sender/push_mock.go -package=mocks

type subscriptionStore interface {
	ListPushSubscriptions(ctx context.Context, userID uuid.UUID) ([]model.PushSubscription, error)
	DeletePushSubscriptionByEndpoint(ctx context.Context, endpoint string) error
}

type pushClient interface {
	Send(endpoint, p256dh, auth, title, body string) error
}

// PushSender fans one notification out to every device subscription the
// user holds. Endpoints the push service reports as gone are pruned on
// the spot. The dispatch fails only when every subscription fails.
type PushSender struct {
	subs   subscriptionStore
	client pushClient
}

// NewPushSender creates a new web-push sender.
func NewPushSender(subs subscriptionStore, client pushClient) *PushSender {
	return &PushSender{subs: subs, client: client}
}

// Send delivers the notification to each of the user's subscriptions.
// A user without subscriptions is a no-op success.
func (s *PushSender) Send(ctx context.Context, n model.ScheduledNotification) (Result, error) {
	subs, err := s.subs.ListPushSubscriptions(ctx, n.UserID)
	if err != nil {
		return Result{}, fmt.Errorf("list push subscriptions: %w", err)
	}

	if len(subs) == 0 {
		zlog.Logger.Warn().Str("user_id", n.UserID.String()).Msg("no push subscriptions, skipping dispatch")
		return Result{Skipped: true, Detail: "no push subscriptions"}, nil
	}

	delivered := 0
	var lastErr error

	for _, sub := range subs {
		err := s.client.Send(sub.Endpoint, sub.P256dhKey, sub.AuthKey, n.Title, n.Content)
		if err == nil {
			delivered++
			continue
		}

		if errors.Is(err, webpush.ErrSubscriptionGone) {
			zlog.Logger.Info().Str("user_id", n.UserID.String()).Msg("pruning expired push subscription")
			if delErr := s.subs.DeletePushSubscriptionByEndpoint(ctx, sub.Endpoint); delErr != nil {
				zlog.Logger.Error().Err(delErr).Msg("failed to prune push subscription")
			}
			continue
		}

		lastErr = err
		zlog.Logger.Warn().Err(err).Str("user_id", n.UserID.String()).Msg("push delivery failed for subscription")
	}

	if delivered == 0 && lastErr != nil {
		return Result{}, fmt.Errorf("send push: %w", lastErr)
	}

	if delivered == 0 {
		// Every subscription was expired and pruned.
		return Result{Skipped: true, Detail: "all push subscriptions expired"}, nil
	}

	return Result{
		Recipients: delivered,
		Detail:     fmt.Sprintf("delivered to %d of %d subscriptions", delivered, len(subs)),
	}, nil
}
