// Package sender contains one delivery implementation per notification
// channel. Senders resolve the recipient's contact or subscription
// records themselves; a recipient with nothing to deliver to is a
// no-op success, not a failure, so unfixable conditions never retry.
package sender

import (
	"context"

	"github.com/coachdesk/notifier/internal/model"
)

// Result describes the outcome of a successful dispatch.
type Result struct {
	// Skipped is set when the dispatch was vacuously successful: the
	// user has no contact or no subscriptions on this channel.
	Skipped bool
	// Recipients counts the endpoints actually delivered to. Email and
	// in-app always deliver to one; push fans out per device.
	Recipients int
	Detail     string
}

//go:generate mockgen -source=sender.go -destination=../mocks/sender/sender_mock.go -package=mocks

// Sender delivers one scheduled notification over its channel.
type Sender interface {
	Send(ctx context.Context, n model.ScheduledNotification) (Result, error)
}
