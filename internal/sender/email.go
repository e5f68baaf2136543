package sender

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/zlog"

	"github.com/coachdesk/notifier/internal/model"
	"github.com/coachdesk/notifier/internal/repository/preference"
)

//go:generate mockgen -source=email.go -destination=../mocks/sender/email_mock.go -package=mocks

type contactResolver interface {
	GetContact(ctx context.Context, userID uuid.UUID) (model.Contact, error)
}

type emailClient interface {
	Send(to, subject, body string) error
}

// EmailSender delivers notifications over SMTP after resolving the
// recipient's address.
type EmailSender struct {
	contacts contactResolver
	client   emailClient
}

// NewEmailSender creates a new email sender.
func NewEmailSender(contacts contactResolver, client emailClient) *EmailSender {
	return &EmailSender{contacts: contacts, client: client}
}

// Send resolves the user's email address and delivers the
// notification. A user without an address is a no-op success.
func (s *EmailSender) Send(ctx context.Context, n model.ScheduledNotification) (Result, error) {
	contact, err := s.contacts.GetContact(ctx, n.UserID)
	if err != nil {
		if errors.Is(err, preference.ErrContactNotFound) {
			zlog.Logger.Warn().Str("user_id", n.UserID.String()).Msg("no email contact, skipping dispatch")
			return Result{Skipped: true, Detail: "no email contact"}, nil
		}

		return Result{}, fmt.Errorf("resolve contact: %w", err)
	}

	if err := s.client.Send(contact.Email, n.Title, n.Content); err != nil {
		return Result{}, fmt.Errorf("send email: %w", err)
	}

	return Result{Recipients: 1}, nil
}
