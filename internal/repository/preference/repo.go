package preference

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/dbpg"

	"github.com/coachdesk/notifier/internal/model"
)

var (
	ErrContactNotFound      = errors.New("contact not found")
	ErrSubscriptionNotFound = errors.New("push subscription not found")
)

// Repository provides read access to user contacts and notification
// preferences, and manages push subscriptions.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new preference repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

// GetPreferences returns the user's saved preferences, or the platform
// defaults when the user has never saved any.
func (r *Repository) GetPreferences(ctx context.Context, userID uuid.UUID) (model.UserNotificationPreferences, error) {
	query := `
		SELECT user_id, email_enabled, push_enabled, inapp_enabled,
		       reminder_lead_minutes, quiet_hours_enabled,
		       quiet_hours_start, quiet_hours_end, timezone, updated_at
		FROM user_notification_preferences
		WHERE user_id = $1;
    `

	var p model.UserNotificationPreferences
	err := r.db.Master.QueryRowContext(ctx, query, userID).Scan(
		&p.UserID, &p.EmailEnabled, &p.PushEnabled, &p.InAppEnabled,
		&p.ReminderLeadMins, &p.QuietHoursEnabled,
		&p.QuietHoursStart, &p.QuietHoursEnd, &p.Timezone, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.DefaultPreferences(userID), nil
		}

		return model.UserNotificationPreferences{}, fmt.Errorf("failed to get preferences: %w", err)
	}

	return p, nil
}

// UpsertPreferences saves the user's preferences, replacing any
// previous row.
func (r *Repository) UpsertPreferences(ctx context.Context, p model.UserNotificationPreferences) error {
	query := `
		INSERT INTO user_notification_preferences (
		    user_id, email_enabled, push_enabled, inapp_enabled,
		    reminder_lead_minutes, quiet_hours_enabled,
		    quiet_hours_start, quiet_hours_end, timezone
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id) DO UPDATE SET
		    email_enabled = EXCLUDED.email_enabled,
		    push_enabled = EXCLUDED.push_enabled,
		    inapp_enabled = EXCLUDED.inapp_enabled,
		    reminder_lead_minutes = EXCLUDED.reminder_lead_minutes,
		    quiet_hours_enabled = EXCLUDED.quiet_hours_enabled,
		    quiet_hours_start = EXCLUDED.quiet_hours_start,
		    quiet_hours_end = EXCLUDED.quiet_hours_end,
		    timezone = EXCLUDED.timezone,
		    updated_at = now();
    `

	_, err := r.db.ExecContext(
		ctx, query,
		p.UserID, p.EmailEnabled, p.PushEnabled, p.InAppEnabled,
		p.ReminderLeadMins, p.QuietHoursEnabled,
		p.QuietHoursStart, p.QuietHoursEnd, p.Timezone,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert preferences: %w", err)
	}

	return nil
}

// GetContact resolves a user's email address and display name.
func (r *Repository) GetContact(ctx context.Context, userID uuid.UUID) (model.Contact, error) {
	query := `
		SELECT id, email, full_name
		FROM users
		WHERE id = $1 AND email <> '';
    `

	var c model.Contact
	err := r.db.Master.QueryRowContext(ctx, query, userID).Scan(&c.UserID, &c.Email, &c.FullName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Contact{}, ErrContactNotFound
		}

		return model.Contact{}, fmt.Errorf("failed to get contact: %w", err)
	}

	return c, nil
}

// ListPushSubscriptions returns every device subscription registered by
// the user.
func (r *Repository) ListPushSubscriptions(ctx context.Context, userID uuid.UUID) ([]model.PushSubscription, error) {
	query := `
		SELECT id, user_id, endpoint, p256dh_key, auth_key, user_agent, created_at
		FROM push_subscriptions
		WHERE user_id = $1
		ORDER BY created_at ASC;
    `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list push subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []model.PushSubscription
	for rows.Next() {
		var s model.PushSubscription
		if err := rows.Scan(&s.ID, &s.UserID, &s.Endpoint, &s.P256dhKey, &s.AuthKey, &s.UserAgent, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan push subscription: %w", err)
		}

		subs = append(subs, s)
	}

	return subs, rows.Err()
}

// SavePushSubscription registers a device subscription, replacing the
// keys of an already known endpoint.
func (r *Repository) SavePushSubscription(ctx context.Context, s model.PushSubscription) (uuid.UUID, error) {
	query := `
		INSERT INTO push_subscriptions (user_id, endpoint, p256dh_key, auth_key, user_agent)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (endpoint) DO UPDATE SET
		    p256dh_key = EXCLUDED.p256dh_key,
		    auth_key = EXCLUDED.auth_key,
		    user_agent = EXCLUDED.user_agent
		RETURNING id;
    `

	var id uuid.UUID
	err := r.db.Master.QueryRowContext(ctx, query, s.UserID, s.Endpoint, s.P256dhKey, s.AuthKey, s.UserAgent).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save push subscription: %w", err)
	}

	return id, nil
}

// DeletePushSubscription removes a device subscription by ID.
func (r *Repository) DeletePushSubscription(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM push_subscriptions
		WHERE id = $1;
    `

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete push subscription: %w", err)
	}

	rows, _ := res.RowsAffected()
	if rows == 0 {
		return ErrSubscriptionNotFound
	}

	return nil
}

// DeletePushSubscriptionByEndpoint removes a subscription whose
// endpoint the push provider reported as gone.
func (r *Repository) DeletePushSubscriptionByEndpoint(ctx context.Context, endpoint string) error {
	query := `
		DELETE FROM push_subscriptions
		WHERE endpoint = $1;
    `

	_, err := r.db.ExecContext(ctx, query, endpoint)
	if err != nil {
		return fmt.Errorf("failed to delete push subscription by endpoint: %w", err)
	}

	return nil
}
