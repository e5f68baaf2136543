package inapp

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/dbpg"

	"github.com/coachdesk/notifier/internal/model"
)

var ErrNotificationNotFound = errors.New("in-app notification not found")

// Repository provides access to the user-visible in-app notification
// store.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new in-app notification repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a visible notification and returns its ID.
func (r *Repository) Create(ctx context.Context, n model.InAppNotification) (uuid.UUID, error) {
	query := `
		INSERT INTO inapp_notifications (user_id, type, title, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id;
    `

	err := r.db.Master.QueryRowContext(ctx, query, n.UserID, n.Type, n.Title, n.Content).Scan(&n.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create in-app notification: %w", err)
	}

	return n.ID, nil
}

// ListByUser returns the user's inbox, newest first, capped at limit.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]model.InAppNotification, error) {
	query := `
		SELECT id, user_id, type, title, content, read, created_at
		FROM inapp_notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2;
    `

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list in-app notifications: %w", err)
	}
	defer rows.Close()

	var notifications []model.InAppNotification
	for rows.Next() {
		var n model.InAppNotification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Content, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan in-app notification: %w", err)
		}

		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

// MarkRead flags a visible notification as read.
func (r *Repository) MarkRead(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE inapp_notifications
		SET read = TRUE
		WHERE id = $1;
    `

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark in-app notification read: %w", err)
	}

	rows, _ := res.RowsAffected()
	if rows == 0 {
		return ErrNotificationNotFound
	}

	return nil
}
