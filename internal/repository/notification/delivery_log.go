package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/coachdesk/notifier/internal/model"
)

// CreateDeliveryLog appends one audit row for a dispatch attempt.
func (r *Repository) CreateDeliveryLog(ctx context.Context, log model.DeliveryLog) error {
	query := `
		INSERT INTO delivery_logs (notification_id, channel, status, error)
		VALUES ($1, $2, $3, $4);
    `

	_, err := r.db.ExecContext(ctx, query, log.NotificationID, log.Channel, log.Status, log.Error)
	if err != nil {
		return fmt.Errorf("failed to create delivery log: %w", err)
	}

	return nil
}

// ListDeliveryLogs returns all attempts recorded for one notification,
// oldest first.
func (r *Repository) ListDeliveryLogs(ctx context.Context, notificationID uuid.UUID) ([]model.DeliveryLog, error) {
	query := `
		SELECT id, notification_id, channel, status, error, attempted_at
		FROM delivery_logs
		WHERE notification_id = $1
		ORDER BY attempted_at ASC;
    `

	rows, err := r.db.QueryContext(ctx, query, notificationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list delivery logs: %w", err)
	}
	defer rows.Close()

	var logs []model.DeliveryLog
	for rows.Next() {
		var l model.DeliveryLog
		if err := rows.Scan(&l.ID, &l.NotificationID, &l.Channel, &l.Status, &l.Error, &l.AttemptedAt); err != nil {
			return nil, fmt.Errorf("failed to scan delivery log: %w", err)
		}

		logs = append(logs, l)
	}

	return logs, rows.Err()
}

// DeleteExpiredDeliveryLogs removes audit rows older than the cutoff.
func (r *Repository) DeleteExpiredDeliveryLogs(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		DELETE FROM delivery_logs
		WHERE attempted_at < $1;
    `

	res, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired delivery logs: %w", err)
	}

	rows, _ := res.RowsAffected()

	return rows, nil
}
