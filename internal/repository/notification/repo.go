package notification

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/dbpg"

	"github.com/coachdesk/notifier/internal/model"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNoNotificationsFound = errors.New("no notifications found")
)

// Repository provides access to the scheduled_notifications and
// delivery_logs tables.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new notification repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

const notificationColumns = `
	id, user_id, type, channel, title, content, template_data,
	scheduled_for, priority, status, retry_count, max_retries,
	last_error, created_at, updated_at, sent_at
`

// CreateNotification inserts a new pending notification and returns its ID.
func (r *Repository) CreateNotification(ctx context.Context, n model.ScheduledNotification) (uuid.UUID, error) {
	query := `
		INSERT INTO scheduled_notifications (
		    user_id, type, channel, title, content, template_data,
		    scheduled_for, priority, max_retries
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id;
    `

	err := r.db.Master.QueryRowContext(
		ctx, query,
		n.UserID, n.Type, n.Channel, n.Title, n.Content, n.TemplateData,
		n.ScheduledFor, n.Priority, n.MaxRetries,
	).Scan(&n.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create notification: %w", err)
	}

	return n.ID, nil
}

// CreateNotifications inserts a batch of notifications in one
// transaction. Either all rows are created or none.
func (r *Repository) CreateNotifications(ctx context.Context, ns []model.ScheduledNotification) ([]uuid.UUID, error) {
	if len(ns) == 0 {
		return nil, nil
	}

	tx, err := r.db.Master.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO scheduled_notifications (
		    user_id, type, channel, title, content, template_data,
		    scheduled_for, priority, max_retries
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id;
    `

	ids := make([]uuid.UUID, 0, len(ns))
	for _, n := range ns {
		var id uuid.UUID
		err := tx.QueryRowContext(
			ctx, query,
			n.UserID, n.Type, n.Channel, n.Title, n.Content, n.TemplateData,
			n.ScheduledFor, n.Priority, n.MaxRetries,
		).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("failed to create notification for user %s: %w", n.UserID, err)
		}

		ids = append(ids, id)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit batch: %w", err)
	}

	return ids, nil
}

// GetNotificationByID retrieves a single notification.
func (r *Repository) GetNotificationByID(ctx context.Context, id uuid.UUID) (model.ScheduledNotification, error) {
	query := `
		SELECT ` + notificationColumns + `
		FROM scheduled_notifications
		WHERE id = $1;
    `

	n, err := scanNotification(r.db.Master.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.ScheduledNotification{}, ErrNotificationNotFound
		}

		return model.ScheduledNotification{}, fmt.Errorf("failed to get notification: %w", err)
	}

	return n, nil
}

// GetNotificationStatusByID retrieves only the status of a notification.
func (r *Repository) GetNotificationStatusByID(ctx context.Context, id uuid.UUID) (model.Status, error) {
	query := `
		SELECT status
		FROM scheduled_notifications
		WHERE id = $1;
    `

	var status model.Status
	err := r.db.Master.QueryRowContext(ctx, query, id).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotificationNotFound
		}

		return "", fmt.Errorf("failed to get notification status: %w", err)
	}

	return status, nil
}

// ClaimDue atomically moves due pending notifications to "processing"
// and returns them ordered by priority then scheduled time. SKIP LOCKED
// makes the claim safe against a second scheduler instance polling the
// same table.
func (r *Repository) ClaimDue(ctx context.Context, due time.Time, limit int) ([]model.ScheduledNotification, error) {
	query := `
		UPDATE scheduled_notifications
		SET status = 'processing', updated_at = now()
		WHERE id IN (
		    SELECT id FROM scheduled_notifications
		    WHERE status = 'pending' AND scheduled_for <= $1
		    ORDER BY
		        CASE priority
		            WHEN 'urgent' THEN 4
		            WHEN 'high' THEN 3
		            WHEN 'normal' THEN 2
		            ELSE 1
		        END DESC,
		        scheduled_for ASC
		    LIMIT $2
		    FOR UPDATE SKIP LOCKED
		)
		RETURNING ` + notificationColumns + `;
    `

	rows, err := r.db.QueryContext(ctx, query, due, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to claim due notifications: %w", err)
	}
	defer rows.Close()

	var claimed []model.ScheduledNotification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan claimed notification: %w", err)
		}

		claimed = append(claimed, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate claimed notifications: %w", err)
	}

	// Postgres does not order UPDATE ... RETURNING rows; restore the
	// claim order here.
	sortByPriorityThenTime(claimed)

	return claimed, nil
}

// MarkSent finalizes a processing notification as sent.
func (r *Repository) MarkSent(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `
		UPDATE scheduled_notifications
		SET status = 'sent', sent_at = $1, last_error = '', updated_at = now()
		WHERE id = $2 AND status = 'processing';
    `

	return r.execOnProcessing(ctx, query, at, id)
}

// ScheduleRetry returns a processing notification to pending with its
// retry counter incremented and a new send time. The retry_count guard
// keeps the counter within max_retries even under a racing update.
func (r *Repository) ScheduleRetry(ctx context.Context, id uuid.UUID, nextAttempt time.Time, sendErr string) error {
	query := `
		UPDATE scheduled_notifications
		SET status = 'pending', retry_count = retry_count + 1,
		    scheduled_for = $1, last_error = $2, updated_at = now()
		WHERE id = $3 AND status = 'processing' AND retry_count < max_retries;
    `

	return r.execOnProcessing(ctx, query, nextAttempt, sendErr, id)
}

// MarkFailed finalizes a processing notification as permanently failed.
func (r *Repository) MarkFailed(ctx context.Context, id uuid.UUID, sendErr string) error {
	query := `
		UPDATE scheduled_notifications
		SET status = 'failed', last_error = $1, updated_at = now()
		WHERE id = $2 AND status = 'processing';
    `

	return r.execOnProcessing(ctx, query, sendErr, id)
}

func (r *Repository) execOnProcessing(ctx context.Context, query string, args ...interface{}) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update notification: %w", err)
	}

	rows, _ := res.RowsAffected()
	if rows == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

// CancelPending cancels a notification that is still pending. It
// reports whether a row was actually cancelled; callers decide what a
// zero-row result means by inspecting the current status.
func (r *Repository) CancelPending(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		UPDATE scheduled_notifications
		SET status = 'cancelled', updated_at = now()
		WHERE id = $1 AND status = 'pending';
    `

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to cancel notification: %w", err)
	}

	rows, _ := res.RowsAffected()

	return rows > 0, nil
}

// ListNotifications retrieves notifications matching the filter, newest
// scheduled first, with the total match count for pagination.
func (r *Repository) ListNotifications(ctx context.Context, filter model.NotificationFilter) ([]model.ScheduledNotification, int64, error) {
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	if filter.PageSize > 100 {
		filter.PageSize = 100
	}
	if filter.Page < 1 {
		filter.Page = 1
	}

	where := " WHERE 1=1"
	args := []interface{}{}

	if filter.UserID != uuid.Nil {
		args = append(args, filter.UserID)
		where += fmt.Sprintf(" AND user_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Channel != "" {
		args = append(args, filter.Channel)
		where += fmt.Sprintf(" AND channel = $%d", len(args))
	}

	var total int64
	countQuery := `SELECT count(*) FROM scheduled_notifications` + where + `;`
	if err := r.db.Master.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)
	query := `
		SELECT ` + notificationColumns + `
		FROM scheduled_notifications` + where + fmt.Sprintf(`
		ORDER BY scheduled_for DESC
		LIMIT $%d OFFSET $%d;`, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []model.ScheduledNotification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan notification: %w", err)
		}

		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate notifications: %w", err)
	}

	if len(notifications) == 0 {
		return nil, 0, ErrNoNotificationsFound
	}

	return notifications, total, nil
}

// Stats aggregates notification counts by status.
func (r *Repository) Stats(ctx context.Context) (model.DeliveryStats, error) {
	query := `
		SELECT
		    count(*),
		    count(*) FILTER (WHERE status = 'pending'),
		    count(*) FILTER (WHERE status = 'processing'),
		    count(*) FILTER (WHERE status = 'sent'),
		    count(*) FILTER (WHERE status = 'failed'),
		    count(*) FILTER (WHERE status = 'cancelled')
		FROM scheduled_notifications;
    `

	var s model.DeliveryStats
	err := r.db.Master.QueryRowContext(ctx, query).Scan(
		&s.Total, &s.Pending, &s.Processing, &s.Sent, &s.Failed, &s.Cancelled,
	)
	if err != nil {
		return model.DeliveryStats{}, fmt.Errorf("failed to aggregate stats: %w", err)
	}

	return s, nil
}

// RecentFailures returns the latest permanently failed notifications so
// operators can inspect failure reasons.
func (r *Repository) RecentFailures(ctx context.Context, limit int) ([]model.ScheduledNotification, error) {
	query := `
		SELECT ` + notificationColumns + `
		FROM scheduled_notifications
		WHERE status = 'failed'
		ORDER BY updated_at DESC
		LIMIT $1;
    `

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent failures: %w", err)
	}
	defer rows.Close()

	var failures []model.ScheduledNotification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan failure: %w", err)
		}

		failures = append(failures, n)
	}

	return failures, rows.Err()
}

// DeleteExpired removes terminal notifications older than the cutoff.
func (r *Repository) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		DELETE FROM scheduled_notifications
		WHERE status IN ('sent', 'failed', 'cancelled') AND updated_at < $1;
    `

	res, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired notifications: %w", err)
	}

	rows, _ := res.RowsAffected()

	return rows, nil
}

// ReclaimStale returns processing notifications whose last update is
// older than the cutoff back to pending. A row only stays in
// processing that long when the process died mid-pass, so the next
// scheduler pass picks it up again.
func (r *Repository) ReclaimStale(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		UPDATE scheduled_notifications
		SET status = 'pending', updated_at = now()
		WHERE status = 'processing' AND updated_at < $1;
    `

	res, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to reclaim stale notifications: %w", err)
	}

	rows, _ := res.RowsAffected()

	return rows, nil
}

type scannable interface {
	Scan(dest ...interface{}) error
}

func scanNotification(row scannable) (model.ScheduledNotification, error) {
	var (
		n         model.ScheduledNotification
		lastError sql.NullString
		sentAt    sql.NullTime
	)

	err := row.Scan(
		&n.ID, &n.UserID, &n.Type, &n.Channel, &n.Title, &n.Content, &n.TemplateData,
		&n.ScheduledFor, &n.Priority, &n.Status, &n.RetryCount, &n.MaxRetries,
		&lastError, &n.CreatedAt, &n.UpdatedAt, &sentAt,
	)
	if err != nil {
		return model.ScheduledNotification{}, err
	}

	n.LastError = lastError.String
	if sentAt.Valid {
		t := sentAt.Time
		n.SentAt = &t
	}

	return n, nil
}

var priorityRank = map[model.Priority]int{
	model.PriorityUrgent: 4,
	model.PriorityHigh:   3,
	model.PriorityNormal: 2,
	model.PriorityLow:    1,
}

func sortByPriorityThenTime(ns []model.ScheduledNotification) {
	sort.SliceStable(ns, func(i, j int) bool {
		if priorityRank[ns[i].Priority] != priorityRank[ns[j].Priority] {
			return priorityRank[ns[i].Priority] > priorityRank[ns[j].Priority]
		}
		return ns[i].ScheduledFor.Before(ns[j].ScheduledFor)
	})
}
