package notification

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coachdesk/notifier/internal/model"
)

func TestCreateDeliveryLog(t *testing.T) {
	repo, mock := setupMockDB(t)

	log := model.DeliveryLog{
		NotificationID: uuid.New(),
		Channel:        model.ChannelEmail,
		Status:         model.DeliveryFailed,
		Error:          "smtp timeout",
	}

	mock.ExpectExec(regexp.QuoteMeta(`
		INSERT INTO delivery_logs (notification_id, channel, status, error)
		VALUES ($1, $2, $3, $4);
    `)).
		WithArgs(log.NotificationID, log.Channel, log.Status, log.Error).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.CreateDeliveryLog(context.Background(), log)
	assert.NoError(t, err)
}

func TestListDeliveryLogs(t *testing.T) {
	repo, mock := setupMockDB(t)

	notificationID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM delivery_logs`)).
		WithArgs(notificationID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "notification_id", "channel", "status", "error", "attempted_at",
		}).
			AddRow(uuid.New(), notificationID, "email", "failed", "smtp timeout", now.Add(-time.Minute)).
			AddRow(uuid.New(), notificationID, "email", "sent", "", now))

	logs, err := repo.ListDeliveryLogs(context.Background(), notificationID)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, model.DeliveryFailed, logs[0].Status)
	assert.Equal(t, model.DeliverySent, logs[1].Status)
}

func TestDeleteExpiredDeliveryLogs(t *testing.T) {
	repo, mock := setupMockDB(t)

	cutoff := time.Now().Add(-90 * 24 * time.Hour)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM delivery_logs`)).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 12))

	removed, err := repo.DeleteExpiredDeliveryLogs(context.Background(), cutoff)
	assert.NoError(t, err)
	assert.Equal(t, int64(12), removed)
}
