package preference

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/dbpg"

	"github.com/coachdesk/notifier/internal/model"
)

func setupMockDB(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open mock db: %v", err)
	}

	wrappedDB := &dbpg.DB{Master: db}
	repo := NewRepository(wrappedDB)

	return repo, mock
}

func TestGetPreferences(t *testing.T) {
	repo, mock := setupMockDB(t)

	userID := uuid.New()
	updatedAt := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM user_notification_preferences`)).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{
			"user_id", "email_enabled", "push_enabled", "inapp_enabled",
			"reminder_lead_minutes", "quiet_hours_enabled",
			"quiet_hours_start", "quiet_hours_end", "timezone", "updated_at",
		}).AddRow(userID, true, false, true, 30, true, "23:00", "07:00", "Europe/Berlin", updatedAt))

	prefs, err := repo.GetPreferences(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, userID, prefs.UserID)
	assert.False(t, prefs.PushEnabled)
	assert.Equal(t, 30, prefs.ReminderLeadMins)
	assert.Equal(t, "23:00", prefs.QuietHoursStart)
}

func TestGetPreferences_DefaultsWhenMissing(t *testing.T) {
	repo, mock := setupMockDB(t)

	userID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM user_notification_preferences`)).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

	prefs, err := repo.GetPreferences(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultPreferences(userID), prefs)
}

func TestUpsertPreferences(t *testing.T) {
	repo, mock := setupMockDB(t)

	p := model.DefaultPreferences(uuid.New())
	p.PushEnabled = false

	mock.ExpectExec(regexp.QuoteMeta(`ON CONFLICT (user_id) DO UPDATE SET`)).
		WithArgs(
			p.UserID, p.EmailEnabled, p.PushEnabled, p.InAppEnabled,
			p.ReminderLeadMins, p.QuietHoursEnabled,
			p.QuietHoursStart, p.QuietHoursEnd, p.Timezone,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpsertPreferences(context.Background(), p)
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetContact(t *testing.T) {
	repo, mock := setupMockDB(t)

	userID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE id = $1 AND email <> ''`)).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "full_name"}).
			AddRow(userID, "user@example.com", "Pat Doe"))

	contact, err := repo.GetContact(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", contact.Email)
	assert.Equal(t, "Pat Doe", contact.FullName)
}

func TestGetContact_NotFound(t *testing.T) {
	repo, mock := setupMockDB(t)

	userID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE id = $1 AND email <> ''`)).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "full_name"}))

	_, err := repo.GetContact(context.Background(), userID)
	assert.ErrorIs(t, err, ErrContactNotFound)
}

func TestListPushSubscriptions(t *testing.T) {
	repo, mock := setupMockDB(t)

	userID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM push_subscriptions`)).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "endpoint", "p256dh_key", "auth_key", "user_agent", "created_at",
		}).
			AddRow(uuid.New(), userID, "https://push.example.com/a", "pa", "aa", "", now).
			AddRow(uuid.New(), userID, "https://push.example.com/b", "pb", "ab", "Firefox", now))

	subs, err := repo.ListPushSubscriptions(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, "https://push.example.com/a", subs[0].Endpoint)
}

func TestSavePushSubscription(t *testing.T) {
	repo, mock := setupMockDB(t)

	s := model.PushSubscription{
		UserID:    uuid.New(),
		Endpoint:  "https://push.example.com/a",
		P256dhKey: "pa",
		AuthKey:   "aa",
	}
	subID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`ON CONFLICT (endpoint) DO UPDATE SET`)).
		WithArgs(s.UserID, s.Endpoint, s.P256dhKey, s.AuthKey, s.UserAgent).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(subID))

	id, err := repo.SavePushSubscription(context.Background(), s)
	assert.NoError(t, err)
	assert.Equal(t, subID, id)
}

func TestDeletePushSubscription_NotFound(t *testing.T) {
	repo, mock := setupMockDB(t)

	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM push_subscriptions`)).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeletePushSubscription(context.Background(), id)
	assert.ErrorIs(t, err, ErrSubscriptionNotFound)
}
