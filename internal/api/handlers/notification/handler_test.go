package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/wb-go/wbf/retry"

	"github.com/coachdesk/notifier/internal/config"
	mocks "github.com/coachdesk/notifier/internal/mocks/api/handlers/notification"
	"github.com/coachdesk/notifier/internal/model"
	notifrepo "github.com/coachdesk/notifier/internal/repository/notification"
	notifsvc "github.com/coachdesk/notifier/internal/service/notification"
	"github.com/coachdesk/notifier/internal/worker"
)

func setupHandler(t *testing.T) (*Handler, *mocks.MocknotificationService, *mocks.MockschedulerRunner, *config.Config) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockService := mocks.NewMocknotificationService(ctrl)
	mockRunner := mocks.NewMockschedulerRunner(ctrl)
	cfg := &config.Config{Retry: retry.Strategy{}}
	validate := validator.New()
	handler := NewHandler(mockService, mockRunner, validate, cfg)

	return handler, mockService, mockRunner, cfg
}

func testContext(t *testing.T, method, target string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, target, &buf)
	w := httptest.NewRecorder()

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	return c, w
}

func TestHandler_Create_Success(t *testing.T) {
	handler, mockService, _, cfg := setupHandler(t)

	reqBody := CreateRequest{
		UserID:       uuid.New().String(),
		Type:         "session_reminder",
		Channel:      "email",
		Title:        "Upcoming session",
		Content:      "Starts at 10:00.",
		ScheduledFor: time.Now().Add(time.Hour).Format(time.RFC3339),
	}

	c, w := testContext(t, http.MethodPost, "/api/notifications", reqBody)

	mockService.EXPECT().
		Schedule(
			gomock.Any(),
			cfg.Retry,
			gomock.AssignableToTypeOf(notifsvc.ScheduleInput{}),
		).Return(uuid.New(), nil)

	handler.Create(c)

	assert.Equal(t, http.StatusCreated, w.Result().StatusCode)
}

func TestHandler_Create_InvalidBody(t *testing.T) {
	handler, _, _, _ := setupHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/notifications", bytes.NewReader([]byte("not json")))
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestHandler_Create_BadScheduledFor(t *testing.T) {
	handler, _, _, _ := setupHandler(t)

	reqBody := CreateRequest{
		UserID:       uuid.New().String(),
		Type:         "session_reminder",
		Channel:      "email",
		Title:        "t",
		Content:      "c",
		ScheduledFor: "tomorrow at noon",
	}

	c, w := testContext(t, http.MethodPost, "/api/notifications", reqBody)

	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestHandler_Create_UnknownChannel(t *testing.T) {
	handler, mockService, _, cfg := setupHandler(t)

	reqBody := CreateRequest{
		UserID:       uuid.New().String(),
		Type:         "session_reminder",
		Channel:      "sms",
		Title:        "t",
		Content:      "c",
		ScheduledFor: time.Now().Format(time.RFC3339),
	}

	c, w := testContext(t, http.MethodPost, "/api/notifications", reqBody)

	mockService.EXPECT().
		Schedule(gomock.Any(), cfg.Retry, gomock.Any()).
		Return(uuid.Nil, notifsvc.ErrUnknownChannel)

	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestHandler_CreateSessionReminders_Success(t *testing.T) {
	handler, mockService, _, _ := setupHandler(t)

	reqBody := SessionRemindersRequest{
		SessionID:      uuid.New().String(),
		SessionTitle:   "Weekly check-in",
		CoachName:      "Alex",
		StartsAt:       time.Now().Add(2 * time.Hour).Format(time.RFC3339),
		ParticipantIDs: []string{uuid.New().String(), uuid.New().String()},
	}

	c, w := testContext(t, http.MethodPost, "/api/notifications/session-reminders", reqBody)

	mockService.EXPECT().
		ScheduleSessionReminders(gomock.Any(), gomock.AssignableToTypeOf(notifsvc.SessionReminderInput{})).
		Return([]uuid.UUID{uuid.New(), uuid.New(), uuid.New()}, nil)

	handler.CreateSessionReminders(c)

	assert.Equal(t, http.StatusCreated, w.Result().StatusCode)
}

func TestHandler_CreateSessionReminders_UrgentPriority(t *testing.T) {
	handler, mockService, _, _ := setupHandler(t)

	reqBody := SessionRemindersRequest{
		SessionID:      uuid.New().String(),
		SessionTitle:   "Rescheduled session",
		StartsAt:       time.Now().Add(time.Hour).Format(time.RFC3339),
		ParticipantIDs: []string{uuid.New().String()},
		Priority:       "urgent",
	}

	c, w := testContext(t, http.MethodPost, "/api/notifications/session-reminders", reqBody)

	mockService.EXPECT().
		ScheduleSessionReminders(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in notifsvc.SessionReminderInput) ([]uuid.UUID, error) {
			assert.Equal(t, model.PriorityUrgent, in.Priority)
			return []uuid.UUID{uuid.New()}, nil
		})

	handler.CreateSessionReminders(c)

	assert.Equal(t, http.StatusCreated, w.Result().StatusCode)
}

func TestHandler_CreateSessionReminders_NoParticipants(t *testing.T) {
	handler, _, _, _ := setupHandler(t)

	reqBody := SessionRemindersRequest{
		SessionID:    uuid.New().String(),
		SessionTitle: "Weekly check-in",
		StartsAt:     time.Now().Format(time.RFC3339),
	}

	c, w := testContext(t, http.MethodPost, "/api/notifications/session-reminders", reqBody)

	handler.CreateSessionReminders(c)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestHandler_GetStatus_Success(t *testing.T) {
	handler, mockService, _, cfg := setupHandler(t)

	id := uuid.New()
	c, w := testContext(t, http.MethodGet, "/api/notifications/"+id.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	mockService.EXPECT().
		GetNotificationStatusByID(gomock.Any(), cfg.Retry, id).
		Return(model.StatusPending, nil)

	handler.GetStatus(c)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
}

func TestHandler_GetStatus_InvalidID(t *testing.T) {
	handler, _, _, _ := setupHandler(t)

	c, w := testContext(t, http.MethodGet, "/api/notifications/abc", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	handler.GetStatus(c)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestHandler_GetDetail_Success(t *testing.T) {
	handler, mockService, _, _ := setupHandler(t)

	id := uuid.New()
	c, w := testContext(t, http.MethodGet, "/api/notifications/"+id.String()+"/detail", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	mockService.EXPECT().
		GetNotification(gomock.Any(), id).
		Return(model.ScheduledNotification{ID: id, Status: model.StatusSent}, nil)

	handler.GetDetail(c)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
}

func TestHandler_GetDetail_NotFound(t *testing.T) {
	handler, mockService, _, _ := setupHandler(t)

	id := uuid.New()
	c, w := testContext(t, http.MethodGet, "/api/notifications/"+id.String()+"/detail", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	mockService.EXPECT().
		GetNotification(gomock.Any(), id).
		Return(model.ScheduledNotification{}, notifrepo.ErrNotificationNotFound)

	handler.GetDetail(c)

	assert.Equal(t, http.StatusNotFound, w.Result().StatusCode)
}

func TestHandler_GetDeliveryLogs_Success(t *testing.T) {
	handler, mockService, _, _ := setupHandler(t)

	id := uuid.New()
	c, w := testContext(t, http.MethodGet, "/api/notifications/"+id.String()+"/logs", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	mockService.EXPECT().
		DeliveryLogs(gomock.Any(), id).
		Return([]model.DeliveryLog{
			{ID: uuid.New(), NotificationID: id, Channel: model.ChannelEmail, Status: model.DeliveryFailed, Error: "smtp down"},
			{ID: uuid.New(), NotificationID: id, Channel: model.ChannelEmail, Status: model.DeliverySent},
		}, nil)

	handler.GetDeliveryLogs(c)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
}

func TestHandler_GetDeliveryLogs_NotFound(t *testing.T) {
	handler, mockService, _, _ := setupHandler(t)

	id := uuid.New()
	c, w := testContext(t, http.MethodGet, "/api/notifications/"+id.String()+"/logs", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	mockService.EXPECT().
		DeliveryLogs(gomock.Any(), id).
		Return(nil, notifrepo.ErrNotificationNotFound)

	handler.GetDeliveryLogs(c)

	assert.Equal(t, http.StatusNotFound, w.Result().StatusCode)
}

func TestHandler_GetAll_Success(t *testing.T) {
	handler, mockService, _, _ := setupHandler(t)

	userID := uuid.New()
	c, w := testContext(t, http.MethodGet, "/api/notifications?user_id="+userID.String()+"&status=sent&page=2&page_size=10", nil)

	mockService.EXPECT().
		ListNotifications(gomock.Any(), model.NotificationFilter{
			UserID:   userID,
			Status:   model.StatusSent,
			Page:     2,
			PageSize: 10,
		}).
		Return([]model.ScheduledNotification{{ID: uuid.New()}}, int64(15), nil)

	handler.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
}

func TestHandler_Cancel_Success(t *testing.T) {
	handler, mockService, _, cfg := setupHandler(t)

	id := uuid.New()
	c, w := testContext(t, http.MethodDelete, "/api/notifications/"+id.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	mockService.EXPECT().Cancel(gomock.Any(), cfg.Retry, id).Return(nil)

	handler.Cancel(c)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
}

func TestHandler_Cancel_Processing(t *testing.T) {
	handler, mockService, _, cfg := setupHandler(t)

	id := uuid.New()
	c, w := testContext(t, http.MethodDelete, "/api/notifications/"+id.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	mockService.EXPECT().Cancel(gomock.Any(), cfg.Retry, id).Return(notifsvc.ErrCancelProcessing)

	handler.Cancel(c)

	assert.Equal(t, http.StatusConflict, w.Result().StatusCode)
}

func TestHandler_Stats_Success(t *testing.T) {
	handler, mockService, _, _ := setupHandler(t)

	c, w := testContext(t, http.MethodGet, "/api/notifications/stats", nil)

	mockService.EXPECT().Stats(gomock.Any()).Return(notifsvc.StatsReport{}, nil)

	handler.Stats(c)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
}

func TestHandler_TriggerRun_Success(t *testing.T) {
	handler, _, mockRunner, _ := setupHandler(t)

	c, w := testContext(t, http.MethodPost, "/api/scheduler/run", nil)

	mockRunner.EXPECT().RunOnce(gomock.Any()).Return(4, nil)

	handler.TriggerRun(c)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
}

func TestHandler_TriggerRun_PassInProgress(t *testing.T) {
	handler, _, mockRunner, _ := setupHandler(t)

	c, w := testContext(t, http.MethodPost, "/api/scheduler/run", nil)

	mockRunner.EXPECT().RunOnce(gomock.Any()).Return(0, worker.ErrPassInProgress)

	handler.TriggerRun(c)

	assert.Equal(t, http.StatusConflict, w.Result().StatusCode)
}

func TestHandler_UpdatePreferences_Success(t *testing.T) {
	handler, mockService, _, _ := setupHandler(t)

	userID := uuid.New()
	reqBody := PreferencesRequest{
		EmailEnabled:     true,
		InAppEnabled:     true,
		ReminderLeadMins: 30,
		Timezone:         "Europe/Berlin",
	}

	c, w := testContext(t, http.MethodPut, "/api/users/"+userID.String()+"/preferences", reqBody)
	c.Params = gin.Params{{Key: "userID", Value: userID.String()}}

	mockService.EXPECT().
		SavePreferences(gomock.Any(), gomock.AssignableToTypeOf(model.UserNotificationPreferences{})).
		Return(nil)

	handler.UpdatePreferences(c)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
}

func TestHandler_UpdatePreferences_MissingLead(t *testing.T) {
	handler, _, _, _ := setupHandler(t)

	userID := uuid.New()
	reqBody := PreferencesRequest{Timezone: "UTC"}

	c, w := testContext(t, http.MethodPut, "/api/users/"+userID.String()+"/preferences", reqBody)
	c.Params = gin.Params{{Key: "userID", Value: userID.String()}}

	handler.UpdatePreferences(c)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestHandler_CreatePushSubscription_Success(t *testing.T) {
	handler, mockService, _, _ := setupHandler(t)

	reqBody := PushSubscriptionRequest{
		UserID:    uuid.New().String(),
		Endpoint:  "https://push.example.com/sub/abc",
		P256dhKey: "p256dh",
		AuthKey:   "auth",
	}

	c, w := testContext(t, http.MethodPost, "/api/push-subscriptions", reqBody)

	mockService.EXPECT().
		RegisterPushSubscription(gomock.Any(), gomock.AssignableToTypeOf(model.PushSubscription{})).
		Return(uuid.New(), nil)

	handler.CreatePushSubscription(c)

	assert.Equal(t, http.StatusCreated, w.Result().StatusCode)
}

func TestHandler_Inbox_Success(t *testing.T) {
	handler, mockService, _, _ := setupHandler(t)

	userID := uuid.New()
	c, w := testContext(t, http.MethodGet, "/api/users/"+userID.String()+"/inbox?limit=10", nil)
	c.Params = gin.Params{{Key: "userID", Value: userID.String()}}

	mockService.EXPECT().
		Inbox(gomock.Any(), userID, 10).
		Return([]model.InAppNotification{{ID: uuid.New(), UserID: userID}}, nil)

	handler.Inbox(c)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
}

func TestHandler_MarkInboxRead_Success(t *testing.T) {
	handler, mockService, _, _ := setupHandler(t)

	id := uuid.New()
	c, w := testContext(t, http.MethodPut, "/api/inbox/"+id.String()+"/read", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	mockService.EXPECT().MarkInboxRead(gomock.Any(), id).Return(nil)

	handler.MarkInboxRead(c)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
}
