package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/wb-go/wbf/retry"

	sendermocks "github.com/coachdesk/notifier/internal/mocks/sender"
	mocks "github.com/coachdesk/notifier/internal/mocks/service/notification"
	"github.com/coachdesk/notifier/internal/model"
	"github.com/coachdesk/notifier/internal/sender"
)

var fixedNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func setupDispatch(t *testing.T, senders map[model.Channel]sender.Sender) (*Service, *mocks.MocknotificationRepository, *mocks.MockstatusCache) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repoMock := mocks.NewMocknotificationRepository(ctrl)
	cacheMock := mocks.NewMockstatusCache(ctrl)

	svc := NewService(repoMock, nil, nil, senders, cacheMock, Options{DispatchPause: time.Millisecond})
	svc.now = func() time.Time { return fixedNow }

	return svc, repoMock, cacheMock
}

func claimedNotification(channel model.Channel, retryCount, maxRetries int) model.ScheduledNotification {
	return model.ScheduledNotification{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		Type:         model.TypeSessionReminder,
		Channel:      channel,
		Title:        "Upcoming session",
		Content:      "Starts soon.",
		ScheduledFor: fixedNow.Add(-time.Minute),
		Priority:     model.PriorityNormal,
		Status:       model.StatusProcessing,
		RetryCount:   retryCount,
		MaxRetries:   maxRetries,
	}
}

func TestService_ProcessDue_Sends(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	senderMock := sendermocks.NewMockSender(ctrl)
	svc, repoMock, cacheMock := setupDispatch(t, senderMap(model.ChannelEmail, senderMock))

	n := claimedNotification(model.ChannelEmail, 0, 3)
	strategy := retry.Strategy{}

	repoMock.EXPECT().ClaimDue(gomock.Any(), fixedNow.Add(5*time.Second), 100).
		Return([]model.ScheduledNotification{n}, nil)
	senderMock.EXPECT().Send(gomock.Any(), n).Return(sender.Result{Recipients: 1}, nil)
	repoMock.EXPECT().MarkSent(gomock.Any(), n.ID, fixedNow).Return(nil)
	repoMock.EXPECT().CreateDeliveryLog(gomock.Any(), model.DeliveryLog{
		NotificationID: n.ID,
		Channel:        n.Channel,
		Status:         model.DeliverySent,
	}).Return(nil)
	cacheMock.EXPECT().SetWithRetry(gomock.Any(), strategy, n.ID.String(), "sent").Return(nil)

	processed, err := svc.ProcessDue(context.Background(), strategy)
	assert.NoError(t, err)
	assert.Equal(t, 1, processed)
}

func TestService_ProcessDue_RetryBackoff(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	senderMock := sendermocks.NewMockSender(ctrl)
	svc, repoMock, cacheMock := setupDispatch(t, senderMap(model.ChannelEmail, senderMock))

	tests := []struct {
		name       string
		retryCount int
		backoff    time.Duration
	}{
		{"first failure waits two minutes", 0, 2 * time.Minute},
		{"second failure waits four minutes", 1, 4 * time.Minute},
		{"third failure waits eight minutes", 2, 8 * time.Minute},
	}

	strategy := retry.Strategy{}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := claimedNotification(model.ChannelEmail, tt.retryCount, 3)

			repoMock.EXPECT().ClaimDue(gomock.Any(), gomock.Any(), 100).
				Return([]model.ScheduledNotification{n}, nil)
			senderMock.EXPECT().Send(gomock.Any(), n).
				Return(sender.Result{}, errors.New("smtp down"))
			repoMock.EXPECT().CreateDeliveryLog(gomock.Any(), model.DeliveryLog{
				NotificationID: n.ID,
				Channel:        n.Channel,
				Status:         model.DeliveryFailed,
				Error:          "smtp down",
			}).Return(nil)
			repoMock.EXPECT().ScheduleRetry(gomock.Any(), n.ID, fixedNow.Add(tt.backoff), "smtp down").Return(nil)
			cacheMock.EXPECT().SetWithRetry(gomock.Any(), strategy, n.ID.String(), "pending").Return(nil)

			processed, err := svc.ProcessDue(context.Background(), strategy)
			assert.NoError(t, err)
			assert.Equal(t, 1, processed)
		})
	}
}

func TestService_ProcessDue_RetriesExhausted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	senderMock := sendermocks.NewMockSender(ctrl)
	svc, repoMock, cacheMock := setupDispatch(t, senderMap(model.ChannelEmail, senderMock))

	n := claimedNotification(model.ChannelEmail, 3, 3)
	strategy := retry.Strategy{}

	repoMock.EXPECT().ClaimDue(gomock.Any(), gomock.Any(), 100).
		Return([]model.ScheduledNotification{n}, nil)
	senderMock.EXPECT().Send(gomock.Any(), n).
		Return(sender.Result{}, errors.New("smtp down"))
	repoMock.EXPECT().CreateDeliveryLog(gomock.Any(), gomock.Any()).Return(nil)
	repoMock.EXPECT().MarkFailed(gomock.Any(), n.ID, "smtp down").Return(nil)
	cacheMock.EXPECT().SetWithRetry(gomock.Any(), strategy, n.ID.String(), "failed").Return(nil)

	_, err := svc.ProcessDue(context.Background(), strategy)
	assert.NoError(t, err)
}

func TestService_ProcessDue_MaxRetriesZero(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	senderMock := sendermocks.NewMockSender(ctrl)
	svc, repoMock, cacheMock := setupDispatch(t, senderMap(model.ChannelEmail, senderMock))

	// A zero retry budget means exactly one attempt.
	n := claimedNotification(model.ChannelEmail, 0, 0)
	strategy := retry.Strategy{}

	repoMock.EXPECT().ClaimDue(gomock.Any(), gomock.Any(), 100).
		Return([]model.ScheduledNotification{n}, nil)
	senderMock.EXPECT().Send(gomock.Any(), n).
		Return(sender.Result{}, errors.New("smtp down"))
	repoMock.EXPECT().CreateDeliveryLog(gomock.Any(), gomock.Any()).Return(nil)
	repoMock.EXPECT().MarkFailed(gomock.Any(), n.ID, "smtp down").Return(nil)
	cacheMock.EXPECT().SetWithRetry(gomock.Any(), strategy, n.ID.String(), "failed").Return(nil)

	_, err := svc.ProcessDue(context.Background(), strategy)
	assert.NoError(t, err)
}

func TestService_ProcessDue_UnknownChannelNotRetried(t *testing.T) {
	svc, repoMock, cacheMock := setupDispatch(t, nil)

	n := claimedNotification(model.ChannelEmail, 0, 3)
	strategy := retry.Strategy{}

	repoMock.EXPECT().ClaimDue(gomock.Any(), gomock.Any(), 100).
		Return([]model.ScheduledNotification{n}, nil)
	repoMock.EXPECT().CreateDeliveryLog(gomock.Any(), gomock.Any()).Return(nil)
	repoMock.EXPECT().MarkFailed(gomock.Any(), n.ID, gomock.Any()).Return(nil)
	cacheMock.EXPECT().SetWithRetry(gomock.Any(), strategy, n.ID.String(), "failed").Return(nil)

	_, err := svc.ProcessDue(context.Background(), strategy)
	assert.NoError(t, err)
}

func TestService_ProcessDue_PanicDoesNotAbortBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	senderMock := sendermocks.NewMockSender(ctrl)
	svc, repoMock, cacheMock := setupDispatch(t, senderMap(model.ChannelEmail, senderMock))

	panicking := claimedNotification(model.ChannelEmail, 0, 3)
	healthy := claimedNotification(model.ChannelEmail, 0, 3)
	strategy := retry.Strategy{}

	repoMock.EXPECT().ClaimDue(gomock.Any(), gomock.Any(), 100).
		Return([]model.ScheduledNotification{panicking, healthy}, nil)

	senderMock.EXPECT().Send(gomock.Any(), panicking).
		DoAndReturn(func(context.Context, model.ScheduledNotification) (sender.Result, error) {
			panic("sender blew up")
		})
	repoMock.EXPECT().CreateDeliveryLog(gomock.Any(), gomock.Any()).Return(nil)
	repoMock.EXPECT().MarkFailed(gomock.Any(), panicking.ID, "panic: sender blew up").Return(nil)
	cacheMock.EXPECT().SetWithRetry(gomock.Any(), strategy, panicking.ID.String(), "failed").Return(nil)

	senderMock.EXPECT().Send(gomock.Any(), healthy).Return(sender.Result{Recipients: 1}, nil)
	repoMock.EXPECT().MarkSent(gomock.Any(), healthy.ID, fixedNow).Return(nil)
	repoMock.EXPECT().CreateDeliveryLog(gomock.Any(), gomock.Any()).Return(nil)
	cacheMock.EXPECT().SetWithRetry(gomock.Any(), strategy, healthy.ID.String(), "sent").Return(nil)

	processed, err := svc.ProcessDue(context.Background(), strategy)
	assert.NoError(t, err)
	assert.Equal(t, 2, processed)
}

func TestService_ProcessDue_ClaimError(t *testing.T) {
	svc, repoMock, _ := setupDispatch(t, nil)

	repoMock.EXPECT().ClaimDue(gomock.Any(), gomock.Any(), 100).
		Return(nil, errors.New("db down"))

	_, err := svc.ProcessDue(context.Background(), retry.Strategy{})
	assert.Error(t, err)
}

func TestService_CleanupExpired(t *testing.T) {
	svc, repoMock, _ := setupDispatch(t, nil)

	repoMock.EXPECT().ReclaimStale(gomock.Any(), fixedNow.Add(-10*time.Minute)).Return(int64(0), nil)
	repoMock.EXPECT().DeleteExpired(gomock.Any(), fixedNow.Add(-30*24*time.Hour)).Return(int64(2), nil)
	repoMock.EXPECT().DeleteExpiredDeliveryLogs(gomock.Any(), fixedNow.Add(-90*24*time.Hour)).Return(int64(5), nil)

	err := svc.CleanupExpired(context.Background())
	assert.NoError(t, err)
}

func TestService_CleanupExpired_ReclaimsStaleProcessing(t *testing.T) {
	svc, repoMock, _ := setupDispatch(t, nil)

	// Rows stuck in processing for over ten minutes go back to pending
	// before the retention deletes run.
	repoMock.EXPECT().ReclaimStale(gomock.Any(), fixedNow.Add(-10*time.Minute)).Return(int64(3), nil)
	repoMock.EXPECT().DeleteExpired(gomock.Any(), gomock.Any()).Return(int64(0), nil)
	repoMock.EXPECT().DeleteExpiredDeliveryLogs(gomock.Any(), gomock.Any()).Return(int64(0), nil)

	err := svc.CleanupExpired(context.Background())
	assert.NoError(t, err)
}
