package sender_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	mocks "github.com/coachdesk/notifier/internal/mocks/sender"
	"github.com/coachdesk/notifier/internal/model"
	"github.com/coachdesk/notifier/internal/sender"
)

func TestInAppSender_Send(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockinappStore(ctrl)
	s := sender.NewInAppSender(store)

	n := testNotification(model.ChannelInApp)

	store.EXPECT().Create(gomock.Any(), model.InAppNotification{
		UserID:  n.UserID,
		Type:    n.Type,
		Title:   n.Title,
		Content: n.Content,
	}).Return(uuid.New(), nil)

	res, err := s.Send(context.Background(), n)
	assert.NoError(t, err)
	assert.Equal(t, 1, res.Recipients)
}

func TestInAppSender_Send_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockinappStore(ctrl)
	s := sender.NewInAppSender(store)

	n := testNotification(model.ChannelInApp)

	store.EXPECT().Create(gomock.Any(), gomock.Any()).
		Return(uuid.Nil, errors.New("insert failed"))

	_, err := s.Send(context.Background(), n)
	assert.Error(t, err)
}
