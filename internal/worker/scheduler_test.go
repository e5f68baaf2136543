package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/wb-go/wbf/retry"

	mocks "github.com/coachdesk/notifier/internal/mocks/worker"
)

func TestScheduler_RunOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	serviceMock := mocks.NewMockdueProcessor(ctrl)
	strategy := retry.Strategy{Attempts: 1, Delay: time.Millisecond}
	s := New(serviceMock, time.Minute, time.Hour, strategy)

	serviceMock.EXPECT().ProcessDue(gomock.Any(), strategy).Return(3, nil)

	processed, err := s.RunOnce(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 3, processed)
}

func TestScheduler_RunOnce_AlreadyInFlight(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	serviceMock := mocks.NewMockdueProcessor(ctrl)
	strategy := retry.Strategy{}
	s := New(serviceMock, time.Minute, time.Hour, strategy)

	started := make(chan struct{})
	release := make(chan struct{})

	serviceMock.EXPECT().ProcessDue(gomock.Any(), strategy).DoAndReturn(
		func(context.Context, retry.Strategy) (int, error) {
			close(started)
			<-release
			return 0, nil
		},
	)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = s.RunOnce(context.Background())
	}()

	<-started
	_, err := s.RunOnce(context.Background())
	assert.ErrorIs(t, err, ErrPassInProgress)

	close(release)
	wg.Wait()
}

func TestScheduler_Run_FirstPassImmediate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	serviceMock := mocks.NewMockdueProcessor(ctrl)
	strategy := retry.Strategy{}
	// Long intervals: only the startup pass should fire.
	s := New(serviceMock, time.Hour, time.Hour, strategy)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	serviceMock.EXPECT().ProcessDue(gomock.Any(), strategy).DoAndReturn(
		func(context.Context, retry.Strategy) (int, error) {
			close(done)
			return 1, nil
		},
	)

	go s.Run(ctx)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("startup pass did not fire")
	}

	cancel()
	time.Sleep(20 * time.Millisecond)
}

func TestScheduler_Run_TicksAndStops(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	serviceMock := mocks.NewMockdueProcessor(ctrl)
	strategy := retry.Strategy{}
	s := New(serviceMock, 10*time.Millisecond, time.Hour, strategy)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serviceMock.EXPECT().ProcessDue(gomock.Any(), strategy).Return(0, nil).MinTimes(2)

	go s.Run(ctx)

	time.Sleep(50 * time.Millisecond)
	cancel()
	time.Sleep(20 * time.Millisecond)
}

func TestScheduler_Run_CleanupTick(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	serviceMock := mocks.NewMockdueProcessor(ctrl)
	strategy := retry.Strategy{}
	s := New(serviceMock, time.Hour, 10*time.Millisecond, strategy)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serviceMock.EXPECT().ProcessDue(gomock.Any(), strategy).Return(0, nil)
	serviceMock.EXPECT().CleanupExpired(gomock.Any()).Return(nil).MinTimes(1)

	go s.Run(ctx)

	time.Sleep(50 * time.Millisecond)
	cancel()
	time.Sleep(20 * time.Millisecond)
}

func TestScheduler_Run_PassErrorDoesNotStopLoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	serviceMock := mocks.NewMockdueProcessor(ctrl)
	strategy := retry.Strategy{}
	s := New(serviceMock, 10*time.Millisecond, time.Hour, strategy)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serviceMock.EXPECT().ProcessDue(gomock.Any(), strategy).
		Return(0, errors.New("db down")).MinTimes(2)

	go s.Run(ctx)

	time.Sleep(50 * time.Millisecond)
	cancel()
	time.Sleep(20 * time.Millisecond)
}
