package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/coachdesk/notifier/internal/model"
	"github.com/coachdesk/notifier/internal/sender"
)

const (
	notificationRetention = 30 * 24 * time.Hour
	deliveryLogRetention  = 90 * 24 * time.Hour

	// A row still in processing this long after its last update belongs
	// to a pass that died before finalizing it.
	staleProcessingAfter = 10 * time.Minute
)

// ProcessDue runs one scheduler pass: claim due pending notifications
// and dispatch them sequentially in priority-then-time order. A failing
// or panicking row never aborts the batch. It returns how many rows
// were claimed.
func (s *Service) ProcessDue(ctx context.Context, strategy retry.Strategy) (int, error) {
	due := s.now().Add(s.opts.DueBuffer)

	claimed, err := s.repo.ClaimDue(ctx, due, s.opts.BatchSize)
	if err != nil {
		return 0, fmt.Errorf("claim due notifications: %w", err)
	}

	for i, n := range claimed {
		s.processOne(ctx, strategy, n)

		// Fixed pause between dispatches keeps downstream providers
		// from being hammered by a large batch.
		if i < len(claimed)-1 {
			select {
			case <-ctx.Done():
				return i + 1, ctx.Err()
			case <-time.After(s.opts.DispatchPause):
			}
		}
	}

	return len(claimed), nil
}

// processOne dispatches a single claimed notification and records the
// outcome. A panic inside a sender is recovered and lands the row in
// "failed" rather than crashing the loop.
func (s *Service) processOne(ctx context.Context, strategy retry.Strategy, n model.ScheduledNotification) {
	defer func() {
		if r := recover(); r != nil {
			zlog.Logger.Error().
				Str("id", n.ID.String()).
				Interface("panic", r).
				Msg("panic while dispatching notification")
			s.finalizeFailure(ctx, strategy, n, fmt.Sprintf("panic: %v", r), false)
		}
	}()

	res, err := s.dispatch(ctx, n)
	if err != nil {
		zlog.Logger.Warn().
			Err(err).
			Str("id", n.ID.String()).
			Str("channel", string(n.Channel)).
			Int("retry_count", n.RetryCount).
			Msg("dispatch failed")
		// A channel no sender covers can never succeed; skip retries.
		s.finalizeFailure(ctx, strategy, n, err.Error(), !errors.Is(err, ErrUnknownChannel))
		return
	}

	if err := s.repo.MarkSent(ctx, n.ID, s.now()); err != nil {
		zlog.Logger.Error().Err(err).Str("id", n.ID.String()).Msg("failed to mark notification sent")
		return
	}

	s.appendDeliveryLog(ctx, n, model.DeliverySent, res.Detail)
	s.cacheStatus(ctx, strategy, n.ID, model.StatusSent)

	zlog.Logger.Info().
		Str("id", n.ID.String()).
		Str("channel", string(n.Channel)).
		Bool("skipped", res.Skipped).
		Int("recipients", res.Recipients).
		Msg("notification sent")
}

func (s *Service) dispatch(ctx context.Context, n model.ScheduledNotification) (sender.Result, error) {
	snd, ok := s.senders[n.Channel]
	if !ok {
		return sender.Result{}, fmt.Errorf("%w: %q", ErrUnknownChannel, n.Channel)
	}

	return snd.Send(ctx, n)
}

// finalizeFailure either reschedules the notification with exponential
// backoff or, when retries are exhausted (or the failure is not
// retryable), marks it permanently failed.
func (s *Service) finalizeFailure(ctx context.Context, strategy retry.Strategy, n model.ScheduledNotification, sendErr string, retryable bool) {
	s.appendDeliveryLog(ctx, n, model.DeliveryFailed, sendErr)

	if retryable && n.RetryCount < n.MaxRetries {
		attempt := n.RetryCount + 1
		backoff := time.Duration(1<<uint(attempt)) * time.Minute
		nextAttempt := s.now().Add(backoff)

		if err := s.repo.ScheduleRetry(ctx, n.ID, nextAttempt, sendErr); err != nil {
			zlog.Logger.Error().Err(err).Str("id", n.ID.String()).Msg("failed to schedule retry")
			return
		}

		s.cacheStatus(ctx, strategy, n.ID, model.StatusPending)

		zlog.Logger.Info().
			Str("id", n.ID.String()).
			Int("attempt", attempt).
			Dur("backoff", backoff).
			Time("next_attempt", nextAttempt).
			Msg("notification rescheduled")
		return
	}

	if err := s.repo.MarkFailed(ctx, n.ID, sendErr); err != nil {
		zlog.Logger.Error().Err(err).Str("id", n.ID.String()).Msg("failed to mark notification failed")
		return
	}

	s.cacheStatus(ctx, strategy, n.ID, model.StatusFailed)

	zlog.Logger.Warn().
		Str("id", n.ID.String()).
		Int("retry_count", n.RetryCount).
		Msg("notification permanently failed")
}

func (s *Service) appendDeliveryLog(ctx context.Context, n model.ScheduledNotification, status model.DeliveryStatus, detail string) {
	log := model.DeliveryLog{
		NotificationID: n.ID,
		Channel:        n.Channel,
		Status:         status,
	}
	if status == model.DeliveryFailed {
		log.Error = detail
	}

	if err := s.repo.CreateDeliveryLog(ctx, log); err != nil {
		zlog.Logger.Error().Err(err).Str("id", n.ID.String()).Msg("failed to append delivery log")
	}
}

// CleanupExpired removes terminal notifications past the 30-day
// retention and delivery logs past the 90-day retention. It also
// returns notifications stranded in processing by a crashed pass back
// to pending so the scheduler retries them.
func (s *Service) CleanupExpired(ctx context.Context) error {
	now := s.now()

	reclaimed, err := s.repo.ReclaimStale(ctx, now.Add(-staleProcessingAfter))
	if err != nil {
		return fmt.Errorf("reclaim stale notifications: %w", err)
	}

	if reclaimed > 0 {
		zlog.Logger.Warn().
			Int64("notifications", reclaimed).
			Msg("reclaimed notifications stranded in processing")
	}

	removed, err := s.repo.DeleteExpired(ctx, now.Add(-notificationRetention))
	if err != nil {
		return fmt.Errorf("cleanup notifications: %w", err)
	}

	logs, err := s.repo.DeleteExpiredDeliveryLogs(ctx, now.Add(-deliveryLogRetention))
	if err != nil {
		return fmt.Errorf("cleanup delivery logs: %w", err)
	}

	if removed > 0 || logs > 0 {
		zlog.Logger.Info().
			Int64("notifications", removed).
			Int64("delivery_logs", logs).
			Msg("retention cleanup complete")
	}

	return nil
}
