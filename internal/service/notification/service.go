package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/coachdesk/notifier/internal/model"
	"github.com/coachdesk/notifier/internal/quiethours"
	"github.com/coachdesk/notifier/internal/sender"
)

//go:generate mockgen -source=service.go -destination=../../mocks/service/notification/mock.go -package=mocks

type notificationRepository interface {
	CreateNotification(ctx context.Context, n model.ScheduledNotification) (uuid.UUID, error)
	CreateNotifications(ctx context.Context, ns []model.ScheduledNotification) ([]uuid.UUID, error)
	GetNotificationByID(ctx context.Context, id uuid.UUID) (model.ScheduledNotification, error)
	GetNotificationStatusByID(ctx context.Context, id uuid.UUID) (model.Status, error)
	ClaimDue(ctx context.Context, due time.Time, limit int) ([]model.ScheduledNotification, error)
	MarkSent(ctx context.Context, id uuid.UUID, at time.Time) error
	ScheduleRetry(ctx context.Context, id uuid.UUID, nextAttempt time.Time, sendErr string) error
	MarkFailed(ctx context.Context, id uuid.UUID, sendErr string) error
	CancelPending(ctx context.Context, id uuid.UUID) (bool, error)
	ListNotifications(ctx context.Context, filter model.NotificationFilter) ([]model.ScheduledNotification, int64, error)
	Stats(ctx context.Context) (model.DeliveryStats, error)
	RecentFailures(ctx context.Context, limit int) ([]model.ScheduledNotification, error)
	CreateDeliveryLog(ctx context.Context, log model.DeliveryLog) error
	ListDeliveryLogs(ctx context.Context, notificationID uuid.UUID) ([]model.DeliveryLog, error)
	ReclaimStale(ctx context.Context, cutoff time.Time) (int64, error)
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
	DeleteExpiredDeliveryLogs(ctx context.Context, cutoff time.Time) (int64, error)
}

type preferenceRepository interface {
	GetPreferences(ctx context.Context, userID uuid.UUID) (model.UserNotificationPreferences, error)
	UpsertPreferences(ctx context.Context, p model.UserNotificationPreferences) error
	SavePushSubscription(ctx context.Context, s model.PushSubscription) (uuid.UUID, error)
	DeletePushSubscription(ctx context.Context, id uuid.UUID) error
}

type inAppRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]model.InAppNotification, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
}

type statusCache interface {
	SetWithRetry(ctx context.Context, strategy retry.Strategy, key string, value interface{}) error
	GetWithRetry(ctx context.Context, strategy retry.Strategy, key string) (string, error)
}

var (
	ErrUnknownChannel      = errors.New("unknown channel")
	ErrInvalidNotification = errors.New("invalid notification")
	ErrCancelProcessing    = errors.New("notification is already being processed")
)

// Options tunes the dispatch pipeline.
type Options struct {
	// BatchSize caps how many due notifications one pass claims.
	BatchSize int
	// DueBuffer extends "now" slightly so rows becoming due during the
	// pass are picked up.
	DueBuffer time.Duration
	// DispatchPause is the fixed delay between two dispatches within a
	// pass, bounding provider load.
	DispatchPause time.Duration
	// DefaultMaxRetries applies when a scheduling call does not set its
	// own limit.
	DefaultMaxRetries int
	// FailureLogLimit caps the recent-failures section of the stats
	// report.
	FailureLogLimit int
}

func (o *Options) fillDefaults() {
	if o.BatchSize <= 0 {
		o.BatchSize = 100
	}
	if o.DueBuffer <= 0 {
		o.DueBuffer = 5 * time.Second
	}
	if o.DispatchPause <= 0 {
		o.DispatchPause = 200 * time.Millisecond
	}
	if o.DefaultMaxRetries <= 0 {
		o.DefaultMaxRetries = 3
	}
	if o.FailureLogLimit <= 0 {
		o.FailureLogLimit = 20
	}
}

// Service implements notification scheduling, dispatch, and the
// preference/inbox surfaces around them.
type Service struct {
	repo    notificationRepository
	prefs   preferenceRepository
	inbox   inAppRepository
	senders map[model.Channel]sender.Sender
	cache   statusCache
	opts    Options

	now func() time.Time
}

// NewService creates a new notification service.
func NewService(
	repo notificationRepository,
	prefs preferenceRepository,
	inbox inAppRepository,
	senders map[model.Channel]sender.Sender,
	cache statusCache,
	opts Options,
) *Service {
	opts.fillDefaults()

	return &Service{
		repo:    repo,
		prefs:   prefs,
		inbox:   inbox,
		senders: senders,
		cache:   cache,
		opts:    opts,
		now:     time.Now,
	}
}

// ScheduleInput describes one notification to schedule. Title and
// Content may be left empty when TemplateData is set; they are then
// rendered from the type's default templates.
type ScheduleInput struct {
	UserID       uuid.UUID
	Type         model.Type
	Channel      model.Channel
	Title        string
	Content      string
	TemplateData *model.TemplateData
	ScheduledFor time.Time
	Priority     model.Priority
	MaxRetries   *int
}

// Schedule validates the input and inserts one pending notification. A
// send time in the past is allowed; the row is simply due immediately.
func (s *Service) Schedule(ctx context.Context, strategy retry.Strategy, in ScheduleInput) (uuid.UUID, error) {
	n, err := s.buildNotification(in)
	if err != nil {
		return uuid.Nil, err
	}

	id, err := s.repo.CreateNotification(ctx, n)
	if err != nil {
		return uuid.Nil, fmt.Errorf("create notification: %w", err)
	}

	s.cacheStatus(ctx, strategy, id, model.StatusPending)

	return id, nil
}

func (s *Service) buildNotification(in ScheduleInput) (model.ScheduledNotification, error) {
	if in.UserID == uuid.Nil {
		return model.ScheduledNotification{}, fmt.Errorf("%w: missing user id", ErrInvalidNotification)
	}
	if !in.Type.Valid() {
		return model.ScheduledNotification{}, fmt.Errorf("%w: unknown type %q", ErrInvalidNotification, in.Type)
	}
	if !in.Channel.Valid() {
		return model.ScheduledNotification{}, fmt.Errorf("%w: %q", ErrUnknownChannel, in.Channel)
	}

	if in.Priority == "" {
		in.Priority = model.PriorityNormal
	}
	if !in.Priority.Valid() {
		return model.ScheduledNotification{}, fmt.Errorf("%w: unknown priority %q", ErrInvalidNotification, in.Priority)
	}

	maxRetries := s.opts.DefaultMaxRetries
	if in.MaxRetries != nil {
		if *in.MaxRetries < 0 {
			return model.ScheduledNotification{}, fmt.Errorf("%w: negative max retries", ErrInvalidNotification)
		}
		maxRetries = *in.MaxRetries
	}

	title, content := in.Title, in.Content
	data := model.TemplateData{}

	if in.TemplateData != nil {
		data = *in.TemplateData
		if data.Kind != in.Type {
			return model.ScheduledNotification{}, fmt.Errorf("%w: template data kind %q for type %q", model.ErrTemplateDataMismatch, data.Kind, in.Type)
		}
		if err := data.Validate(); err != nil {
			return model.ScheduledNotification{}, err
		}

		var err error
		if title == "" {
			if title, err = data.RenderTitle(); err != nil {
				return model.ScheduledNotification{}, fmt.Errorf("render title: %w", err)
			}
		}
		if content == "" {
			if content, err = data.RenderBody(); err != nil {
				return model.ScheduledNotification{}, fmt.Errorf("render body: %w", err)
			}
		}
	}

	if title == "" || content == "" {
		return model.ScheduledNotification{}, fmt.Errorf("%w: empty title or content and no template data", ErrInvalidNotification)
	}

	return model.ScheduledNotification{
		UserID:       in.UserID,
		Type:         in.Type,
		Channel:      in.Channel,
		Title:        title,
		Content:      content,
		TemplateData: data,
		ScheduledFor: in.ScheduledFor,
		Priority:     in.Priority,
		Status:       model.StatusPending,
		MaxRetries:   maxRetries,
	}, nil
}

// SessionReminderInput describes a coaching session whose participants
// should be reminded before it starts.
type SessionReminderInput struct {
	SessionID      uuid.UUID
	SessionTitle   string
	CoachName      string
	StartsAt       time.Time
	ParticipantIDs []uuid.UUID
	// Priority defaults to normal. Urgent reminders are delivered even
	// inside a participant's quiet hours.
	Priority model.Priority
}

// ScheduleSessionReminders creates one reminder per (participant,
// enabled channel). The send time is the session start minus the
// participant's lead time. Email and push reminders landing inside the
// participant's quiet hours are dropped unless the reminder is urgent;
// in-app reminders are scheduled regardless of quiet hours.
func (s *Service) ScheduleSessionReminders(ctx context.Context, in SessionReminderInput) ([]uuid.UUID, error) {
	if in.SessionTitle == "" || in.StartsAt.IsZero() || len(in.ParticipantIDs) == 0 {
		return nil, fmt.Errorf("%w: incomplete session reminder input", ErrInvalidNotification)
	}

	if in.Priority == "" {
		in.Priority = model.PriorityNormal
	}
	if !in.Priority.Valid() {
		return nil, fmt.Errorf("%w: unknown priority %q", ErrInvalidNotification, in.Priority)
	}

	data := model.TemplateData{
		Kind: model.TypeSessionReminder,
		SessionReminder: &model.SessionReminderData{
			SessionTitle: in.SessionTitle,
			CoachName:    in.CoachName,
			StartsAt:     in.StartsAt,
		},
	}

	title, err := data.RenderTitle()
	if err != nil {
		return nil, fmt.Errorf("render reminder title: %w", err)
	}

	content, err := data.RenderBody()
	if err != nil {
		return nil, fmt.Errorf("render reminder body: %w", err)
	}

	var batch []model.ScheduledNotification

	for _, userID := range in.ParticipantIDs {
		prefs, err := s.prefs.GetPreferences(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("get preferences for %s: %w", userID, err)
		}

		sendAt := in.StartsAt.Add(-time.Duration(prefs.ReminderLeadMins) * time.Minute)

		for _, channel := range []model.Channel{model.ChannelEmail, model.ChannelPush, model.ChannelInApp} {
			if !prefs.ChannelEnabled(channel) {
				continue
			}

			// Quiet hours apply to the push/email transports only;
			// in-app rows are silent until the user opens the app.
			if channel != model.ChannelInApp && s.insideQuietHours(sendAt, prefs, in.Priority) {
				zlog.Logger.Info().
					Str("user_id", userID.String()).
					Str("channel", string(channel)).
					Msg("reminder falls inside quiet hours, dropping")
				continue
			}

			batch = append(batch, model.ScheduledNotification{
				UserID:       userID,
				Type:         model.TypeSessionReminder,
				Channel:      channel,
				Title:        title,
				Content:      content,
				TemplateData: data,
				ScheduledFor: sendAt,
				Priority:     in.Priority,
				Status:       model.StatusPending,
				MaxRetries:   s.opts.DefaultMaxRetries,
			})
		}
	}

	if len(batch) == 0 {
		return nil, nil
	}

	ids, err := s.repo.CreateNotifications(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("create session reminders: %w", err)
	}

	return ids, nil
}

func (s *Service) insideQuietHours(sendAt time.Time, prefs model.UserNotificationPreferences, priority model.Priority) bool {
	if !prefs.QuietHoursEnabled {
		return false
	}

	// Urgent notifications punch through the do-not-disturb window.
	if priority == model.PriorityUrgent {
		return false
	}

	inside, err := quiethours.InWindow(sendAt, prefs.Timezone, prefs.QuietHoursStart, prefs.QuietHoursEnd)
	if err != nil {
		// Broken window config never blocks a reminder.
		zlog.Logger.Warn().Err(err).Str("user_id", prefs.UserID.String()).Msg("invalid quiet hours, ignoring window")
		return false
	}

	return inside
}

// GetNotificationStatusByID returns the notification's status,
// consulting the cache first.
func (s *Service) GetNotificationStatusByID(ctx context.Context, strategy retry.Strategy, id uuid.UUID) (model.Status, error) {
	cached, err := s.cache.GetWithRetry(ctx, strategy, id.String())
	if err != nil && !errors.Is(err, redis.Nil) {
		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to get notification status from cache")
	}

	if err == nil && cached != "" {
		return model.Status(cached), nil
	}

	status, err := s.repo.GetNotificationStatusByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("get notification status: %w", err)
	}

	s.cacheStatus(ctx, strategy, id, status)

	return status, nil
}

// GetNotification returns a single notification row.
func (s *Service) GetNotification(ctx context.Context, id uuid.UUID) (model.ScheduledNotification, error) {
	n, err := s.repo.GetNotificationByID(ctx, id)
	if err != nil {
		return model.ScheduledNotification{}, fmt.Errorf("get notification: %w", err)
	}

	return n, nil
}

// DeliveryLogs returns the dispatch attempt trail for one
// notification, oldest attempt first.
func (s *Service) DeliveryLogs(ctx context.Context, id uuid.UUID) ([]model.DeliveryLog, error) {
	if _, err := s.repo.GetNotificationStatusByID(ctx, id); err != nil {
		return nil, fmt.Errorf("get notification: %w", err)
	}

	logs, err := s.repo.ListDeliveryLogs(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list delivery logs: %w", err)
	}

	return logs, nil
}

// ListNotifications returns notifications matching the filter plus the
// total match count.
func (s *Service) ListNotifications(ctx context.Context, filter model.NotificationFilter) ([]model.ScheduledNotification, int64, error) {
	notifications, total, err := s.repo.ListNotifications(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}

	return notifications, total, nil
}

// Cancel cancels a pending notification. Cancelling a notification
// already in a terminal state is a no-op; one being processed right now
// cannot be recalled.
func (s *Service) Cancel(ctx context.Context, strategy retry.Strategy, id uuid.UUID) error {
	cancelled, err := s.repo.CancelPending(ctx, id)
	if err != nil {
		return fmt.Errorf("cancel notification: %w", err)
	}

	if cancelled {
		s.cacheStatus(ctx, strategy, id, model.StatusCancelled)
		return nil
	}

	status, err := s.repo.GetNotificationStatusByID(ctx, id)
	if err != nil {
		return fmt.Errorf("check notification status: %w", err)
	}

	if status == model.StatusProcessing {
		return ErrCancelProcessing
	}

	// Already sent, failed, or cancelled: nothing to do.
	return nil
}

// StatsReport is the operator-facing view over the pipeline: counts by
// status plus the most recent permanent failures with their error text.
type StatsReport struct {
	model.DeliveryStats
	RecentFailures []FailureSummary `json:"recent_failures"`
}

// FailureSummary is one permanently failed notification in the stats
// report.
type FailureSummary struct {
	ID         uuid.UUID     `json:"id"`
	UserID     uuid.UUID     `json:"user_id"`
	Type       model.Type    `json:"type"`
	Channel    model.Channel `json:"channel"`
	RetryCount int           `json:"retry_count"`
	LastError  string        `json:"last_error"`
	FailedAt   time.Time     `json:"failed_at"`
}

// Stats aggregates pipeline statistics.
func (s *Service) Stats(ctx context.Context) (StatsReport, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return StatsReport{}, fmt.Errorf("aggregate stats: %w", err)
	}

	failures, err := s.repo.RecentFailures(ctx, s.opts.FailureLogLimit)
	if err != nil {
		return StatsReport{}, fmt.Errorf("get recent failures: %w", err)
	}

	report := StatsReport{DeliveryStats: stats}
	for _, f := range failures {
		report.RecentFailures = append(report.RecentFailures, FailureSummary{
			ID:         f.ID,
			UserID:     f.UserID,
			Type:       f.Type,
			Channel:    f.Channel,
			RetryCount: f.RetryCount,
			LastError:  f.LastError,
			FailedAt:   f.UpdatedAt,
		})
	}

	return report, nil
}

func (s *Service) cacheStatus(ctx context.Context, strategy retry.Strategy, id uuid.UUID, status model.Status) {
	if err := s.cache.SetWithRetry(ctx, strategy, id.String(), string(status)); err != nil {
		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to cache notification status")
	}
}
