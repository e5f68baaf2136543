package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/coachdesk/notifier/internal/api/respond"
	"github.com/coachdesk/notifier/internal/config"
	"github.com/coachdesk/notifier/internal/model"
	notifrepo "github.com/coachdesk/notifier/internal/repository/notification"
	notifsvc "github.com/coachdesk/notifier/internal/service/notification"
	"github.com/coachdesk/notifier/internal/worker"
)

// notificationService defines the service surface the handlers depend
// on.
//
//go:generate mockgen -source=handler.go -destination=../../../mocks/api/handlers/notification/mock.go -package=mocks
type notificationService interface {
	Schedule(ctx context.Context, strategy retry.Strategy, in notifsvc.ScheduleInput) (uuid.UUID, error)
	ScheduleSessionReminders(ctx context.Context, in notifsvc.SessionReminderInput) ([]uuid.UUID, error)
	GetNotificationStatusByID(ctx context.Context, strategy retry.Strategy, id uuid.UUID) (model.Status, error)
	GetNotification(ctx context.Context, id uuid.UUID) (model.ScheduledNotification, error)
	DeliveryLogs(ctx context.Context, id uuid.UUID) ([]model.DeliveryLog, error)
	ListNotifications(ctx context.Context, filter model.NotificationFilter) ([]model.ScheduledNotification, int64, error)
	Cancel(ctx context.Context, strategy retry.Strategy, id uuid.UUID) error
	Stats(ctx context.Context) (notifsvc.StatsReport, error)

	GetPreferences(ctx context.Context, userID uuid.UUID) (model.UserNotificationPreferences, error)
	SavePreferences(ctx context.Context, p model.UserNotificationPreferences) error
	RegisterPushSubscription(ctx context.Context, sub model.PushSubscription) (uuid.UUID, error)
	RemovePushSubscription(ctx context.Context, id uuid.UUID) error
	Inbox(ctx context.Context, userID uuid.UUID, limit int) ([]model.InAppNotification, error)
	MarkInboxRead(ctx context.Context, id uuid.UUID) error
}

// schedulerRunner triggers one dispatch pass outside the timer.
type schedulerRunner interface {
	RunOnce(ctx context.Context) (int, error)
}

// Handler handles HTTP requests related to notifications.
type Handler struct {
	service   notificationService
	runner    schedulerRunner
	validator *validator.Validate
	cfg       *config.Config
}

// NewHandler creates a new Handler instance.
func NewHandler(
	s notificationService,
	r schedulerRunner,
	v *validator.Validate,
	cfg *config.Config,
) *Handler {
	return &Handler{service: s, runner: r, validator: v, cfg: cfg}
}

// CreateRequest represents the JSON body expected when scheduling one
// notification. Title and content may be omitted when template data is
// given.
type CreateRequest struct {
	UserID       string              `json:"user_id" validate:"required,uuid4"`
	Type         string              `json:"type" validate:"required"`
	Channel      string              `json:"channel" validate:"required"`
	Title        string              `json:"title"`
	Content      string              `json:"content"`
	TemplateData *model.TemplateData `json:"template_data,omitempty"`
	ScheduledFor string              `json:"scheduled_for" validate:"required"`
	Priority     string              `json:"priority"`
	MaxRetries   *int                `json:"max_retries,omitempty"`
}

// Create handles POST /api/notifications.
func (h *Handler) Create(c *ginext.Context) {
	var req CreateRequest

	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to decode request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	if err := h.validator.Struct(req); err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to validate request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("validation error: %s", err.Error()))
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid user_id"))
		return
	}

	scheduledFor, err := time.Parse(time.RFC3339, req.ScheduledFor)
	if err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to parse scheduled_for time")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid scheduled_for format, expected RFC3339"))
		return
	}

	id, err := h.service.Schedule(c.Request.Context(), h.cfg.Retry, notifsvc.ScheduleInput{
		UserID:       userID,
		Type:         model.Type(req.Type),
		Channel:      model.Channel(req.Channel),
		Title:        req.Title,
		Content:      req.Content,
		TemplateData: req.TemplateData,
		ScheduledFor: scheduledFor,
		Priority:     model.Priority(req.Priority),
		MaxRetries:   req.MaxRetries,
	})
	if err != nil {
		if errors.Is(err, notifsvc.ErrInvalidNotification) ||
			errors.Is(err, notifsvc.ErrUnknownChannel) ||
			errors.Is(err, model.ErrTemplateDataMismatch) {
			respond.Fail(c.Writer, http.StatusBadRequest, err)
			return
		}

		zlog.Logger.Error().Err(err).Msg("failed to schedule notification")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.Created(c.Writer, id)
}

// SessionRemindersRequest represents the JSON body for bulk
// session-reminder scheduling.
type SessionRemindersRequest struct {
	SessionID      string   `json:"session_id" validate:"required,uuid4"`
	SessionTitle   string   `json:"session_title" validate:"required"`
	CoachName      string   `json:"coach_name"`
	StartsAt       string   `json:"starts_at" validate:"required"`
	ParticipantIDs []string `json:"participant_ids" validate:"required,min=1,dive,uuid4"`
	Priority       string   `json:"priority"`
}

// CreateSessionReminders handles POST /api/notifications/session-reminders.
func (h *Handler) CreateSessionReminders(c *ginext.Context) {
	var req SessionRemindersRequest

	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to decode request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	if err := h.validator.Struct(req); err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to validate request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("validation error: %s", err.Error()))
		return
	}

	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid session_id"))
		return
	}

	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid starts_at format, expected RFC3339"))
		return
	}

	participants := make([]uuid.UUID, 0, len(req.ParticipantIDs))
	for _, p := range req.ParticipantIDs {
		id, err := uuid.Parse(p)
		if err != nil {
			respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid participant id %q", p))
			return
		}

		participants = append(participants, id)
	}

	ids, err := h.service.ScheduleSessionReminders(c.Request.Context(), notifsvc.SessionReminderInput{
		SessionID:      sessionID,
		SessionTitle:   req.SessionTitle,
		CoachName:      req.CoachName,
		StartsAt:       startsAt,
		ParticipantIDs: participants,
		Priority:       model.Priority(req.Priority),
	})
	if err != nil {
		if errors.Is(err, notifsvc.ErrInvalidNotification) {
			respond.Fail(c.Writer, http.StatusBadRequest, err)
			return
		}

		zlog.Logger.Error().Err(err).Msg("failed to schedule session reminders")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.Created(c.Writer, map[string]interface{}{
		"scheduled": len(ids),
		"ids":       ids,
	})
}

// GetStatus handles GET /api/notifications/:id.
func (h *Handler) GetStatus(c *ginext.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	status, err := h.service.GetNotificationStatusByID(c.Request.Context(), h.cfg.Retry, id)
	if err != nil {
		if errors.Is(err, notifrepo.ErrNotificationNotFound) {
			zlog.Logger.Warn().Str("id", id.String()).Msg("notification not found")
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("notification not found"))
			return
		}

		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to get notification status")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, status)
}

// GetDetail handles GET /api/notifications/:id/detail, returning the
// full notification row rather than just its status.
func (h *Handler) GetDetail(c *ginext.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	n, err := h.service.GetNotification(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, notifrepo.ErrNotificationNotFound) {
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("notification not found"))
			return
		}

		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to get notification")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, n)
}

// GetDeliveryLogs handles GET /api/notifications/:id/logs, the
// per-attempt audit trail for one notification.
func (h *Handler) GetDeliveryLogs(c *ginext.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	logs, err := h.service.DeliveryLogs(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, notifrepo.ErrNotificationNotFound) {
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("notification not found"))
			return
		}

		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to list delivery logs")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, map[string]interface{}{
		"notification_id": id,
		"attempts":        logs,
	})
}

// GetAll handles GET /api/notifications with optional user_id, status,
// channel, page, and page_size query parameters.
func (h *Handler) GetAll(c *ginext.Context) {
	filter := model.NotificationFilter{
		Status:  model.Status(c.Query("status")),
		Channel: model.Channel(c.Query("channel")),
	}

	if raw := c.Query("user_id"); raw != "" {
		userID, err := uuid.Parse(raw)
		if err != nil {
			respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid user_id"))
			return
		}

		filter.UserID = userID
	}

	filter.Page = intQuery(c, "page")
	filter.PageSize = intQuery(c, "page_size")

	notifications, total, err := h.service.ListNotifications(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, notifrepo.ErrNoNotificationsFound) {
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("no notifications found"))
			return
		}

		zlog.Logger.Error().Err(err).Msg("failed to list notifications")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, map[string]interface{}{
		"notifications": notifications,
		"total":         total,
	})
}

// Cancel handles DELETE /api/notifications/:id. Cancelling a
// notification already in a terminal state succeeds without effect.
func (h *Handler) Cancel(c *ginext.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	err := h.service.Cancel(c.Request.Context(), h.cfg.Retry, id)
	if err != nil {
		switch {
		case errors.Is(err, notifrepo.ErrNotificationNotFound):
			zlog.Logger.Warn().Str("id", id.String()).Msg("notification not found")
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("notification not found"))
		case errors.Is(err, notifsvc.ErrCancelProcessing):
			respond.Fail(c.Writer, http.StatusConflict, err)
		default:
			zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to cancel notification")
			respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		}
		return
	}

	respond.OK(c.Writer, "notification cancelled")
}

// Stats handles GET /api/notifications/stats.
func (h *Handler) Stats(c *ginext.Context) {
	report, err := h.service.Stats(c.Request.Context())
	if err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to aggregate stats")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, report)
}

// TriggerRun handles POST /api/scheduler/run, firing one dispatch pass
// for external cron triggers.
func (h *Handler) TriggerRun(c *ginext.Context) {
	processed, err := h.runner.RunOnce(c.Request.Context())
	if err != nil {
		if errors.Is(err, worker.ErrPassInProgress) {
			respond.Fail(c.Writer, http.StatusConflict, err)
			return
		}

		zlog.Logger.Error().Err(err).Msg("manual scheduler pass failed")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, map[string]int{"processed": processed})
}

func (h *Handler) parseID(c *ginext.Context) (uuid.UUID, bool) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("id", idStr).Msg("failed to parse id")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid id"))
		return uuid.Nil, false
	}

	if id == uuid.Nil {
		zlog.Logger.Warn().Msg("missing id")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("missing id"))
		return uuid.Nil, false
	}

	return id, true
}

func intQuery(c *ginext.Context, name string) int {
	raw := c.Query(name)
	if raw == "" {
		return 0
	}

	var v int
	if _, err := fmt.Sscanf(raw, "%d", &v); err != nil {
		return 0
	}

	return v
}
