package notification

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"

	"github.com/coachdesk/notifier/internal/api/respond"
	"github.com/coachdesk/notifier/internal/model"
	prefrepo "github.com/coachdesk/notifier/internal/repository/preference"
	notifsvc "github.com/coachdesk/notifier/internal/service/notification"
)

// GetPreferences handles GET /api/users/:userID/preferences.
func (h *Handler) GetPreferences(c *ginext.Context) {
	userID, ok := h.parseUserID(c)
	if !ok {
		return
	}

	prefs, err := h.service.GetPreferences(c.Request.Context(), userID)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to get preferences")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, prefs)
}

// PreferencesRequest represents the JSON body for saving preferences.
type PreferencesRequest struct {
	EmailEnabled      bool   `json:"email_enabled"`
	PushEnabled       bool   `json:"push_enabled"`
	InAppEnabled      bool   `json:"inapp_enabled"`
	ReminderLeadMins  int    `json:"reminder_lead_minutes" validate:"required,min=1,max=1440"`
	QuietHoursEnabled bool   `json:"quiet_hours_enabled"`
	QuietHoursStart   string `json:"quiet_hours_start"`
	QuietHoursEnd     string `json:"quiet_hours_end"`
	Timezone          string `json:"timezone" validate:"required"`
}

// UpdatePreferences handles PUT /api/users/:userID/preferences.
func (h *Handler) UpdatePreferences(c *ginext.Context) {
	userID, ok := h.parseUserID(c)
	if !ok {
		return
	}

	var req PreferencesRequest
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("validation error: %s", err.Error()))
		return
	}

	err := h.service.SavePreferences(c.Request.Context(), model.UserNotificationPreferences{
		UserID:            userID,
		EmailEnabled:      req.EmailEnabled,
		PushEnabled:       req.PushEnabled,
		InAppEnabled:      req.InAppEnabled,
		ReminderLeadMins:  req.ReminderLeadMins,
		QuietHoursEnabled: req.QuietHoursEnabled,
		QuietHoursStart:   req.QuietHoursStart,
		QuietHoursEnd:     req.QuietHoursEnd,
		Timezone:          req.Timezone,
	})
	if err != nil {
		if errors.Is(err, notifsvc.ErrInvalidNotification) {
			respond.Fail(c.Writer, http.StatusBadRequest, err)
			return
		}

		zlog.Logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to save preferences")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, "preferences saved")
}

// PushSubscriptionRequest represents the JSON body for registering a
// device's push subscription.
type PushSubscriptionRequest struct {
	UserID    string `json:"user_id" validate:"required,uuid4"`
	Endpoint  string `json:"endpoint" validate:"required,url"`
	P256dhKey string `json:"p256dh_key" validate:"required"`
	AuthKey   string `json:"auth_key" validate:"required"`
	UserAgent string `json:"user_agent"`
}

// CreatePushSubscription handles POST /api/push-subscriptions.
func (h *Handler) CreatePushSubscription(c *ginext.Context) {
	var req PushSubscriptionRequest
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("validation error: %s", err.Error()))
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid user_id"))
		return
	}

	id, err := h.service.RegisterPushSubscription(c.Request.Context(), model.PushSubscription{
		UserID:    userID,
		Endpoint:  req.Endpoint,
		P256dhKey: req.P256dhKey,
		AuthKey:   req.AuthKey,
		UserAgent: req.UserAgent,
	})
	if err != nil {
		if errors.Is(err, notifsvc.ErrInvalidNotification) {
			respond.Fail(c.Writer, http.StatusBadRequest, err)
			return
		}

		zlog.Logger.Error().Err(err).Msg("failed to register push subscription")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.Created(c.Writer, id)
}

// DeletePushSubscription handles DELETE /api/push-subscriptions/:id.
func (h *Handler) DeletePushSubscription(c *ginext.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.service.RemovePushSubscription(c.Request.Context(), id); err != nil {
		if errors.Is(err, prefrepo.ErrSubscriptionNotFound) {
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("push subscription not found"))
			return
		}

		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to delete push subscription")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, "push subscription deleted")
}

func (h *Handler) parseUserID(c *ginext.Context) (uuid.UUID, bool) {
	raw := c.Param("userID")
	userID, err := uuid.Parse(raw)
	if err != nil || userID == uuid.Nil {
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid user id"))
		return uuid.Nil, false
	}

	return userID, true
}
