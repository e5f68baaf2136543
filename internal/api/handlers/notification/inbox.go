package notification

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"

	"github.com/coachdesk/notifier/internal/api/respond"
	inapprepo "github.com/coachdesk/notifier/internal/repository/inapp"
)

// Inbox handles GET /api/users/:userID/inbox with an optional limit
// query parameter.
func (h *Handler) Inbox(c *ginext.Context) {
	userID, ok := h.parseUserID(c)
	if !ok {
		return
	}

	notifications, err := h.service.Inbox(c.Request.Context(), userID, intQuery(c, "limit"))
	if err != nil {
		zlog.Logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to list inbox")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, notifications)
}

// MarkInboxRead handles PUT /api/inbox/:id/read.
func (h *Handler) MarkInboxRead(c *ginext.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.service.MarkInboxRead(c.Request.Context(), id); err != nil {
		if errors.Is(err, inapprepo.ErrNotificationNotFound) {
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("notification not found"))
			return
		}

		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to mark notification read")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, "marked read")
}
