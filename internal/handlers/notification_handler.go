package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/service-booking/internal/httperr"
	"github.com/BruksfildServices01/service-booking/internal/httpresp"
	"github.com/BruksfildServices01/service-booking/internal/usecase/inbox"
)

type NotificationHandler struct {
	inbox *inbox.Inbox
	log   *zap.Logger
}

func NewNotificationHandler(inbox *inbox.Inbox, log *zap.Logger) *NotificationHandler {
	return &NotificationHandler{inbox: inbox, log: log}
}

func (h *NotificationHandler) List(c *gin.Context) {
	box, err := h.inbox.List(c.Request.Context(), principal(c))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, box)
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.inbox.MarkAllRead(c.Request.Context(), principal(c)); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.NoContent(c)
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.inbox.Delete(c.Request.Context(), principal(c), id); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.NoContent(c)
}
