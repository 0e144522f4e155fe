package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/service-booking/internal/httperr"
	"github.com/BruksfildServices01/service-booking/internal/httpresp"
	"github.com/BruksfildServices01/service-booking/internal/usecase/deletion"
	"github.com/BruksfildServices01/service-booking/internal/usecase/moderation"
)

type AdminHandler struct {
	overview   *moderation.AdminOverview
	moderate   *moderation.ModerateUser
	deleteUser *deletion.DeleteUser
	log        *zap.Logger
}

func NewAdminHandler(
	overview *moderation.AdminOverview,
	moderate *moderation.ModerateUser,
	deleteUser *deletion.DeleteUser,
	log *zap.Logger,
) *AdminHandler {
	return &AdminHandler{overview: overview, moderate: moderate, deleteUser: deleteUser, log: log}
}

type UserActionRequest struct {
	Action string `json:"action" binding:"required"`
	Reason string `json:"reason"`
}

func (h *AdminHandler) AllData(c *gin.Context) {
	ov, err := h.overview.Execute(c.Request.Context(), principal(c))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, ov)
}

func (h *AdminHandler) UserAction(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UserActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}

	res, err := h.moderate.Execute(c.Request.Context(), principal(c), moderation.ModerateUserInput{
		UserID: id,
		Action: req.Action,
		Reason: req.Reason,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, res)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	res, err := h.deleteUser.Execute(c.Request.Context(), principal(c), id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, res)
}
