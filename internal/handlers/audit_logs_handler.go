package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/service-booking/internal/domain/booking"
	"github.com/BruksfildServices01/service-booking/internal/httperr"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	repo domain.AuditRepository
	loc  *time.Location
	log  *zap.Logger
}

func NewAuditLogsHandler(repo domain.AuditRepository, loc *time.Location, log *zap.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{repo: repo, loc: loc, log: log}
}

// List pages through the audit trail, newest first. from/to are whole days.
func (h *AuditLogsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	f := domain.AuditFilter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
	if from, ok := parseDay(h.loc, c.Query("from")); ok {
		f.From = &from
	}
	if to, ok := parseDay(h.loc, c.Query("to")); ok {
		end := to.Add(24 * time.Hour)
		f.To = &end
	}

	logs, total, err := h.repo.ListAuditLogs(c.Request.Context(), f)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	c.JSON(200, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}
