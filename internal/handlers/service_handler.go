package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/service-booking/internal/httperr"
	"github.com/BruksfildServices01/service-booking/internal/httpresp"
	"github.com/BruksfildServices01/service-booking/internal/middleware"
	"github.com/BruksfildServices01/service-booking/internal/usecase/catalog"
	"github.com/BruksfildServices01/service-booking/internal/usecase/deletion"
	"github.com/BruksfildServices01/service-booking/internal/usecase/schedule"
)

type ServiceHandler struct {
	create *catalog.CreateService
	list   *catalog.ListServices
	update *schedule.UpdateService
	remove *deletion.DeleteService
	log    *zap.Logger
}

func NewServiceHandler(
	create *catalog.CreateService,
	list *catalog.ListServices,
	update *schedule.UpdateService,
	remove *deletion.DeleteService,
	log *zap.Logger,
) *ServiceHandler {
	return &ServiceHandler{create: create, list: list, update: update, remove: remove, log: log}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateServiceRequest struct {
	Title         string  `json:"title" binding:"required"`
	Description   string  `json:"description"`
	Location      string  `json:"location"`
	Duration      int     `json:"duration" binding:"gte=0"`
	Price         float64 `json:"price" binding:"gte=0"`
	AvailableFrom string  `json:"available_from"`
	AvailableTo   string  `json:"available_to"`
}

type UpdateServiceRequest struct {
	Title         *string  `json:"title"`
	Description   *string  `json:"description"`
	Location      *string  `json:"location"`
	Duration      *int     `json:"duration"`
	Price         *float64 `json:"price"`
	AvailableFrom *string  `json:"available_from"`
	AvailableTo   *string  `json:"available_to"`
}

// ======================================================
// HANDLERS
// ======================================================

// Discover is public; a signed-in caller does not see their own services.
func (h *ServiceHandler) Discover(c *gin.Context) {
	var viewerID uint
	if p, ok := middleware.PrincipalFrom(c); ok {
		viewerID = p.UserID
	}

	services, err := h.list.Discover(c.Request.Context(), viewerID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, services)
}

func (h *ServiceHandler) Mine(c *gin.Context) {
	services, err := h.list.Mine(c.Request.Context(), principal(c))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}

	svc, err := h.create.Execute(c.Request.Context(), principal(c), catalog.CreateServiceInput{
		Title:         req.Title,
		Description:   req.Description,
		Location:      req.Location,
		Duration:      req.Duration,
		Price:         req.Price,
		AvailableFrom: req.AvailableFrom,
		AvailableTo:   req.AvailableTo,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.Created(c, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}

	res, err := h.update.Execute(c.Request.Context(), principal(c), id, schedule.UpdateServiceInput{
		Title:         req.Title,
		Description:   req.Description,
		Location:      req.Location,
		Duration:      req.Duration,
		Price:         req.Price,
		AvailableFrom: req.AvailableFrom,
		AvailableTo:   req.AvailableTo,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, res)
}

// Delete serves both the owner route and the admin route.
func (h *ServiceHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	res, err := h.remove.Execute(c.Request.Context(), principal(c), id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, res)
}
