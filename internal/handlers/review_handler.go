package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/service-booking/internal/dto"
	"github.com/BruksfildServices01/service-booking/internal/httperr"
	"github.com/BruksfildServices01/service-booking/internal/httpresp"
	"github.com/BruksfildServices01/service-booking/internal/models"
	"github.com/BruksfildServices01/service-booking/internal/usecase/review"
)

type ReviewHandler struct {
	create *review.CreateReview
	list   *review.ListReviews
	log    *zap.Logger
}

func NewReviewHandler(create *review.CreateReview, list *review.ListReviews, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{create: create, list: list, log: log}
}

type CreateReviewRequest struct {
	BookingID uint   `json:"booking_id" binding:"required"`
	Rating    *int   `json:"rating" binding:"required"`
	Comment   string `json:"comment"`
}

func (h *ReviewHandler) ListForService(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	rs, err := h.list.ForService(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, dto.Reviews(rs))
}

func (h *ReviewHandler) Create(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}

	r, err := h.create.Execute(c.Request.Context(), principal(c), review.CreateReviewInput{
		BookingID: req.BookingID,
		Rating:    *req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.Created(c, dto.Reviews([]models.Review{*r})[0])
}
