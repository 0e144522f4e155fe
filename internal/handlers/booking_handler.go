package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/service-booking/internal/dto"
	"github.com/BruksfildServices01/service-booking/internal/httperr"
	"github.com/BruksfildServices01/service-booking/internal/httpresp"
	ucBooking "github.com/BruksfildServices01/service-booking/internal/usecase/booking"
)

type BookingHandler struct {
	create *ucBooking.CreateBooking
	cancel *ucBooking.CancelBooking
	hide   *ucBooking.HideBooking
	list   *ucBooking.ListBookings
	loc    *time.Location
	log    *zap.Logger
}

func NewBookingHandler(
	create *ucBooking.CreateBooking,
	cancel *ucBooking.CancelBooking,
	hide *ucBooking.HideBooking,
	list *ucBooking.ListBookings,
	loc *time.Location,
	log *zap.Logger,
) *BookingHandler {
	return &BookingHandler{create: create, cancel: cancel, hide: hide, list: list, loc: loc, log: log}
}

// CreateBookingRequest takes start_time (RFC 3339) or date + time in the
// server's timezone.
type CreateBookingRequest struct {
	ServiceID uint   `json:"service_id" binding:"required"`
	StartTime string `json:"start_time"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Note      string `json:"note"`
}

func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}

	start, err := parseStart(h.loc, req.StartTime, req.Date, req.Time)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "invalid start time")
		return
	}

	b, err := h.create.Execute(c.Request.Context(), principal(c), ucBooking.CreateBookingInput{
		ServiceID: req.ServiceID,
		StartTime: start,
		Note:      req.Note,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.Created(c, dto.Booking(b))
}

func (h *BookingHandler) Mine(c *gin.Context) {
	bs, err := h.list.Mine(c.Request.Context(), principal(c))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, dto.Bookings(bs))
}

func (h *BookingHandler) Incoming(c *gin.Context) {
	bs, err := h.list.Incoming(c.Request.Context(), principal(c))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, dto.Bookings(bs))
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	b, err := h.cancel.Execute(c.Request.Context(), principal(c), id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, dto.Booking(b))
}

// Hide removes the booking from the caller's list.
func (h *BookingHandler) Hide(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	res, err := h.hide.Execute(c.Request.Context(), principal(c), id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, res)
}
