package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/service-booking/internal/dto"
	"github.com/BruksfildServices01/service-booking/internal/httperr"
	"github.com/BruksfildServices01/service-booking/internal/httpresp"
	"github.com/BruksfildServices01/service-booking/internal/usecase/account"
	ucBooking "github.com/BruksfildServices01/service-booking/internal/usecase/booking"
	"github.com/BruksfildServices01/service-booking/internal/usecase/deletion"
)

type MeHandler struct {
	profile    *account.Profile
	deleteUser *deletion.DeleteUser
	bookings   *ucBooking.ListBookings
	log        *zap.Logger
}

func NewMeHandler(
	profile *account.Profile,
	deleteUser *deletion.DeleteUser,
	bookings *ucBooking.ListBookings,
	log *zap.Logger,
) *MeHandler {
	return &MeHandler{profile: profile, deleteUser: deleteUser, bookings: bookings, log: log}
}

type UpdateMeRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"phone"`
	Password *string `json:"password" binding:"omitempty,min=6"`
}

func (h *MeHandler) GetMe(c *gin.Context) {
	u, err := h.profile.Get(c.Request.Context(), principal(c))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, gin.H{"user": dto.Profile(u)})
}

func (h *MeHandler) UpdateMe(c *gin.Context) {
	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}

	u, err := h.profile.Update(c.Request.Context(), principal(c), account.UpdateProfileInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, gin.H{"user": dto.Profile(u)})
}

func (h *MeHandler) DeleteMe(c *gin.Context) {
	p := principal(c)
	res, err := h.deleteUser.Execute(c.Request.Context(), p, p.UserID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, res)
}

func (h *MeHandler) Dashboard(c *gin.Context) {
	stats, err := h.bookings.Dashboard(c.Request.Context(), principal(c))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, stats)
}
