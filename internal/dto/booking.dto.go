package dto

import (
	"time"

	"github.com/BruksfildServices01/service-booking/internal/models"
)

type BookingListDTO struct {
	ID           uint            `json:"id"`
	ServiceID    uint            `json:"service_id"`
	ServiceTitle string          `json:"service_title"`
	StartTime    time.Time       `json:"start_time"`
	EndTime      time.Time       `json:"end_time"`
	Status       string          `json:"status"`
	IsReviewed   bool            `json:"is_reviewed"`
	Note         string          `json:"note,omitempty"`
	Client       *UserSummaryDTO `json:"client,omitempty"`
	Provider     *UserSummaryDTO `json:"provider,omitempty"`
	CancelledAt  *time.Time      `json:"cancelled_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

func Booking(b *models.Booking) BookingListDTO {
	d := BookingListDTO{
		ID:          b.ID,
		ServiceID:   b.ServiceID,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		Status:      b.Status,
		IsReviewed:  b.IsReviewed,
		Note:        b.Note,
		Client:      UserSummary(b.Client),
		Provider:    UserSummary(b.Provider),
		CancelledAt: b.CancelledAt,
		CreatedAt:   b.CreatedAt,
	}
	if b.Service != nil {
		d.ServiceTitle = b.Service.Title
		if d.Provider == nil {
			d.Provider = UserSummary(b.Service.Owner)
		}
	}
	return d
}

func Bookings(bs []models.Booking) []BookingListDTO {
	out := make([]BookingListDTO, 0, len(bs))
	for i := range bs {
		out = append(out, Booking(&bs[i]))
	}
	return out
}
