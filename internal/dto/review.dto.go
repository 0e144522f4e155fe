package dto

import (
	"time"

	"github.com/BruksfildServices01/service-booking/internal/models"
)

type ReviewDTO struct {
	ID           uint            `json:"id"`
	ServiceID    uint            `json:"service_id"`
	ServiceTitle string          `json:"service_title,omitempty"`
	Rating       int             `json:"rating"`
	Comment      string          `json:"comment"`
	Client       *UserSummaryDTO `json:"client,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

func Reviews(rs []models.Review) []ReviewDTO {
	out := make([]ReviewDTO, 0, len(rs))
	for i := range rs {
		r := &rs[i]
		d := ReviewDTO{
			ID:        r.ID,
			ServiceID: r.ServiceID,
			Rating:    r.Rating,
			Comment:   r.Comment,
			Client:    UserSummary(r.Client),
			CreatedAt: r.CreatedAt,
		}
		if r.Service != nil {
			d.ServiceTitle = r.Service.Title
		}
		out = append(out, d)
	}
	return out
}
