package dto

import (
	"math"

	"github.com/BruksfildServices01/service-booking/internal/domain/booking"
	"github.com/BruksfildServices01/service-booking/internal/models"
)

type ServiceListDTO struct {
	ID            uint            `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Location      string          `json:"location"`
	Duration      int             `json:"duration"`
	Price         float64         `json:"price"`
	AvailableFrom string          `json:"available_from"`
	AvailableTo   string          `json:"available_to"`
	IsDeleted     bool            `json:"is_deleted"`
	AverageRating float64         `json:"average_rating"`
	TotalReviews  int64           `json:"total_reviews"`
	Owner         *UserSummaryDTO `json:"owner,omitempty"`
}

// ServiceList joins services with their rating stats. Averages are rounded
// to one decimal.
func ServiceList(services []models.Service, stats map[uint]booking.RatingStats) []ServiceListDTO {
	out := make([]ServiceListDTO, 0, len(services))
	for i := range services {
		s := &services[i]
		st := stats[s.ID]
		out = append(out, ServiceListDTO{
			ID:            s.ID,
			Title:         s.Title,
			Description:   s.Description,
			Location:      s.Location,
			Duration:      s.Duration,
			Price:         s.Price,
			AvailableFrom: s.AvailableFrom,
			AvailableTo:   s.AvailableTo,
			IsDeleted:     s.IsDeleted,
			AverageRating: math.Round(st.Average*10) / 10,
			TotalReviews:  st.Count,
			Owner:         UserSummary(s.Owner),
		})
	}
	return out
}
