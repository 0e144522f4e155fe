package catalog

import (
	"context"
	"errors"

	domain "github.com/BruksfildServices01/service-booking/internal/domain/booking"
	"github.com/BruksfildServices01/service-booking/internal/dto"
	"github.com/BruksfildServices01/service-booking/internal/httperr"
	"github.com/BruksfildServices01/service-booking/internal/models"
)

type ListServices struct {
	services domain.ServiceRepository
	reviews  domain.ReviewRepository
}

func NewListServices(services domain.ServiceRepository, reviews domain.ReviewRepository) *ListServices {
	return &ListServices{services: services, reviews: reviews}
}

// Discover lists live services of other providers. viewerID zero means an
// anonymous caller and hides nothing.
func (uc *ListServices) Discover(ctx context.Context, viewerID uint) ([]dto.ServiceListDTO, error) {
	return uc.list(ctx, domain.ServiceFilter{ExcludeOwnerID: viewerID})
}

// Mine lists the caller's live services.
func (uc *ListServices) Mine(ctx context.Context, principal domain.Principal) ([]dto.ServiceListDTO, error) {
	return uc.list(ctx, domain.ServiceFilter{OwnerID: principal.UserID})
}

// Get returns a live service.
func (uc *ListServices) Get(ctx context.Context, id uint) (*models.Service, error) {
	svc, err := uc.services.GetService(ctx, id)
	if errors.Is(err, domain.ErrRecordNotFound) || (err == nil && svc.IsDeleted) {
		return nil, httperr.ErrNotFound(httperr.CodeServiceNotFound)
	}
	return svc, err
}

func (uc *ListServices) list(ctx context.Context, f domain.ServiceFilter) ([]dto.ServiceListDTO, error) {
	services, err := uc.services.ListServices(ctx, f)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(services))
	for _, s := range services {
		ids = append(ids, s.ID)
	}

	stats, err := uc.reviews.RatingStats(ctx, ids)
	if err != nil {
		return nil, err
	}

	return dto.ServiceList(services, stats), nil
}
