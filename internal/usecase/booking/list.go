package booking

import (
	"context"

	domain "github.com/BruksfildServices01/service-booking/internal/domain/booking"
	"github.com/BruksfildServices01/service-booking/internal/models"
	"github.com/BruksfildServices01/service-booking/internal/timezone"
)

// ListBookings serves the client and provider booking views.
type ListBookings struct {
	repo  domain.BookingRepository
	clock timezone.Clock
}

func NewListBookings(repo domain.BookingRepository, clock timezone.Clock) *ListBookings {
	return &ListBookings{repo: repo, clock: clock}
}

// Mine lists bookings the caller made, minus the ones they hid.
func (uc *ListBookings) Mine(ctx context.Context, principal domain.Principal) ([]models.Booking, error) {
	return uc.repo.ListClientBookings(ctx, principal.UserID)
}

// Incoming lists bookings of the caller's services, minus the ones they hid.
func (uc *ListBookings) Incoming(ctx context.Context, principal domain.Principal) ([]models.Booking, error) {
	return uc.repo.ListProviderBookings(ctx, principal.UserID)
}

// Dashboard aggregates the provider view. Past confirmed bookings count
// as completed.
func (uc *ListBookings) Dashboard(ctx context.Context, principal domain.Principal) (domain.ProviderStats, error) {
	return uc.repo.ProviderStats(ctx, principal.UserID, uc.clock())
}
