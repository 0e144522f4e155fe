package booking

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/service-booking/internal/audit"
	domain "github.com/BruksfildServices01/service-booking/internal/domain/booking"
	"github.com/BruksfildServices01/service-booking/internal/httperr"
)

type HideResult struct {
	Visibility     domain.Visibility `json:"-"`
	State          string            `json:"state"`
	Purged         bool              `json:"purged"`
	ServiceDeleted bool              `json:"service_deleted"`
}

// HideBooking removes a booking from the caller's view. Once both parties
// have hidden it the booking is purged.
type HideBooking struct {
	repo   domain.Repository
	purger *Purger
	audit  *audit.Dispatcher
}

func NewHideBooking(repo domain.Repository, purger *Purger, audit *audit.Dispatcher) *HideBooking {
	return &HideBooking{repo: repo, purger: purger, audit: audit}
}

func (uc *HideBooking) Execute(
	ctx context.Context,
	principal domain.Principal,
	bookingID uint,
) (*HideResult, error) {

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if errors.Is(err, domain.ErrRecordNotFound) {
		return nil, httperr.ErrNotFound(httperr.CodeBookingNotFound)
	}
	if err != nil {
		return nil, err
	}

	party := domain.PartyOf(b, principal.UserID)
	if party == domain.PartyNone {
		return nil, httperr.ErrForbidden(httperr.CodeNotBookingParty)
	}

	updated, err := uc.repo.HideBooking(ctx, b.ID, party)
	if errors.Is(err, domain.ErrRecordNotFound) {
		return nil, httperr.ErrNotFound(httperr.CodeBookingNotFound)
	}
	if err != nil {
		return nil, err
	}

	state := domain.VisibilityOf(updated)
	res := &HideResult{Visibility: state, State: state.String()}

	if state == domain.Purged {
		purged, collected, err := uc.purger.Converge(ctx, b.ServiceID)
		if err != nil {
			return nil, err
		}
		res.Purged = purged > 0
		res.ServiceDeleted = collected
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.Ptr(principal.UserID),
		Action:   "booking_hidden",
		Entity:   "booking",
		EntityID: audit.Ptr(b.ID),
		Metadata: map[string]any{"state": res.State},
	})

	return res, nil
}
