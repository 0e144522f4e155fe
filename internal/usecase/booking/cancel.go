package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/BruksfildServices01/service-booking/internal/audit"
	domain "github.com/BruksfildServices01/service-booking/internal/domain/booking"
	"github.com/BruksfildServices01/service-booking/internal/httperr"
	"github.com/BruksfildServices01/service-booking/internal/models"
	"github.com/BruksfildServices01/service-booking/internal/notify"
	"github.com/BruksfildServices01/service-booking/internal/timezone"
)

type CancelBooking struct {
	repo      domain.Repository
	notifier  domain.Notifier
	templates *notify.Templates
	audit     *audit.Dispatcher
	clock     timezone.Clock
}

func NewCancelBooking(
	repo domain.Repository,
	notifier domain.Notifier,
	templates *notify.Templates,
	audit *audit.Dispatcher,
	clock timezone.Clock,
) *CancelBooking {
	return &CancelBooking{
		repo:      repo,
		notifier:  notifier,
		templates: templates,
		audit:     audit,
		clock:     clock,
	}
}

// Execute cancels a booking on behalf of either party. Callers outside the
// booking get NotFound so they cannot probe for ids.
func (uc *CancelBooking) Execute(
	ctx context.Context,
	principal domain.Principal,
	bookingID uint,
) (*models.Booking, error) {

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if errors.Is(err, domain.ErrRecordNotFound) {
		return nil, httperr.ErrNotFound(httperr.CodeBookingNotFound)
	}
	if err != nil {
		return nil, err
	}

	party := domain.PartyOf(b, principal.UserID)
	if party == domain.PartyNone {
		return nil, httperr.ErrNotFound(httperr.CodeBookingNotFound)
	}

	now := uc.clock()
	if err := domain.Cancel(b, now); err != nil {
		return nil, err
	}

	if _, err := uc.repo.CancelBookings(ctx, []uint{b.ID}, now, false); err != nil {
		return nil, err
	}

	uc.notifyCounterpart(ctx, b, party, principal.UserID)

	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.Ptr(principal.UserID),
		Action:   "booking_cancelled",
		Entity:   "booking",
		EntityID: audit.Ptr(b.ID),
	})

	return b, nil
}

func (uc *CancelBooking) notifyCounterpart(ctx context.Context, b *models.Booking, party domain.Party, actorID uint) {
	actor, recipient := b.Client, b.Provider
	link := LinkProviderBookings
	if party == domain.PartyProvider {
		actor, recipient = b.Provider, b.Client
		link = LinkClientBookings
	}

	title := ""
	if b.Service != nil {
		title = b.Service.Title
	}
	actorName := "The other party"
	if actor != nil {
		actorName = actor.Name
	}

	uc.notifier.Notify(ctx, domain.Counterpart(b, party), actorID,
		fmt.Sprintf("%s canceled the booking for \"%s\"", actorName, title),
		link,
	)

	if recipient != nil {
		uc.notifier.Email(ctx, recipient.Email,
			notify.SubjectBookingCancelled,
			uc.templates.BookingCancelled(recipient.Name, actorName, title, b.StartTime, link),
		)
	}
}
