package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/service-booking/internal/audit"
	domain "github.com/BruksfildServices01/service-booking/internal/domain/booking"
	"github.com/BruksfildServices01/service-booking/internal/httperr"
	"github.com/BruksfildServices01/service-booking/internal/models"
	"github.com/BruksfildServices01/service-booking/internal/notify"
	"github.com/BruksfildServices01/service-booking/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	ServiceID uint
	StartTime time.Time
	Note      string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo      domain.Repository
	slots     *SlotChecker
	locker    domain.SlotLocker
	notifier  domain.Notifier
	templates *notify.Templates
	audit     *audit.Dispatcher
	clock     timezone.Clock
	log       *zap.Logger

	AllowSelfBooking bool
}

func NewCreateBooking(
	repo domain.Repository,
	locker domain.SlotLocker,
	notifier domain.Notifier,
	templates *notify.Templates,
	audit *audit.Dispatcher,
	clock timezone.Clock,
	log *zap.Logger,
) *CreateBooking {
	return &CreateBooking{
		repo:      repo,
		slots:     NewSlotChecker(repo),
		locker:    locker,
		notifier:  notifier,
		templates: templates,
		audit:     audit,
		clock:     clock,
		log:       log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	principal domain.Principal,
	in CreateBookingInput,
) (*models.Booking, error) {

	if in.ServiceID == 0 || in.StartTime.IsZero() {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidRequest)
	}

	// --------------------------------------------------
	// Service
	// --------------------------------------------------
	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if errors.Is(err, domain.ErrRecordNotFound) {
		return nil, httperr.ErrNotFound(httperr.CodeServiceNotFound)
	}
	if err != nil {
		return nil, err
	}
	if svc.IsDeleted {
		return nil, httperr.ErrNotFound(httperr.CodeServiceNotFound)
	}

	if svc.OwnerID == principal.UserID && !uc.AllowSelfBooking {
		return nil, httperr.ErrForbidden(httperr.CodeSelfBooking)
	}

	b := domain.New(svc, principal.UserID, in.StartTime, in.Note)

	// --------------------------------------------------
	// Critical section: check + insert
	// --------------------------------------------------
	if err := uc.insert(ctx, b); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Side effects
	// --------------------------------------------------
	uc.notifyProvider(ctx, svc, b)

	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.Ptr(principal.UserID),
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: audit.Ptr(b.ID),
		Metadata: map[string]any{
			"service_id": svc.ID,
			"start_time": b.StartTime,
			"end_time":   b.EndTime,
		},
	})

	return b, nil
}

func (uc *CreateBooking) insert(ctx context.Context, b *models.Booking) error {
	release, err := uc.locker.Lock(ctx, b.ServiceID)
	if errors.Is(err, domain.ErrSlotBusy) {
		return httperr.ErrSlotConflict()
	}
	if err != nil {
		return fmt.Errorf("lock service %d: %w", b.ServiceID, err)
	}
	defer release()

	free, err := uc.slots.IsSlotFree(ctx, b.ServiceID, b.StartTime, b.EndTime)
	if err != nil {
		return err
	}
	if !free {
		return httperr.ErrSlotConflict()
	}

	switch err := uc.repo.CreateBookingNoOverlap(ctx, b); {
	case errors.Is(err, domain.ErrOverlap):
		return httperr.ErrSlotConflict()
	case errors.Is(err, domain.ErrRecordNotFound):
		return httperr.ErrNotFound(httperr.CodeServiceNotFound)
	default:
		return err
	}
}

func (uc *CreateBooking) notifyProvider(ctx context.Context, svc *models.Service, b *models.Booking) {
	clientName := "A client"
	if client, err := uc.repo.GetUser(ctx, b.ClientID); err == nil {
		clientName = client.Name
	} else {
		uc.log.Warn("load booking client", zap.Uint("client_id", b.ClientID), zap.Error(err))
	}

	uc.notifier.Notify(ctx, svc.OwnerID, b.ClientID,
		fmt.Sprintf("New Booking: %s has booked the %s service", clientName, svc.Title),
		LinkProviderBookings,
	)

	if svc.Owner != nil {
		uc.notifier.Email(ctx, svc.Owner.Email,
			notify.SubjectBookingCreated,
			uc.templates.BookingCreated(clientName, svc.Title, b.StartTime),
		)
	}
}
