package deletion

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/service-booking/internal/audit"
	domain "github.com/BruksfildServices01/service-booking/internal/domain/booking"
	"github.com/BruksfildServices01/service-booking/internal/httperr"
	"github.com/BruksfildServices01/service-booking/internal/models"
	"github.com/BruksfildServices01/service-booking/internal/notify"
	"github.com/BruksfildServices01/service-booking/internal/timezone"
	ucBooking "github.com/BruksfildServices01/service-booking/internal/usecase/booking"
)

type DeleteServiceResult struct {
	HardDeleted    bool `json:"hard_deleted"`
	CancelledCount int  `json:"cancelled_count"`
}

// DeleteService removes a service. A service that was ever booked is only
// hidden so the booking history of its clients survives. Bookings both
// parties hid are left for the sweep.
type DeleteService struct {
	repo      domain.Repository
	notifier  domain.Notifier
	templates *notify.Templates
	audit     *audit.Dispatcher
	clock     timezone.Clock
	log       *zap.Logger

	Concurrency int
}

func NewDeleteService(
	repo domain.Repository,
	notifier domain.Notifier,
	templates *notify.Templates,
	audit *audit.Dispatcher,
	clock timezone.Clock,
	log *zap.Logger,
) *DeleteService {
	return &DeleteService{
		repo:        repo,
		notifier:    notifier,
		templates:   templates,
		audit:       audit,
		clock:       clock,
		log:         log,
		Concurrency: 8,
	}
}

// Execute is allowed for the owner and for admins.
func (uc *DeleteService) Execute(
	ctx context.Context,
	principal domain.Principal,
	serviceID uint,
) (*DeleteServiceResult, error) {

	svc, err := uc.repo.GetService(ctx, serviceID)
	if errors.Is(err, domain.ErrRecordNotFound) {
		return nil, httperr.ErrNotFound(httperr.CodeServiceNotFound)
	}
	if err != nil {
		return nil, err
	}
	if svc.IsDeleted {
		return nil, httperr.ErrNotFound(httperr.CodeServiceNotFound)
	}
	if svc.OwnerID != principal.UserID && !principal.IsAdmin() {
		return nil, httperr.ErrForbidden(httperr.CodeNotServiceOwner)
	}

	res, err := uc.retire(ctx, principal.UserID, svc)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.Ptr(principal.UserID),
		Action:   "service_deleted",
		Entity:   "service",
		EntityID: audit.Ptr(svc.ID),
		Metadata: map[string]any{
			"hard_deleted":    res.HardDeleted,
			"cancelled_count": res.CancelledCount,
		},
	})

	return res, nil
}

// retire is the deletion cascade for one service, shared with account
// deletion. It does no authorization.
func (uc *DeleteService) retire(ctx context.Context, actorID uint, svc *models.Service) (*DeleteServiceResult, error) {
	res := &DeleteServiceResult{}

	count, err := uc.repo.CountBookingsForService(ctx, svc.ID)
	if err != nil {
		return nil, err
	}

	// Reviews go in both branches.
	if _, err := uc.repo.DeleteReviewsForService(ctx, svc.ID); err != nil {
		return nil, err
	}

	if count == 0 {
		if err := uc.repo.DeleteService(ctx, svc.ID); err != nil && !errors.Is(err, domain.ErrRecordNotFound) {
			return nil, err
		}
		res.HardDeleted = true
		return res, nil
	}

	if !svc.IsDeleted {
		svc.IsDeleted = true
		if err := uc.repo.UpdateService(ctx, svc); err != nil {
			return nil, err
		}
	}

	now := uc.clock()
	upcoming, err := uc.repo.ListFutureConfirmedForService(ctx, svc.ID, now)
	if err != nil {
		return nil, err
	}
	if len(upcoming) > 0 {
		ids := make([]uint, 0, len(upcoming))
		for _, b := range upcoming {
			ids = append(ids, b.ID)
		}
		n, err := uc.repo.CancelBookings(ctx, ids, now, true)
		if err != nil {
			return nil, err
		}
		res.CancelledCount = int(n)
	}

	uc.notifyClients(ctx, actorID, svc, upcoming)

	uc.log.Info("service retired",
		zap.Uint("service_id", svc.ID),
		zap.Int("cancelled", res.CancelledCount),
	)
	return res, nil
}

func (uc *DeleteService) notifyClients(ctx context.Context, actorID uint, svc *models.Service, bookings []models.Booking) {
	msg := "The service \"" + svc.Title + "\" is no longer available and your booking has been canceled."
	notify.Fanout(uc.Concurrency, bookings, func(b models.Booking) {
		uc.notifier.Notify(ctx, b.ClientID, actorID, msg, ucBooking.LinkClientBookings)
		if b.Client != nil {
			uc.notifier.Email(ctx, b.Client.Email,
				notify.SubjectServiceRemoved,
				uc.templates.ServiceRemoved(b.Client.Name, svc.Title, b.StartTime),
			)
		}
	})
}
