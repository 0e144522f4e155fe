package schedule

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/service-booking/internal/audit"
	domain "github.com/BruksfildServices01/service-booking/internal/domain/booking"
	"github.com/BruksfildServices01/service-booking/internal/httperr"
	"github.com/BruksfildServices01/service-booking/internal/models"
	"github.com/BruksfildServices01/service-booking/internal/notify"
	"github.com/BruksfildServices01/service-booking/internal/timezone"
	ucBooking "github.com/BruksfildServices01/service-booking/internal/usecase/booking"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

// UpdateServiceInput is a partial update; nil fields are left unchanged.
type UpdateServiceInput struct {
	Title         *string
	Description   *string
	Location      *string
	Duration      *int
	Price         *float64
	AvailableFrom *string
	AvailableTo   *string
}

type UpdateServiceResult struct {
	Service        *models.Service `json:"service"`
	CancelledCount int             `json:"cancelled_count"`
	NotifiedCount  int             `json:"notified_count"`
}

// ======================================================
// USE CASE
// ======================================================

// UpdateService applies a provider's edit and, when the working window
// moved, cancels confirmed future bookings that now start outside it.
type UpdateService struct {
	repo      domain.Repository
	notifier  domain.Notifier
	templates *notify.Templates
	audit     *audit.Dispatcher
	clock     timezone.Clock
	loc       *time.Location
	log       *zap.Logger

	Concurrency int
}

func NewUpdateService(
	repo domain.Repository,
	notifier domain.Notifier,
	templates *notify.Templates,
	audit *audit.Dispatcher,
	clock timezone.Clock,
	loc *time.Location,
	log *zap.Logger,
) *UpdateService {
	return &UpdateService{
		repo:        repo,
		notifier:    notifier,
		templates:   templates,
		audit:       audit,
		clock:       clock,
		loc:         loc,
		log:         log,
		Concurrency: 8,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *UpdateService) Execute(
	ctx context.Context,
	principal domain.Principal,
	serviceID uint,
	in UpdateServiceInput,
) (*UpdateServiceResult, error) {

	// --------------------------------------------------
	// Ownership
	// --------------------------------------------------
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
	if svc.OwnerID != principal.UserID {
		return nil, httperr.ErrForbidden(httperr.CodeNotServiceOwner)
	}

	// --------------------------------------------------
	// Patch + validation
	// --------------------------------------------------
	oldFrom, oldTo := svc.AvailableFrom, svc.AvailableTo
	if err := uc.apply(ctx, svc, in); err != nil {
		return nil, err
	}

	// Service first: the new window is authoritative even if the
	// cascade below fails part way.
	if err := uc.repo.UpdateService(ctx, svc); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, httperr.ErrDuplicate(httperr.CodeTitleTaken)
		}
		return nil, err
	}

	res := &UpdateServiceResult{Service: svc}

	if svc.AvailableFrom != oldFrom || svc.AvailableTo != oldTo {
		if err := uc.cascade(ctx, principal, svc, res); err != nil {
			return nil, err
		}
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.Ptr(principal.UserID),
		Action:   "service_updated",
		Entity:   "service",
		EntityID: audit.Ptr(svc.ID),
		Metadata: map[string]any{
			"available_from":  svc.AvailableFrom,
			"available_to":    svc.AvailableTo,
			"cancelled_count": res.CancelledCount,
		},
	})

	return res, nil
}

func (uc *UpdateService) apply(ctx context.Context, svc *models.Service, in UpdateServiceInput) error {
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return httperr.ErrBusiness(httperr.CodeInvalidRequest)
		}
		if !strings.EqualFold(title, svc.Title) {
			taken, err := uc.repo.TitleTaken(ctx, title, svc.ID)
			if err != nil {
				return err
			}
			if taken {
				return httperr.ErrDuplicate(httperr.CodeTitleTaken)
			}
		}
		svc.Title = title
	}
	if in.Description != nil {
		svc.Description = *in.Description
	}
	if in.Location != nil {
		svc.Location = *in.Location
	}
	if in.Duration != nil {
		if *in.Duration <= 0 {
			return httperr.ErrBusiness(httperr.CodeInvalidRequest)
		}
		svc.Duration = *in.Duration
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return httperr.ErrBusiness(httperr.CodeInvalidRequest)
		}
		svc.Price = *in.Price
	}
	if in.AvailableFrom != nil {
		svc.AvailableFrom = *in.AvailableFrom
	}
	if in.AvailableTo != nil {
		svc.AvailableTo = *in.AvailableTo
	}

	return domain.ValidateWindow(svc.AvailableFrom, svc.AvailableTo)
}

// ======================================================
// CASCADE
// ======================================================

func (uc *UpdateService) cascade(
	ctx context.Context,
	principal domain.Principal,
	svc *models.Service,
	res *UpdateServiceResult,
) error {

	now := uc.clock()
	upcoming, err := uc.repo.ListFutureConfirmedForService(ctx, svc.ID, now)
	if err != nil {
		return err
	}

	affected, kept := Partition(upcoming, svc.AvailableFrom, svc.AvailableTo, uc.loc)

	if len(affected) > 0 {
		ids := make([]uint, 0, len(affected))
		for _, b := range affected {
			ids = append(ids, b.ID)
		}
		n, err := uc.repo.CancelBookings(ctx, ids, now, false)
		if err != nil {
			return err
		}
		res.CancelledCount = int(n)
	}

	cancelMsg := fmt.Sprintf("Unfortunately, your booking for \"%s\" has been canceled due to schedule changes.", svc.Title)
	notify.Fanout(uc.Concurrency, affected, func(b models.Booking) {
		uc.notifier.Notify(ctx, b.ClientID, principal.UserID, cancelMsg, ucBooking.LinkClientBookings)
		if b.Client != nil {
			uc.notifier.Email(ctx, b.Client.Email,
				notify.SubjectScheduleCancelled,
				uc.templates.ScheduleCancelled(b.Client.Name, svc.Title),
			)
		}
	})

	updateMsg := fmt.Sprintf("The schedule for the service \"%s\" has been updated. Please check your booking details.", svc.Title)
	notify.Fanout(uc.Concurrency, kept, func(b models.Booking) {
		uc.notifier.Notify(ctx, b.ClientID, principal.UserID, updateMsg, ucBooking.LinkClientBookings)
		if b.Client != nil {
			uc.notifier.Email(ctx, b.Client.Email,
				notify.SubjectScheduleUpdated,
				uc.templates.ScheduleUpdated(b.Client.Name, svc.Title),
			)
		}
	})

	res.NotifiedCount = len(affected) + len(kept)

	uc.log.Info("schedule change cascaded",
		zap.Uint("service_id", svc.ID),
		zap.Int("cancelled", res.CancelledCount),
		zap.Int("kept", len(kept)),
	)
	return nil
}

// Partition splits bookings by whether their start hour, read on the wall
// clock of loc, falls inside the [from,to) window.
func Partition(bookings []models.Booking, from, to string, loc *time.Location) (outside, inside []models.Booking) {
	for _, b := range bookings {
		if domain.IsWithinWorkingHours(timezone.HourIn(b.StartTime, loc), from, to) {
			inside = append(inside, b)
		} else {
			outside = append(outside, b)
		}
	}
	return outside, inside
}
