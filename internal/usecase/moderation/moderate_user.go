package moderation

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/service-booking/internal/audit"
	domain "github.com/BruksfildServices01/service-booking/internal/domain/booking"
	"github.com/BruksfildServices01/service-booking/internal/domain/moderation"
	"github.com/BruksfildServices01/service-booking/internal/httperr"
	"github.com/BruksfildServices01/service-booking/internal/models"
	"github.com/BruksfildServices01/service-booking/internal/notify"
	"github.com/BruksfildServices01/service-booking/internal/timezone"
	ucBooking "github.com/BruksfildServices01/service-booking/internal/usecase/booking"
)

type ModerateUserInput struct {
	UserID uint
	Action string
	Reason string
}

type ModerateUserResult struct {
	User           *models.User `json:"user"`
	CancelledCount int          `json:"cancelled_count"`
}

// ModerateUser runs an admin action against an account.
type ModerateUser struct {
	repo      domain.Repository
	notifier  domain.Notifier
	templates *notify.Templates
	audit     *audit.Dispatcher
	clock     timezone.Clock
	log       *zap.Logger
}

func NewModerateUser(
	repo domain.Repository,
	notifier domain.Notifier,
	templates *notify.Templates,
	audit *audit.Dispatcher,
	clock timezone.Clock,
	log *zap.Logger,
) *ModerateUser {
	return &ModerateUser{
		repo:      repo,
		notifier:  notifier,
		templates: templates,
		audit:     audit,
		clock:     clock,
		log:       log,
	}
}

func (uc *ModerateUser) Execute(
	ctx context.Context,
	principal domain.Principal,
	in ModerateUserInput,
) (*ModerateUserResult, error) {

	if !principal.IsAdmin() {
		return nil, httperr.ErrForbidden(httperr.CodeAdminRequired)
	}

	action, err := moderation.ParseAction(in.Action)
	if err != nil {
		return nil, err
	}
	if in.UserID == principal.UserID {
		return nil, httperr.ErrForbidden(httperr.CodeCannotModerateSelf)
	}

	target, err := uc.repo.GetUser(ctx, in.UserID)
	if errors.Is(err, domain.ErrRecordNotFound) {
		return nil, httperr.ErrNotFound(httperr.CodeUserNotFound)
	}
	if err != nil {
		return nil, err
	}
	if target.IsDeleted {
		return nil, httperr.ErrNotFound(httperr.CodeUserNotFound)
	}
	if target.IsAdmin() {
		return nil, httperr.ErrForbidden(httperr.CodeCannotModerateAdmin)
	}

	effects, err := moderation.Plan(action, in.Reason)
	if err != nil {
		return nil, err
	}

	res, err := uc.apply(ctx, target, effects)
	if err != nil {
		return nil, err
	}

	uc.inform(ctx, principal.UserID, res.User, effects)

	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.Ptr(principal.UserID),
		Action:   "user_" + string(action),
		Entity:   "user",
		EntityID: audit.Ptr(target.ID),
		Metadata: map[string]any{
			"reason":          effects.Reason,
			"cancelled_count": res.CancelledCount,
		},
	})

	uc.log.Info("moderation applied",
		zap.Uint("admin_id", principal.UserID),
		zap.Uint("user_id", target.ID),
		zap.String("action", string(action)),
	)

	return res, nil
}

func (uc *ModerateUser) apply(ctx context.Context, u *models.User, e moderation.Effects) (*ModerateUserResult, error) {
	res := &ModerateUserResult{User: u}

	if e.IncrementWarnings {
		updated, err := uc.repo.IncrementWarnings(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		res.User = updated
	}

	if e.SetStatus != "" {
		updated, err := uc.repo.SetUserStatus(ctx, u.ID, e.SetStatus)
		if err != nil {
			return nil, err
		}
		res.User = updated
	}

	switch e.Services {
	case moderation.ServicesHidden:
		if _, err := uc.repo.SetServicesDeletedByOwner(ctx, u.ID, true); err != nil {
			return nil, err
		}
	case moderation.ServicesRestored:
		if _, err := uc.repo.SetServicesDeletedByOwner(ctx, u.ID, false); err != nil {
			return nil, err
		}
	}

	if e.CancelFutureBookings {
		now := uc.clock()
		upcoming, err := uc.repo.ListFutureConfirmedForUser(ctx, u.ID, now)
		if err != nil {
			return nil, err
		}
		if len(upcoming) > 0 {
			ids := make([]uint, 0, len(upcoming))
			for _, b := range upcoming {
				ids = append(ids, b.ID)
			}
			n, err := uc.repo.CancelBookings(ctx, ids, now, false)
			if err != nil {
				return nil, err
			}
			res.CancelledCount = int(n)
		}
	}

	return res, nil
}

func (uc *ModerateUser) inform(ctx context.Context, adminID uint, u *models.User, e moderation.Effects) {
	uc.notifier.Notify(ctx, u.ID, adminID, e.Notice(u), ucBooking.LinkDashboard)

	var body string
	switch e.Action {
	case moderation.Warn:
		body = uc.templates.AccountWarned(u.Name, e.Reason, u.Warnings)
	case moderation.Suspend:
		body = uc.templates.AccountSuspended(u.Name, e.Reason)
	case moderation.Activate:
		body = uc.templates.AccountReactivated(u.Name)
	}
	uc.notifier.Email(ctx, u.Email, e.EmailSubject, body)
}
