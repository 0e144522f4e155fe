package deletion

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/service-booking/internal/audit"
	domain "github.com/BruksfildServices01/service-booking/internal/domain/booking"
	"github.com/BruksfildServices01/service-booking/internal/httperr"
	ucBooking "github.com/BruksfildServices01/service-booking/internal/usecase/booking"
)

type DeleteUserResult struct {
	HardDeleted     bool `json:"hard_deleted"`
	ServicesRetired int  `json:"services_retired"`
	PurgedCount     int  `json:"purged_count"`
}

// DeleteUser closes an account. Accounts with booking history are kept as
// soft-deleted rows so the other party still sees who they dealt with.
type DeleteUser struct {
	repo     domain.Repository
	services *DeleteService
	purger   *ucBooking.Purger
	audit    *audit.Dispatcher
	log      *zap.Logger
}

func NewDeleteUser(
	repo domain.Repository,
	services *DeleteService,
	purger *ucBooking.Purger,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *DeleteUser {
	return &DeleteUser{
		repo:     repo,
		services: services,
		purger:   purger,
		audit:    audit,
		log:      log,
	}
}

// Execute is allowed for the account itself and for admins.
func (uc *DeleteUser) Execute(
	ctx context.Context,
	principal domain.Principal,
	userID uint,
) (*DeleteUserResult, error) {

	if principal.UserID != userID && !principal.IsAdmin() {
		return nil, httperr.ErrForbidden(httperr.CodeForbidden)
	}

	u, err := uc.repo.GetUser(ctx, userID)
	if errors.Is(err, domain.ErrRecordNotFound) {
		return nil, httperr.ErrNotFound(httperr.CodeUserNotFound)
	}
	if err != nil {
		return nil, err
	}
	if u.IsDeleted {
		return nil, httperr.ErrNotFound(httperr.CodeUserNotFound)
	}

	res := &DeleteUserResult{}

	// Suspension already hid some of them; they still need the cascade.
	owned, err := uc.repo.ListServices(ctx, domain.ServiceFilter{
		OwnerID:        u.ID,
		IncludeDeleted: true,
	})
	if err != nil {
		return nil, err
	}
	for i := range owned {
		if _, err := uc.services.retire(ctx, principal.UserID, &owned[i]); err != nil {
			return nil, err
		}
		res.ServicesRetired++
	}

	history, err := uc.repo.HasBookingHistory(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	if history {
		u.IsDeleted = true
		if err := uc.repo.UpdateUser(ctx, u); err != nil {
			return nil, err
		}
	} else {
		if err := uc.repo.DeleteUser(ctx, u.ID); err != nil && !errors.Is(err, domain.ErrRecordNotFound) {
			return nil, err
		}
		res.HardDeleted = true
	}

	// Global sweep: bookings hidden by both sides anywhere are gone after this.
	purged, err := uc.purger.Purge(ctx, 0)
	if err != nil {
		return nil, err
	}
	res.PurgedCount = purged

	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.Ptr(principal.UserID),
		Action:   "user_deleted",
		Entity:   "user",
		EntityID: audit.Ptr(u.ID),
		Metadata: map[string]any{
			"hard_deleted":     res.HardDeleted,
			"services_retired": res.ServicesRetired,
		},
	})

	uc.log.Info("account deleted",
		zap.Uint("user_id", u.ID),
		zap.Bool("hard", res.HardDeleted),
		zap.Int("services", res.ServicesRetired),
	)
	return res, nil
}
