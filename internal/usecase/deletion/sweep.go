package deletion

import (
	"context"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/service-booking/internal/domain/booking"
	ucBooking "github.com/BruksfildServices01/service-booking/internal/usecase/booking"
)

type SweepResult struct {
	Purged    int
	Collected int
}

// Sweep purges every booking hidden by both parties and then collects
// soft-deleted services that no longer have bookings.
type Sweep struct {
	repo   domain.ServiceRepository
	purger *ucBooking.Purger
	log    *zap.Logger
}

func NewSweep(repo domain.ServiceRepository, purger *ucBooking.Purger, log *zap.Logger) *Sweep {
	return &Sweep{repo: repo, purger: purger, log: log}
}

func (uc *Sweep) Execute(ctx context.Context) (SweepResult, error) {
	var res SweepResult

	purged, err := uc.purger.Purge(ctx, 0)
	if err != nil {
		return res, err
	}
	res.Purged = purged

	empty, err := uc.repo.ListEmptyDeletedServices(ctx)
	if err != nil {
		return res, err
	}
	for _, svc := range empty {
		ok, err := uc.purger.Collect(ctx, svc.ID)
		if err != nil {
			uc.log.Warn("collect service", zap.Uint("service_id", svc.ID), zap.Error(err))
			continue
		}
		if ok {
			res.Collected++
		}
	}

	uc.log.Info("sweep finished", zap.Int("purged", res.Purged), zap.Int("collected", res.Collected))
	return res, nil
}
