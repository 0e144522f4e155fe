package booking

import (
	"context"
	"errors"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/service-booking/internal/domain/booking"
)

// Purger removes bookings both parties have hidden and then garbage
// collects soft-deleted services left without bookings.
type Purger struct {
	repo     domain.Repository
	archiver domain.Archiver
	log      *zap.Logger
}

func NewPurger(repo domain.Repository, archiver domain.Archiver, log *zap.Logger) *Purger {
	return &Purger{repo: repo, archiver: archiver, log: log}
}

// Purge hard-deletes hidden bookings of one service, or of every service
// when serviceID is zero. Archive failures are logged only.
func (p *Purger) Purge(ctx context.Context, serviceID uint) (int, error) {
	purged, err := p.repo.PurgeHiddenBookings(ctx, serviceID)
	if err != nil {
		return 0, err
	}
	if len(purged) == 0 {
		return 0, nil
	}

	if err := p.archiver.Archive(ctx, purged); err != nil {
		p.log.Warn("archive purged bookings", zap.Int("count", len(purged)), zap.Error(err))
	}
	return len(purged), nil
}

// Collect deletes the service when it is soft-deleted and has no bookings.
func (p *Purger) Collect(ctx context.Context, serviceID uint) (bool, error) {
	svc, err := p.repo.GetService(ctx, serviceID)
	if errors.Is(err, domain.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !svc.IsDeleted {
		return false, nil
	}

	count, err := p.repo.CountBookingsForService(ctx, serviceID)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	if err := p.repo.DeleteService(ctx, serviceID); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Converge runs Purge and then Collect for a single service.
func (p *Purger) Converge(ctx context.Context, serviceID uint) (purged int, collected bool, err error) {
	if purged, err = p.Purge(ctx, serviceID); err != nil {
		return 0, false, err
	}
	collected, err = p.Collect(ctx, serviceID)
	return purged, collected, err
}
