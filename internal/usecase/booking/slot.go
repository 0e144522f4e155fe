package booking

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/service-booking/internal/domain/booking"
)

// SlotChecker answers whether a service is free over [start,end).
type SlotChecker struct {
	repo domain.BookingRepository
}

func NewSlotChecker(repo domain.BookingRepository) *SlotChecker {
	return &SlotChecker{repo: repo}
}

// IsSlotFree is advisory; only the insert path inside the slot lock is
// authoritative.
func (uc *SlotChecker) IsSlotFree(ctx context.Context, serviceID uint, start, end time.Time) (bool, error) {
	existing, err := uc.repo.ListActiveBookingsForService(ctx, serviceID)
	if err != nil {
		return false, err
	}
	return domain.FirstConflict(existing, start, end) == nil, nil
}
