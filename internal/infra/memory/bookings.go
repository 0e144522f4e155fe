package memory

import (
	"context"
	"sort"
	"time"

	"github.com/BruksfildServices01/service-booking/internal/domain/booking"
	"github.com/BruksfildServices01/service-booking/internal/models"
)

func (s *Store) GetBooking(_ context.Context, id uint) (*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, booking.ErrRecordNotFound
	}
	b = s.withParties(b)
	return &b, nil
}

// CreateBookingNoOverlap checks and inserts under the store lock, which
// gives the same guarantee as the postgres exclusion constraint.
func (s *Store) CreateBookingNoOverlap(_ context.Context, b *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.services[b.ServiceID]; !ok {
		return booking.ErrRecordNotFound
	}

	for _, existing := range s.bookings {
		if existing.ServiceID != b.ServiceID || !booking.Status(existing.Status).Occupies() {
			continue
		}
		if booking.Overlaps(existing.StartTime, existing.EndTime, b.StartTime, b.EndTime) {
			return booking.ErrOverlap
		}
	}

	now := s.now()
	b.ID = s.nextID()
	if b.Status == "" {
		b.Status = string(booking.InitialStatus())
	}
	if b.StatusCustomerDelete == "" {
		b.StatusCustomerDelete = models.FlagNo
	}
	if b.StatusAdminDelete == "" {
		b.StatusAdminDelete = models.FlagNo
	}
	b.CreatedAt, b.UpdatedAt = now, now
	s.bookings[b.ID] = detach(*b)
	return nil
}

func (s *Store) ListActiveBookingsForService(_ context.Context, serviceID uint) ([]models.Booking, error) {
	return s.filterBookings(func(b models.Booking) bool {
		return b.ServiceID == serviceID && booking.Status(b.Status).Occupies()
	}, false), nil
}

func (s *Store) UpdateBooking(_ context.Context, b *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookings[b.ID]; !ok {
		return booking.ErrRecordNotFound
	}
	b.UpdatedAt = s.now()
	s.bookings[b.ID] = detach(*b)
	return nil
}

func (s *Store) HideBooking(_ context.Context, id uint, p booking.Party) (*models.Booking, error) {
	return s.mutateBooking(id, func(b *models.Booking) {
		booking.Hide(b, p)
	})
}

func (s *Store) MarkReviewed(_ context.Context, id uint) (*models.Booking, error) {
	return s.mutateBooking(id, func(b *models.Booking) {
		b.IsReviewed = true
		b.StatusCustomerDelete = models.FlagYes
	})
}

func (s *Store) CountBookingsForService(_ context.Context, serviceID uint) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, b := range s.bookings {
		if b.ServiceID == serviceID {
			n++
		}
	}
	return n, nil
}

func (s *Store) HasBookingHistory(_ context.Context, userID uint) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.bookings {
		if b.ClientID == userID || b.ProviderID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) ListFutureConfirmedForService(_ context.Context, serviceID uint, now time.Time) ([]models.Booking, error) {
	return s.filterBookings(func(b models.Booking) bool {
		return b.ServiceID == serviceID &&
			b.Status == string(booking.StatusConfirmed) &&
			b.StartTime.After(now)
	}, true), nil
}

func (s *Store) ListFutureConfirmedForUser(_ context.Context, userID uint, now time.Time) ([]models.Booking, error) {
	return s.filterBookings(func(b models.Booking) bool {
		return (b.ClientID == userID || b.ProviderID == userID) &&
			b.Status == string(booking.StatusConfirmed) &&
			b.StartTime.After(now)
	}, true), nil
}

func (s *Store) CancelBookings(_ context.Context, ids []uint, at time.Time, hideForProvider bool) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for _, id := range ids {
		b, ok := s.bookings[id]
		if !ok {
			continue
		}
		cancelledAt := at
		b.Status = string(booking.StatusCancelled)
		b.CancelledAt = &cancelledAt
		if hideForProvider {
			b.StatusAdminDelete = models.FlagYes
		}
		b.UpdatedAt = s.now()
		s.bookings[id] = b
		n++
	}
	return n, nil
}

func (s *Store) PurgeHiddenBookings(_ context.Context, serviceID uint) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	purged := []models.Booking{}
	for id, b := range s.bookings {
		if serviceID != 0 && b.ServiceID != serviceID {
			continue
		}
		if booking.VisibilityOf(&b) != booking.Purged {
			continue
		}
		purged = append(purged, b)
		delete(s.bookings, id)
	}
	sort.Slice(purged, func(i, j int) bool { return purged[i].ID < purged[j].ID })
	return purged, nil
}

func (s *Store) ListClientBookings(_ context.Context, clientID uint) ([]models.Booking, error) {
	out := s.filterBookings(func(b models.Booking) bool {
		return b.ClientID == clientID && b.StatusCustomerDelete != models.FlagYes
	}, true)
	newestFirst(out)
	return out, nil
}

func (s *Store) ListProviderBookings(_ context.Context, providerID uint) ([]models.Booking, error) {
	out := s.filterBookings(func(b models.Booking) bool {
		return b.ProviderID == providerID && b.StatusAdminDelete != models.FlagYes
	}, true)
	newestFirst(out)
	return out, nil
}

func (s *Store) ProviderStats(_ context.Context, providerID uint, now time.Time) (booking.ProviderStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var st booking.ProviderStats
	for _, svc := range s.services {
		if svc.OwnerID == providerID && !svc.IsDeleted {
			st.TotalServices++
		}
	}

	clients := map[uint]struct{}{}
	for _, b := range s.bookings {
		if b.ProviderID != providerID || b.StatusAdminDelete == models.FlagYes {
			continue
		}
		st.TotalBookings++
		clients[b.ClientID] = struct{}{}

		switch {
		case b.Status == string(booking.StatusCancelled):
			st.Cancelled++
		case b.Status == string(booking.StatusConfirmed) && b.StartTime.After(now):
			st.UpcomingBookings++
		case b.Status == string(booking.StatusConfirmed):
			st.Completed++
		}
	}
	st.UniqueClients = int64(len(clients))
	return st, nil
}

// filterBookings returns matching bookings ordered by start time.
func (s *Store) filterBookings(keep func(models.Booking) bool, withParties bool) []models.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Booking{}
	for _, b := range s.bookings {
		if !keep(b) {
			continue
		}
		if withParties {
			b = s.withParties(b)
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartTime.Equal(out[j].StartTime) {
			return out[i].ID < out[j].ID
		}
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out
}

func (s *Store) mutateBooking(id uint, fn func(*models.Booking)) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, booking.ErrRecordNotFound
	}
	fn(&b)
	b.UpdatedAt = s.now()
	s.bookings[id] = b

	out := s.withParties(b)
	return &out, nil
}

func newestFirst(bs []models.Booking) {
	sort.SliceStable(bs, func(i, j int) bool {
		return newer(bs[i].CreatedAt, bs[j].CreatedAt, bs[i].ID, bs[j].ID)
	})
}

func detach(b models.Booking) models.Booking {
	b.Service, b.Client, b.Provider = nil, nil, nil
	return b
}
