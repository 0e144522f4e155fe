package memory

import (
	"context"
	"sort"

	"github.com/BruksfildServices01/service-booking/internal/domain/booking"
	"github.com/BruksfildServices01/service-booking/internal/models"
)

func (s *Store) CreateReview(_ context.Context, r *models.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.reviews {
		if existing.BookingID == r.BookingID {
			return booking.ErrDuplicate
		}
	}

	r.ID = s.nextID()
	r.CreatedAt = s.now()

	stored := *r
	stored.Client, stored.Service = nil, nil
	s.reviews[r.ID] = stored
	return nil
}

func (s *Store) ListReviewsForService(_ context.Context, serviceID uint) ([]models.Review, error) {
	return s.listReviews(func(r models.Review) bool { return r.ServiceID == serviceID }), nil
}

func (s *Store) ListReviews(_ context.Context) ([]models.Review, error) {
	return s.listReviews(func(models.Review) bool { return true }), nil
}

func (s *Store) DeleteReviewsForService(_ context.Context, serviceID uint) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, r := range s.reviews {
		if r.ServiceID == serviceID {
			delete(s.reviews, id)
			n++
		}
	}
	return n, nil
}

func (s *Store) RatingStats(_ context.Context, serviceIDs []uint) (map[uint]booking.RatingStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := make(map[uint]bool, len(serviceIDs))
	for _, id := range serviceIDs {
		wanted[id] = true
	}

	sums := map[uint]int{}
	out := map[uint]booking.RatingStats{}
	for _, r := range s.reviews {
		if !wanted[r.ServiceID] {
			continue
		}
		st := out[r.ServiceID]
		st.Count++
		sums[r.ServiceID] += r.Rating
		out[r.ServiceID] = st
	}
	for id, st := range out {
		st.Average = float64(sums[id]) / float64(st.Count)
		out[id] = st
	}
	return out, nil
}

func (s *Store) listReviews(keep func(models.Review) bool) []models.Review {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Review{}
	for _, r := range s.reviews {
		if !keep(r) {
			continue
		}
		r.Client = s.userRef(r.ClientID)
		r.Service = s.serviceRef(r.ServiceID)
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		return newer(out[i].CreatedAt, out[j].CreatedAt, out[i].ID, out[j].ID)
	})
	return out
}
