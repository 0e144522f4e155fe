package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/BruksfildServices01/service-booking/internal/domain/booking"
	"github.com/BruksfildServices01/service-booking/internal/models"
)

func (s *Store) GetService(_ context.Context, id uint) (*models.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	svc := s.serviceRef(id)
	if svc == nil {
		return nil, booking.ErrRecordNotFound
	}
	return svc, nil
}

func (s *Store) CreateService(_ context.Context, svc *models.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	svc.ApplyDefaults()
	svc.ID = s.nextID()
	svc.CreatedAt, svc.UpdatedAt = now, now

	stored := *svc
	stored.Owner = nil
	s.services[svc.ID] = stored
	return nil
}

func (s *Store) UpdateService(_ context.Context, svc *models.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.services[svc.ID]; !ok {
		return booking.ErrRecordNotFound
	}
	svc.UpdatedAt = s.now()

	stored := *svc
	stored.Owner = nil
	s.services[svc.ID] = stored
	return nil
}

func (s *Store) DeleteService(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.services[id]; !ok {
		return booking.ErrRecordNotFound
	}
	for rid, r := range s.reviews {
		if r.ServiceID == id {
			delete(s.reviews, rid)
		}
	}
	delete(s.services, id)
	return nil
}

func (s *Store) TitleTaken(_ context.Context, title string, excludeID uint) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, svc := range s.services {
		if svc.ID == excludeID || svc.IsDeleted {
			continue
		}
		if strings.EqualFold(svc.Title, title) {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) ListServices(_ context.Context, f booking.ServiceFilter) ([]models.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Service{}
	for id, svc := range s.services {
		if svc.IsDeleted && !f.IncludeDeleted {
			continue
		}
		if f.OwnerID != 0 && svc.OwnerID != f.OwnerID {
			continue
		}
		if f.ExcludeOwnerID != 0 && svc.OwnerID == f.ExcludeOwnerID {
			continue
		}
		ref := s.serviceRef(id)
		if f.ExcludeAdminOwned && ref.Owner != nil && ref.Owner.IsAdmin() {
			continue
		}
		out = append(out, *ref)
	}
	sort.Slice(out, func(i, j int) bool {
		return newer(out[i].CreatedAt, out[j].CreatedAt, out[i].ID, out[j].ID)
	})
	return out, nil
}

func (s *Store) SetServicesDeletedByOwner(_ context.Context, ownerID uint, deleted bool) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	now := s.now()
	for id, svc := range s.services {
		if svc.OwnerID != ownerID {
			continue
		}
		svc.IsDeleted = deleted
		svc.UpdatedAt = now
		s.services[id] = svc
		n++
	}
	return n, nil
}

func (s *Store) ListEmptyDeletedServices(_ context.Context) ([]models.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	used := map[uint]bool{}
	for _, b := range s.bookings {
		used[b.ServiceID] = true
	}

	out := []models.Service{}
	for _, svc := range s.services {
		if svc.IsDeleted && !used[svc.ID] {
			out = append(out, svc)
		}
	}
	return out, nil
}
