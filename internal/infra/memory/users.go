package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/BruksfildServices01/service-booking/internal/domain/booking"
	"github.com/BruksfildServices01/service-booking/internal/models"
)

func (s *Store) GetUser(_ context.Context, id uint) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u := s.userRef(id)
	if u == nil {
		return nil, booking.ErrRecordNotFound
	}
	return u, nil
}

func (s *Store) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, booking.ErrRecordNotFound
}

func (s *Store) IdentityTaken(_ context.Context, field, value string, excludeID uint) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.ID == excludeID {
			continue
		}
		switch field {
		case booking.IdentityName:
			if u.Name == value {
				return true, nil
			}
		case booking.IdentityEmail:
			if strings.EqualFold(u.Email, value) {
				return true, nil
			}
		case booking.IdentityPhone:
			if u.Phone != nil && *u.Phone == value {
				return true, nil
			}
		}
	}
	return false, nil
}

func (s *Store) CreateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	u.ID = s.nextID()
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	if u.Status == "" {
		u.Status = models.UserStatusActive
	}
	u.CreatedAt, u.UpdatedAt = now, now
	s.users[u.ID] = *u
	return nil
}

func (s *Store) UpdateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.ID]; !ok {
		return booking.ErrRecordNotFound
	}
	u.UpdatedAt = s.now()
	s.users[u.ID] = *u
	return nil
}

func (s *Store) SetUserStatus(_ context.Context, id uint, status string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, booking.ErrRecordNotFound
	}
	u.Status = status
	u.UpdatedAt = s.now()
	s.users[id] = u
	return &u, nil
}

func (s *Store) IncrementWarnings(_ context.Context, id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, booking.ErrRecordNotFound
	}
	u.Warnings++
	u.UpdatedAt = s.now()
	s.users[id] = u
	return &u, nil
}

func (s *Store) ListUsers(_ context.Context, excludeRole string) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		if excludeRole != "" && u.Role == excludeRole {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		return newer(out[i].CreatedAt, out[j].CreatedAt, out[i].ID, out[j].ID)
	})
	return out, nil
}

func (s *Store) DeleteUser(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return booking.ErrRecordNotFound
	}
	for nid, n := range s.notifications {
		switch {
		case n.RecipientID == id:
			delete(s.notifications, nid)
		case n.SenderID != nil && *n.SenderID == id:
			n.SenderID = nil
			s.notifications[nid] = n
		}
	}
	for rid, r := range s.reviews {
		if r.ClientID == id {
			delete(s.reviews, rid)
		}
	}
	delete(s.users, id)
	return nil
}
