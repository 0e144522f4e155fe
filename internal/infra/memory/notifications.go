package memory

import (
	"context"
	"sort"

	"github.com/BruksfildServices01/service-booking/internal/models"
)

func (s *Store) CreateNotification(_ context.Context, n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n.ID = s.nextID()
	n.CreatedAt, n.UpdatedAt = now, now

	stored := *n
	stored.Sender, stored.Recipient = nil, nil
	s.notifications[n.ID] = stored
	return nil
}

func (s *Store) ListNotifications(_ context.Context, recipientID uint, limit int) ([]models.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Notification{}
	for _, n := range s.notifications {
		if n.RecipientID != recipientID {
			continue
		}
		if n.SenderID != nil {
			n.Sender = s.userRef(*n.SenderID)
		}
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool {
		return newer(out[i].CreatedAt, out[j].CreatedAt, out[i].ID, out[j].ID)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) CountUnread(_ context.Context, recipientID uint) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var c int64
	for _, n := range s.notifications {
		if n.RecipientID == recipientID && !n.IsRead {
			c++
		}
	}
	return c, nil
}

func (s *Store) MarkAllRead(_ context.Context, recipientID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, n := range s.notifications {
		if n.RecipientID == recipientID && !n.IsRead {
			n.IsRead = true
			n.UpdatedAt = now
			s.notifications[id] = n
		}
	}
	return nil
}

func (s *Store) DeleteNotification(_ context.Context, id, recipientID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notifications[id]
	if !ok || n.RecipientID != recipientID {
		return false, nil
	}
	delete(s.notifications, id)
	return true, nil
}
