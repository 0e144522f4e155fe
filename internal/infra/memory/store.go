// Package memory is an in-process implementation of the entity store used
// by STORE_DRIVER=memory and by the package tests.
package memory

import (
	"sync"
	"time"

	"github.com/BruksfildServices01/service-booking/internal/domain/booking"
	"github.com/BruksfildServices01/service-booking/internal/models"
)

type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	seq uint

	users         map[uint]models.User
	services      map[uint]models.Service
	bookings      map[uint]models.Booking
	reviews       map[uint]models.Review
	notifications map[uint]models.Notification
	auditLogs     []models.AuditLog
}

var _ booking.Repository = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		now:           time.Now,
		users:         map[uint]models.User{},
		services:      map[uint]models.Service{},
		bookings:      map[uint]models.Booking{},
		reviews:       map[uint]models.Review{},
		notifications: map[uint]models.Notification{},
	}
}

func (s *Store) nextID() uint {
	s.seq++
	return s.seq
}

func (s *Store) userRef(id uint) *models.User {
	u, ok := s.users[id]
	if !ok {
		return nil
	}
	return &u
}

func (s *Store) serviceRef(id uint) *models.Service {
	svc, ok := s.services[id]
	if !ok {
		return nil
	}
	svc.Owner = s.userRef(svc.OwnerID)
	return &svc
}

func (s *Store) withParties(b models.Booking) models.Booking {
	b.Service = s.serviceRef(b.ServiceID)
	b.Client = s.userRef(b.ClientID)
	b.Provider = s.userRef(b.ProviderID)
	return b
}

func newer(a, b time.Time, aID, bID uint) bool {
	if a.Equal(b) {
		return aID > bID
	}
	return a.After(b)
}
