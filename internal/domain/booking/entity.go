package booking

import (
	"time"

	"github.com/BruksfildServices01/service-booking/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(b *models.Booking, now time.Time) error {
	if err := CanCancel(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCancelled)
	b.CancelledAt = &now
	return nil
}

// New builds a confirmed booking of svc for clientID starting at start.
func New(svc *models.Service, clientID uint, start time.Time, note string) *models.Booking {
	return &models.Booking{
		ServiceID:            svc.ID,
		ClientID:             clientID,
		ProviderID:           svc.OwnerID,
		StartTime:            start,
		EndTime:              EndOf(start, svc.Duration),
		Status:               string(InitialStatus()),
		StatusCustomerDelete: models.FlagNo,
		StatusAdminDelete:    models.FlagNo,
		Note:                 note,
	}
}
