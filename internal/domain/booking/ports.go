package booking

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/service-booking/internal/models"
)

// Notifier delivers in-app notifications and email. Delivery is best
// effort: implementations log failures and never report them.
type Notifier interface {
	Notify(ctx context.Context, recipientID, senderID uint, message, link string)
	Email(ctx context.Context, to, subject, htmlBody string)
}

// ErrSlotBusy is returned by a SlotLocker that gave up waiting for another
// booking of the same service.
var ErrSlotBusy = errors.New("slot lock busy")

// SlotLocker serialises bookings of a single service.
type SlotLocker interface {
	Lock(ctx context.Context, serviceID uint) (release func(), err error)
}

// Archiver keeps a copy of bookings before they are purged.
type Archiver interface {
	Archive(ctx context.Context, bookings []models.Booking) error
}
