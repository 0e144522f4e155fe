package booking

import "github.com/BruksfildServices01/service-booking/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	// StatusPending is accepted by the store but never produced by the API.
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// ===============================
// Validations
// ===============================

// CanCancel rejects a second cancellation of the same booking.
func CanCancel(current Status) error {
	if current == StatusCancelled {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

func InitialStatus() Status {
	return StatusConfirmed
}

// Occupies reports whether a booking in this status holds its slot.
func (s Status) Occupies() bool {
	return s != StatusCancelled
}
