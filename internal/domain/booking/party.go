package booking

import "github.com/BruksfildServices01/service-booking/internal/models"

// Party is the side of a booking a user stands on.
type Party int

const (
	PartyNone Party = iota
	PartyClient
	PartyProvider
)

// PartyOf resolves userID against the booking. When a user booked their own
// service they act as the client.
func PartyOf(b *models.Booking, userID uint) Party {
	switch userID {
	case b.ClientID:
		return PartyClient
	case b.ProviderID:
		return PartyProvider
	default:
		return PartyNone
	}
}

// Counterpart is the user on the other side of the booking.
func Counterpart(b *models.Booking, p Party) uint {
	if p == PartyClient {
		return b.ProviderID
	}
	return b.ClientID
}
