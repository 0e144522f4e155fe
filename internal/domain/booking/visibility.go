package booking

import "github.com/BruksfildServices01/service-booking/internal/models"

// Visibility is derived from the two per-party hide flags. A booking only
// leaves the store once both parties have hidden it.
//
//	visible ──client──▶ hidden-by-client ──provider──▶ purged
//	visible ──provider─▶ hidden-by-provider ──client──▶ purged
type Visibility int

const (
	Visible Visibility = iota
	HiddenByClient
	HiddenByProvider
	Purged
)

func (v Visibility) String() string {
	switch v {
	case HiddenByClient:
		return "hidden_by_client"
	case HiddenByProvider:
		return "hidden_by_provider"
	case Purged:
		return "purged"
	default:
		return "visible"
	}
}

func VisibilityOf(b *models.Booking) Visibility {
	client := b.StatusCustomerDelete == models.FlagYes
	provider := b.StatusAdminDelete == models.FlagYes

	switch {
	case client && provider:
		return Purged
	case client:
		return HiddenByClient
	case provider:
		return HiddenByProvider
	default:
		return Visible
	}
}

// Next is the state reached when p hides the booking. Hiding twice from the
// same side is a no-op.
func (v Visibility) Next(p Party) Visibility {
	switch p {
	case PartyClient:
		switch v {
		case Visible:
			return HiddenByClient
		case HiddenByProvider:
			return Purged
		}
	case PartyProvider:
		switch v {
		case Visible:
			return HiddenByProvider
		case HiddenByClient:
			return Purged
		}
	}
	return v
}

// Hide sets p's flag on b and returns the resulting state.
func Hide(b *models.Booking, p Party) Visibility {
	switch p {
	case PartyClient:
		b.StatusCustomerDelete = models.FlagYes
	case PartyProvider:
		b.StatusAdminDelete = models.FlagYes
	}
	return VisibilityOf(b)
}
