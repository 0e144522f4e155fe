package moderation

import (
	"fmt"

	"github.com/BruksfildServices01/service-booking/internal/httperr"
	"github.com/BruksfildServices01/service-booking/internal/models"
)

// Action is one of the closed set of admin moderation actions.
type Action string

const (
	Warn     Action = "warn"
	Suspend  Action = "suspend"
	Activate Action = "activate"
)

const DefaultReason = "Violation of community guidelines"

func ParseAction(s string) (Action, error) {
	switch a := Action(s); a {
	case Warn, Suspend, Activate:
		return a, nil
	default:
		return "", httperr.ErrBusiness(httperr.CodeInvalidAction)
	}
}

// ServiceEffect says what happens to the target's services.
type ServiceEffect int

const (
	ServicesUnchanged ServiceEffect = iota
	ServicesHidden
	ServicesRestored
)

// Effects is everything an action does to the target account. It is
// computed up front and executed by the caller.
type Effects struct {
	Action Action
	Reason string

	IncrementWarnings bool
	// Empty leaves the account status as is.
	SetStatus string

	Services ServiceEffect
	// Cancels confirmed future bookings where the target is either party.
	CancelFutureBookings bool

	EmailSubject string
}

// Plan returns the effects of a on the target account.
func Plan(a Action, reason string) (Effects, error) {
	if reason == "" {
		reason = DefaultReason
	}

	e := Effects{Action: a, Reason: reason}

	switch a {
	case Warn:
		e.IncrementWarnings = true
		e.EmailSubject = "Official Warning Alert ⚠️"
	case Suspend:
		e.SetStatus = models.UserStatusSuspended
		e.Services = ServicesHidden
		e.CancelFutureBookings = true
		e.EmailSubject = "Account Suspended 🚫"
	case Activate:
		// Bookings cancelled by a suspension stay cancelled.
		e.SetStatus = models.UserStatusActive
		e.Services = ServicesRestored
		e.EmailSubject = "Account Reactivated ✅"
	default:
		return Effects{}, httperr.ErrBusiness(httperr.CodeInvalidAction)
	}

	return e, nil
}

// Notice is the in-app message for the target after the effects applied.
func (e Effects) Notice(u *models.User) string {
	switch e.Action {
	case Warn:
		return fmt.Sprintf("⚠️ Warning #%d: %s", u.Warnings, e.Reason)
	case Suspend:
		return fmt.Sprintf("🚫 Your account has been suspended: %s", e.Reason)
	default:
		return "✅ Your account has been reactivated."
	}
}
