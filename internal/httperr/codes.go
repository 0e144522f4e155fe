package httperr

const (
	CodeInvalidRequest     = "invalid_request"
	CodeInvalidTimeWindow  = "invalid_time_window"
	CodeInvalidState       = "invalid_state"
	CodeInvalidAction      = "invalid_action"
	CodeInvalidRating      = "invalid_rating"
	CodeAlreadyReviewed    = "already_reviewed"
	CodeInvalidCredentials = "invalid_credentials"
	CodeInvalidEmailDomain = "invalid_email_domain"
	CodeUnauthorized       = "unauthorized"

	CodeForbidden           = "forbidden"
	CodeSelfBooking         = "self_booking_forbidden"
	CodeNotServiceOwner     = "not_service_owner"
	CodeNotBookingParty     = "not_booking_party"
	CodeAdminRequired       = "admin_required"
	CodeAccountSuspended    = "account_suspended"
	CodeCannotModerateSelf  = "cannot_moderate_self"
	CodeCannotModerateAdmin = "cannot_moderate_admin"

	CodeUserNotFound         = "user_not_found"
	CodeServiceNotFound      = "service_not_found"
	CodeBookingNotFound      = "booking_not_found"
	CodeNotificationNotFound = "notification_not_found"

	CodeSlotConflict = "slot_conflict"

	CodeEmailTaken = "email_taken"
	CodeNameTaken  = "name_taken"
	CodePhoneTaken = "phone_taken"
	CodeTitleTaken = "title_taken"

	CodeInternal = "internal_error"
)

var messages = map[string]string{
	CodeInvalidRequest:       "invalid request",
	CodeInvalidTimeWindow:    "available hours must be HH:MM and start before they end",
	CodeInvalidState:         "booking is not in a state that allows this operation",
	CodeInvalidAction:        "unknown moderation action",
	CodeInvalidRating:        "rating must be between 0 and 5",
	CodeAlreadyReviewed:      "booking has already been reviewed",
	CodeInvalidCredentials:   "invalid email or password",
	CodeInvalidEmailDomain:   "the email domain does not accept mail",
	CodeUnauthorized:         "authentication required",
	CodeForbidden:            "forbidden",
	CodeSelfBooking:          "you cannot book your own service",
	CodeNotServiceOwner:      "only the service owner can do this",
	CodeNotBookingParty:      "you are not a party to this booking",
	CodeAdminRequired:        "admin access required",
	CodeAccountSuspended:     "account is suspended",
	CodeCannotModerateSelf:   "admins cannot moderate themselves",
	CodeCannotModerateAdmin:  "admins cannot be moderated",
	CodeUserNotFound:         "user not found",
	CodeServiceNotFound:      "service not found",
	CodeBookingNotFound:      "booking not found",
	CodeNotificationNotFound: "notification not found",
	CodeSlotConflict:         "this time slot is already booked",
	CodeEmailTaken:           "email already registered",
	CodeNameTaken:            "name already taken",
	CodePhoneTaken:           "phone already registered",
	CodeTitleTaken:           "a service with this title already exists",
	CodeInternal:             "internal server error",
}

// Message returns the human readable text for a code.
func Message(code string) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return code
}
