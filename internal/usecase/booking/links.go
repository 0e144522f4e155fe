package booking

// In-app notification targets.
const (
	LinkProviderBookings = "/dashboard/bookings"
	LinkClientBookings   = "/dashboard/my-bookings"
	LinkDashboard        = "/dashboard"
)
