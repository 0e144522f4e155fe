package booking

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/service-booking/internal/models"
)

var (
	// ErrRecordNotFound is returned by lookups that match nothing.
	ErrRecordNotFound = errors.New("record not found")
	// ErrOverlap is returned when an insert would double-book a slot.
	ErrOverlap = errors.New("booking overlaps an existing booking")
	// ErrDuplicate is returned when a unique key is already taken.
	ErrDuplicate = errors.New("duplicate record")
)

// Identity fields that must be unique across users.
const (
	IdentityName  = "name"
	IdentityEmail = "email"
	IdentityPhone = "phone"
)

// ServiceFilter narrows ListServices. Zero values disable each filter.
type ServiceFilter struct {
	OwnerID           uint
	ExcludeOwnerID    uint
	IncludeDeleted    bool
	ExcludeAdminOwned bool
}

// RatingStats is the review aggregate of one service.
type RatingStats struct {
	Average float64
	Count   int64
}

// ProviderStats backs the provider dashboard. Bookings the provider hid
// are not counted.
type ProviderStats struct {
	TotalServices    int64 `json:"total_services"`
	UpcomingBookings int64 `json:"upcoming_bookings"`
	Cancelled        int64 `json:"cancelled_bookings"`
	Completed        int64 `json:"completed_bookings"`
	TotalBookings    int64 `json:"total_bookings"`
	UniqueClients    int64 `json:"unique_clients"`
}

// AuditFilter pages the audit trail. From and To bound CreatedAt when set.
type AuditFilter struct {
	Action string
	Entity string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// UserRepository stores accounts.
type UserRepository interface {
	GetUser(ctx context.Context, id uint) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	IdentityTaken(ctx context.Context, field, value string, excludeID uint) (bool, error)
	CreateUser(ctx context.Context, u *models.User) error
	UpdateUser(ctx context.Context, u *models.User) error
	SetUserStatus(ctx context.Context, id uint, status string) (*models.User, error)
	IncrementWarnings(ctx context.Context, id uint) (*models.User, error)
	ListUsers(ctx context.Context, excludeRole string) ([]models.User, error)

	// DeleteUser removes the account together with its notifications and reviews.
	DeleteUser(ctx context.Context, id uint) error
}

// ServiceRepository stores the catalogue.
type ServiceRepository interface {
	GetService(ctx context.Context, id uint) (*models.Service, error)
	CreateService(ctx context.Context, s *models.Service) error
	UpdateService(ctx context.Context, s *models.Service) error
	DeleteService(ctx context.Context, id uint) error
	TitleTaken(ctx context.Context, title string, excludeID uint) (bool, error)
	ListServices(ctx context.Context, f ServiceFilter) ([]models.Service, error)
	SetServicesDeletedByOwner(ctx context.Context, ownerID uint, deleted bool) (int64, error)
	ListEmptyDeletedServices(ctx context.Context) ([]models.Service, error)
}

// BookingRepository stores bookings and the queries the cascades run.
type BookingRepository interface {
	GetBooking(ctx context.Context, id uint) (*models.Booking, error)

	// CreateBookingNoOverlap inserts b unless a slot-holding booking of the
	// same service overlaps it, in which case ErrOverlap is returned.
	CreateBookingNoOverlap(ctx context.Context, b *models.Booking) error

	ListActiveBookingsForService(ctx context.Context, serviceID uint) ([]models.Booking, error)
	UpdateBooking(ctx context.Context, b *models.Booking) error

	// HideBooking sets a single party flag and returns the fresh row.
	HideBooking(ctx context.Context, id uint, p Party) (*models.Booking, error)
	MarkReviewed(ctx context.Context, id uint) (*models.Booking, error)

	CountBookingsForService(ctx context.Context, serviceID uint) (int64, error)
	HasBookingHistory(ctx context.Context, userID uint) (bool, error)

	ListFutureConfirmedForService(ctx context.Context, serviceID uint, now time.Time) ([]models.Booking, error)
	ListFutureConfirmedForUser(ctx context.Context, userID uint, now time.Time) ([]models.Booking, error)

	// CancelBookings bulk-cancels ids; hideForProvider also sets the
	// provider flag.
	CancelBookings(ctx context.Context, ids []uint, at time.Time, hideForProvider bool) (int64, error)

	// PurgeHiddenBookings hard-deletes every booking hidden by both parties,
	// limited to one service when serviceID is non-zero, and returns them.
	PurgeHiddenBookings(ctx context.Context, serviceID uint) ([]models.Booking, error)

	ListClientBookings(ctx context.Context, clientID uint) ([]models.Booking, error)
	ListProviderBookings(ctx context.Context, providerID uint) ([]models.Booking, error)
	ProviderStats(ctx context.Context, providerID uint, now time.Time) (ProviderStats, error)
}

// ReviewRepository stores ratings.
type ReviewRepository interface {
	CreateReview(ctx context.Context, r *models.Review) error
	ListReviewsForService(ctx context.Context, serviceID uint) ([]models.Review, error)
	ListReviews(ctx context.Context) ([]models.Review, error)
	DeleteReviewsForService(ctx context.Context, serviceID uint) (int64, error)
	RatingStats(ctx context.Context, serviceIDs []uint) (map[uint]RatingStats, error)
}

// NotificationRepository stores the in-app inbox.
type NotificationRepository interface {
	CreateNotification(ctx context.Context, n *models.Notification) error
	ListNotifications(ctx context.Context, recipientID uint, limit int) ([]models.Notification, error)
	CountUnread(ctx context.Context, recipientID uint) (int64, error)
	MarkAllRead(ctx context.Context, recipientID uint) error
	DeleteNotification(ctx context.Context, id, recipientID uint) (bool, error)
}

// AuditRepository stores the audit trail.
type AuditRepository interface {
	CreateAuditLog(ctx context.Context, l *models.AuditLog) error
	ListAuditLogs(ctx context.Context, f AuditFilter) ([]models.AuditLog, int64, error)
}

// Repository is the whole entity store.
type Repository interface {
	UserRepository
	ServiceRepository
	BookingRepository
	ReviewRepository
	NotificationRepository
	AuditRepository
}
