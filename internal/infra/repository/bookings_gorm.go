package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/service-booking/internal/domain/booking"
	"github.com/BruksfildServices01/service-booking/internal/httperr"
	"github.com/BruksfildServices01/service-booking/internal/models"
)

// --------------------------------------------------
// Bookings (create / conflict)
// --------------------------------------------------

// CreateBookingNoOverlap locks the service row, re-checks for overlapping
// slot-holders and inserts inside one transaction. The bookings_no_overlap
// exclusion constraint backs this up when callers race past the check.
func (r *GormStore) CreateBookingNoOverlap(ctx context.Context, b *models.Booking) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var svc models.Service
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&svc, b.ServiceID).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.
			Model(&models.Booking{}).
			Where(
				"service_id = ? AND status <> ? AND start_time < ? AND end_time > ?",
				b.ServiceID,
				string(booking.StatusCancelled),
				b.EndTime,
				b.StartTime,
			).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return booking.ErrOverlap
		}

		return tx.Omit(clause.Associations).Create(b).Error
	})

	switch {
	case err == nil:
		return nil
	case httperr.IsExclusionConflict(err):
		return booking.ErrOverlap
	default:
		return translate(err)
	}
}

func (r *GormStore) ListActiveBookingsForService(ctx context.Context, serviceID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Where("service_id = ? AND status <> ?", serviceID, string(booking.StatusCancelled)).
		Order("start_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// --------------------------------------------------
// Bookings (state change)
// --------------------------------------------------

func (r *GormStore) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Client").
		Preload("Provider").
		First(&b, id).Error; err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

func (r *GormStore) UpdateBooking(ctx context.Context, b *models.Booking) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(b).Error
}

func (r *GormStore) HideBooking(ctx context.Context, id uint, p booking.Party) (*models.Booking, error) {
	column := "status_customer_delete"
	if p == booking.PartyProvider {
		column = "status_admin_delete"
	}
	return r.updateBookingColumns(ctx, id, map[string]any{column: models.FlagYes})
}

func (r *GormStore) MarkReviewed(ctx context.Context, id uint) (*models.Booking, error) {
	return r.updateBookingColumns(ctx, id, map[string]any{
		"is_reviewed":            true,
		"status_customer_delete": models.FlagYes,
	})
}

func (r *GormStore) updateBookingColumns(ctx context.Context, id uint, cols map[string]any) (*models.Booking, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", id).
		Updates(cols)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, booking.ErrRecordNotFound
	}
	return r.GetBooking(ctx, id)
}

func (r *GormStore) CancelBookings(ctx context.Context, ids []uint, at time.Time, hideForProvider bool) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	cols := map[string]any{
		"status":       string(booking.StatusCancelled),
		"cancelled_at": at,
	}
	if hideForProvider {
		cols["status_admin_delete"] = models.FlagYes
	}

	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id IN ?", ids).
		Updates(cols)
	return res.RowsAffected, res.Error
}

func (r *GormStore) PurgeHiddenBookings(ctx context.Context, serviceID uint) ([]models.Booking, error) {
	q := r.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("status_customer_delete = ? AND status_admin_delete = ?", models.FlagYes, models.FlagYes)
	if serviceID != 0 {
		q = q.Where("service_id = ?", serviceID)
	}

	var purged []models.Booking
	if err := q.Delete(&purged).Error; err != nil {
		return nil, err
	}
	return purged, nil
}

// --------------------------------------------------
// Bookings (queries)
// --------------------------------------------------

func (r *GormStore) CountBookingsForService(ctx context.Context, serviceID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("service_id = ?", serviceID).
		Count(&count).Error
	return count, err
}

func (r *GormStore) HasBookingHistory(ctx context.Context, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("client_id = ? OR provider_id = ?", userID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *GormStore) ListFutureConfirmedForService(ctx context.Context, serviceID uint, now time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Where("service_id = ? AND status = ? AND start_time > ?", serviceID, string(booking.StatusConfirmed), now).
		Order("start_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *GormStore) ListFutureConfirmedForUser(ctx context.Context, userID uint, now time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Client").
		Preload("Provider").
		Where("(client_id = ? OR provider_id = ?) AND status = ? AND start_time > ?",
			userID, userID, string(booking.StatusConfirmed), now).
		Order("start_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *GormStore) ListClientBookings(ctx context.Context, clientID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Service.Owner").
		Preload("Provider").
		Where("client_id = ? AND status_customer_delete <> ?", clientID, models.FlagYes).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *GormStore) ListProviderBookings(ctx context.Context, providerID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Client").
		Where("provider_id = ? AND status_admin_delete <> ?", providerID, models.FlagYes).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *GormStore) ProviderStats(ctx context.Context, providerID uint, now time.Time) (booking.ProviderStats, error) {
	var st booking.ProviderStats

	if err := r.db.WithContext(ctx).
		Model(&models.Service{}).
		Where("owner_id = ? AND is_deleted = false", providerID).
		Count(&st.TotalServices).Error; err != nil {
		return st, err
	}

	var counts struct {
		TotalBookings    int64
		UpcomingBookings int64
		Cancelled        int64
		Completed        int64
		UniqueClients    int64
	}

	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("provider_id = ? AND status_admin_delete <> ?", providerID, models.FlagYes).
		Select(
			"COUNT(*) AS total_bookings, "+
				"COUNT(*) FILTER (WHERE status = ? AND start_time > ?) AS upcoming_bookings, "+
				"COUNT(*) FILTER (WHERE status = ?) AS cancelled, "+
				"COUNT(*) FILTER (WHERE status = ? AND start_time <= ?) AS completed, "+
				"COUNT(DISTINCT client_id) AS unique_clients",
			string(booking.StatusConfirmed), now,
			string(booking.StatusCancelled),
			string(booking.StatusConfirmed), now,
		).
		Scan(&counts).Error; err != nil {
		return st, err
	}

	st.TotalBookings = counts.TotalBookings
	st.UpcomingBookings = counts.UpcomingBookings
	st.Cancelled = counts.Cancelled
	st.Completed = counts.Completed
	st.UniqueClients = counts.UniqueClients
	return st, nil
}
