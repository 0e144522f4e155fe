package repository

import (
	"context"

	"github.com/BruksfildServices01/service-booking/internal/domain/booking"
	"github.com/BruksfildServices01/service-booking/internal/models"
)

// --------------------------------------------------
// Reviews
// --------------------------------------------------

func (r *GormStore) CreateReview(ctx context.Context, rv *models.Review) error {
	return translate(r.db.WithContext(ctx).Omit("Client", "Service").Create(rv).Error)
}

func (r *GormStore) ListReviewsForService(ctx context.Context, serviceID uint) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Where("service_id = ?", serviceID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *GormStore) ListReviews(ctx context.Context) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service.Owner").
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *GormStore) DeleteReviewsForService(ctx context.Context, serviceID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("service_id = ?", serviceID).
		Delete(&models.Review{})
	return res.RowsAffected, res.Error
}

func (r *GormStore) RatingStats(ctx context.Context, serviceIDs []uint) (map[uint]booking.RatingStats, error) {
	out := map[uint]booking.RatingStats{}
	if len(serviceIDs) == 0 {
		return out, nil
	}

	var rows []struct {
		ServiceID uint
		Average   float64
		Count     int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("service_id, AVG(rating) AS average, COUNT(*) AS count").
		Where("service_id IN ?", serviceIDs).
		Group("service_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		out[row.ServiceID] = booking.RatingStats{Average: row.Average, Count: row.Count}
	}
	return out, nil
}
