package repository

import (
	"context"

	"github.com/BruksfildServices01/service-booking/internal/models"
)

// --------------------------------------------------
// Notifications
// --------------------------------------------------

func (r *GormStore) CreateNotification(ctx context.Context, n *models.Notification) error {
	return r.db.WithContext(ctx).Omit("Sender", "Recipient").Create(n).Error
}

func (r *GormStore) ListNotifications(ctx context.Context, recipientID uint, limit int) ([]models.Notification, error) {
	q := r.db.WithContext(ctx).
		Preload("Sender").
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var notifications []models.Notification
	if err := q.Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *GormStore) CountUnread(ctx context.Context, recipientID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = false", recipientID).
		Count(&count).Error
	return count, err
}

func (r *GormStore) MarkAllRead(ctx context.Context, recipientID uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = false", recipientID).
		Update("is_read", true).Error
}

func (r *GormStore) DeleteNotification(ctx context.Context, id, recipientID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Delete(&models.Notification{})
	return res.RowsAffected > 0, res.Error
}
