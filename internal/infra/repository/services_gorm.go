package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/service-booking/internal/domain/booking"
	"github.com/BruksfildServices01/service-booking/internal/models"
)

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *GormStore) GetService(ctx context.Context, id uint) (*models.Service, error) {
	var svc models.Service
	if err := r.db.WithContext(ctx).
		Preload("Owner").
		First(&svc, id).Error; err != nil {
		return nil, translate(err)
	}
	return &svc, nil
}

func (r *GormStore) CreateService(ctx context.Context, svc *models.Service) error {
	svc.ApplyDefaults()
	return translate(r.db.WithContext(ctx).Omit("Owner").Create(svc).Error)
}

func (r *GormStore) UpdateService(ctx context.Context, svc *models.Service) error {
	return translate(r.db.WithContext(ctx).Omit("Owner").Save(svc).Error)
}

func (r *GormStore) DeleteService(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("service_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Service{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return booking.ErrRecordNotFound
		}
		return nil
	})
}

func (r *GormStore) TitleTaken(ctx context.Context, title string, excludeID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Service{}).
		Where("LOWER(title) = LOWER(?) AND is_deleted = false AND id <> ?", title, excludeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormStore) ListServices(ctx context.Context, f booking.ServiceFilter) ([]models.Service, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Service{}).
		Preload("Owner").
		Order("services.created_at DESC")

	if !f.IncludeDeleted {
		q = q.Where("services.is_deleted = false")
	}
	if f.OwnerID != 0 {
		q = q.Where("services.owner_id = ?", f.OwnerID)
	}
	if f.ExcludeOwnerID != 0 {
		q = q.Where("services.owner_id <> ?", f.ExcludeOwnerID)
	}
	if f.ExcludeAdminOwned {
		q = q.Joins("JOIN users owners ON owners.id = services.owner_id").
			Where("owners.role <> ?", models.RoleAdmin)
	}

	var services []models.Service
	if err := q.Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *GormStore) SetServicesDeletedByOwner(ctx context.Context, ownerID uint, deleted bool) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Service{}).
		Where("owner_id = ?", ownerID).
		Update("is_deleted", deleted)
	return res.RowsAffected, res.Error
}

func (r *GormStore) ListEmptyDeletedServices(ctx context.Context) ([]models.Service, error) {
	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("is_deleted = true").
		Where("NOT EXISTS (SELECT 1 FROM bookings b WHERE b.service_id = services.id)").
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}
