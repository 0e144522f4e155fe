package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/service-booking/internal/domain/booking"
	"github.com/BruksfildServices01/service-booking/internal/models"
)

// --------------------------------------------------
// Users
// --------------------------------------------------

func (r *GormStore) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *GormStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", email).
		First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *GormStore) IdentityTaken(ctx context.Context, field, value string, excludeID uint) (bool, error) {
	q := r.db.WithContext(ctx).Model(&models.User{}).Where("id <> ?", excludeID)

	switch field {
	case booking.IdentityEmail:
		q = q.Where("LOWER(email) = LOWER(?)", value)
	case booking.IdentityName:
		q = q.Where("name = ?", value)
	case booking.IdentityPhone:
		q = q.Where("phone = ?", value)
	default:
		return false, nil
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormStore) CreateUser(ctx context.Context, u *models.User) error {
	return translate(r.db.WithContext(ctx).Create(u).Error)
}

func (r *GormStore) UpdateUser(ctx context.Context, u *models.User) error {
	return translate(r.db.WithContext(ctx).Save(u).Error)
}

func (r *GormStore) SetUserStatus(ctx context.Context, id uint, status string) (*models.User, error) {
	var u models.User
	res := r.db.WithContext(ctx).
		Model(&u).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, booking.ErrRecordNotFound
	}
	return &u, nil
}

func (r *GormStore) IncrementWarnings(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	res := r.db.WithContext(ctx).
		Model(&u).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Update("warnings", gorm.Expr("warnings + 1"))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, booking.ErrRecordNotFound
	}
	return &u, nil
}

func (r *GormStore) ListUsers(ctx context.Context, excludeRole string) ([]models.User, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if excludeRole != "" {
		q = q.Where("role <> ?", excludeRole)
	}

	var users []models.User
	if err := q.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *GormStore) DeleteUser(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipient_id = ?", id).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		if err := tx.Where("client_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.User{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return booking.ErrRecordNotFound
		}
		return nil
	})
}
