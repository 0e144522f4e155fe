package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/service-booking/internal/domain/booking"
	"github.com/BruksfildServices01/service-booking/internal/httperr"
)

// GormStore is the postgres implementation of the entity store.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

var _ booking.Repository = (*GormStore)(nil)

// translate maps driver errors onto the store sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return booking.ErrRecordNotFound
	case httperr.IsUniqueViolation(err):
		return booking.ErrDuplicate
	default:
		return err
	}
}
