package models

import "time"

const (
	DefaultServiceDuration = 30
	DefaultAvailableFrom   = "09:00"
	DefaultAvailableTo     = "17:00"
)

type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	OwnerID uint  `gorm:"index;not null" json:"owner_id"`
	Owner   *User `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"owner,omitempty"`

	Title       string  `gorm:"size:120;not null" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	Location    string  `gorm:"size:255" json:"location"`
	Duration    int     `gorm:"default:30" json:"duration"`
	Price       float64 `gorm:"default:0" json:"price"`

	AvailableFrom string `gorm:"size:5;default:'09:00'" json:"available_from"`
	AvailableTo   string `gorm:"size:5;default:'17:00'" json:"available_to"`

	IsDeleted bool `gorm:"default:false;index" json:"is_deleted"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ApplyDefaults fills unset fields with the catalogue defaults.
func (s *Service) ApplyDefaults() {
	if s.Duration <= 0 {
		s.Duration = DefaultServiceDuration
	}
	if s.AvailableFrom == "" {
		s.AvailableFrom = DefaultAvailableFrom
	}
	if s.AvailableTo == "" {
		s.AvailableTo = DefaultAvailableTo
	}
}
