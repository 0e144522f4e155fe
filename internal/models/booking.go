package models

import "time"

const (
	FlagYes = "yes"
	FlagNo  = "no"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ServiceID uint     `gorm:"index:idx_bookings_service_start,priority:1;not null" json:"service_id"`
	Service   *Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"service,omitempty"`

	ClientID uint  `gorm:"index;not null" json:"client_id"`
	Client   *User `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"client,omitempty"`

	// Owner of the service at creation time.
	ProviderID uint  `gorm:"index:idx_bookings_provider_start,priority:1;not null" json:"provider_id"`
	Provider   *User `gorm:"foreignKey:ProviderID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"provider,omitempty"`

	StartTime time.Time `gorm:"index:idx_bookings_service_start,priority:2;index:idx_bookings_provider_start,priority:2;not null" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`

	Status string `gorm:"size:20;default:'confirmed';index" json:"status"`

	StatusCustomerDelete string `gorm:"size:3;default:'no'" json:"status_customer_delete"`
	StatusAdminDelete    string `gorm:"size:3;default:'no'" json:"status_admin_delete"`

	IsReviewed  bool       `gorm:"default:false" json:"is_reviewed"`
	Note        string     `gorm:"size:255" json:"note"`
	CancelledAt *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
