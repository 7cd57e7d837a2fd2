package model

import "time"

// TechnicianSubscription holds a technician's browser push subscription.
type TechnicianSubscription struct {
	Endpoint     string    `gorm:"primaryKey" json:"endpoint"`
	TechnicianID string    `gorm:"type:uuid;index;not null" json:"technician_id"`
	P256DH       string    `gorm:"column:p256dh;not null" json:"p256dh"`
	Auth         string    `gorm:"not null" json:"auth"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`

	Technician *Technician `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
