package model

import (
	"time"

	"gorm.io/gorm"
)

// ApplianceType is a lookup entry such as "Refrigerador" or "Lavadora".
type ApplianceType struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:120;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (a *ApplianceType) BeforeCreate(*gorm.DB) error {
	assignID(&a.ID)
	return nil
}

// Brand is a manufacturer lookup entry.
type Brand struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:120;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (b *Brand) BeforeCreate(*gorm.DB) error {
	assignID(&b.ID)
	return nil
}
