package model

import (
	"time"

	"gorm.io/gorm"
)

// Technician is a staff member who can be assigned to appointments while active.
type Technician struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	Specialty string    `gorm:"size:120;not null" json:"specialty"`
	Phone     *string   `gorm:"size:50" json:"phone,omitempty"`
	Email     *string   `gorm:"size:200" json:"email,omitempty"`
	IsActive  bool      `gorm:"not null;index" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (t *Technician) BeforeCreate(*gorm.DB) error {
	assignID(&t.ID)
	return nil
}
