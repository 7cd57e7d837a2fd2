package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client is a customer who owns appliances brought in for repair.
type Client struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:200;not null;index" json:"name"`
	Email     *string   `gorm:"size:200" json:"email,omitempty"`
	Phone     *string   `gorm:"size:50" json:"phone,omitempty"`
	Address   *string   `gorm:"type:text" json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Client) BeforeCreate(*gorm.DB) error {
	assignID(&c.ID)
	return nil
}

func assignID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}
