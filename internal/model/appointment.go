package model

import (
	"time"

	"gorm.io/gorm"
)

// TimeSlots is the fixed set of daily visit windows, in chronological order.
var TimeSlots = []string{
	"09:00-11:00",
	"11:00-13:00",
	"13:00-15:00",
	"15:00-17:00",
	"17:00-19:00",
}

// SlotIndex returns the position of slot in TimeSlots, or -1.
func SlotIndex(slot string) int {
	for i, s := range TimeSlots {
		if s == slot {
			return i
		}
	}
	return -1
}

// Appointment is the scheduled visit for an order. The application keeps at
// most one per order; TechnicianID is a loose reference and may be empty.
type Appointment struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID      string    `gorm:"type:uuid;index;not null" json:"order_id"`
	Date         Date      `gorm:"not null;index" json:"date"`
	TimeSlot     string    `gorm:"size:16;not null" json:"time_slot"`
	TechnicianID *string   `gorm:"size:64" json:"technician_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(*gorm.DB) error {
	assignID(&a.ID)
	return nil
}

// AppointmentView is an appointment joined with the order, client and
// technician it refers to, as shown in the daily schedule.
type AppointmentView struct {
	Appointment
	OrderNumber    string      `json:"order_number"`
	OrderStatus    OrderStatus `json:"order_status"`
	ApplianceType  string      `json:"appliance_type"`
	ClientName     string      `json:"client_name"`
	ClientAddress  string      `json:"client_address,omitempty"`
	TechnicianName string      `json:"technician_name,omitempty"`
}

// AppointmentNotice is what a technician is told when assigned a visit.
type AppointmentNotice struct {
	AppointmentID string
	TechnicianID  string
	OrderNumber   string
	ClientName    string
	Date          Date
	TimeSlot      string
}
