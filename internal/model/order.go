package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderStatus is the lifecycle state of a service order. Transitions between
// the four values are not restricted.
type OrderStatus string

const (
	StatusPending    OrderStatus = "Pendiente"
	StatusInProgress OrderStatus = "En proceso"
	StatusCompleted  OrderStatus = "Completado"
	StatusCancelled  OrderStatus = "Cancelado"
)

// OrderStatuses lists every status in lifecycle order.
var OrderStatuses = []OrderStatus{StatusPending, StatusInProgress, StatusCompleted, StatusCancelled}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// ServiceType classifies the work requested on an order.
type ServiceType string

const (
	ServiceRepair       ServiceType = "Reparación"
	ServiceMaintenance  ServiceType = "Mantenimiento"
	ServiceInstallation ServiceType = "Instalación"
	ServiceDiagnosis    ServiceType = "Diagnóstico"
	ServiceWarranty     ServiceType = "Garantía"
)

// Urgency is the priority the client asked for.
type Urgency string

const (
	UrgencyLow    Urgency = "Baja"
	UrgencyMedium Urgency = "Media"
	UrgencyHigh   Urgency = "Alta"
)

// ServiceOrder is a unit of repair work on one appliance for one client.
// OrderNumber is written once on insert and excluded from every update.
type ServiceOrder struct {
	ID                 string      `gorm:"type:uuid;primaryKey" json:"id"`
	OrderNumber        string      `gorm:"size:32;uniqueIndex;not null;<-:create" json:"order_number"`
	ClientID           string      `gorm:"type:uuid;index;not null" json:"client_id"`
	ApplianceType      string      `gorm:"size:120;not null" json:"appliance_type"`
	BrandID            *string     `gorm:"type:uuid;index" json:"brand_id,omitempty"`
	Model              *string     `gorm:"size:120" json:"model,omitempty"`
	SerialNumber       *string     `gorm:"size:120" json:"serial_number,omitempty"`
	ProblemDescription string      `gorm:"type:text;not null" json:"problem_description"`
	Observations       *string     `gorm:"type:text" json:"observations,omitempty"`
	ServiceType        ServiceType `gorm:"size:32;not null" json:"service_type"`
	Urgency            Urgency     `gorm:"size:16;not null" json:"urgency"`
	Status             OrderStatus `gorm:"size:32;not null;index" json:"status"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`

	// Associations
	Client      *Client        `gorm:"constraint:OnDelete:CASCADE" json:"client,omitempty"`
	Brand       *Brand         `gorm:"constraint:OnDelete:SET NULL" json:"brand,omitempty"`
	Parts       []ServicePart  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"parts,omitempty"`
	Labor       []ServiceLabor `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"labor,omitempty"`
	Appointment *Appointment   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"appointment,omitempty"`
}

func (o *ServiceOrder) BeforeCreate(*gorm.DB) error {
	assignID(&o.ID)
	return nil
}

// ServicePart is a replacement part billed on an order.
type ServicePart struct {
	ID          string          `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID     string          `gorm:"type:uuid;index;not null" json:"order_id"`
	Description string          `gorm:"size:255;not null" json:"description"`
	Quantity    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (p *ServicePart) BeforeCreate(*gorm.DB) error {
	assignID(&p.ID)
	return nil
}

// ServiceLabor is a block of billed work time on an order.
type ServiceLabor struct {
	ID          string          `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID     string          `gorm:"type:uuid;index;not null" json:"order_id"`
	Description string          `gorm:"size:255;not null" json:"description"`
	Hours       decimal.Decimal `gorm:"type:numeric(8,2);not null" json:"hours"`
	Rate        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"rate"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (l *ServiceLabor) BeforeCreate(*gorm.DB) error {
	assignID(&l.ID)
	return nil
}

// OrderCounter backs order number generation, one row per calendar year.
type OrderCounter struct {
	Year    int `gorm:"primaryKey;autoIncrement:false"`
	Counter int `gorm:"not null"`
}
