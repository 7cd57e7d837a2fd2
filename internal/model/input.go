package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ClientInput is the create/update payload for a client.
type ClientInput struct {
	Name    string  `json:"name" validate:"required,max=200"`
	Email   *string `json:"email" validate:"omitempty,email,max=200"`
	Phone   *string `json:"phone" validate:"omitempty,max=50"`
	Address *string `json:"address"`
}

func (in *ClientInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = trimOptional(in.Email)
	in.Phone = trimOptional(in.Phone)
	in.Address = trimOptional(in.Address)
	return validateStruct(in).OrNil()
}

// OrderInput is the create/update payload for a service order. The order
// number is never accepted from callers.
type OrderInput struct {
	ClientID           string      `json:"client_id" validate:"required"`
	ApplianceType      string      `json:"appliance_type" validate:"required,max=120"`
	BrandID            *string     `json:"brand_id"`
	Model              *string     `json:"model" validate:"omitempty,max=120"`
	SerialNumber       *string     `json:"serial_number" validate:"omitempty,max=120"`
	ProblemDescription string      `json:"problem_description" validate:"required,min=10"`
	Observations       *string     `json:"observations"`
	ServiceType        ServiceType `json:"service_type" validate:"omitempty,oneof=Reparación Mantenimiento Instalación Diagnóstico Garantía"`
	Urgency            Urgency     `json:"urgency" validate:"omitempty,oneof=Baja Media Alta"`
	Status             OrderStatus `json:"status"`
}

func (in *OrderInput) Validate() error {
	in.ClientID = strings.TrimSpace(in.ClientID)
	in.ApplianceType = strings.TrimSpace(in.ApplianceType)
	in.ProblemDescription = strings.TrimSpace(in.ProblemDescription)
	in.BrandID = trimOptional(in.BrandID)
	in.Model = trimOptional(in.Model)
	in.SerialNumber = trimOptional(in.SerialNumber)
	in.Observations = trimOptional(in.Observations)
	if in.ServiceType == "" {
		in.ServiceType = ServiceRepair
	}
	if in.Urgency == "" {
		in.Urgency = UrgencyMedium
	}

	ve := validateStruct(in)
	if in.Status != "" && !in.Status.Valid() {
		ve.Add("status", "oneof=Pendiente|En proceso|Completado|Cancelado")
	}
	return ve.OrNil()
}

// PartInput adds a part line to an order.
type PartInput struct {
	Description string          `json:"description" validate:"required,max=255"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

func (in *PartInput) Validate() error {
	in.Description = strings.TrimSpace(in.Description)
	ve := validateStruct(in)
	requireAmount(ve, "quantity", in.Quantity, moneyLimit)
	requireAmount(ve, "unit_price", in.UnitPrice, moneyLimit)
	return ve.OrNil()
}

// LaborInput adds a labor line to an order.
type LaborInput struct {
	Description string          `json:"description" validate:"required,max=255"`
	Hours       decimal.Decimal `json:"hours"`
	Rate        decimal.Decimal `json:"rate"`
}

func (in *LaborInput) Validate() error {
	in.Description = strings.TrimSpace(in.Description)
	ve := validateStruct(in)
	requireAmount(ve, "hours", in.Hours, hoursLimit)
	requireAmount(ve, "rate", in.Rate, moneyLimit)
	return ve.OrNil()
}

// TechnicianInput is the create/update payload for a technician. A nil
// IsActive means active on create and unchanged on update.
type TechnicianInput struct {
	Name      string  `json:"name" validate:"required,max=200"`
	Specialty string  `json:"specialty" validate:"required,max=120"`
	Phone     *string `json:"phone" validate:"omitempty,max=50"`
	Email     *string `json:"email" validate:"omitempty,email,max=200"`
	IsActive  *bool   `json:"is_active"`
}

func (in *TechnicianInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Specialty = strings.TrimSpace(in.Specialty)
	in.Phone = trimOptional(in.Phone)
	in.Email = trimOptional(in.Email)
	return validateStruct(in).OrNil()
}

// LookupInput creates an appliance type or brand.
type LookupInput struct {
	Name string `json:"name" validate:"required,max=120"`
}

func (in *LookupInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	return validateStruct(in).OrNil()
}

// ScheduleInput books or moves the visit of an order. Date and TimeSlot are
// raw strings; the store normalises and checks them.
type ScheduleInput struct {
	OrderID      string  `json:"-"`
	Date         string  `json:"date"`
	TimeSlot     string  `json:"time_slot"`
	TechnicianID *string `json:"technician_id"`
}

// SubscriptionInput registers a technician's browser for push notices.
type SubscriptionInput struct {
	Endpoint string `json:"endpoint" validate:"required,url"`
	P256DH   string `json:"p256dh" validate:"required"`
	Auth     string `json:"auth" validate:"required"`
}

func (in *SubscriptionInput) Validate() error {
	return validateStruct(in).OrNil()
}

// OrderFilter narrows order listings. Zero values match everything.
type OrderFilter struct {
	Status   OrderStatus
	ClientID string
	Search   string
}

// Exclusive upper bounds of the numeric(12,2) and numeric(8,2) line columns.
var (
	moneyLimit = decimal.New(1, 10)
	hoursLimit = decimal.New(1, 6)
)

// requireAmount accepts v only if the column stores it unchanged and it stays
// positive there: at most two decimals and below limit.
func requireAmount(ve *ValidationError, field string, v, limit decimal.Decimal) {
	switch {
	case !v.IsPositive():
		ve.Add(field, "gt=0")
	case !v.Equal(v.Round(2)):
		ve.Add(field, "max_decimals=2")
	case v.GreaterThanOrEqual(limit):
		ve.Add(field, "lt="+limit.String())
	}
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
