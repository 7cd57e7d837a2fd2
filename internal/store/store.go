package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"appliance-service-backend/internal/model"
)

// Store defines the interface for all database operations.
type Store interface {
	Clients
	Orders
	Lines
	Appointments
	Technicians
	Catalog
	Subscriptions

	DashboardStats(ctx context.Context, today model.Date) (*model.DashboardStats, error)
}

// Clients manages the client directory.
type Clients interface {
	ListClients(ctx context.Context, search string) ([]model.Client, error)
	GetClient(ctx context.Context, id string) (*model.Client, error)
	CreateClient(ctx context.Context, in model.ClientInput) (*model.Client, error)
	UpdateClient(ctx context.Context, id string, in model.ClientInput) (*model.Client, error)
	DeleteClient(ctx context.Context, id string) error
}

// Orders manages service orders and their status.
type Orders interface {
	ListOrders(ctx context.Context, f model.OrderFilter) ([]model.ServiceOrder, error)
	GetOrder(ctx context.Context, id string) (*model.ServiceOrder, error)
	CreateOrder(ctx context.Context, in model.OrderInput) (*model.ServiceOrder, error)
	UpdateOrder(ctx context.Context, id string, in model.OrderInput) (*model.ServiceOrder, error)
	DeleteOrder(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id string, status string) error
}

// Lines manages the billed part and labor lines of an order.
type Lines interface {
	ListParts(ctx context.Context, orderID string) ([]model.ServicePart, error)
	AddPart(ctx context.Context, orderID string, in model.PartInput) (*model.ServicePart, error)
	DeletePart(ctx context.Context, orderID, partID string) error
	ListLabor(ctx context.Context, orderID string) ([]model.ServiceLabor, error)
	AddLabor(ctx context.Context, orderID string, in model.LaborInput) (*model.ServiceLabor, error)
	DeleteLabor(ctx context.Context, orderID, laborID string) error
}

// Appointments manages the scheduled visit of each order.
type Appointments interface {
	ScheduleAppointment(ctx context.Context, in model.ScheduleInput) (*model.Appointment, error)
	GetAppointmentForOrder(ctx context.Context, orderID string) (*model.Appointment, error)
	DeleteAppointment(ctx context.Context, orderID string) error
	ListAppointments(ctx context.Context) ([]model.Appointment, error)
	ListAppointmentsForDate(ctx context.Context, date model.Date) ([]model.AppointmentView, error)
	AppointmentNotice(ctx context.Context, appointmentID string) (*model.AppointmentNotice, error)
}

// Technicians manages staff eligible for visits.
type Technicians interface {
	ListTechnicians(ctx context.Context, activeOnly bool) ([]model.Technician, error)
	GetTechnician(ctx context.Context, id string) (*model.Technician, error)
	CreateTechnician(ctx context.Context, in model.TechnicianInput) (*model.Technician, error)
	UpdateTechnician(ctx context.Context, id string, in model.TechnicianInput) (*model.Technician, error)
	DeleteTechnician(ctx context.Context, id string) error
}

// Catalog manages the appliance type and brand lookup tables.
type Catalog interface {
	ListApplianceTypes(ctx context.Context) ([]model.ApplianceType, error)
	CreateApplianceType(ctx context.Context, in model.LookupInput) (*model.ApplianceType, error)
	DeleteApplianceType(ctx context.Context, id string) error
	ListBrands(ctx context.Context) ([]model.Brand, error)
	CreateBrand(ctx context.Context, in model.LookupInput) (*model.Brand, error)
	DeleteBrand(ctx context.Context, id string) error
}

// Subscriptions manages technicians' push subscriptions.
type Subscriptions interface {
	SaveSubscription(ctx context.Context, technicianID string, in model.SubscriptionInput) error
	DeleteSubscription(ctx context.Context, technicianID, endpoint string) error
	SubscriptionsForTechnician(ctx context.Context, technicianID string) ([]model.TechnicianSubscription, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db  *gorm.DB
	log logrus.FieldLogger
	now func() time.Time
}

// NewGormStore creates a new GORM-backed store. A nil logger uses the
// logrus standard logger.
func NewGormStore(db *gorm.DB, log logrus.FieldLogger) Store {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &gormStore{
		db:  db,
		log: log.WithField("component", "store"),
		now: time.Now,
	}
}

// fail passes validation and not-found errors through untouched and wraps
// everything else as a logged StoreError.
func (s *gormStore) fail(op string, err error) error {
	if err == nil {
		return nil
	}
	var ve *model.ValidationError
	if errors.As(err, &ve) || errors.Is(err, ErrNotFound) {
		return err
	}
	s.log.WithFields(logrus.Fields{"op": op}).WithError(err).Error("store operation failed")
	return &StoreError{Op: op, Err: err}
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// first loads the row with the given id into dest. Ids that are not UUIDs
// cannot exist and are reported as not found without a query.
func first(tx *gorm.DB, dest any, entity, id string) error {
	if !validID(id) {
		return notFound(entity, id)
	}
	err := tx.First(dest, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(entity, id)
	}
	return err
}

// exists reports a NotFoundError unless a row with id exists in the table of m.
func exists(tx *gorm.DB, m any, entity, id string) error {
	if !validID(id) {
		return notFound(entity, id)
	}
	var n int64
	if err := tx.Model(m).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return notFound(entity, id)
	}
	return nil
}
