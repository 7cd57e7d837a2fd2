package store

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"appliance-service-backend/internal/billing"
	"appliance-service-backend/internal/model"
)

// newMockDB creates a gorm connection backed by sqlmock speaking postgres.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)

	return gormDB, mock
}

// newTestStore opens a private in-memory sqlite database with the full schema.
func newTestStore(t *testing.T) (*gormStore, *test.Hook) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&model.Client{}, &model.ApplianceType{}, &model.Brand{}, &model.Technician{},
		&model.OrderCounter{}, &model.ServiceOrder{}, &model.ServicePart{}, &model.ServiceLabor{},
		&model.Appointment{}, &model.TechnicianSubscription{},
	))

	log, hook := test.NewNullLogger()
	s := NewGormStore(db, log).(*gormStore)
	s.now = func() time.Time { return time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC) }
	return s, hook
}

func ptr[T any](v T) *T { return &v }

func seedOrder(t *testing.T, s *gormStore) (*model.Client, *model.ServiceOrder) {
	t.Helper()
	ctx := context.Background()
	c, err := s.CreateClient(ctx, model.ClientInput{Name: "Ana Pérez", Phone: ptr("555-0101"), Address: ptr("Av. Juárez 10")})
	require.NoError(t, err)
	o, err := s.CreateOrder(ctx, model.OrderInput{
		ClientID:           c.ID,
		ApplianceType:      "Refrigerador",
		ProblemDescription: "No enfría en la parte de abajo",
	})
	require.NoError(t, err)
	return c, o
}

func TestOrderLifecycle(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	c, first := seedOrder(t, s)
	assert.Equal(t, "OS-2025-00001", first.OrderNumber)
	assert.Equal(t, model.StatusPending, first.Status)
	assert.Equal(t, model.ServiceRepair, first.ServiceType)
	assert.Equal(t, model.UrgencyMedium, first.Urgency)

	second, err := s.CreateOrder(ctx, model.OrderInput{
		ClientID:           c.ID,
		ApplianceType:      "Lavadora",
		ProblemDescription: "Hace ruido al centrifugar",
	})
	require.NoError(t, err)
	assert.Equal(t, "OS-2025-00002", second.OrderNumber)

	_, err = s.AddPart(ctx, first.ID, model.PartInput{
		Description: "Termostato",
		Quantity:    decimal.NewFromInt(2),
		UnitPrice:   decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	_, err = s.AddLabor(ctx, first.ID, model.LaborInput{
		Description: "Diagnóstico y cambio",
		Hours:       decimal.NewFromInt(1),
		Rate:        decimal.NewFromInt(50),
	})
	require.NoError(t, err)

	parts, err := s.ListParts(ctx, first.ID)
	require.NoError(t, err)
	labor, err := s.ListLabor(ctx, first.ID)
	require.NoError(t, err)

	b := billing.NewCalculator(decimal.RequireFromString("0.16")).Compute(parts, labor)
	assert.Equal(t, "50", b.LaborTotal.String())
	assert.Equal(t, "20", b.PartsTotal.String())
	assert.Equal(t, "70", b.Subtotal.String())
	assert.Equal(t, "11.2", b.Tax.String())
	assert.Equal(t, "81.2", b.Total.String())

	got, err := s.GetOrder(ctx, first.ID)
	require.NoError(t, err)
	assert.Len(t, got.Parts, 1)
	assert.Len(t, got.Labor, 1)
	require.NotNil(t, got.Client)
	assert.Equal(t, "Ana Pérez", got.Client.Name)

	require.NoError(t, s.SetStatus(ctx, first.ID, "Completado"))
	require.NoError(t, s.SetStatus(ctx, first.ID, "pendiente"))
	got, err = s.GetOrder(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, got.Status)
}

func TestUpdateOrder_KeepsOrderNumber(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	c, o := seedOrder(t, s)

	updated, err := s.UpdateOrder(ctx, o.ID, model.OrderInput{
		ClientID:           c.ID,
		ApplianceType:      "Refrigerador dúplex",
		ProblemDescription: "No enfría y gotea agua",
		Urgency:            model.UrgencyHigh,
		Status:             model.StatusInProgress,
	})
	require.NoError(t, err)
	assert.Equal(t, o.OrderNumber, updated.OrderNumber)
	assert.Equal(t, model.StatusInProgress, updated.Status)

	got, err := s.GetOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.OrderNumber, got.OrderNumber)
	assert.Equal(t, "Refrigerador dúplex", got.ApplianceType)
	assert.Equal(t, model.UrgencyHigh, got.Urgency)
}

func TestCreateOrder_Validation(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateOrder(ctx, model.OrderInput{ApplianceType: "Horno", ProblemDescription: "corto"})
	var ve *model.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "client_id")
	assert.Contains(t, ve.Fields, "problem_description")

	_, err = s.CreateOrder(ctx, model.OrderInput{
		ClientID:           uuid.NewString(),
		ApplianceType:      "Horno",
		ProblemDescription: "No calienta nada",
	})
	assert.ErrorIs(t, err, ErrNotFound)

	var n int64
	require.NoError(t, s.db.Model(&model.OrderCounter{}).Count(&n).Error)
	assert.Zero(t, n, "a failed create must not consume a number")
}

func TestSetStatus_Errors(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	_, o := seedOrder(t, s)

	var ve *model.ValidationError
	assert.ErrorAs(t, s.SetStatus(ctx, o.ID, "Archivado"), &ve)
	assert.ErrorIs(t, s.SetStatus(ctx, uuid.NewString(), "Completado"), ErrNotFound)
	assert.ErrorIs(t, s.SetStatus(ctx, "not-a-uuid", "Completado"), ErrNotFound)
}

func TestLines_NotFound(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	_, o := seedOrder(t, s)

	_, err := s.AddPart(ctx, uuid.NewString(), model.PartInput{
		Description: "Tarjeta", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.AddLabor(ctx, o.ID, model.LaborInput{Description: "Visita", Hours: decimal.Zero, Rate: decimal.NewFromInt(10)})
	var ve *model.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "gt=0", ve.Fields["hours"])

	_, err = s.AddPart(ctx, o.ID, model.PartInput{
		Description: "Tornillo", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.RequireFromString("0.004"),
	})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "max_decimals=2", ve.Fields["unit_price"])

	assert.ErrorIs(t, s.DeletePart(ctx, o.ID, uuid.NewString()), ErrNotFound)
	assert.ErrorIs(t, s.DeleteLabor(ctx, o.ID, "x"), ErrNotFound)

	p, err := s.AddPart(ctx, o.ID, model.PartInput{
		Description: "Tarjeta", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	require.NoError(t, s.DeletePart(ctx, o.ID, p.ID))
	parts, err := s.ListParts(ctx, o.ID)
	require.NoError(t, err)
	assert.Empty(t, parts)
}

func TestScheduleAppointment_Upserts(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	_, o := seedOrder(t, s)

	tech, err := s.CreateTechnician(ctx, model.TechnicianInput{Name: "Luis Gómez", Specialty: "Refrigeración"})
	require.NoError(t, err)
	assert.True(t, tech.IsActive)

	_, err = s.ScheduleAppointment(ctx, model.ScheduleInput{OrderID: o.ID, Date: "2025-01-15", TimeSlot: "09:00-11:00"})
	require.NoError(t, err)
	moved, err := s.ScheduleAppointment(ctx, model.ScheduleInput{
		OrderID:      o.ID,
		Date:         "2025-01-16",
		TimeSlot:     "15:00 - 17:00",
		TechnicianID: &tech.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "15:00-17:00", moved.TimeSlot)

	all, err := s.ListAppointments(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "2025-01-16", all[0].Date.String())
	assert.Equal(t, "15:00-17:00", all[0].TimeSlot)
	require.NotNil(t, all[0].TechnicianID)
	assert.Equal(t, tech.ID, *all[0].TechnicianID)

	got, err := s.GetAppointmentForOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, moved.ID, got.ID)

	notice, err := s.AppointmentNotice(ctx, got.ID)
	require.NoError(t, err)
	assert.Equal(t, o.OrderNumber, notice.OrderNumber)
	assert.Equal(t, "Ana Pérez", notice.ClientName)
	assert.Equal(t, tech.ID, notice.TechnicianID)
}

func TestScheduleAppointment_Rejects(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	_, o := seedOrder(t, s)

	_, err := s.ScheduleAppointment(ctx, model.ScheduleInput{OrderID: o.ID})
	var ve *model.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "required", ve.Fields["date"])
	assert.Equal(t, "required", ve.Fields["time_slot"])

	_, err = s.ScheduleAppointment(ctx, model.ScheduleInput{OrderID: o.ID, Date: "2025-01-15", TimeSlot: "08:00-09:00"})
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "time_slot")

	_, err = s.ScheduleAppointment(ctx, model.ScheduleInput{OrderID: uuid.NewString(), Date: "2025-01-15", TimeSlot: "09:00-11:00"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.ScheduleAppointment(ctx, model.ScheduleInput{
		OrderID: o.ID, Date: "2025-01-15", TimeSlot: "09:00-11:00", TechnicianID: ptr(uuid.NewString()),
	})
	assert.ErrorIs(t, err, ErrNotFound)

	inactive, err := s.CreateTechnician(ctx, model.TechnicianInput{Name: "Eva Ruiz", Specialty: "Lavado", IsActive: ptr(false)})
	require.NoError(t, err)
	_, err = s.ScheduleAppointment(ctx, model.ScheduleInput{
		OrderID: o.ID, Date: "2025-01-15", TimeSlot: "09:00-11:00", TechnicianID: &inactive.ID,
	})
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "technician_id")

	all, err := s.ListAppointments(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestListAppointmentsForDate(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	c, o1 := seedOrder(t, s)
	o2, err := s.CreateOrder(ctx, model.OrderInput{ClientID: c.ID, ApplianceType: "Estufa", ProblemDescription: "Un quemador no prende"})
	require.NoError(t, err)
	o3, err := s.CreateOrder(ctx, model.OrderInput{ClientID: c.ID, ApplianceType: "Horno", ProblemDescription: "No llega a temperatura"})
	require.NoError(t, err)
	tech, err := s.CreateTechnician(ctx, model.TechnicianInput{Name: "Luis Gómez", Specialty: "Gas"})
	require.NoError(t, err)

	for _, in := range []model.ScheduleInput{
		{OrderID: o1.ID, Date: "2025-01-15", TimeSlot: "15:00-17:00"},
		{OrderID: o2.ID, Date: "2025-01-15", TimeSlot: "09:00-11:00", TechnicianID: &tech.ID},
		{OrderID: o3.ID, Date: "2025-01-16", TimeSlot: "09:00-11:00"},
	} {
		_, err := s.ScheduleAppointment(ctx, in)
		require.NoError(t, err)
	}

	day, err := model.ParseDate("2025-01-15")
	require.NoError(t, err)
	views, err := s.ListAppointmentsForDate(ctx, day)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, o2.OrderNumber, views[0].OrderNumber)
	assert.Equal(t, "Luis Gómez", views[0].TechnicianName)
	assert.Equal(t, "Estufa", views[0].ApplianceType)
	assert.Equal(t, o1.OrderNumber, views[1].OrderNumber)
	assert.Equal(t, "Ana Pérez", views[1].ClientName)
	assert.Equal(t, "Av. Juárez 10", views[1].ClientAddress)
	assert.Empty(t, views[1].TechnicianName)

	empty, err := model.ParseDate("2025-02-01")
	require.NoError(t, err)
	views, err = s.ListAppointmentsForDate(ctx, empty)
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestDeleteClient_Cascades(t *testing.T) {
	s, hook := newTestStore(t)
	ctx := context.Background()
	c, o := seedOrder(t, s)

	_, err := s.AddPart(ctx, o.ID, model.PartInput{Description: "Filtro", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(5)})
	require.NoError(t, err)
	_, err = s.ScheduleAppointment(ctx, model.ScheduleInput{OrderID: o.ID, Date: "2025-01-15", TimeSlot: "11:00-13:00"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteClient(ctx, c.ID))

	for _, m := range []any{&model.ServiceOrder{}, &model.ServicePart{}, &model.Appointment{}} {
		var n int64
		require.NoError(t, s.db.Model(m).Count(&n).Error)
		assert.Zero(t, n)
	}
	assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)

	_, err = s.GetClient(ctx, c.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.DeleteClient(ctx, c.ID), ErrNotFound)
}

func TestListOrders_Filters(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	c, o := seedOrder(t, s)
	require.NoError(t, s.SetStatus(ctx, o.ID, "En proceso"))

	got, err := s.ListOrders(ctx, model.OrderFilter{ClientID: c.ID, Status: model.StatusInProgress})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, o.OrderNumber, got[0].OrderNumber)

	got, err = s.ListOrders(ctx, model.OrderFilter{Search: "os-2025"})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = s.ListOrders(ctx, model.OrderFilter{Status: model.StatusCancelled})
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = s.ListOrders(ctx, model.OrderFilter{ClientID: uuid.NewString()})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListOrders_MalformedClientIDSkipsQuery(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewGormStore(db, nil)

	got, err := s.ListOrders(context.Background(), model.OrderFilter{ClientID: "cliente-1"})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListClients_Search(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	for _, in := range []model.ClientInput{
		{Name: "Ana Pérez", Email: ptr("ana@example.com")},
		{Name: "Bruno Díaz", Phone: ptr("555-7788")},
	} {
		_, err := s.CreateClient(ctx, in)
		require.NoError(t, err)
	}

	all, err := s.ListClients(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byEmail, err := s.ListClients(ctx, "ANA@")
	require.NoError(t, err)
	require.Len(t, byEmail, 1)
	assert.Equal(t, "Ana Pérez", byEmail[0].Name)

	byPhone, err := s.ListClients(ctx, "7788")
	require.NoError(t, err)
	require.Len(t, byPhone, 1)
	assert.Equal(t, "Bruno Díaz", byPhone[0].Name)
}

func TestCatalog(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	b, err := s.CreateBrand(ctx, model.LookupInput{Name: "Mabe"})
	require.NoError(t, err)
	_, err = s.CreateBrand(ctx, model.LookupInput{Name: " mabe "})
	var ve *model.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "unique", ve.Fields["name"])

	c, err := s.CreateClient(ctx, model.ClientInput{Name: "Carla"})
	require.NoError(t, err)
	o, err := s.CreateOrder(ctx, model.OrderInput{
		ClientID: c.ID, ApplianceType: "Lavadora", BrandID: &b.ID, ProblemDescription: "No drena el agua",
	})
	require.NoError(t, err)

	require.NoError(t, s.DeleteBrand(ctx, b.ID))
	got, err := s.GetOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Nil(t, got.BrandID)

	at, err := s.CreateApplianceType(ctx, model.LookupInput{Name: "Lavadora"})
	require.NoError(t, err)
	types, err := s.ListApplianceTypes(ctx)
	require.NoError(t, err)
	assert.Len(t, types, 1)
	require.NoError(t, s.DeleteApplianceType(ctx, at.ID))
	assert.ErrorIs(t, s.DeleteApplianceType(ctx, at.ID), ErrNotFound)
}

func TestTechnicians(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	_, o := seedOrder(t, s)

	tech, err := s.CreateTechnician(ctx, model.TechnicianInput{Name: "Luis Gómez", Specialty: "Refrigeración"})
	require.NoError(t, err)
	_, err = s.CreateTechnician(ctx, model.TechnicianInput{Name: "Eva Ruiz", Specialty: "Lavado", IsActive: ptr(false)})
	require.NoError(t, err)

	active, err := s.ListTechnicians(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	all, err := s.ListTechnicians(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	updated, err := s.UpdateTechnician(ctx, tech.ID, model.TechnicianInput{Name: "Luis Gómez", Specialty: "Línea blanca"})
	require.NoError(t, err)
	assert.True(t, updated.IsActive, "nil is_active leaves the flag unchanged")

	require.NoError(t, s.SaveSubscription(ctx, tech.ID, model.SubscriptionInput{
		Endpoint: "https://push.example.com/1", P256DH: "key", Auth: "auth",
	}))
	subs, err := s.SubscriptionsForTechnician(ctx, tech.ID)
	require.NoError(t, err)
	assert.Len(t, subs, 1)

	_, err = s.ScheduleAppointment(ctx, model.ScheduleInput{OrderID: o.ID, Date: "2025-01-15", TimeSlot: "09:00-11:00", TechnicianID: &tech.ID})
	require.NoError(t, err)

	require.NoError(t, s.DeleteTechnician(ctx, tech.ID))
	appt, err := s.GetAppointmentForOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Nil(t, appt.TechnicianID)
	subs, err = s.SubscriptionsForTechnician(ctx, tech.ID)
	require.NoError(t, err)
	assert.Empty(t, subs)
}

func TestDashboardStats(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	_, o := seedOrder(t, s)
	require.NoError(t, s.SetStatus(ctx, o.ID, "En proceso"))
	_, err := s.ScheduleAppointment(ctx, model.ScheduleInput{OrderID: o.ID, Date: "2025-03-14", TimeSlot: "09:00-11:00"})
	require.NoError(t, err)

	today, err := model.ParseDate("2025-03-14")
	require.NoError(t, err)
	stats, err := s.DashboardStats(ctx, today)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.Clients)
	assert.EqualValues(t, 1, stats.Orders)
	assert.EqualValues(t, 1, stats.OrdersByStatus[model.StatusInProgress])
	assert.EqualValues(t, 0, stats.OrdersByStatus[model.StatusPending])
	assert.EqualValues(t, 1, stats.AppointmentsToday)
}

func TestSetStatus_MockRowsAffected(t *testing.T) {
	db, mock := newMockDB(t)
	log, _ := test.NewNullLogger()
	s := NewGormStore(db, log)
	id := uuid.NewString()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "service_orders" SET "status"=$1,"updated_at"=$2 WHERE id = $3`)).
		WithArgs("Completado", Any{}, id).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := s.SetStatus(context.Background(), id, "Completado")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetStatus_MockDatabaseError(t *testing.T) {
	db, mock := newMockDB(t)
	log, hook := test.NewNullLogger()
	s := NewGormStore(db, log)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "service_orders"`)).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := s.SetStatus(context.Background(), uuid.NewString(), "Cancelado")
	var se *StoreError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "set status", se.Op)
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleAppointment_MockDatabaseError(t *testing.T) {
	db, mock := newMockDB(t)
	log, hook := test.NewNullLogger()
	s := NewGormStore(db, log)
	orderID := uuid.NewString()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "service_orders" WHERE id = $1`)).
		WithArgs(orderID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "appointments" WHERE order_id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id"}))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "appointments"`)).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	appt, err := s.ScheduleAppointment(context.Background(), model.ScheduleInput{
		OrderID:  orderID,
		Date:     "2025-03-20",
		TimeSlot: "09:00-11:00",
	})
	assert.Nil(t, appt)
	var se *StoreError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "schedule appointment", se.Op)
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetClient_MockNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewGormStore(db, nil)
	id := uuid.NewString()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "clients" WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	_, err := s.GetClient(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Any is a helper for sqlmock to match any argument.
type Any struct{}

// Match satisfies sqlmock.Argument interface.
func (a Any) Match(v driver.Value) bool {
	return true
}
