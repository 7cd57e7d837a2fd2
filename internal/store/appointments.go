package store

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"appliance-service-backend/internal/model"
	"appliance-service-backend/internal/parse"
)

// ScheduleAppointment books the visit of an order, or moves it when the order
// already has one. The upsert is keyed by order id, so repeated calls leave a
// single appointment carrying the latest date, slot and technician.
//
// A supplied technician must exist and be active. The order row itself is
// never written here.
func (s *gormStore) ScheduleAppointment(ctx context.Context, in model.ScheduleInput) (*model.Appointment, error) {
	date, slot, techID, err := normaliseSchedule(in)
	if err != nil {
		return nil, err
	}

	var appt model.Appointment
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists(tx, &model.ServiceOrder{}, "order", in.OrderID); err != nil {
			return err
		}
		if techID != nil {
			var tech model.Technician
			if err := first(tx, &tech, "technician", *techID); err != nil {
				return err
			}
			if !tech.IsActive {
				return model.Invalid("technician_id", "technician is inactive")
			}
		}

		err := tx.Where("order_id = ?", in.OrderID).Order("created_at").First(&appt).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			appt = model.Appointment{
				OrderID:      in.OrderID,
				Date:         date,
				TimeSlot:     slot,
				TechnicianID: techID,
			}
			return tx.Create(&appt).Error
		case err != nil:
			return err
		}

		if err := tx.Model(&appt).Updates(map[string]any{
			"date":          date,
			"time_slot":     slot,
			"technician_id": techID,
		}).Error; err != nil {
			return err
		}
		appt.Date = date
		appt.TimeSlot = slot
		appt.TechnicianID = techID
		return nil
	})
	if err != nil {
		return nil, s.fail("schedule appointment", err)
	}

	s.log.WithFields(logrus.Fields{
		"order_id":  appt.OrderID,
		"date":      appt.Date.String(),
		"time_slot": appt.TimeSlot,
	}).Info("appointment scheduled")
	return &appt, nil
}

func normaliseSchedule(in model.ScheduleInput) (model.Date, string, *string, error) {
	ve := &model.ValidationError{}

	var date model.Date
	if strings.TrimSpace(in.Date) == "" {
		ve.Add("date", "required")
	} else if d, err := parse.Date(in.Date); err != nil {
		ve.Add("date", err.Error())
	} else {
		date = d
	}

	var slot string
	if strings.TrimSpace(in.TimeSlot) == "" {
		ve.Add("time_slot", "required")
	} else if sl, err := parse.TimeSlot(in.TimeSlot); err != nil {
		ve.Add("time_slot", err.Error())
	} else {
		slot = sl
	}

	var techID *string
	if in.TechnicianID != nil {
		if id := strings.TrimSpace(*in.TechnicianID); id != "" {
			techID = &id
		}
	}
	return date, slot, techID, ve.OrNil()
}

func (s *gormStore) GetAppointmentForOrder(ctx context.Context, orderID string) (*model.Appointment, error) {
	var appt model.Appointment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists(tx, &model.ServiceOrder{}, "order", orderID); err != nil {
			return err
		}
		err := tx.Where("order_id = ?", orderID).Order("created_at").First(&appt).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("appointment", orderID)
		}
		return err
	})
	if err != nil {
		return nil, s.fail("get appointment", err)
	}
	return &appt, nil
}

func (s *gormStore) DeleteAppointment(ctx context.Context, orderID string) error {
	if !validID(orderID) {
		return notFound("appointment", orderID)
	}
	res := s.db.WithContext(ctx).Where("order_id = ?", orderID).Delete(&model.Appointment{})
	if res.Error != nil {
		return s.fail("delete appointment", res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("appointment", orderID)
	}
	return nil
}

func (s *gormStore) ListAppointments(ctx context.Context) ([]model.Appointment, error) {
	var appts []model.Appointment
	if err := s.db.WithContext(ctx).Order("date DESC").Order("time_slot").Find(&appts).Error; err != nil {
		return nil, s.fail("list appointments", err)
	}
	return appts, nil
}

// ListAppointmentsForDate filters the whole appointment table in memory by
// calendar day and joins orders, clients and technicians the same way.
// Cost is linear in the number of appointments.
func (s *gormStore) ListAppointmentsForDate(ctx context.Context, date model.Date) ([]model.AppointmentView, error) {
	all, err := s.ListAppointments(ctx)
	if err != nil {
		return nil, err
	}

	var day []model.Appointment
	orderIDs := make([]string, 0)
	techIDs := make([]string, 0)
	for _, a := range all {
		if a.Date != date {
			continue
		}
		day = append(day, a)
		orderIDs = append(orderIDs, a.OrderID)
		if a.TechnicianID != nil && validID(*a.TechnicianID) {
			techIDs = append(techIDs, *a.TechnicianID)
		}
	}
	if len(day) == 0 {
		return []model.AppointmentView{}, nil
	}

	db := s.db.WithContext(ctx)
	var orders []model.ServiceOrder
	if err := db.Preload("Client").Where("id IN ?", orderIDs).Find(&orders).Error; err != nil {
		return nil, s.fail("list appointments for date", err)
	}
	var techs []model.Technician
	if len(techIDs) > 0 {
		if err := db.Where("id IN ?", techIDs).Find(&techs).Error; err != nil {
			return nil, s.fail("list appointments for date", err)
		}
	}

	orderMap := make(map[string]model.ServiceOrder, len(orders))
	for _, o := range orders {
		orderMap[o.ID] = o
	}
	techMap := make(map[string]string, len(techs))
	for _, t := range techs {
		techMap[t.ID] = t.Name
	}

	views := make([]model.AppointmentView, 0, len(day))
	for _, a := range day {
		v := model.AppointmentView{Appointment: a}
		if o, ok := orderMap[a.OrderID]; ok {
			v.OrderNumber = o.OrderNumber
			v.OrderStatus = o.Status
			v.ApplianceType = o.ApplianceType
			if o.Client != nil {
				v.ClientName = o.Client.Name
				if o.Client.Address != nil {
					v.ClientAddress = *o.Client.Address
				}
			}
		}
		if a.TechnicianID != nil {
			v.TechnicianName = techMap[*a.TechnicianID]
		}
		views = append(views, v)
	}
	sort.SliceStable(views, func(i, j int) bool {
		return model.SlotIndex(views[i].TimeSlot) < model.SlotIndex(views[j].TimeSlot)
	})
	return views, nil
}

// AppointmentNotice collects what the assigned technician needs to know
// about an appointment.
func (s *gormStore) AppointmentNotice(ctx context.Context, appointmentID string) (*model.AppointmentNotice, error) {
	db := s.db.WithContext(ctx)

	var appt model.Appointment
	if err := first(db, &appt, "appointment", appointmentID); err != nil {
		return nil, s.fail("appointment notice", err)
	}
	if appt.TechnicianID == nil {
		return nil, notFound("technician", "")
	}

	var order model.ServiceOrder
	if err := first(db.Preload("Client"), &order, "order", appt.OrderID); err != nil {
		return nil, s.fail("appointment notice", err)
	}

	notice := &model.AppointmentNotice{
		AppointmentID: appt.ID,
		TechnicianID:  *appt.TechnicianID,
		OrderNumber:   order.OrderNumber,
		Date:          appt.Date,
		TimeSlot:      appt.TimeSlot,
	}
	if order.Client != nil {
		notice.ClientName = order.Client.Name
	}
	return notice, nil
}
