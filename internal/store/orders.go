package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"appliance-service-backend/internal/model"
	"appliance-service-backend/internal/parse"
)

func (s *gormStore) ListOrders(ctx context.Context, f model.OrderFilter) ([]model.ServiceOrder, error) {
	q := s.db.WithContext(ctx).Preload("Client").Order("created_at DESC")
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.ClientID != "" {
		if !validID(f.ClientID) {
			return []model.ServiceOrder{}, nil
		}
		q = q.Where("client_id = ?", f.ClientID)
	}
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		like := "%" + term + "%"
		q = q.Where("LOWER(order_number) LIKE ? OR LOWER(appliance_type) LIKE ? OR LOWER(model) LIKE ? OR LOWER(serial_number) LIKE ?",
			like, like, like, like)
	}

	var orders []model.ServiceOrder
	if err := q.Find(&orders).Error; err != nil {
		return nil, s.fail("list orders", err)
	}
	return orders, nil
}

// GetOrder loads an order with its client, brand, lines and appointment.
func (s *gormStore) GetOrder(ctx context.Context, id string) (*model.ServiceOrder, error) {
	byCreation := func(db *gorm.DB) *gorm.DB { return db.Order("created_at") }

	var o model.ServiceOrder
	q := s.db.WithContext(ctx).
		Preload("Client").
		Preload("Brand").
		Preload("Parts", byCreation).
		Preload("Labor", byCreation).
		Preload("Appointment")
	if err := first(q, &o, "order", id); err != nil {
		return nil, s.fail("get order", err)
	}
	return &o, nil
}

// CreateOrder inserts a new order in status Pendiente. The order number is
// drawn from the yearly counter inside the same transaction.
func (s *gormStore) CreateOrder(ctx context.Context, in model.OrderInput) (*model.ServiceOrder, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var o model.ServiceOrder
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkOrderRefs(tx, in); err != nil {
			return err
		}
		number, err := nextOrderNumber(tx, s.now())
		if err != nil {
			return fmt.Errorf("assign order number: %w", err)
		}

		o = model.ServiceOrder{OrderNumber: number, Status: model.StatusPending}
		applyOrderInput(&o, in)
		return tx.Omit(clause.Associations).Create(&o).Error
	})
	if err != nil {
		return nil, s.fail("create order", err)
	}
	s.log.WithField("order_number", o.OrderNumber).Info("service order created")
	return &o, nil
}

// UpdateOrder replaces the editable fields of an order. The order number is
// never written (see the <-:create permission on the column).
func (s *gormStore) UpdateOrder(ctx context.Context, id string, in model.OrderInput) (*model.ServiceOrder, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var o model.ServiceOrder
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := first(tx, &o, "order", id); err != nil {
			return err
		}
		if err := checkOrderRefs(tx, in); err != nil {
			return err
		}
		applyOrderInput(&o, in)
		if in.Status != "" {
			o.Status = in.Status
		}
		return tx.Omit(clause.Associations).Save(&o).Error
	})
	if err != nil {
		return nil, s.fail("update order", err)
	}
	return &o, nil
}

func (s *gormStore) DeleteOrder(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists(tx, &model.ServiceOrder{}, "order", id); err != nil {
			return err
		}
		return deleteOrders(tx, []string{id})
	})
	return s.fail("delete order", err)
}

// SetStatus assigns any of the four statuses regardless of the current one.
func (s *gormStore) SetStatus(ctx context.Context, id string, status string) error {
	st, err := parse.OrderStatus(status)
	if err != nil {
		return model.Invalid("status", err.Error())
	}
	if !validID(id) {
		return notFound("order", id)
	}

	res := s.db.WithContext(ctx).Model(&model.ServiceOrder{}).Where("id = ?", id).Update("status", string(st))
	if res.Error != nil {
		return s.fail("set status", res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("order", id)
	}
	s.log.WithFields(logrus.Fields{"order_id": id, "status": st}).Info("order status changed")
	return nil
}

func applyOrderInput(o *model.ServiceOrder, in model.OrderInput) {
	o.ClientID = in.ClientID
	o.ApplianceType = in.ApplianceType
	o.BrandID = in.BrandID
	o.Model = in.Model
	o.SerialNumber = in.SerialNumber
	o.ProblemDescription = in.ProblemDescription
	o.Observations = in.Observations
	o.ServiceType = in.ServiceType
	o.Urgency = in.Urgency
}

func checkOrderRefs(tx *gorm.DB, in model.OrderInput) error {
	if err := exists(tx, &model.Client{}, "client", in.ClientID); err != nil {
		return err
	}
	if in.BrandID != nil {
		if err := exists(tx, &model.Brand{}, "brand", *in.BrandID); err != nil {
			return err
		}
	}
	return nil
}

// nextOrderNumber bumps the counter row of the current year and formats the
// result as OS-YYYY-NNNNN.
func nextOrderNumber(tx *gorm.DB, now time.Time) (string, error) {
	year := now.Year()
	counter := model.OrderCounter{Year: year, Counter: 1}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "year"}},
		DoUpdates: clause.Assignments(map[string]any{"counter": gorm.Expr("order_counters.counter + 1")}),
	}).Create(&counter).Error; err != nil {
		return "", err
	}
	if err := tx.First(&counter, "year = ?", year).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("OS-%d-%05d", year, counter.Counter), nil
}

// deleteOrders removes the given orders and their parts, labor and appointments.
func deleteOrders(tx *gorm.DB, ids []string) error {
	for _, m := range []any{&model.ServicePart{}, &model.ServiceLabor{}, &model.Appointment{}} {
		if err := tx.Where("order_id IN ?", ids).Delete(m).Error; err != nil {
			return err
		}
	}
	return tx.Where("id IN ?", ids).Delete(&model.ServiceOrder{}).Error
}
