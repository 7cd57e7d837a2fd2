package store

import (
	"context"

	"gorm.io/gorm"

	"appliance-service-backend/internal/model"
)

func (s *gormStore) ListParts(ctx context.Context, orderID string) ([]model.ServicePart, error) {
	var parts []model.ServicePart
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists(tx, &model.ServiceOrder{}, "order", orderID); err != nil {
			return err
		}
		return tx.Where("order_id = ?", orderID).Order("created_at").Find(&parts).Error
	})
	if err != nil {
		return nil, s.fail("list parts", err)
	}
	return parts, nil
}

func (s *gormStore) AddPart(ctx context.Context, orderID string, in model.PartInput) (*model.ServicePart, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	p := model.ServicePart{
		OrderID:     orderID,
		Description: in.Description,
		Quantity:    in.Quantity,
		UnitPrice:   in.UnitPrice,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists(tx, &model.ServiceOrder{}, "order", orderID); err != nil {
			return err
		}
		return tx.Create(&p).Error
	})
	if err != nil {
		return nil, s.fail("add part", err)
	}
	return &p, nil
}

func (s *gormStore) DeletePart(ctx context.Context, orderID, partID string) error {
	if !validID(orderID) || !validID(partID) {
		return notFound("part", partID)
	}
	res := s.db.WithContext(ctx).Where("id = ? AND order_id = ?", partID, orderID).Delete(&model.ServicePart{})
	if res.Error != nil {
		return s.fail("delete part", res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("part", partID)
	}
	return nil
}

func (s *gormStore) ListLabor(ctx context.Context, orderID string) ([]model.ServiceLabor, error) {
	var labor []model.ServiceLabor
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists(tx, &model.ServiceOrder{}, "order", orderID); err != nil {
			return err
		}
		return tx.Where("order_id = ?", orderID).Order("created_at").Find(&labor).Error
	})
	if err != nil {
		return nil, s.fail("list labor", err)
	}
	return labor, nil
}

func (s *gormStore) AddLabor(ctx context.Context, orderID string, in model.LaborInput) (*model.ServiceLabor, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	l := model.ServiceLabor{
		OrderID:     orderID,
		Description: in.Description,
		Hours:       in.Hours,
		Rate:        in.Rate,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists(tx, &model.ServiceOrder{}, "order", orderID); err != nil {
			return err
		}
		return tx.Create(&l).Error
	})
	if err != nil {
		return nil, s.fail("add labor", err)
	}
	return &l, nil
}

func (s *gormStore) DeleteLabor(ctx context.Context, orderID, laborID string) error {
	if !validID(orderID) || !validID(laborID) {
		return notFound("labor", laborID)
	}
	res := s.db.WithContext(ctx).Where("id = ? AND order_id = ?", laborID, orderID).Delete(&model.ServiceLabor{})
	if res.Error != nil {
		return s.fail("delete labor", res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("labor", laborID)
	}
	return nil
}
