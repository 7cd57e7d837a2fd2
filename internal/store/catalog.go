package store

import (
	"context"

	"gorm.io/gorm"

	"appliance-service-backend/internal/model"
)

func (s *gormStore) ListApplianceTypes(ctx context.Context) ([]model.ApplianceType, error) {
	var types []model.ApplianceType
	if err := s.db.WithContext(ctx).Order("name").Find(&types).Error; err != nil {
		return nil, s.fail("list appliance types", err)
	}
	return types, nil
}

func (s *gormStore) CreateApplianceType(ctx context.Context, in model.LookupInput) (*model.ApplianceType, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	t := model.ApplianceType{Name: in.Name}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := uniqueName(tx, &model.ApplianceType{}, in.Name); err != nil {
			return err
		}
		return tx.Create(&t).Error
	})
	if err != nil {
		return nil, s.fail("create appliance type", err)
	}
	return &t, nil
}

// DeleteApplianceType removes the lookup entry only. Orders keep the type
// name they were created with.
func (s *gormStore) DeleteApplianceType(ctx context.Context, id string) error {
	if !validID(id) {
		return notFound("appliance type", id)
	}
	res := s.db.WithContext(ctx).Delete(&model.ApplianceType{}, "id = ?", id)
	if res.Error != nil {
		return s.fail("delete appliance type", res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("appliance type", id)
	}
	return nil
}

func (s *gormStore) ListBrands(ctx context.Context) ([]model.Brand, error) {
	var brands []model.Brand
	if err := s.db.WithContext(ctx).Order("name").Find(&brands).Error; err != nil {
		return nil, s.fail("list brands", err)
	}
	return brands, nil
}

func (s *gormStore) CreateBrand(ctx context.Context, in model.LookupInput) (*model.Brand, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	b := model.Brand{Name: in.Name}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := uniqueName(tx, &model.Brand{}, in.Name); err != nil {
			return err
		}
		return tx.Create(&b).Error
	})
	if err != nil {
		return nil, s.fail("create brand", err)
	}
	return &b, nil
}

// DeleteBrand clears the brand from orders that reference it, then removes it.
func (s *gormStore) DeleteBrand(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists(tx, &model.Brand{}, "brand", id); err != nil {
			return err
		}
		if err := tx.Model(&model.ServiceOrder{}).Where("brand_id = ?", id).
			Update("brand_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Brand{}, "id = ?", id).Error
	})
	return s.fail("delete brand", err)
}

func uniqueName(tx *gorm.DB, m any, name string) error {
	var n int64
	if err := tx.Model(m).Where("LOWER(name) = LOWER(?)", name).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return model.Invalid("name", "unique")
	}
	return nil
}
