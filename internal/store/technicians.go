package store

import (
	"context"

	"gorm.io/gorm"

	"appliance-service-backend/internal/model"
)

func (s *gormStore) ListTechnicians(ctx context.Context, activeOnly bool) ([]model.Technician, error) {
	q := s.db.WithContext(ctx).Order("name")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var techs []model.Technician
	if err := q.Find(&techs).Error; err != nil {
		return nil, s.fail("list technicians", err)
	}
	return techs, nil
}

func (s *gormStore) GetTechnician(ctx context.Context, id string) (*model.Technician, error) {
	var t model.Technician
	if err := first(s.db.WithContext(ctx), &t, "technician", id); err != nil {
		return nil, s.fail("get technician", err)
	}
	return &t, nil
}

func (s *gormStore) CreateTechnician(ctx context.Context, in model.TechnicianInput) (*model.Technician, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	t := model.Technician{
		Name:      in.Name,
		Specialty: in.Specialty,
		Phone:     in.Phone,
		Email:     in.Email,
		IsActive:  in.IsActive == nil || *in.IsActive,
	}
	if err := s.db.WithContext(ctx).Create(&t).Error; err != nil {
		return nil, s.fail("create technician", err)
	}
	return &t, nil
}

func (s *gormStore) UpdateTechnician(ctx context.Context, id string, in model.TechnicianInput) (*model.Technician, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var t model.Technician
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := first(tx, &t, "technician", id); err != nil {
			return err
		}
		t.Name = in.Name
		t.Specialty = in.Specialty
		t.Phone = in.Phone
		t.Email = in.Email
		if in.IsActive != nil {
			t.IsActive = *in.IsActive
		}
		return tx.Save(&t).Error
	})
	if err != nil {
		return nil, s.fail("update technician", err)
	}
	return &t, nil
}

// DeleteTechnician removes the technician. Appointments they were assigned to
// are kept and become unassigned.
func (s *gormStore) DeleteTechnician(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists(tx, &model.Technician{}, "technician", id); err != nil {
			return err
		}
		if err := tx.Model(&model.Appointment{}).Where("technician_id = ?", id).
			Update("technician_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("technician_id = ?", id).Delete(&model.TechnicianSubscription{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Technician{}, "id = ?", id).Error
	})
	return s.fail("delete technician", err)
}
