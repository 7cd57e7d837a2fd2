package store

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"appliance-service-backend/internal/model"
)

func (s *gormStore) ListClients(ctx context.Context, search string) ([]model.Client, error) {
	q := s.db.WithContext(ctx).Order("name")
	if term := strings.ToLower(strings.TrimSpace(search)); term != "" {
		like := "%" + term + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR phone LIKE ?", like, like, like)
	}
	var clients []model.Client
	if err := q.Find(&clients).Error; err != nil {
		return nil, s.fail("list clients", err)
	}
	return clients, nil
}

func (s *gormStore) GetClient(ctx context.Context, id string) (*model.Client, error) {
	var c model.Client
	if err := first(s.db.WithContext(ctx), &c, "client", id); err != nil {
		return nil, s.fail("get client", err)
	}
	return &c, nil
}

func (s *gormStore) CreateClient(ctx context.Context, in model.ClientInput) (*model.Client, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	c := model.Client{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Address: in.Address,
	}
	if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
		return nil, s.fail("create client", err)
	}
	return &c, nil
}

func (s *gormStore) UpdateClient(ctx context.Context, id string, in model.ClientInput) (*model.Client, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var c model.Client
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := first(tx, &c, "client", id); err != nil {
			return err
		}
		c.Name = in.Name
		c.Email = in.Email
		c.Phone = in.Phone
		c.Address = in.Address
		return tx.Save(&c).Error
	})
	if err != nil {
		return nil, s.fail("update client", err)
	}
	return &c, nil
}

// DeleteClient removes the client together with its orders and everything
// hanging off them, mirroring the ON DELETE CASCADE of the schema.
func (s *gormStore) DeleteClient(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists(tx, &model.Client{}, "client", id); err != nil {
			return err
		}

		var orderIDs []string
		if err := tx.Model(&model.ServiceOrder{}).Where("client_id = ?", id).Pluck("id", &orderIDs).Error; err != nil {
			return err
		}
		if len(orderIDs) > 0 {
			if err := deleteOrders(tx, orderIDs); err != nil {
				return err
			}
			s.log.WithField("client_id", id).Infof("cascading delete of %d orders", len(orderIDs))
		}
		return tx.Delete(&model.Client{}, "id = ?", id).Error
	})
	return s.fail("delete client", err)
}
