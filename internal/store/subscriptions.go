package store

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"appliance-service-backend/internal/model"
)

// SaveSubscription registers the endpoint for the technician, taking it over
// if another technician registered the same browser before.
func (s *gormStore) SaveSubscription(ctx context.Context, technicianID string, in model.SubscriptionInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists(tx, &model.Technician{}, "technician", technicianID); err != nil {
			return err
		}
		sub := model.TechnicianSubscription{
			Endpoint:     in.Endpoint,
			TechnicianID: technicianID,
			P256DH:       in.P256DH,
			Auth:         in.Auth,
			CreatedAt:    s.now(),
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "endpoint"}},
			DoUpdates: clause.AssignmentColumns([]string{"technician_id", "p256dh", "auth"}),
		}).Create(&sub).Error
	})
	return s.fail("save subscription", err)
}

// DeleteSubscription removes the endpoint only if it belongs to the technician.
func (s *gormStore) DeleteSubscription(ctx context.Context, technicianID, endpoint string) error {
	if !validID(technicianID) {
		return notFound("subscription", endpoint)
	}
	res := s.db.WithContext(ctx).
		Where("endpoint = ? AND technician_id = ?", endpoint, technicianID).
		Delete(&model.TechnicianSubscription{})
	if res.Error != nil {
		return s.fail("delete subscription", res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("subscription", endpoint)
	}
	return nil
}

func (s *gormStore) SubscriptionsForTechnician(ctx context.Context, technicianID string) ([]model.TechnicianSubscription, error) {
	if !validID(technicianID) {
		return nil, nil
	}
	var subs []model.TechnicianSubscription
	if err := s.db.WithContext(ctx).Where("technician_id = ?", technicianID).Find(&subs).Error; err != nil {
		return nil, s.fail("list subscriptions", err)
	}
	return subs, nil
}
