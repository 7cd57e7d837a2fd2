package store

import (
	"context"

	"gorm.io/gorm"

	"appliance-service-backend/internal/model"
)

type statusCount struct {
	Status model.OrderStatus
	N      int64
}

// DashboardStats aggregates the headline counters shown on the front desk.
func (s *gormStore) DashboardStats(ctx context.Context, today model.Date) (*model.DashboardStats, error) {
	stats := &model.DashboardStats{OrdersByStatus: make(map[model.OrderStatus]int64, len(model.OrderStatuses))}
	for _, st := range model.OrderStatuses {
		stats.OrdersByStatus[st] = 0
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Client{}).Count(&stats.Clients).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Technician{}).Where("is_active = ?", true).Count(&stats.ActiveTechnicians).Error; err != nil {
			return err
		}

		var rows []statusCount
		if err := tx.Model(&model.ServiceOrder{}).
			Select("status, COUNT(*) AS n").
			Group("status").
			Scan(&rows).Error; err != nil {
			return err
		}
		for _, r := range rows {
			stats.OrdersByStatus[r.Status] = r.N
			stats.Orders += r.N
		}
		return nil
	})
	if err != nil {
		return nil, s.fail("dashboard stats", err)
	}

	// Dates are compared in memory, like the daily agenda.
	appts, err := s.ListAppointments(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range appts {
		if a.Date == today {
			stats.AppointmentsToday++
		}
	}
	return stats, nil
}
