package model

// DashboardStats aggregates counts for the landing page.
type DashboardStats struct {
	Clients           int64                 `json:"clients"`
	Orders            int64                 `json:"orders"`
	OrdersByStatus    map[OrderStatus]int64 `json:"orders_by_status"`
	ActiveTechnicians int64                 `json:"active_technicians"`
	AppointmentsToday int64                 `json:"appointments_today"`
}
