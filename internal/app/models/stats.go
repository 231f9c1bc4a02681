package models

// DashboardStats is an aggregate snapshot computed from the stores, never persisted
type DashboardStats struct {
	TotalLockers       int64   `json:"totalLockers" example:"150"`
	AvailableLockers   int64   `json:"availableLockers" example:"45"`
	RentedLockers      int64   `json:"rentedLockers" example:"98"`
	MaintenanceLockers int64   `json:"maintenanceLockers" example:"7"`
	OverdueRentals     int64   `json:"overdueRentals" example:"12"`
	MonthlyRevenue     float64 `json:"monthlyRevenue" example:"29400"`
	TotalStudents      int64   `json:"totalStudents" example:"320"`
	ActiveRentals      int64   `json:"activeRentals" example:"98"`
}
