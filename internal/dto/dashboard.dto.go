package dto

type OwnerStatsDTO struct {
	TotalBookings int64   `json:"total_bookings"`
	Revenue       float64 `json:"revenue"`
	ActiveBarbers int64   `json:"active_barbers"`
}

type BarberStatsDTO struct {
	Name                 string  `json:"name"`
	IsCheckedIn          bool    `json:"is_checked_in"`
	CustomersServedToday int64   `json:"customers_served_today"`
	TotalEarnedToday     float64 `json:"total_earned_today"`
	QueueDurationMinutes int64   `json:"queue_duration_minutes"`
}

type DashboardDTO struct {
	Owner  *OwnerStatsDTO  `json:"owner,omitempty"`
	Barber *BarberStatsDTO `json:"barber,omitempty"`
}
