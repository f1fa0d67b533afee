package models

// Shift is keyed by (barber, weekday), so a barber has at most one
// working window per day of the week. Weekday 0 is Monday.
type Shift struct {
	BarberID  uint `gorm:"primaryKey;autoIncrement:false" json:"barber_id"`
	Weekday   int  `gorm:"primaryKey;autoIncrement:false" json:"weekday"`
	StartHour int  `gorm:"not null" json:"start_hour"`
	EndHour   int  `gorm:"not null" json:"end_hour"`
}
