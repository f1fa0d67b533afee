package models

import "time"

// Appointment is immutable once booked. The composite unique index is what
// keeps two bookings off the same barber slot.
type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberID     uint      `gorm:"not null;uniqueIndex:idx_appointment_barber_slot,priority:1" json:"barber_id"`
	CustomerName string    `gorm:"size:100;not null" json:"customer_name"`
	TimeSlot     time.Time `gorm:"not null;uniqueIndex:idx_appointment_barber_slot,priority:2" json:"time_slot"`
	ServiceType  string    `gorm:"size:50" json:"service_type"`
}
