package dto

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type AppointmentListDTO struct {
	ID           uint      `json:"id"`
	BarberID     uint      `json:"barber_id"`
	CustomerName string    `json:"customer_name"`
	TimeSlot     time.Time `json:"time_slot"`
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	ServiceType  string    `json:"service_type"`
}

// NewAppointmentList renders time slots in the shop's location.
func NewAppointmentList(apps []models.Appointment, loc *time.Location) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(apps))
	for _, ap := range apps {
		out = append(out, NewAppointment(ap, loc))
	}
	return out
}

func NewAppointment(ap models.Appointment, loc *time.Location) AppointmentListDTO {
	ts := ap.TimeSlot.In(loc)
	return AppointmentListDTO{
		ID:           ap.ID,
		BarberID:     ap.BarberID,
		CustomerName: ap.CustomerName,
		TimeSlot:     ts,
		Date:         ts.Format("2006-01-02"),
		Time:         ts.Format("15:04"),
		ServiceType:  ap.ServiceType,
	}
}
