package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Filter selects appointments; a nil BarberID means every barber.
type Filter struct {
	BarberID *uint
	From     *time.Time
	To       *time.Time
}

type Repository interface {
	// -------- Booking --------

	// CreateAppointment inserts ap, returning a slot_conflict business error
	// when the (barber, time_slot) key is already taken.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Read --------
	ListAppointments(
		ctx context.Context,
		filter Filter,
	) ([]models.Appointment, error)

	// ListAppointmentsForDay returns the barber's bookings with time_slot in
	// the closed interval [start, end].
	ListAppointmentsForDay(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	CountAppointments(
		ctx context.Context,
		filter Filter,
	) (int64, error)

	// -------- Delete --------

	// DeleteAppointment removes the row in one statement and returns
	// not_found when nothing matched.
	DeleteAppointment(
		ctx context.Context,
		id uint,
	) error
}
