package schedule

import (
	"context"
	"time"

	appointment "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

// ComputeSlots lists the free slots of a barber on one date. It always
// reads through to the store.
type ComputeSlots struct {
	shifts       domain.ShiftRepository
	appointments appointment.Repository
	loc          *time.Location
}

func NewComputeSlots(
	shifts domain.ShiftRepository,
	appointments appointment.Repository,
	loc *time.Location,
) *ComputeSlots {
	return &ComputeSlots{shifts: shifts, appointments: appointments, loc: loc}
}

func (uc *ComputeSlots) Execute(
	ctx context.Context,
	barberID uint,
	date string,
) ([]string, error) {

	day, err := domain.ParseDate(date, uc.loc)
	if err != nil {
		return nil, err
	}

	shift, err := uc.shifts.GetShift(ctx, barberID, domain.Weekday(day))
	if httperr.IsBusiness(err, httperr.CodeNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}

	candidates := domain.CandidateSlots(day, shift.StartHour, shift.EndHour)

	start, end := domain.DayBounds(day)
	booked, err := uc.appointments.ListAppointmentsForDay(ctx, barberID, start, end)
	if err != nil {
		return nil, err
	}

	taken := make([]time.Time, 0, len(booked))
	for _, ap := range booked {
		taken = append(taken, ap.TimeSlot)
	}

	return domain.FreeSlots(candidates, taken), nil
}
