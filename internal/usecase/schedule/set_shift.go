package schedule

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/domain/access"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type BarberLookup interface {
	GetBarber(ctx context.Context, id uint) (*models.Barber, error)
}

type SetShiftInput struct {
	BarberID  uint
	Weekday   int
	StartHour int
	EndHour   int
}

type SetShift struct {
	shifts  domain.ShiftRepository
	barbers BarberLookup
	audit   *audit.Dispatcher
}

func NewSetShift(
	shifts domain.ShiftRepository,
	barbers BarberLookup,
	audit *audit.Dispatcher,
) *SetShift {
	return &SetShift{shifts: shifts, barbers: barbers, audit: audit}
}

// Execute creates or replaces the barber's shift for one weekday.
func (uc *SetShift) Execute(
	ctx context.Context,
	principal access.Principal,
	in SetShiftInput,
) (*models.Shift, error) {

	if err := access.RequireOwner(principal); err != nil {
		return nil, err
	}

	shift, err := domain.NewShift(in.BarberID, in.Weekday, in.StartHour, in.EndHour)
	if err != nil {
		return nil, err
	}

	if _, err := uc.barbers.GetBarber(ctx, in.BarberID); err != nil {
		return nil, err
	}

	if err := uc.shifts.UpsertShift(ctx, shift); err != nil {
		return nil, err
	}

	barberID := shift.BarberID
	uc.audit.Dispatch(audit.Event{
		Actor:    principal.Username,
		Action:   "shift_set",
		Entity:   "shift",
		EntityID: &barberID,
		Metadata: map[string]int{
			"weekday":    shift.Weekday,
			"start_hour": shift.StartHour,
			"end_hour":   shift.EndHour,
		},
	})

	return shift, nil
}
