package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type BookInput struct {
	BarberID     uint
	Date         string
	Time         string
	CustomerName string
	ServiceType  string
}

type BookAppointment struct {
	repo   domain.Repository
	shifts schedule.ShiftRepository
	loc    *time.Location
	audit  *audit.Dispatcher
}

func NewBookAppointment(
	repo domain.Repository,
	shifts schedule.ShiftRepository,
	loc *time.Location,
	audit *audit.Dispatcher,
) *BookAppointment {
	return &BookAppointment{
		repo:   repo,
		shifts: shifts,
		loc:    loc,
		audit:  audit,
	}
}

func (uc *BookAppointment) Execute(
	ctx context.Context,
	in BookInput,
) (*models.Appointment, error) {

	slot, err := schedule.ParseSlot(in.Date, in.Time, uc.loc)
	if err != nil {
		return nil, err
	}

	ap, err := domain.New(in.BarberID, slot, in.CustomerName, in.ServiceType)
	if err != nil {
		return nil, err
	}

	shift, err := uc.shifts.GetShift(ctx, in.BarberID, schedule.Weekday(slot))
	if httperr.IsBusiness(err, httperr.CodeNotFound) {
		return nil, httperr.SlotNotOffered("the barber does not work at this time")
	}
	if err != nil {
		return nil, err
	}
	if !schedule.Offers(shift, slot) {
		return nil, httperr.SlotNotOffered("the barber does not work at this time")
	}

	// The unique index decides races; there is no read-before-write.
	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		if httperr.IsBusiness(err, httperr.CodeSlotConflict) {
			barberID := in.BarberID
			uc.audit.Dispatch(audit.Event{
				Actor:    audit.Anonymous,
				Action:   "appointment_conflict",
				Entity:   "barber",
				EntityID: &barberID,
				Metadata: map[string]string{"time_slot": slot.Format(time.RFC3339)},
			})
		}
		return nil, err
	}

	id := ap.ID
	uc.audit.Dispatch(audit.Event{
		Actor:    audit.Anonymous,
		Action:   "appointment_booked",
		Entity:   "appointment",
		EntityID: &id,
		Metadata: map[string]any{
			"barber_id": ap.BarberID,
			"time_slot": ap.TimeSlot.Format(time.RFC3339),
		},
	})

	return ap, nil
}
