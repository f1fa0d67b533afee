package dashboard

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/BruksfildServices01/barber-booking/internal/domain/access"
	appointment "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	barber "github.com/BruksfildServices01/barber-booking/internal/domain/barber"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type GetDashboard struct {
	appointments appointment.Repository
	barbers      barber.Repository
	price        float64
	now          timezone.Clock
}

func NewGetDashboard(
	appointments appointment.Repository,
	barbers barber.Repository,
	price float64,
	now timezone.Clock,
) *GetDashboard {
	return &GetDashboard{
		appointments: appointments,
		barbers:      barbers,
		price:        price,
		now:          now,
	}
}

// Execute builds the owner block for owners and the barber block for any
// principal linked to a barber. An owner with a barber link gets both.
func (uc *GetDashboard) Execute(ctx context.Context, principal access.Principal) (*dto.DashboardDTO, error) {
	out := &dto.DashboardDTO{}

	if principal.IsOwner() {
		stats, err := uc.ownerStats(ctx)
		if err != nil {
			return nil, err
		}
		out.Owner = stats
	}

	if principal.BarberID != nil {
		stats, err := uc.barberStats(ctx, *principal.BarberID)
		if err != nil {
			return nil, err
		}
		out.Barber = stats
	}

	if out.Owner == nil && out.Barber == nil {
		if _, err := access.LinkedBarber(principal); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (uc *GetDashboard) ownerStats(ctx context.Context) (*dto.OwnerStatsDTO, error) {
	var total, active int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = uc.appointments.CountAppointments(gctx, appointment.Filter{})
		return err
	})
	g.Go(func() error {
		var err error
		active, err = uc.barbers.CountCheckedIn(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dto.OwnerStatsDTO{
		TotalBookings: total,
		Revenue:       float64(total) * uc.price,
		ActiveBarbers: active,
	}, nil
}

func (uc *GetDashboard) barberStats(ctx context.Context, barberID uint) (*dto.BarberStatsDTO, error) {
	now := uc.now()
	dayStart, _ := schedule.DayBounds(now)
	nextDay := dayStart.AddDate(0, 0, 1)

	var served, remaining int64
	var name string
	var checkedIn bool

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		b, err := uc.barbers.GetBarber(gctx, barberID)
		if err != nil {
			return err
		}
		name, checkedIn = b.Name, b.IsCheckedIn
		return nil
	})
	g.Go(func() error {
		var err error
		served, err = uc.appointments.CountAppointments(gctx, appointment.Filter{
			BarberID: &barberID,
			From:     &dayStart,
			To:       &now,
		})
		return err
	})
	g.Go(func() error {
		var err error
		remaining, err = uc.appointments.CountAppointments(gctx, appointment.Filter{
			BarberID: &barberID,
			From:     &now,
			To:       &nextDay,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dto.BarberStatsDTO{
		Name:                 name,
		IsCheckedIn:          checkedIn,
		CustomersServedToday: served,
		TotalEarnedToday:     float64(served) * uc.price,
		QueueDurationMinutes: remaining * int64(schedule.SlotGranularity.Minutes()),
	}, nil
}
