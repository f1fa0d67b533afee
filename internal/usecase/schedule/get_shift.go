package schedule

import (
	"context"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type GetShift struct {
	shifts domain.ShiftRepository
}

func NewGetShift(shifts domain.ShiftRepository) *GetShift {
	return &GetShift{shifts: shifts}
}

func (uc *GetShift) Execute(
	ctx context.Context,
	barberID uint,
	weekday int,
) (*models.Shift, error) {

	if err := domain.ValidateWeekday(weekday); err != nil {
		return nil, err
	}
	return uc.shifts.GetShift(ctx, barberID, weekday)
}

type ListShifts struct {
	shifts domain.ShiftRepository
}

func NewListShifts(shifts domain.ShiftRepository) *ListShifts {
	return &ListShifts{shifts: shifts}
}

func (uc *ListShifts) Execute(ctx context.Context, barberID uint) ([]models.Shift, error) {
	return uc.shifts.ListShifts(ctx, barberID)
}
