package schedule

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ShiftRepository interface {
	// GetShift returns a not_found business error when the barber is off.
	GetShift(
		ctx context.Context,
		barberID uint,
		weekday int,
	) (*models.Shift, error)

	// UpsertShift replaces any shift for the same (barber, weekday) in a
	// single statement.
	UpsertShift(
		ctx context.Context,
		shift *models.Shift,
	) error

	ListShifts(
		ctx context.Context,
		barberID uint,
	) ([]models.Shift, error)
}
