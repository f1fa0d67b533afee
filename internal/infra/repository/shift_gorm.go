package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ShiftGormRepository struct {
	store
}

func NewShiftGormRepository(db *gorm.DB, timeout time.Duration) *ShiftGormRepository {
	return &ShiftGormRepository{store: newStore(db, timeout)}
}

func (r *ShiftGormRepository) GetShift(
	ctx context.Context,
	barberID uint,
	weekday int,
) (*models.Shift, error) {

	db, cancel := r.conn(ctx)
	defer cancel()

	var shift models.Shift
	err := db.
		Where("barber_id = ? AND weekday = ?", barberID, weekday).
		First(&shift).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.NotFound("no shift for this barber and weekday")
	}
	if err != nil {
		return nil, storeErr("get shift", err)
	}
	return &shift, nil
}

func (r *ShiftGormRepository) UpsertShift(
	ctx context.Context,
	shift *models.Shift,
) error {

	db, cancel := r.conn(ctx)
	defer cancel()

	err := db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "barber_id"}, {Name: "weekday"}},
			DoUpdates: clause.AssignmentColumns([]string{"start_hour", "end_hour"}),
		}).
		Create(shift).Error
	return storeErr("upsert shift", err)
}

func (r *ShiftGormRepository) ListShifts(
	ctx context.Context,
	barberID uint,
) ([]models.Shift, error) {

	db, cancel := r.conn(ctx)
	defer cancel()

	var shifts []models.Shift
	if err := db.
		Where("barber_id = ?", barberID).
		Order("weekday ASC").
		Find(&shifts).Error; err != nil {
		return nil, storeErr("list shifts", err)
	}
	return shifts, nil
}

// Compile-time check
var _ domain.ShiftRepository = (*ShiftGormRepository)(nil)
