package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type AppointmentGormRepository struct {
	store
}

func NewAppointmentGormRepository(db *gorm.DB, timeout time.Duration) *AppointmentGormRepository {
	return &AppointmentGormRepository{store: newStore(db, timeout)}
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	db, cancel := r.conn(ctx)
	defer cancel()

	err := db.Create(ap).Error
	if isDuplicateKey(err) {
		return httperr.SlotConflict("this slot is already booked")
	}
	return storeErr("create appointment", err)
}

// --------------------------------------------------
// Read
// --------------------------------------------------

func (r *AppointmentGormRepository) scoped(db *gorm.DB, filter domain.Filter) *gorm.DB {
	q := db.Model(&models.Appointment{})
	if filter.BarberID != nil {
		q = q.Where("barber_id = ?", *filter.BarberID)
	}
	if filter.From != nil {
		q = q.Where("time_slot >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("time_slot < ?", *filter.To)
	}
	return q
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	filter domain.Filter,
) ([]models.Appointment, error) {

	db, cancel := r.conn(ctx)
	defer cancel()

	var apps []models.Appointment
	if err := r.scoped(db, filter).
		Order("id ASC").
		Find(&apps).Error; err != nil {
		return nil, storeErr("list appointments", err)
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForDay(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	db, cancel := r.conn(ctx)
	defer cancel()

	var apps []models.Appointment
	if err := db.
		Select("id", "barber_id", "time_slot").
		Where(
			"barber_id = ? AND time_slot >= ? AND time_slot <= ?",
			barberID, start, end,
		).
		Order("time_slot ASC").
		Find(&apps).Error; err != nil {
		return nil, storeErr("list appointments for day", err)
	}
	return apps, nil
}

func (r *AppointmentGormRepository) CountAppointments(
	ctx context.Context,
	filter domain.Filter,
) (int64, error) {

	db, cancel := r.conn(ctx)
	defer cancel()

	var count int64
	if err := r.scoped(db, filter).Count(&count).Error; err != nil {
		return 0, storeErr("count appointments", err)
	}
	return count, nil
}

// --------------------------------------------------
// Delete
// --------------------------------------------------

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	id uint,
) error {

	db, cancel := r.conn(ctx)
	defer cancel()

	res := db.Where("id = ?", id).Delete(&models.Appointment{})
	if res.Error != nil {
		return storeErr("delete appointment", res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.NotFound("appointment not found")
	}
	return nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
