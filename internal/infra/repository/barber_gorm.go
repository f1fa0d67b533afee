package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/barber"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type BarberGormRepository struct {
	store
}

func NewBarberGormRepository(db *gorm.DB, timeout time.Duration) *BarberGormRepository {
	return &BarberGormRepository{store: newStore(db, timeout)}
}

func (r *BarberGormRepository) ListBarbers(ctx context.Context) ([]models.Barber, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var barbers []models.Barber
	if err := db.Order("id ASC").Find(&barbers).Error; err != nil {
		return nil, storeErr("list barbers", err)
	}
	return barbers, nil
}

func (r *BarberGormRepository) GetBarber(ctx context.Context, id uint) (*models.Barber, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var b models.Barber
	err := db.First(&b, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.NotFound("barber not found")
	}
	if err != nil {
		return nil, storeErr("get barber", err)
	}
	return &b, nil
}

func (r *BarberGormRepository) CreateBarber(ctx context.Context, b *models.Barber) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	return storeErr("create barber", db.Create(b).Error)
}

func (r *BarberGormRepository) CreateBarberWithCredential(
	ctx context.Context,
	b *models.Barber,
	cred *models.Credential,
) error {

	db, cancel := r.conn(ctx)
	defer cancel()

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(b).Error; err != nil {
			return err
		}
		cred.BarberID = &b.ID
		if err := tx.Create(cred).Error; err != nil {
			if isDuplicateKey(err) {
				return httperr.AlreadyExists("username is already taken")
			}
			return err
		}
		return nil
	})
	return storeErr("create barber with credential", err)
}

// --------------------------------------------------
// Check-in
// --------------------------------------------------

func (r *BarberGormRepository) ToggleCheckIn(ctx context.Context, id uint) (bool, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var checkedIn bool
	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Barber{}).
			Where("id = ?", id).
			Update("is_checked_in", gorm.Expr("NOT is_checked_in"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.NotFound("barber not found")
		}

		var b models.Barber
		if err := tx.Select("is_checked_in").First(&b, id).Error; err != nil {
			return err
		}
		checkedIn = b.IsCheckedIn
		return nil
	})
	if err != nil {
		return false, storeErr("toggle check-in", err)
	}
	return checkedIn, nil
}

func (r *BarberGormRepository) SetPhotoURL(ctx context.Context, id uint, url string) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	res := db.Model(&models.Barber{}).Where("id = ?", id).Update("photo_url", url)
	if res.Error != nil {
		return storeErr("set photo url", res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.NotFound("barber not found")
	}
	return nil
}

func (r *BarberGormRepository) CountCheckedIn(ctx context.Context) (int64, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var count int64
	if err := db.Model(&models.Barber{}).
		Where("is_checked_in = ?", true).
		Count(&count).Error; err != nil {
		return 0, storeErr("count checked-in barbers", err)
	}
	return count, nil
}

// Compile-time check
var _ domain.Repository = (*BarberGormRepository)(nil)
