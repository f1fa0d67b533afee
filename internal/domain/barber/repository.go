package barber

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type Repository interface {
	ListBarbers(ctx context.Context) ([]models.Barber, error)
	// GetBarber returns a not_found business error for unknown ids.
	GetBarber(ctx context.Context, id uint) (*models.Barber, error)
	CreateBarber(ctx context.Context, b *models.Barber) error
	// CreateBarberWithCredential stores both rows in one transaction.
	CreateBarberWithCredential(ctx context.Context, b *models.Barber, cred *models.Credential) error
	// ToggleCheckIn flips is_checked_in in one statement and returns the new value.
	ToggleCheckIn(ctx context.Context, id uint) (bool, error)
	SetPhotoURL(ctx context.Context, id uint, url string) error
	CountCheckedIn(ctx context.Context) (int64, error)
}
