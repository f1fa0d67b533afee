package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/domain/access"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type CredentialGormRepository struct {
	store
}

func NewCredentialGormRepository(db *gorm.DB, timeout time.Duration) *CredentialGormRepository {
	return &CredentialGormRepository{store: newStore(db, timeout)}
}

func (r *CredentialGormRepository) GetCredential(
	ctx context.Context,
	username string,
) (*models.Credential, error) {

	db, cancel := r.conn(ctx)
	defer cancel()

	var cred models.Credential
	err := db.Where("username = ?", username).First(&cred).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.NotFound("credential not found")
	}
	if err != nil {
		return nil, storeErr("get credential", err)
	}
	return &cred, nil
}

func (r *CredentialGormRepository) CreateCredential(
	ctx context.Context,
	cred *models.Credential,
) error {

	db, cancel := r.conn(ctx)
	defer cancel()

	err := db.Create(cred).Error
	if isDuplicateKey(err) {
		return httperr.AlreadyExists("username is already taken")
	}
	return storeErr("create credential", err)
}

func (r *CredentialGormRepository) UpdatePasswordHash(
	ctx context.Context,
	username string,
	hash string,
) error {

	db, cancel := r.conn(ctx)
	defer cancel()

	res := db.Model(&models.Credential{}).
		Where("username = ?", username).
		Update("password_hash", hash)
	if res.Error != nil {
		return storeErr("update password", res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.NotFound("credential not found")
	}
	return nil
}

// Compile-time check
var _ access.CredentialRepository = (*CredentialGormRepository)(nil)
