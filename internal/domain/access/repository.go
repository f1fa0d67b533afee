package access

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type CredentialRepository interface {
	// GetCredential returns a not_found business error for unknown users.
	GetCredential(ctx context.Context, username string) (*models.Credential, error)
	CreateCredential(ctx context.Context, cred *models.Credential) error
	UpdatePasswordHash(ctx context.Context, username, hash string) error
}
