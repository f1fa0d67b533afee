package account

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/auth"
	"github.com/BruksfildServices01/barber-booking/internal/domain/access"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

type ChangePassword struct {
	creds access.CredentialRepository
	audit *audit.Dispatcher
}

func NewChangePassword(creds access.CredentialRepository, audit *audit.Dispatcher) *ChangePassword {
	return &ChangePassword{creds: creds, audit: audit}
}

func (uc *ChangePassword) Execute(
	ctx context.Context,
	principal access.Principal,
	current string,
	next string,
) error {

	cred, err := uc.creds.GetCredential(ctx, principal.Username)
	if httperr.IsBusiness(err, httperr.CodeNotFound) {
		return httperr.Unauthorized("unknown account")
	}
	if err != nil {
		return err
	}

	if !auth.CheckPassword(cred.PasswordHash, current) {
		return httperr.AuthFailure()
	}

	hash, err := auth.HashPassword(next)
	if err != nil {
		return err
	}

	if err := uc.creds.UpdatePasswordHash(ctx, principal.Username, hash); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		Actor:  principal.Username,
		Action: "password_changed",
		Entity: "credential",
	})
	return nil
}
