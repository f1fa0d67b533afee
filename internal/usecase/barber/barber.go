package barber

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/auth"
	"github.com/BruksfildServices01/barber-booking/internal/domain/access"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/barber"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/media"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ----- List -----

type ListBarbers struct {
	repo domain.Repository
}

func NewListBarbers(repo domain.Repository) *ListBarbers {
	return &ListBarbers{repo: repo}
}

func (uc *ListBarbers) Execute(ctx context.Context) ([]models.Barber, error) {
	return uc.repo.ListBarbers(ctx)
}

// ----- Create -----

type CreateInput struct {
	Name     string
	PhotoURL string
	// Username and Password, when both set, provision a barber login.
	Username string
	Password string
}

type CreateBarber struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateBarber(repo domain.Repository, audit *audit.Dispatcher) *CreateBarber {
	return &CreateBarber{repo: repo, audit: audit}
}

func (uc *CreateBarber) Execute(
	ctx context.Context,
	principal access.Principal,
	in CreateInput,
) (*models.Barber, error) {

	if err := access.RequireOwner(principal); err != nil {
		return nil, err
	}

	b, err := domain.New(in.Name, in.PhotoURL)
	if err != nil {
		return nil, err
	}

	username := strings.ToLower(strings.TrimSpace(in.Username))
	switch {
	case username == "" && in.Password == "":
		err = uc.repo.CreateBarber(ctx, b)
	case username == "" || in.Password == "":
		return nil, httperr.InvalidRequest("username and password must be given together")
	default:
		hash, hashErr := auth.HashPassword(in.Password)
		if hashErr != nil {
			return nil, hashErr
		}
		err = uc.repo.CreateBarberWithCredential(ctx, b, &models.Credential{
			Username:     username,
			PasswordHash: hash,
			Role:         string(access.RoleBarber),
		})
	}
	if err != nil {
		return nil, err
	}

	id := b.ID
	uc.audit.Dispatch(audit.Event{
		Actor:    principal.Username,
		Action:   "barber_created",
		Entity:   "barber",
		EntityID: &id,
		Metadata: map[string]any{"name": b.Name, "login": username != ""},
	})
	return b, nil
}

// ----- Check-in -----

type ToggleCheckIn struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewToggleCheckIn(repo domain.Repository, audit *audit.Dispatcher) *ToggleCheckIn {
	return &ToggleCheckIn{repo: repo, audit: audit}
}

// Execute flips the check-in flag of the principal's own barber record.
func (uc *ToggleCheckIn) Execute(ctx context.Context, principal access.Principal) (bool, error) {
	barberID, err := access.LinkedBarber(principal)
	if err != nil {
		return false, err
	}

	checkedIn, err := uc.repo.ToggleCheckIn(ctx, barberID)
	if err != nil {
		return false, err
	}

	action := "barber_checked_out"
	if checkedIn {
		action = "barber_checked_in"
	}
	uc.audit.Dispatch(audit.Event{
		Actor:    principal.Username,
		Action:   action,
		Entity:   "barber",
		EntityID: &barberID,
	})
	return checkedIn, nil
}

// ----- Photo -----

type PhotoStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

type UploadPhoto struct {
	repo  domain.Repository
	store PhotoStore
	audit *audit.Dispatcher
}

// NewUploadPhoto accepts a nil store when photo storage is not configured.
func NewUploadPhoto(repo domain.Repository, store PhotoStore, audit *audit.Dispatcher) *UploadPhoto {
	return &UploadPhoto{repo: repo, store: store, audit: audit}
}

func (uc *UploadPhoto) Execute(
	ctx context.Context,
	principal access.Principal,
	barberID uint,
	photo io.Reader,
) (*models.Barber, error) {

	if err := access.RequireOwner(principal); err != nil {
		return nil, err
	}
	if uc.store == nil {
		return nil, httperr.InvalidRequest("photo storage is not configured")
	}

	if _, err := uc.repo.GetBarber(ctx, barberID); err != nil {
		return nil, err
	}

	body, err := media.EncodeWebP(photo)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("barbers/%d/%s.webp", barberID, uuid.NewString())
	url, err := uc.store.Put(ctx, key, body, media.WebPContentType)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.SetPhotoURL(ctx, barberID, url); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    principal.Username,
		Action:   "barber_photo_updated",
		Entity:   "barber",
		EntityID: &barberID,
		Metadata: map[string]string{"key": key},
	})

	return uc.repo.GetBarber(ctx, barberID)
}
