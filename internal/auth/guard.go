package auth

import (
	"context"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/barber-booking/internal/domain/access"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const MinPasswordLength = 6

type BarberLookup interface {
	GetBarber(ctx context.Context, id uint) (*models.Barber, error)
}

type Session struct {
	Token       string      `json:"token"`
	TokenType   string      `json:"token_type"`
	ExpiresAt   time.Time   `json:"expires_at"`
	Role        access.Role `json:"role"`
	DisplayName string      `json:"name"`
}

type Guard struct {
	creds   access.CredentialRepository
	barbers BarberLookup
	tokens  *TokenService
}

func NewGuard(
	creds access.CredentialRepository,
	barbers BarberLookup,
	tokens *TokenService,
) *Guard {
	return &Guard{creds: creds, barbers: barbers, tokens: tokens}
}

// dummyHash is compared against when the username is unknown, so both
// failure paths pay for one bcrypt comparison.
var dummyHash = sync.OnceValue(func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("barber-booking-dummy"), bcrypt.DefaultCost)
	return h
})

func HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", httperr.InvalidRequest("password must have at least 6 characters")
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (g *Guard) Authenticate(ctx context.Context, username, password string) (*Session, error) {
	cred, err := g.creds.GetCredential(ctx, username)
	if httperr.IsBusiness(err, httperr.CodeNotFound) {
		_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
		return nil, httperr.AuthFailure()
	}
	if err != nil {
		return nil, err
	}

	if !CheckPassword(cred.PasswordHash, password) {
		return nil, httperr.AuthFailure()
	}

	role, err := access.ParseRole(cred.Role)
	if err != nil {
		return nil, httperr.AuthFailure()
	}

	name, err := g.displayName(ctx, cred)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := g.tokens.Issue(cred.Username, role)
	if err != nil {
		return nil, err
	}

	return &Session{
		Token:       token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
		Role:        role,
		DisplayName: name,
	}, nil
}

// ResolvePrincipal maps a bearer token onto the credential it was issued
// for. The stored role wins over the one carried in the token.
func (g *Guard) ResolvePrincipal(ctx context.Context, token string) (*access.Principal, error) {
	claims, err := g.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	cred, err := g.creds.GetCredential(ctx, claims.Subject)
	if httperr.IsBusiness(err, httperr.CodeNotFound) {
		return nil, httperr.Unauthorized("unknown token subject")
	}
	if err != nil {
		return nil, err
	}

	role, err := access.ParseRole(cred.Role)
	if err != nil {
		return nil, httperr.Unauthorized("credential has an unknown role")
	}

	name, err := g.displayName(ctx, cred)
	if err != nil {
		return nil, err
	}

	return &access.Principal{
		Username:    cred.Username,
		Role:        role,
		BarberID:    cred.BarberID,
		DisplayName: name,
	}, nil
}

func (g *Guard) displayName(ctx context.Context, cred *models.Credential) (string, error) {
	if cred.BarberID == nil || g.barbers == nil {
		return cred.Username, nil
	}
	b, err := g.barbers.GetBarber(ctx, *cred.BarberID)
	if httperr.IsBusiness(err, httperr.CodeNotFound) {
		return cred.Username, nil
	}
	if err != nil {
		return "", err
	}
	return b.Name, nil
}
