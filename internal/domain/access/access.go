package access

import (
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

type Role string

const (
	RoleOwner  Role = "owner"
	RoleBarber Role = "barber"
)

func ParseRole(value string) (Role, error) {
	switch Role(value) {
	case RoleOwner, RoleBarber:
		return Role(value), nil
	}
	return "", httperr.InvalidRequest("role must be owner or barber")
}

// Principal is the identity resolved from a session token.
type Principal struct {
	Username    string `json:"username"`
	Role        Role   `json:"role"`
	BarberID    *uint  `json:"barber_id,omitempty"`
	DisplayName string `json:"name"`
}

func (p Principal) IsOwner() bool {
	return p.Role == RoleOwner
}

// Scope is the slice of appointments a principal may see. When All is
// false only BarberID's appointments are visible; a nil BarberID sees none.
type Scope struct {
	All      bool
	BarberID *uint
}

func AuthorizeAppointmentRead(p Principal) (Scope, error) {
	switch p.Role {
	case RoleOwner:
		return Scope{All: true}, nil
	case RoleBarber:
		return Scope{BarberID: p.BarberID}, nil
	}
	return Scope{}, httperr.Forbidden("role is not allowed to read appointments")
}

func AuthorizeAppointmentDelete(p Principal) error {
	if p.Role != RoleOwner {
		return httperr.Forbidden("only the owner can delete appointments")
	}
	return nil
}

// RequireOwner guards administrative actions such as shift changes.
func RequireOwner(p Principal) error {
	if p.Role != RoleOwner {
		return httperr.Forbidden("owner access required")
	}
	return nil
}

// LinkedBarber returns the barber record the principal acts for.
func LinkedBarber(p Principal) (uint, error) {
	if p.Role != RoleOwner && p.Role != RoleBarber {
		return 0, httperr.Forbidden("role is not recognised")
	}
	if p.BarberID == nil {
		return 0, httperr.Forbidden("account is not linked to a barber")
	}
	return *p.BarberID, nil
}
