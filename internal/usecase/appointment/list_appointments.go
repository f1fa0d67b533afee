package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/domain/access"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

// Execute returns the appointments the principal may see, in storage order.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	principal access.Principal,
) ([]models.Appointment, error) {

	scope, err := access.AuthorizeAppointmentRead(principal)
	if err != nil {
		return nil, err
	}

	if scope.All {
		return uc.repo.ListAppointments(ctx, domain.Filter{})
	}
	if scope.BarberID == nil {
		return []models.Appointment{}, nil
	}
	return uc.repo.ListAppointments(ctx, domain.Filter{BarberID: scope.BarberID})
}
