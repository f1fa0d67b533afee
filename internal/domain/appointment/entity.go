package appointment

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const DefaultServiceType = "Haircut"

// New validates the caller-supplied fields of a booking. Shift alignment is
// checked by the booking use case, which owns the shift lookup.
func New(
	barberID uint,
	slot time.Time,
	customerName string,
	serviceType string,
) (*models.Appointment, error) {

	name := strings.TrimSpace(customerName)
	if name == "" {
		return nil, httperr.InvalidRequest("customer name is required")
	}
	if len(name) > 100 {
		return nil, httperr.InvalidRequest("customer name is too long")
	}

	service := strings.TrimSpace(serviceType)
	if service == "" {
		service = DefaultServiceType
	}
	if len(service) > 50 {
		return nil, httperr.InvalidRequest("service type is too long")
	}

	return &models.Appointment{
		BarberID:     barberID,
		CustomerName: name,
		TimeSlot:     slot,
		ServiceType:  service,
	}, nil
}
