package barber

import (
	"strings"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func New(name string, photoURL string) (*models.Barber, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return nil, httperr.InvalidRequest("barber name is required")
	}
	if len(n) > 100 {
		return nil, httperr.InvalidRequest("barber name is too long")
	}

	b := &models.Barber{Name: n, IsActive: true}
	if p := strings.TrimSpace(photoURL); p != "" {
		b.PhotoURL = &p
	}
	return b, nil
}
