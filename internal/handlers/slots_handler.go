package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	ucschedule "github.com/BruksfildServices01/barber-booking/internal/usecase/schedule"
)

type SlotsHandler struct {
	compute *ucschedule.ComputeSlots
}

func NewSlotsHandler(compute *ucschedule.ComputeSlots) *SlotsHandler {
	return &SlotsHandler{compute: compute}
}

// GET /api/slots?barber_id=1&date=2026-02-02
func (h *SlotsHandler) Get(c *gin.Context) {
	barberID, ok := uintQuery(c, "barber_id")
	if !ok {
		return
	}

	slots, err := h.compute.Execute(c.Request.Context(), barberID, c.Query("date"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, slots)
}
