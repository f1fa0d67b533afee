package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	ucschedule "github.com/BruksfildServices01/barber-booking/internal/usecase/schedule"
)

type ShiftHandler struct {
	get  *ucschedule.GetShift
	list *ucschedule.ListShifts
	set  *ucschedule.SetShift
}

func NewShiftHandler(
	get *ucschedule.GetShift,
	list *ucschedule.ListShifts,
	set *ucschedule.SetShift,
) *ShiftHandler {
	return &ShiftHandler{get: get, list: list, set: set}
}

// Pointers let weekday 0 (Monday) and hour 0 pass the required check.
type SetShiftRequest struct {
	BarberID  uint `json:"barber_id" binding:"required"`
	Weekday   *int `json:"weekday" binding:"required"`
	StartHour *int `json:"start_hour" binding:"required"`
	EndHour   *int `json:"end_hour" binding:"required"`
}

// GET /api/shifts?barber_id=1&weekday=0
func (h *ShiftHandler) Get(c *gin.Context) {
	barberID, ok := uintQuery(c, "barber_id")
	if !ok {
		return
	}
	weekday, err := strconv.Atoi(c.Query("weekday"))
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRange, "weekday must be between 0 (Monday) and 6 (Sunday)")
		return
	}

	shift, err := h.get.Execute(c.Request.Context(), barberID, weekday)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, shift)
}

// GET /api/barbers/:id/shifts
func (h *ShiftHandler) ListForBarber(c *gin.Context) {
	barberID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	shifts, err := h.list.Execute(c.Request.Context(), barberID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, shifts)
}

// PUT /api/shifts
func (h *ShiftHandler) Set(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}

	var req SetShiftRequest
	if !bindJSON(c, &req) {
		return
	}

	shift, err := h.set.Execute(c.Request.Context(), p, ucschedule.SetShiftInput{
		BarberID:  req.BarberID,
		Weekday:   *req.Weekday,
		StartHour: *req.StartHour,
		EndHour:   *req.EndHour,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "shift saved",
		"shift":   shift,
	})
}
