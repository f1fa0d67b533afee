package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/domain/access"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	ucappointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

type AppointmentHandler struct {
	book   *ucappointment.BookAppointment
	list   *ucappointment.ListAppointments
	delete *ucappointment.DeleteAppointment
	loc    *time.Location
}

func NewAppointmentHandler(
	book *ucappointment.BookAppointment,
	list *ucappointment.ListAppointments,
	del *ucappointment.DeleteAppointment,
	loc *time.Location,
) *AppointmentHandler {
	return &AppointmentHandler{
		book:   book,
		list:   list,
		delete: del,
		loc:    loc,
	}
}

type BookAppointmentRequest struct {
	BarberID     uint   `json:"barber_id" binding:"required"`
	Date         string `json:"date" binding:"required"`
	Time         string `json:"time" binding:"required"`
	CustomerName string `json:"customer_name" binding:"required"`
	ServiceType  string `json:"service_type"`
}

// POST /api/appointments
func (h *AppointmentHandler) Book(c *gin.Context) {
	var req BookAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.book.Execute(c.Request.Context(), ucappointment.BookInput{
		BarberID:     req.BarberID,
		Date:         req.Date,
		Time:         req.Time,
		CustomerName: req.CustomerName,
		ServiceType:  req.ServiceType,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, dto.NewAppointment(*ap, h.loc))
}

// GET /api/appointments
func (h *AppointmentHandler) List(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}

	apps, err := h.list.Execute(c.Request.Context(), p)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, dto.NewAppointmentList(apps, h.loc))
}

// DELETE /api/appointments/:id
func (h *AppointmentHandler) Delete(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	// Non-owners are refused before the id is even looked at.
	if err := access.AuthorizeAppointmentDelete(p); err != nil {
		httperr.FromError(c, err)
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	if err := h.delete.Execute(c.Request.Context(), p, id); err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"message": "appointment deleted"})
}
