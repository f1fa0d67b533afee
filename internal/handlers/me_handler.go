package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	ucaccount "github.com/BruksfildServices01/barber-booking/internal/usecase/account"
	ucbarber "github.com/BruksfildServices01/barber-booking/internal/usecase/barber"
	ucdashboard "github.com/BruksfildServices01/barber-booking/internal/usecase/dashboard"
)

type MeHandler struct {
	changePassword *ucaccount.ChangePassword
	checkIn        *ucbarber.ToggleCheckIn
	dashboard      *ucdashboard.GetDashboard
}

func NewMeHandler(
	changePassword *ucaccount.ChangePassword,
	checkIn *ucbarber.ToggleCheckIn,
	dashboard *ucdashboard.GetDashboard,
) *MeHandler {
	return &MeHandler{
		changePassword: changePassword,
		checkIn:        checkIn,
		dashboard:      dashboard,
	}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, p)
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

func (h *MeHandler) ChangePassword(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.changePassword.Execute(c.Request.Context(), p, req.CurrentPassword, req.NewPassword); err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "password_updated"})
}

func (h *MeHandler) ToggleCheckIn(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}

	checkedIn, err := h.checkIn.Execute(c.Request.Context(), p)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"is_checked_in": checkedIn})
}

func (h *MeHandler) Dashboard(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}

	stats, err := h.dashboard.Execute(c.Request.Context(), p)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
