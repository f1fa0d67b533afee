package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/domain/access"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
)

func principalOrAbort(c *gin.Context) (access.Principal, bool) {
	p, ok := middleware.Principal(c)
	if !ok {
		httperr.Write(c, http.StatusUnauthorized, httperr.CodeUnauthorized, "authentication required")
		return access.Principal{}, false
	}
	return p, true
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func uintQuery(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Query(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, name+" must be a positive integer")
		return 0, false
	}
	return uint(id), true
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "invalid request body")
		return false
	}
	return true
}
