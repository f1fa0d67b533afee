package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/media"
	ucbarber "github.com/BruksfildServices01/barber-booking/internal/usecase/barber"
)

type BarberHandler struct {
	list   *ucbarber.ListBarbers
	create *ucbarber.CreateBarber
	photo  *ucbarber.UploadPhoto
}

func NewBarberHandler(
	list *ucbarber.ListBarbers,
	create *ucbarber.CreateBarber,
	photo *ucbarber.UploadPhoto,
) *BarberHandler {
	return &BarberHandler{list: list, create: create, photo: photo}
}

type CreateBarberRequest struct {
	Name     string `json:"name" binding:"required"`
	PhotoURL string `json:"photo_url"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *BarberHandler) List(c *gin.Context) {
	barbers, err := h.list.Execute(c.Request.Context())
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, barbers)
}

func (h *BarberHandler) Create(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}

	var req CreateBarberRequest
	if !bindJSON(c, &req) {
		return
	}

	b, err := h.create.Execute(c.Request.Context(), p, ucbarber.CreateInput{
		Name:     req.Name,
		PhotoURL: req.PhotoURL,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, b)
}

func (h *BarberHandler) UploadPhoto(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, media.MaxPhotoBytes+1<<20)
	file, err := c.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "multipart field photo is required")
		return
	}
	if file.Size > media.MaxPhotoBytes {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "photo is too large")
		return
	}

	f, err := file.Open()
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "could not read photo")
		return
	}
	defer f.Close()

	b, err := h.photo.Execute(c.Request.Context(), p, id, f)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}
