package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"helishuttle/internal/http/middleware"
	"helishuttle/internal/services"
)

// POST /api/uploads/identity-card (multipart field "file")
func (h *Handler) UploadIdentityCard(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, services.MaxIdentityCardBytes+1<<20)
	fh, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "missing_file", "multipart field \"file\" is required", err.Error())
		return
	}
	f, err := fh.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "unreadable_file", "could not read uploaded file", err.Error())
		return
	}
	defer f.Close()

	svc := services.StorageService{Uploader: h.Uploader, RequestID: middleware.GetRequestID(c)}
	res, err := svc.UploadIdentityCard(c.Request.Context(), f, fh.Filename, fh.Size)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}
