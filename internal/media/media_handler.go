package media

import (
	"errors"
	"net/http"
	"strconv"

	mediaerrors "github.com/andreicionca/motivare-absente/internal/media/errors"
	"github.com/andreicionca/motivare-absente/internal/shared/apperror"
	"github.com/andreicionca/motivare-absente/internal/shared/response"

	"github.com/gin-gonic/gin"
)

var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

type Handler struct {
	service  Service
	maxBytes int64
}

func NewHandler(service Service, maxBytes int64) *Handler {
	return &Handler{service: service, maxBytes: maxBytes}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+1<<20)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeServiceError(c, mediaerrors.ErrFileTooLarge)
			return
		}
		writeServiceError(c, mediaerrors.ErrFileRequired)
		return
	}
	if fileHeader.Size > h.maxBytes {
		writeServiceError(c, mediaerrors.ErrFileTooLarge)
		return
	}
	if !allowedContentTypes[fileHeader.Header.Get("Content-Type")] {
		writeServiceError(c, mediaerrors.ErrUnsupportedFormat)
		return
	}

	rotation := 0
	if v := c.PostForm("rotation"); v != "" {
		if rotation, err = strconv.Atoi(v); err != nil || !ValidRotation(rotation) {
			writeServiceError(c, mediaerrors.ErrInvalidRotation)
			return
		}
	}

	f, err := fileHeader.Open()
	if err != nil {
		writeServiceError(c, mediaerrors.ErrInvalidImage)
		return
	}
	defer f.Close()

	res, err := h.service.UploadEvidence(c.Request.Context(), f, rotation)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}
