package holiday

import (
	"net/http"
	"time"

	"github.com/andreicionca/motivare-absente/internal/shared/apperror"
	"github.com/andreicionca/motivare-absente/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var ErrInvalidWindow = apperror.New(
	apperror.CodeValidation,
	"from and to must be dates formatted YYYY-MM-DD with from <= to",
	http.StatusBadRequest,
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("holiday.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("holiday.handler")
	}
	return &Handler{service: service, logger: l}
}

// List defaults to the current school year, September through August.
func (h *Handler) List(c *gin.Context) {
	from, to := schoolYear(time.Now().UTC())

	var err error
	if v := c.Query("from"); v != "" {
		if from, err = time.Parse(dateLayout, v); err != nil {
			h.writeError(c, ErrInvalidWindow)
			return
		}
	}
	if v := c.Query("to"); v != "" {
		if to, err = time.Parse(dateLayout, v); err != nil {
			h.writeError(c, ErrInvalidWindow)
			return
		}
	}
	if to.Before(from) {
		h.writeError(c, ErrInvalidWindow)
		return
	}

	resp, err := h.service.List(c.Request.Context(), from, to)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, &response.Meta{Count: len(resp)})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("holiday request failed", zap.Int("status", httpErr.Status), zap.String("message", httpErr.Message))
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func schoolYear(now time.Time) (time.Time, time.Time) {
	year := now.Year()
	if now.Month() < time.September {
		year--
	}
	from := time.Date(year, time.September, 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(1, 0, -1)
}
