package request

import (
	"fmt"
	"net/http"
	"time"

	"github.com/andreicionca/motivare-absente/internal/domain"
	"github.com/andreicionca/motivare-absente/internal/middleware"
	"github.com/andreicionca/motivare-absente/internal/shared/apperror"
	"github.com/andreicionca/motivare-absente/internal/shared/response"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func principal(c *gin.Context) (domain.Principal, bool) {
	p, ok := middleware.Principal(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Unauthorized", nil)
	}
	return p, ok
}

// bind accepts an empty body so the list operations fall back to the token.
func bind(c *gin.Context, req any) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(req); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeValidation, "invalid request body", err.Error())
		return false
	}
	return true
}

func (h *Handler) ListForStudent(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req ListForStudentRequest
	if !bind(c, &req) {
		return
	}

	res, err := h.service.ListForStudent(c.Request.Context(), p, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) ListForTeacher(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req ListForTeacherRequest
	if !bind(c, &req) {
		return
	}

	res, err := h.service.ListForTeacher(c.Request.Context(), p, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeValidation, "invalid request body", err.Error())
		return
	}

	res, err := h.service.UpdateStatus(c.Request.Context(), p, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) FinalizeBatch(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeValidation, "invalid request body", err.Error())
		return
	}

	res, err := h.service.FinalizeBatch(c.Request.Context(), p, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) DeletePending(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req DeletePendingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeValidation, "invalid request body", err.Error())
		return
	}

	res, err := h.service.DeletePending(c.Request.Context(), p, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) ExportScript(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeValidation, "invalid request body", err.Error())
		return
	}

	res, err := h.service.ExportScript(c.Request.Context(), p, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) ClassStats(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	res, err := h.service.ClassStats(c.Request.Context(), p)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) ExportClassStats(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	stats, err := h.service.ClassStats(c.Request.Context(), p)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	body, err := StatsWorkbook(stats)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("statistici_%s_%s.xlsx", stats.Class, time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, body)
}
