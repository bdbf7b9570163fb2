package shortleaveerrors

import (
	"net/http"

	"github.com/andreicionca/motivare-absente/internal/shared/apperror"
)

var (
	ErrShortLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"short leave request not found",
		http.StatusBadRequest,
	)
	ErrStudentNotFound = apperror.New(
		apperror.CodeNotFound,
		"student not found",
		http.StatusBadRequest,
	)
	ErrInvalidStudentID = apperror.New(
		apperror.CodeValidation,
		"invalid student id",
		http.StatusBadRequest,
	)
	ErrInvalidCategory = apperror.New(
		apperror.CodeValidation,
		"category must be one of personal, medical_urgent",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeValidation,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidTimeFormat = apperror.New(
		apperror.CodeValidation,
		"invalid time format, expected HH:MM",
		http.StatusBadRequest,
	)
	ErrInvalidTimeRange = apperror.New(
		apperror.CodeValidation,
		"end_time must be after start_time",
		http.StatusBadRequest,
	)
	ErrInvalidSubmitter = apperror.New(
		apperror.CodeValidation,
		"submitted_by must match the signed-in role (student or parent)",
		http.StatusBadRequest,
	)
	ErrNotOwnStudent = apperror.New(
		apperror.CodeForbidden,
		"you can only submit requests for your own student record",
		http.StatusForbidden,
	)
)
