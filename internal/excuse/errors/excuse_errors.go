package excuseerrors

import (
	"net/http"

	"github.com/andreicionca/motivare-absente/internal/shared/apperror"
)

var (
	ErrExcuseNotFound = apperror.New(
		apperror.CodeNotFound,
		"excuse record not found",
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
		"category must be one of medical, long_leave, other",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeValidation,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeValidation,
		"period_end must not be before period_start",
		http.StatusBadRequest,
	)
	ErrInvalidSubmitter = apperror.New(
		apperror.CodeValidation,
		"submitted_by must match the signed-in role (student or parent)",
		http.StatusBadRequest,
	)
	ErrInvalidEvidenceURL = apperror.New(
		apperror.CodeValidation,
		"evidence_url must be an http(s) URL",
		http.StatusBadRequest,
	)
	ErrEvidenceNotHosted = apperror.New(
		apperror.CodeValidation,
		"evidence_url must be an image delivered by the media host",
		http.StatusBadRequest,
	)
	ErrEvidenceOutsideFolder = apperror.New(
		apperror.CodeValidation,
		"evidence image is not in the evidence folder",
		http.StatusBadRequest,
	)
	ErrEvidencePublicIDMismatch = apperror.New(
		apperror.CodeValidation,
		"evidence_public_id does not match evidence_url",
		http.StatusBadRequest,
	)
	ErrEvidenceInUse = apperror.New(
		apperror.CodeConflict,
		"evidence image is already attached to another excuse",
		http.StatusConflict,
	)
	ErrNotOwnStudent = apperror.New(
		apperror.CodeForbidden,
		"you can only submit excuses for your own student record",
		http.StatusForbidden,
	)
)
