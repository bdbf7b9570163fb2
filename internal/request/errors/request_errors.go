package requesterrors

import (
	"net/http"

	"github.com/andreicionca/motivare-absente/internal/shared/apperror"
)

var (
	ErrInvalidKind = apperror.New(
		apperror.CodeValidation,
		"kind must be one of excuse, short_leave",
		http.StatusBadRequest,
	)
	ErrInvalidRecordID = apperror.New(
		apperror.CodeValidation,
		"invalid record id",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeValidation,
		"new_status is not a valid status for this kind",
		http.StatusBadRequest,
	)
	ErrRecordNotFound = apperror.New(
		apperror.CodeNotFound,
		"record not found",
		http.StatusBadRequest,
	)
	ErrStudentNotFound = apperror.New(
		apperror.CodeNotFound,
		"student not found",
		http.StatusBadRequest,
	)
	ErrRecordFinalized = apperror.New(
		apperror.CodeInvalidState,
		"finalized records cannot be changed",
		http.StatusBadRequest,
	)
	ErrInvalidTransition = apperror.New(
		apperror.CodeInvalidState,
		"status change not allowed from the current status",
		http.StatusBadRequest,
	)
	ErrNotWithdrawable = apperror.New(
		apperror.CodeInvalidState,
		"only requests nobody has acted on yet can be withdrawn",
		http.StatusBadRequest,
	)
	ErrNotApproved = apperror.New(
		apperror.CodeValidation,
		"only approved records can be finalized",
		http.StatusBadRequest,
	)
	ErrEmptyBatch = apperror.New(
		apperror.CodeValidation,
		"excuse_ids or short_leave_ids must not be empty",
		http.StatusBadRequest,
	)
	ErrNothingToExport = apperror.New(
		apperror.CodeValidation,
		"none of the selected records is approved or finalized",
		http.StatusBadRequest,
	)
	ErrFinalizeInProgress = apperror.New(
		apperror.CodeConflict,
		"another finalize for this class is in progress",
		http.StatusConflict,
	)
	ErrNotOwnClass = apperror.New(
		apperror.CodeForbidden,
		"record does not belong to your class",
		http.StatusForbidden,
	)
	ErrNotOwnRecord = apperror.New(
		apperror.CodeForbidden,
		"record does not belong to you",
		http.StatusForbidden,
	)
)
