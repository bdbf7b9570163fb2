package apperror

import (
	"errors"
	"net/http"
)

type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// ToHTTP converts any error into the shape written by response.Error.
// Errors outside the catalogue come from the store or another upstream
// and are reported as 400 carrying the upstream message.
func ToHTTP(err error) HTTPError {
	if err == nil {
		return HTTPError{Status: http.StatusOK}
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		status := appErr.HTTPStatus
		if status == 0 {
			status = http.StatusBadRequest
		}
		return HTTPError{
			Status:  status,
			Code:    appErr.Code,
			Message: appErr.Error(),
			Details: appErr.Details,
		}
	}

	return HTTPError{
		Status:  http.StatusBadRequest,
		Code:    CodeUpstream,
		Message: err.Error(),
	}
}
