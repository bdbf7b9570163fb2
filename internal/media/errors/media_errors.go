package mediaerrors

import (
	"net/http"

	"github.com/andreicionca/motivare-absente/internal/shared/apperror"
)

var (
	ErrFileRequired = apperror.New(
		apperror.CodeValidation,
		"file is required",
		http.StatusBadRequest,
	)
	ErrFileTooLarge = apperror.New(
		apperror.CodeValidation,
		"file exceeds the maximum upload size",
		http.StatusBadRequest,
	)
	ErrUnsupportedFormat = apperror.New(
		apperror.CodeValidation,
		"only JPEG and PNG images are accepted",
		http.StatusBadRequest,
	)
	ErrInvalidRotation = apperror.New(
		apperror.CodeValidation,
		"rotation must be one of 0, 90, 180, 270",
		http.StatusBadRequest,
	)
	ErrInvalidImage = apperror.New(
		apperror.CodeValidation,
		"file is not a readable image",
		http.StatusBadRequest,
	)
	ErrUploadFailed = apperror.New(
		apperror.CodeEvidenceHost,
		"evidence upload failed",
		http.StatusBadRequest,
	)
)
