package apperror

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func formatFieldName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	caser := cases.Title(language.English)
	return caser.String(s)
}

// MapValidationError turns the first binding failure into a readable AppError.
// The offending json field is reported in the details.
func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return New(CodeValidation, "Invalid input", http.StatusBadRequest)
	}

	e := errs[0]
	field := formatFieldName(e.Field())
	details := map[string]any{"field": e.Field()}

	switch e.Tag() {
	case "required":
		return RequiredField(field).WithDetails(details)
	case "oneof":
		allowed := strings.Fields(e.Param())
		details["allowed"] = allowed
		return New(CodeValidation, field+" must be one of: "+strings.Join(allowed, ", "), http.StatusBadRequest).WithDetails(details)
	default:
		return InvalidField(field).WithDetails(details)
	}
}
