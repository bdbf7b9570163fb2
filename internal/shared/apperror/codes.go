package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput     = "INVALID_INPUT"
	CodeValidation       = "VALIDATION_ERROR"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeForbidden        = "FORBIDDEN"
	CodeNotFound         = "NOT_FOUND"
	CodeConflict         = "CONFLICT"
	CodeInvalidState     = "INVALID_STATE"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeTooManyRequests  = "TOO_MANY_REQUESTS"

	// Upstream errors, reported to the caller as 400 with the upstream message
	CodeUpstream      = "UPSTREAM_ERROR"
	CodeEvidenceHost  = "EVIDENCE_HOST_ERROR"
	CodeInternalError = "INTERNAL_ERROR"
)
