// Package constants provides standardized error codes shared across the
// irrigo backend services.
package constants

// Standard error codes for common error scenarios.
const (
	// ErrInvalidInput represents invalid input validation failures in API requests.
	ErrInvalidInput = "INVALID_INPUT"

	// ErrInternalServer represents unexpected internal server errors.
	ErrInternalServer = "INTERNAL_SERVER_ERROR"

	// ErrUnauthorized represents unauthorized access attempts and authentication failures.
	ErrUnauthorized = "UNAUTHORIZED"

	// ErrNotFound represents resource not found scenarios in database or API endpoints.
	ErrNotFound = "NOT_FOUND"

	// ErrDatabaseOperation represents database operation failures including connectivity issues.
	ErrDatabaseOperation = "DATABASE_ERROR"

	// ErrValidation represents general validation failures across the application.
	ErrValidation = "VALIDATION_ERROR"
)

// Domain-specific error codes for irrigation scheduling.
const (
	// ErrInvalidZone represents a zone configuration that violates the kernel's
	// preconditions (root depth, AWHC, efficiency, Kc, flow/area).
	ErrInvalidZone = "INVALID_ZONE"

	// ErrCatalogNotFound represents a missing grass or soil catalogue entry.
	ErrCatalogNotFound = "CATALOG_NOT_FOUND"

	// ErrWeatherUnavailable represents a forecast provider that could not be reached
	// and had no cached fallback.
	ErrWeatherUnavailable = "WEATHER_UNAVAILABLE"
)

// validErrorCodes contains all valid error codes for validation.
var validErrorCodes = map[string]bool{
	ErrInvalidInput:       true,
	ErrInternalServer:     true,
	ErrUnauthorized:       true,
	ErrNotFound:           true,
	ErrDatabaseOperation:  true,
	ErrValidation:         true,
	ErrInvalidZone:        true,
	ErrCatalogNotFound:    true,
	ErrWeatherUnavailable: true,
}

// IsValidCode reports whether code is a recognized error code.
func IsValidCode(code string) bool {
	return validErrorCodes[code]
}
