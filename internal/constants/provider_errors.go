package constants

// Provider Error Codes
// These constants define specific error scenarios for the upstream OpenSky API

// Credential-related errors
const (
	ErrCodeAuthFailed   = "AUTHENTICATION_FAILED"
	ErrCodeRateLimited  = "RATE_LIMITED"
	ErrCodeNetworkError = "NETWORK_ERROR"
)

// Data validation errors
const (
	ErrCodeInvalidDataFormat = "INVALID_DATA_FORMAT"
)

// Lookup errors
const (
	ErrCodeAircraftNotFound = "AIRCRAFT_NOT_FOUND"
)

// Error Messages
// Human-readable messages corresponding to error codes

var ProviderErrorMessages = map[string]string{
	ErrCodeAuthFailed:        "Authentication with OpenSky failed",
	ErrCodeRateLimited:       "Rate limit exceeded. Please try again later",
	ErrCodeNetworkError:      "Unable to reach the OpenSky API",
	ErrCodeInvalidDataFormat: "The upstream response format is invalid",
	ErrCodeAircraftNotFound:  "Aircraft is not in the tracking list",
}

// GetErrorMessage returns the human-readable message for an error code
func GetErrorMessage(code string) string {
	if msg, exists := ProviderErrorMessages[code]; exists {
		return msg
	}
	return "An unknown error occurred"
}
