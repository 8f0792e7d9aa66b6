package providers

import (
	"errors"
	"fmt"

	"ffc/aircraft-tracker/internal/constants"
)

// ProviderError is the typed error returned for upstream API failures
type ProviderError struct {
	Code    string
	Message string
	Details string
	Err     error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// IsAuthError reports whether err is a credential exchange failure or an
// exhausted 401 retry.
func IsAuthError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Code == constants.ErrCodeAuthFailed
}

// IsFetchError reports whether err is a network, timeout, rate-limit or
// malformed-payload failure from an upstream endpoint.
func IsFetchError(err error) bool {
	var pe *ProviderError
	if !errors.As(err, &pe) {
		return false
	}
	switch pe.Code {
	case constants.ErrCodeNetworkError, constants.ErrCodeRateLimited, constants.ErrCodeInvalidDataFormat:
		return true
	}
	return false
}

// IsNotFound reports whether err refers to an aircraft outside the tracked set.
func IsNotFound(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Code == constants.ErrCodeAircraftNotFound
}
