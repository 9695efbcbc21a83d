package normalize

import (
	"errors"
	"fmt"
)

// Reason classifies why input was rejected.
type Reason string

// Rejection reasons.
const (
	ReasonTooShort  Reason = "too_short"
	ReasonTooLong   Reason = "too_long"
	ReasonInjection Reason = "injection_detected"
)

// ValidationError represents rejected input. It is the only error the
// analysis pipeline ever surfaces to callers.
type ValidationError struct {
	Reason  Reason
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error (%s): %s", e.Reason, e.Message)
}

// IsValidationError reports whether err is a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
