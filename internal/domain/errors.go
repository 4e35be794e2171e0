package domain

import "errors"

// ErrDealerNotFound is returned by a DealerSource when no dealer has the requested ID.
var ErrDealerNotFound = errors.New("dealer not found")

// ValidationError reports caller input that was rejected before any I/O.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ResolutionError reports that a postal code could not be turned into coordinates.
// The cause is kept for logging; the message shown to callers is fixed.
type ResolutionError struct {
	PostalCode string
	Err        error
}

func (e *ResolutionError) Error() string {
	return "unable to resolve postal code"
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is or wraps a *ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsResolution reports whether err is or wraps a *ResolutionError.
func IsResolution(err error) bool {
	var r *ResolutionError
	return errors.As(err, &r)
}
