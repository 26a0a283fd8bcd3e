package errors

import (
	"errors"
	"fmt"
)

// Domain errors. Handlers map these to stable HTTP statuses; anything not
// listed here is treated as internal and never surfaced verbatim.
var (
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrAccountLocked        = errors.New("account is temporarily locked due to multiple failed login attempts")
	ErrAccountDeactivated   = errors.New("account has been deactivated")
	ErrEmailNotVerified     = errors.New("email address has not been verified")
	ErrTokenExpired         = errors.New("token has expired")
	ErrTokenMalformed       = errors.New("token is malformed")
	ErrWrongPurpose         = errors.New("token presented for the wrong purpose")
	ErrInvalidOrRevoked     = errors.New("refresh token is no longer valid")
	ErrTokenNotFound        = errors.New("token not found")
	ErrTokenAlreadyUsed     = errors.New("token has already been used")
	ErrEmailAlreadyInUse    = errors.New("user with this email already exists")
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailAlreadyVerified = errors.New("email is already verified")
	ErrEmailDeliveryFailed  = errors.New("failed to send email")
)

// ValidationError reports malformed or missing input, keyed by field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// NewValidationError builds a ValidationError from field/message pairs.
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// AsValidation returns the ValidationError inside err, if any.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)

	return ve, ok
}

// InfrastructureError wraps a store or cache failure. These are retryable by
// the caller and must not be confused with authentication failures.
type InfrastructureError struct {
	Op  string
	Err error
}

func (e *InfrastructureError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *InfrastructureError) Unwrap() error {
	return e.Err
}

// Infrastructure tags err as an infrastructure failure for operation op.
func Infrastructure(op string, err error) error {
	return &InfrastructureError{Op: op, Err: err}
}

// IsInfrastructure reports whether err carries an InfrastructureError.
func IsInfrastructure(err error) bool {
	var ie *InfrastructureError

	return errors.As(err, &ie)
}
