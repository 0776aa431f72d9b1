package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a ClientErr for propagation decisions: validation errors
// stay in the form, auth errors are handled once globally, everything else
// becomes a transient notification.
type Kind string

const (
	KindValidation  Kind = "validation"
	KindAuth        Kind = "auth"
	KindUpload      Kind = "upload"
	KindReferential Kind = "referential"
	KindTransport   Kind = "transport"
)

// Common error sentinel values
var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("operation not allowed")
	ErrNotFound        = errors.New("not found")
	ErrSkillReferenced = errors.New("skill is referenced by existing projects")
	ErrRequestFailed   = errors.New("request failed")
	ErrUploadInFlight  = errors.New("upload already in flight for this field")
	ErrSubmitInFlight  = errors.New("submission already in flight")
)

// Input-validation sentinels
var (
	ErrMissingRequiredField = errors.New("missing required field")
	ErrInvalidField         = errors.New("invalid field")
	ErrInvalidColor         = errors.New("invalid color value")
)

type ClientErr struct {
	Kind       Kind
	StatusCode int    // HTTP status for server-originated errors, 0 otherwise
	err        error
	Details    string // Additional details about the error
	Field      string // Field that caused the error (for validation errors)
	Cause      error  // The underlying cause of the error
}

func NewClientErr(kind Kind, message string) *ClientErr {
	return &ClientErr{
		Kind: kind,
		err:  errors.New(message),
	}
}

// implements error interface. this allows us to pass an instance of ClientErr as an argument of type `error`
func (e *ClientErr) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.err.Error(), e.Details)
	}
	return e.err.Error()
}

// GetFullError returns a recursive error message including all causes
func (e *ClientErr) GetFullError() string {
	msg := e.Error()
	if e.Cause != nil {
		// Check if the cause is also a ClientErr for recursive error handling
		if clientErr, ok := e.Cause.(*ClientErr); ok {
			msg = fmt.Sprintf("%s -> %s", msg, clientErr.GetFullError())
		} else {
			msg = fmt.Sprintf("%s -> %s", msg, e.Cause.Error())
		}
	}
	return msg
}

// this function allows us to do the following:
// err := &ClientErr{Kind: ..., err: someSentinelError}
// errors.Is(err, someSentinelError) ==> evaluates to true
func (e *ClientErr) Unwrap() error {
	return e.err
}

// KindOf returns the Kind of err if it is a ClientErr, or "" otherwise.
func KindOf(err error) Kind {
	var clientErr *ClientErr
	if errors.As(err, &clientErr) {
		return clientErr.Kind
	}
	return ""
}

// Validation error constructors. These never reach the network.

func NewMissingRequiredFieldError(fieldName string) *ClientErr {
	return &ClientErr{
		Kind:    KindValidation,
		err:     ErrMissingRequiredField,
		Details: fmt.Sprintf("Missing required field: %s", fieldName),
		Field:   fieldName,
	}
}

func NewInvalidFieldError(fieldName string, reason string) *ClientErr {
	return &ClientErr{
		Kind:    KindValidation,
		err:     ErrInvalidField,
		Details: fmt.Sprintf("Invalid field %s: %s", fieldName, reason),
		Field:   fieldName,
	}
}

func NewInvalidColorError(fieldName, value string) *ClientErr {
	return &ClientErr{
		Kind:    KindValidation,
		err:     ErrInvalidColor,
		Details: fmt.Sprintf("%q is not a valid hex color", value),
		Field:   fieldName,
	}
}

// Auth errors destroy the stored credential and are handled once, centrally.

func NewAuthError(statusCode int, message string) *ClientErr {
	return &ClientErr{
		Kind:       KindAuth,
		StatusCode: statusCode,
		err:        ErrUnauthorized,
		Details:    message,
	}
}

// Referential errors mean the server rejected a skill deletion because the
// skill is still attached to projects; any optimistic removal must be undone.

func NewReferentialError(skillName string, cause error) *ClientErr {
	return &ClientErr{
		Kind:       KindReferential,
		StatusCode: 409,
		err:        ErrSkillReferenced,
		Details:    fmt.Sprintf("%q is still used by one or more projects", skillName),
		Cause:      cause,
	}
}

// Transport errors cover network failures and unexpected server responses.
// The operation is abandoned; the caller may retry manually.

func NewTransportError(operation string, cause error) *ClientErr {
	return &ClientErr{
		Kind:    KindTransport,
		err:     ErrRequestFailed,
		Details: fmt.Sprintf("%s failed", operation),
		Cause:   cause,
	}
}

func NewServerError(operation string, statusCode int, message string) *ClientErr {
	details := fmt.Sprintf("%s failed", operation)
	if message != "" {
		details = fmt.Sprintf("%s: %s", details, message)
	}
	return &ClientErr{
		Kind:       KindTransport,
		StatusCode: statusCode,
		err:        ErrRequestFailed,
		Details:    details,
	}
}

func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

func IsSkillReferenced(err error) bool {
	return errors.Is(err, ErrSkillReferenced)
}

func IsValidation(err error) bool {
	return KindOf(err) == KindValidation
}
