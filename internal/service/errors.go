package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingAccount      = errors.New("account_id is required")
	ErrMissingSignature    = errors.New("missing Stripe signature")
	ErrInvalidSignature    = errors.New("invalid Stripe signature")
	ErrInvalidEventPayload = errors.New("invalid event payload")
)

// ValidationError describes one rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidationErrors is returned when a request fails validation.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, v := range e {
		msgs = append(msgs, v.Message)
	}
	return strings.Join(msgs, "; ")
}

func (e ValidationErrors) Messages() []string {
	msgs := make([]string, 0, len(e))
	for _, v := range e {
		msgs = append(msgs, v.Message)
	}
	return msgs
}

// UpstreamError is a failed call to the payments provider.
type UpstreamError struct {
	Op        string
	AccountID string
	// Message is the provider's own description of the failure, if any.
	Message string
	// Missing is set when the provider reported the resource does not exist.
	Missing bool
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.AccountID != "" {
		return fmt.Sprintf("%s %s: %s", e.Op, e.AccountID, e.Reason())
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Reason())
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func (e *UpstreamError) Reason() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err == nil {
		return "unknown error"
	}
	return e.Err.Error()
}

// NotFoundError means a status could be resolved neither locally nor
// upstream.
type NotFoundError struct {
	AccountID string
	Err       error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("account %s not found", e.AccountID)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// ErrorMessage is the text shown to API callers for err. Provider
// failures report the provider's message rather than the wrapped chain.
func ErrorMessage(err error) string {
	var up *UpstreamError
	if errors.As(err, &up) {
		return up.Reason()
	}
	return err.Error()
}

// IsMissing reports whether err is an upstream "no such resource" error.
func IsMissing(err error) bool {
	var up *UpstreamError
	return errors.As(err, &up) && up.Missing
}

// RequestError rejects a request before anything is sent upstream.
type RequestError struct {
	Message string
	Fields  ValidationErrors
}

func (e *RequestError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return e.Message + ": " + e.Fields.Error()
}

func (e *RequestError) Unwrap() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e.Fields
}

// CustomerNotFoundError is returned when a payment names a customer the
// connected account does not have.
type CustomerNotFoundError struct {
	CustomerID string
	Err        error
}

func (e *CustomerNotFoundError) Error() string {
	return fmt.Sprintf("Customer %s not found", e.CustomerID)
}

func (e *CustomerNotFoundError) Unwrap() error { return e.Err }

func invalid(field, message string) error {
	return &RequestError{Message: message, Fields: ValidationErrors{{Field: field, Message: message}}}
}

// asRequestError turns validator output into a RequestError with the given
// summary. Other errors pass through.
func asRequestError(summary string, err error) error {
	if err == nil {
		return nil
	}
	var fields ValidationErrors
	if errors.As(err, &fields) {
		if summary == "" {
			summary = fields[0].Message
		}
		return &RequestError{Message: summary, Fields: fields}
	}
	return err
}
