package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// Code classifies checkout failures so the HTTP layer can map each kind to a
// distinct response without inspecting messages.
type Code string

const (
	CodeOrderNotFound       Code = "order_not_found"
	CodePaymentNotFound     Code = "payment_not_found"
	CodeInvalidOrderState   Code = "invalid_order_state"
	CodeIdempotencyConflict Code = "idempotency_conflict"
	CodePaymentGateway      Code = "payment_gateway"
	CodeInvalidSignature    Code = "invalid_signature"
	CodeMalformedEvent      Code = "malformed_event"
	CodeValidation          Code = "validation"
	CodeInternal            Code = "internal"
)

// Error is the canonical error wrapper for the checkout core.
type Error struct {
	Code    Code
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	op := strings.TrimSpace(e.Op)
	msg := strings.TrimSpace(e.Message)
	switch {
	case op != "" && msg != "":
		return fmt.Sprintf("%s: %s (%s)", op, msg, e.Code)
	case op != "":
		return fmt.Sprintf("%s (%s)", op, e.Code)
	case msg != "":
		return fmt.Sprintf("%s (%s)", msg, e.Code)
	default:
		return string(e.Code)
	}
}

func (e *Error) Unwrap() error { return e.Cause }

// New builds an error with explicit code + operation.
func New(code Code, op, message string) error {
	return &Error{Code: code, Op: strings.TrimSpace(op), Message: strings.TrimSpace(message)}
}

// Wrap annotates an existing error with a code; returns nil for nil err.
func Wrap(code Code, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Op: strings.TrimSpace(op), Message: err.Error(), Cause: err}
}

// IsCode checks whether err (or a wrapped err) carries the given code.
func IsCode(err error, code Code) bool {
	var ae *Error
	if !errors.As(err, &ae) {
		return false
	}
	return ae.Code == code
}

// CodeOf extracts the code when available, "" otherwise.
func CodeOf(err error) Code {
	var ae *Error
	if !errors.As(err, &ae) {
		return ""
	}
	return ae.Code
}

// MessageOf extracts the human-readable message when available.
func MessageOf(err error) string {
	var ae *Error
	if !errors.As(err, &ae) {
		return ""
	}
	if ae.Message != "" {
		return ae.Message
	}
	return string(ae.Code)
}
