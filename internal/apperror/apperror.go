// Package apperror defines the error taxonomy shared by services, middleware
// and handlers. Every failure surfaced to a client carries a Kind (which
// decides the HTTP status) and a Code (which clients can match on).
package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an error for transport mapping.
type Kind string

const (
	KindValidation     Kind = "validation"
	KindAuthentication Kind = "authentication"
	KindAuthorization  Kind = "authorization"
	KindConflict       Kind = "conflict"
	KindNotFound       Kind = "not_found"
	KindUnexpected     Kind = "unexpected"
)

// Code is the machine-readable reason of an error.
type Code string

const (
	CodeInvalidInput           Code = "InvalidInput"
	CodeMissingToken           Code = "MissingToken"
	CodeInvalidToken           Code = "InvalidToken"
	CodeExpiredToken           Code = "ExpiredToken"
	CodeMalformedOrForgedToken Code = "MalformedOrForgedToken"
	CodeInactiveUser           Code = "InactiveUser"
	CodeInvalidCredentials     Code = "InvalidCredentials"
	CodeForbidden              Code = "Forbidden"
	CodeDuplicateUsername      Code = "DuplicateUsername"
	CodeDuplicateEmail         Code = "DuplicateEmail"
	CodeDuplicateKey           Code = "DuplicateKey"
	CodeUserNotFound           Code = "UserNotFound"
	CodeBedNotFound            Code = "BedNotFound"
	CodePatientNotFound        Code = "PatientNotFound"
	CodeProfessionalNotFound   Code = "ProfessionalNotFound"
	CodeSlotNotFound           Code = "SlotNotFound"
	CodeSupplyNotFound         Code = "SupplyNotFound"
	CodeRecordNotFound         Code = "RecordNotFound"
	CodeAlreadyOccupied        Code = "AlreadyOccupied"
	CodeAlreadyAvailable       Code = "AlreadyAvailable"
	CodeSlotAlreadyReserved    Code = "SlotAlreadyReserved"
	CodeInvalidTransition      Code = "InvalidTransition"
	CodeHasLinkedRecords       Code = "HasLinkedRecords"
	CodeUnexpected             Code = "Unexpected"
)

// Error is the error type returned across package boundaries.
type Error struct {
	Kind    Kind
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on Code so callers can compare against the exported sentinels
// regardless of the message or wrapped cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates an error without an underlying cause.
func New(kind Kind, code Code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Wrap creates an error carrying an underlying cause.
func Wrap(kind Kind, code Code, message string, err error) *Error {
	return &Error{Kind: kind, Code: code, Message: message, Err: err}
}

// Validation reports a missing or malformed input field.
func Validation(message string) *Error {
	return New(KindValidation, CodeInvalidInput, message)
}

// Conflict reports a duplicate key or a state that forbids the operation.
func Conflict(code Code, message string) *Error {
	return New(KindConflict, code, message)
}

// NotFound reports a referenced id that does not resolve.
func NotFound(code Code, message string) *Error {
	return New(KindNotFound, code, message)
}

// Unexpected wraps an infrastructure failure.
func Unexpected(message string, err error) *Error {
	return Wrap(KindUnexpected, CodeUnexpected, message, err)
}

// Sentinels for the failures named by the access and occupancy rules.
var (
	ErrMissingToken           = New(KindAuthentication, CodeMissingToken, "authorization header required")
	ErrInvalidToken           = New(KindAuthentication, CodeInvalidToken, "invalid or expired token")
	ErrExpiredToken           = New(KindAuthentication, CodeExpiredToken, "token has expired")
	ErrMalformedOrForgedToken = New(KindAuthentication, CodeMalformedOrForgedToken, "token is malformed or has an invalid signature")
	ErrInactiveUser           = New(KindAuthentication, CodeInactiveUser, "user is inactive")
	ErrInvalidCredentials     = New(KindAuthentication, CodeInvalidCredentials, "invalid credentials")
	ErrForbidden              = New(KindAuthorization, CodeForbidden, "access denied for this role")
	ErrAdminRegistration      = New(KindAuthorization, CodeForbidden, "only an admin can register an admin account")
	ErrAlreadyOccupied        = New(KindConflict, CodeAlreadyOccupied, "bed is already occupied")
	ErrAlreadyAvailable       = New(KindConflict, CodeAlreadyAvailable, "bed is already available")
	ErrSlotAlreadyReserved    = New(KindConflict, CodeSlotAlreadyReserved, "schedule slot is already reserved")
	ErrBedNotFound            = New(KindNotFound, CodeBedNotFound, "bed not found")
	ErrPatientNotFound        = New(KindNotFound, CodePatientNotFound, "patient not found")
	ErrProfessionalNotFound   = New(KindNotFound, CodeProfessionalNotFound, "professional not found")
	ErrSlotNotFound           = New(KindNotFound, CodeSlotNotFound, "schedule slot not found")
	ErrSupplyNotFound         = New(KindNotFound, CodeSupplyNotFound, "supply not found")
	ErrUserNotFound           = New(KindNotFound, CodeUserNotFound, "user not found")
)

// KindOf returns the Kind of err, or KindUnexpected for foreign errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnexpected
}

// CodeOf returns the Code of err, or CodeUnexpected for foreign errors.
func CodeOf(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnexpected
}
