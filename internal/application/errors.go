package application

import (
	"errors"
	"fmt"

	"github.com/oksasatya/go-archive-admin/internal/domain/repository"
)

// Code classifies application failures; the HTTP layer maps codes to statuses.
type Code string

const (
	CodeUnknownIdentity  Code = "UNKNOWN_IDENTITY"
	CodeBadCredential    Code = "BAD_CREDENTIAL"
	CodeAccountInactive  Code = "ACCOUNT_INACTIVE"
	CodeNotFound         Code = "NOT_FOUND"
	CodeDuplicateEmail   Code = "DUPLICATE_EMAIL"
	CodeDuplicateName    Code = "DUPLICATE_NAME"
	CodeLastAdmin        Code = "LAST_ADMIN"
	CodeMalformedToken   Code = "MALFORMED_TOKEN"
	CodeExpiredToken     Code = "EXPIRED_TOKEN"
	CodeInvalidSignature Code = "INVALID_SIGNATURE"
	CodeValidation       Code = "VALIDATION_FAILED"
	CodeForbidden        Code = "FORBIDDEN"
	CodeUnavailable      Code = "UNAVAILABLE"
	CodeInternal         Code = "INTERNAL"
)

// Error is a typed application error. Two errors match under errors.Is when their codes match.
type Error struct {
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

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

var (
	ErrUnknownIdentity  = &Error{Code: CodeUnknownIdentity, Message: "unknown identity"}
	ErrBadCredential    = &Error{Code: CodeBadCredential, Message: "bad credential"}
	ErrAccountInactive  = &Error{Code: CodeAccountInactive, Message: "account is inactive"}
	ErrNotFound         = &Error{Code: CodeNotFound, Message: "not found"}
	ErrDuplicateEmail   = &Error{Code: CodeDuplicateEmail, Message: "email already registered"}
	ErrDuplicateName    = &Error{Code: CodeDuplicateName, Message: "name already exists"}
	ErrLastAdmin        = &Error{Code: CodeLastAdmin, Message: "cannot deactivate the last active admin"}
	ErrMalformedToken   = &Error{Code: CodeMalformedToken, Message: "malformed token"}
	ErrExpiredToken     = &Error{Code: CodeExpiredToken, Message: "token expired"}
	ErrInvalidSignature = &Error{Code: CodeInvalidSignature, Message: "invalid token signature"}
	ErrValidation       = &Error{Code: CodeValidation, Message: "validation failed"}
	ErrForbidden        = &Error{Code: CodeForbidden, Message: "forbidden"}
	ErrUnavailable      = &Error{Code: CodeUnavailable, Message: "feature not configured"}
	ErrInternal         = &Error{Code: CodeInternal, Message: "internal error"}
)

// with returns a copy of e carrying a more specific message.
func (e *Error) with(msg string) *Error {
	return &Error{Code: e.Code, Message: msg, Err: e.Err}
}

// notFound returns a NOT_FOUND error naming the missing entity.
func notFound(what string) *Error {
	return ErrNotFound.with(what + " not found")
}

func invalid(msg string) *Error {
	return ErrValidation.with(msg)
}

// internal wraps a persistence or infrastructure fault.
func internal(op string, err error) *Error {
	e := ErrInternal.with(op)
	e.Err = err
	return e
}

// storeErr maps repository sentinels; anything else is internal.
func storeErr(op, what string, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return notFound(what)
	default:
		return internal(op, err)
	}
}

// CodeOf extracts the code of an application error, or CodeInternal.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}
