/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package coreerr

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDataNotFound     = errors.New("data not found")
	ErrNothingSelected  = errors.New("nothing selected")
	ErrInvalidIdentity  = errors.New("invalid identity reference")
	ErrMissingConfig    = errors.New("missing required configuration")
	ErrUnsupportedStore = errors.New("unsupported storage type")
)

type ErrorCode string

const (
	InvalidValue           ErrorCode = "invalid-value"
	NothingSelected        ErrorCode = "nothing-selected"
	MissingConfig          ErrorCode = "missing-config"
	DataNotFound           ErrorCode = "data-not-found"
	MalformedData          ErrorCode = "malformed-data"
	BackendFailure         ErrorCode = "backend-failure"
	UnsupportedStorageType ErrorCode = "unsupported-storage-type"
)

// Error is a typed failure surfaced to callers of the engine. Input errors (InvalidValue, NothingSelected,
// MissingConfig, UnsupportedStorageType) are never retried; backend errors carry the underlying cause.
type Error struct {
	Code           ErrorCode
	Component      Component
	Operation      string
	IncorrectValue string
	Err            error
}

// ErrorJSON is a helper struct for JSON encoding of Error.
type ErrorJSON struct {
	Code           ErrorCode `json:"error"`
	Component      Component `json:"component,omitempty"`
	Operation      string    `json:"operation,omitempty"`
	IncorrectValue string    `json:"incorrect_value,omitempty"`
	Description    string    `json:"error_description,omitempty"`
}

func New(code ErrorCode, err error) *Error {
	return &Error{Code: code, Err: err}
}

func NewInvalidValue(err error) *Error {
	return New(InvalidValue, err)
}

func NewBackendFailure(err error) *Error {
	return New(BackendFailure, err)
}

func NewMalformedData(err error) *Error {
	return New(MalformedData, err)
}

func NewMissingConfig(field string) *Error {
	return New(MissingConfig, fmt.Errorf("%w: %s", ErrMissingConfig, field)).WithIncorrectValue(field)
}

func (e *Error) Error() string {
	var description []string

	if e.Component != "" {
		description = append(description, fmt.Sprintf("component: %s", e.Component))
	}

	if e.Operation != "" {
		description = append(description, fmt.Sprintf("operation: %s", e.Operation))
	}

	if e.IncorrectValue != "" {
		description = append(description, fmt.Sprintf("incorrect value: %s", e.IncorrectValue))
	}

	return fmt.Sprintf("%s[%s]: %v", e.Code, strings.Join(description, "; "), e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsInputError reports whether the error was caused by caller input and must not be retried.
func (e *Error) IsInputError() bool {
	switch e.Code {
	case InvalidValue, NothingSelected, MissingConfig, UnsupportedStorageType:
		return true
	default:
		return false
	}
}

func (e *Error) MarshalJSON() ([]byte, error) {
	var description string
	if e.Err != nil {
		description = e.Err.Error()
	}

	return json.Marshal(&ErrorJSON{
		Code:           e.Code,
		Component:      e.Component,
		Operation:      e.Operation,
		IncorrectValue: e.IncorrectValue,
		Description:    description,
	})
}

func (e *Error) WithComponent(component Component) *Error {
	e.Component = component

	return e
}

func (e *Error) WithOperation(operation string) *Error {
	e.Operation = operation

	return e
}

func (e *Error) WithIncorrectValue(incorrectValue string) *Error {
	e.IncorrectValue = incorrectValue

	return e
}

// CodeOf returns the code of the first *Error in err's chain, or an empty code.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return ""
}

// IsInputError reports whether err's chain contains an input *Error.
func IsInputError(err error) bool {
	var e *Error

	return errors.As(err, &e) && e.IsInputError()
}
