package schema

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
)

var (
	ErrNotFound = &Error{ErrorCodeNotFound, "Not found"}
)

type Error struct {
	Code ErrorCode
	Text string
}

func (e *Error) String() string {
	return fmt.Sprintf("%v: %v", e.Code, e.Text)
}

func (e *Error) Error() string {
	return e.Text
}

func (e *Error) Status() int {
	status, ok := errorStatus[e.Code]
	if !ok {
		return http.StatusInternalServerError
	}
	return status
}

func NewError(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{
		Code: code,
		Text: fmt.Sprintf(format, args...),
	}
}

func NewInvalidError(format string, args ...interface{}) *Error {
	return NewError(ErrorCodeInvalid, format, args...)
}

func NewNotFoundError(format string, args ...interface{}) *Error {
	return NewError(ErrorCodeNotFound, format, args...)
}

// NewTemplateMissingError reports a page template that could not be loaded or rendered.
func NewTemplateMissingError(name string, err error) *Error {
	return NewError(ErrorCodeTemplateMissing, "Template %q is unavailable: %v", name, err)
}

func NewErrorFromErr(err error) (*Error, bool) {
	var appErr *Error
	if ok := errors.As(err, &appErr); ok {
		return appErr, true
	}
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNotFound, true
	}
	return nil, false
}

type ErrorCode string

const (
	ErrorCodeNotFound        ErrorCode = "not_found"
	ErrorCodeTemplateMissing ErrorCode = "template_missing"
	ErrorCodeForbidden       ErrorCode = "forbidden"
	ErrorCodeUnauthorized    ErrorCode = "unauthorized"
	ErrorCodeInvalid         ErrorCode = "invalid"
)

var errorStatus = map[ErrorCode]int{
	ErrorCodeNotFound:        http.StatusNotFound,
	ErrorCodeTemplateMissing: http.StatusInternalServerError,
	ErrorCodeForbidden:       http.StatusForbidden,
	ErrorCodeUnauthorized:    http.StatusUnauthorized,
	ErrorCodeInvalid:         http.StatusUnprocessableEntity,
}
