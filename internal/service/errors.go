package service

import "fmt"

// BusinessError is a domain failure with a stable code the handler layer
// maps to an HTTP status.
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

const (
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
)

func (b *BusinessError) Error() string {
	if b.Err != nil {
		return fmt.Sprintf("[%s] %s: %s", b.Code, b.Message, b.Err.Error())
	}
	return fmt.Sprintf("[%s] %s", b.Code, b.Message)
}

func (b *BusinessError) Unwrap() error {
	return b.Err
}

func NewNotFound(resource string) *BusinessError {
	return &BusinessError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

func NewConflict(message string) *BusinessError {
	return &BusinessError{Code: CodeConflict, Message: message}
}

func NewUnauthorized(message string) *BusinessError {
	return &BusinessError{Code: CodeUnauthorized, Message: message}
}

func NewForbidden(message string) *BusinessError {
	return &BusinessError{Code: CodeForbidden, Message: message}
}
