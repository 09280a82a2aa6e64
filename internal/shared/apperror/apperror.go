package apperror

import (
	"errors"
	"fmt"
)

// Kind phân loại lỗi nghiệp vụ; handler map Kind → HTTP status
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindConflict
	KindInvalidRequest
	KindUnauthorized
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindInvalidRequest:
		return "invalid_request"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	default:
		return "internal"
	}
}

// Error custom error type dùng chung cho mọi domain
type Error struct {
	Kind    Kind
	Code    string
	Message string
	// Fields: lỗi theo từng field, vd {"ingredients": "duplicate ingredient"}
	Fields map[string]string
	Err    error
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

// Error constructors
func NotFound(code, message string, cause error) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: message, Err: cause}
}

func Conflict(code, message string, cause error) *Error {
	return &Error{Kind: KindConflict, Code: code, Message: message, Err: cause}
}

func InvalidRequest(code, message string) *Error {
	return &Error{Kind: KindInvalidRequest, Code: code, Message: message}
}

func Validation(code string, fields map[string]string) *Error {
	return &Error{Kind: KindInvalidRequest, Code: code, Message: "validation failed", Fields: fields}
}

func Unauthorized(code, message string) *Error {
	return &Error{Kind: KindUnauthorized, Code: code, Message: message}
}

func Forbidden(code, message string) *Error {
	return &Error{Kind: KindForbidden, Code: code, Message: message}
}

// KindOf trả KindInternal nếu err không phải *Error
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Is cho phép errors.Is(err, apperror.ErrNotFound) theo Kind
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == "" && t.Kind == e.Kind
}

// Sentinel theo Kind, chỉ dùng với errors.Is
var (
	ErrNotFound       = &Error{Kind: KindNotFound, Message: "not found"}
	ErrConflict       = &Error{Kind: KindConflict, Message: "conflict"}
	ErrInvalidRequest = &Error{Kind: KindInvalidRequest, Message: "invalid request"}
	ErrUnauthorized   = &Error{Kind: KindUnauthorized, Message: "unauthorized"}
	ErrForbidden      = &Error{Kind: KindForbidden, Message: "forbidden"}
)
