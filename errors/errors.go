package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

const (
	InvalidStateCode     int32 = 1001
	EmptyStackCode       int32 = 1002
	OutOfRangeCode       int32 = 1003
	FailedCopyAssignCode int32 = 1004
	FailedMoveAssignCode int32 = 1005

	BadRequestCode int32 = 1400
	NotFoundCode   int32 = 1404
	UnknownCode    int32 = 1500
)

const (
	InvalidStateReason     = "INVALID_STATE"
	EmptyStackReason       = "EMPTY_STACK"
	OutOfRangeReason       = "OUT_OF_RANGE"
	FailedCopyAssignReason = "FAILED_COPY_ASSIGN"
	FailedMoveAssignReason = "FAILED_MOVE_ASSIGN"

	BadRequestReason = "BAD_REQUEST"
	NotFoundReason   = "NOT_FOUND"
	UnknownReason    = "UNKNOWN"

	UnknownMessage = "unknown error"
	DefaultStatus  = http.StatusInternalServerError
)

// Error 带错误码的错误, 可以直接作为响应返回给客户端
type Error interface {
	error
	Code() int32
	Reason() string
	Message() string
	HttpStatus() int32
	Unwrap() error
}

var (
	ErrInvalidState     = New(InvalidStateCode, http.StatusConflict, InvalidStateReason, "invalid stack")
	ErrEmptyStack       = New(EmptyStackCode, http.StatusConflict, EmptyStackReason, "empty stack")
	ErrOutOfRange       = New(OutOfRangeCode, http.StatusBadRequest, OutOfRangeReason, "out of range")
	ErrFailedCopyAssign = New(FailedCopyAssignCode, http.StatusInternalServerError, FailedCopyAssignReason, "failed copy assignment")
	ErrFailedMoveAssign = New(FailedMoveAssignCode, http.StatusInternalServerError, FailedMoveAssignReason, "failed move assignment")

	ErrBadRequest = New(BadRequestCode, http.StatusBadRequest, BadRequestReason, "bad request")
	ErrNotFound   = New(NotFoundCode, http.StatusNotFound, NotFoundReason, "not found")
	ErrUnknown    = New(UnknownCode, DefaultStatus, UnknownReason, UnknownMessage)
)

type statusError struct {
	ErrCode    int32  `json:"code"`
	ErrReason  string `json:"reason"`
	ErrMessage string `json:"message"`
	status     int32
	cause      error
}

func New(code int32, status int, reason, message string) Error {
	return &statusError{
		ErrCode:    code,
		ErrReason:  reason,
		ErrMessage: message,
		status:     int32(status),
	}
}

// FromError 将任意错误包装成Error, 如果err已经是Error则直接返回
func FromError(code int32, status int, reason, message string, err error) Error {
	if err == nil {
		return nil
	}

	var e Error
	if stderrors.As(err, &e) {
		return e
	}

	return &statusError{
		ErrCode:    code,
		ErrReason:  reason,
		ErrMessage: message,
		status:     int32(status),
		cause:      err,
	}
}

// Wrap 基于已有的Error创建一个新的Error, 保留错误码和原因, 替换消息
func Wrap(base Error, format string, args ...any) Error {
	return &statusError{
		ErrCode:    base.Code(),
		ErrReason:  base.Reason(),
		ErrMessage: fmt.Sprintf(format, args...),
		status:     base.HttpStatus(),
	}
}

func (e *statusError) Error() string {
	if e.cause != nil && e.cause.Error() != e.ErrMessage {
		return fmt.Sprintf("%s: %s: %v", e.ErrReason, e.ErrMessage, e.cause)
	}

	return fmt.Sprintf("%s: %s", e.ErrReason, e.ErrMessage)
}

func (e *statusError) Code() int32 {
	return e.ErrCode
}

func (e *statusError) Reason() string {
	return e.ErrReason
}

func (e *statusError) Message() string {
	return e.ErrMessage
}

func (e *statusError) HttpStatus() int32 {
	return e.status
}

func (e *statusError) Unwrap() error {
	return e.cause
}

// Is 按reason比较
func (e *statusError) Is(target error) bool {
	t, ok := target.(*statusError)
	if !ok {
		return false
	}

	return t.ErrReason == e.ErrReason
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// ReasonOf 返回err的reason, 非Error返回UnknownReason
func ReasonOf(err error) string {
	var e Error
	if stderrors.As(err, &e) {
		return e.Reason()
	}

	return UnknownReason
}
