package util

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// error

type Error struct {
	orig error
	msg  string
	code error
}

func (e *Error) Error() string {
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	}

	return e.msg
}

func (e *Error) Unwrap() error {
	return e.orig
}

// Is. an Error matches its code, so callers can use errors.Is(err, util.ErrNotFound)
func (e *Error) Is(target error) bool {
	return e.code != nil && e.code == target
}

func WrapErrorf(orig error, code error, format string, a ...interface{}) error {
	return &Error{
		code: code,
		orig: orig,
		msg:  fmt.Sprintf(format, a...),
	}
}

func NewErrorf(code error, format string, a ...interface{}) error {
	return WrapErrorf(nil, code, format, a...)
}

func (e *Error) Code() error {
	return e.code
}

// ErrorCode returns the code of the outermost *Error in err's chain, or nil.
func ErrorCode(err error) error {
	var uErr *Error
	if errors.As(err, &uErr) {
		return uErr.Code()
	}
	return nil
}

var (
	ErrInternalServerError = errors.New("internal server error")
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("no routable data in region")
	ErrUnreachable         = errors.New("destination unreachable")
	ErrUpstream            = errors.New("geodata service error")
)

var MessageInternalServerError string = "internal server error"

func DegreeToRadians(angle float64) float64 {
	return angle * (math.Pi / 180.0)
}

func RadiansToDegree(rad float64) float64 {
	return 180.0 * rad / math.Pi
}

func ReverseG[T any](arr []T) []T {
	copyArr := make([]T, len(arr)) // should do on the copy )
	copy(copyArr, arr)
	for i, j := 0, len(copyArr)-1; i < j; i, j = i+1, j-1 {
		copyArr[i], copyArr[j] = copyArr[j], copyArr[i]
	}
	return copyArr
}

func StopConcurrentOperation(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
