package engine

import "errors"

const (
	CodeInvalidTimeRange        = "INVALID_TIME_RANGE"
	CodeInvalidStayLength       = "INVALID_STAY_LENGTH"
	CodeInvalidModifierValue    = "INVALID_MODIFIER_VALUE"
	CodeInvalidStayBounds       = "INVALID_STAY_BOUNDS"
	CodeInvalidResource         = "INVALID_RESOURCE"
	CodeUnsupportedCurrency     = "UNSUPPORTED_CURRENCY"
	CodeInvalidStatusTransition = "INVALID_STATUS_TRANSITION"
	CodeConflict                = "CONFLICT"
)

// Error is a machine-readable engine error. Validation errors are raised before
// any store I/O happens.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

func NewError(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// ErrCode extracts the machine-readable code from err, or "" when err is not an
// engine error.
func ErrCode(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

func IsConflict(err error) bool {
	return ErrCode(err) == CodeConflict
}
