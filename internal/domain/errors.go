package domain

import (
	"errors"
	"fmt"
)

var ErrRecordNotFound = errors.New("record not found")
var ErrInsufficientBalance = errors.New("insufficient balance")
var ErrRateUnavailable = errors.New("exchange rate unavailable")

// ValidationError rejects an operation for a business reason the caller can
// read back: closed account, unsupported currency, duplicate login and so on.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string {
	return e.Reason
}

func NewValidationError(format string, args ...any) error {
	return ValidationError{Reason: fmt.Sprintf(format, args...)}
}

func IsValidationError(err error) bool {
	var v ValidationError
	return errors.As(err, &v)
}
