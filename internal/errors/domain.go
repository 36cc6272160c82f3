package errors

import "fmt"

// DomainError is a rejected business operation. Callers match it with
// errors.Is against the sentinels below; matching is by Code, so a copy
// carrying a more specific message still matches its sentinel.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target is a DomainError with the same code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithMessage returns a copy of the error with a formatted message.
func (e *DomainError) WithMessage(format string, args ...interface{}) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: fmt.Sprintf(format, args...),
	}
}

var (
	ErrInvalidInput = &DomainError{
		Code:    "INVALID_INPUT",
		Message: "invalid input",
	}
	ErrUnsupportedCurrency = &DomainError{
		Code:    "UNSUPPORTED_CURRENCY",
		Message: "unsupported currency",
	}
	ErrUnknownCategory = &DomainError{
		Code:    "UNKNOWN_CATEGORY",
		Message: "unknown room category",
	}
)
