// Package errors defines the domain error taxonomy shared across the
// application. Every failure surfaced to a caller carries a stable,
// machine-checkable code and a human-readable message.
package errors

// DomainError is a business-rule failure with a stable code.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// WithMessage returns a copy of the error carrying a more specific message
// while keeping the same code, so errors.Is against the sentinel still works.
func (e *DomainError) WithMessage(msg string) *DomainError {
	return &DomainError{Code: e.Code, Message: msg}
}

// Is matches by code so that a WithMessage copy still compares equal to
// its sentinel under errors.Is.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}
