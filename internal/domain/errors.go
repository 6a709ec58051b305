package domain

import "errors"

var (
	// ErrProvider is matched by every error a JokeProvider reports.
	ErrProvider = errors.New("joke provider unavailable")
	// ErrNoJoke signals that a provider returned neither a joke nor an error.
	ErrNoJoke = errors.New("no joke returned by provider")
)

// ProviderError describes a failed fetch. Transport, status and payload
// failures all use this one kind; Op names the step that failed.
type ProviderError struct {
	Op  string
	Err error
}

// NewProviderError wraps err as a failure of op.
func NewProviderError(op string, err error) *ProviderError {
	return &ProviderError{Op: op, Err: err}
}

func (e *ProviderError) Error() string {
	if e.Err == nil {
		return "joke provider: " + e.Op
	}
	return "joke provider: " + e.Op + ": " + e.Err.Error()
}

// Unwrap exposes both ErrProvider and the underlying cause to errors.Is.
func (e *ProviderError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrProvider}
	}
	return []error{ErrProvider, e.Err}
}
