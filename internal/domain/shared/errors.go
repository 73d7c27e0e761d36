package shared

import "fmt"

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// GameEventError is returned by the dispatch layer when a reducer rejects an
// action. The message is the reducer's message, unchanged.
type GameEventError struct {
	*DomainError
	Event string
	Cause error
}

func NewGameEventError(event string, cause error) *GameEventError {
	return &GameEventError{
		DomainError: &DomainError{Message: cause.Error()},
		Event:       event,
		Cause:       cause,
	}
}

func (e *GameEventError) Unwrap() error {
	return e.Cause
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
