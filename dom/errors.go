package dom

import (
	"errors"
	"fmt"
)

// DOMError represents a DOM exception with a name and message.
type DOMError struct {
	Name    string
	Message string
}

func (e *DOMError) Error() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Message)
}

// DOM exception names.
const (
	HierarchyRequestError = "HierarchyRequestError"
	NotFoundError         = "NotFoundError"
	InvalidCharacterError = "InvalidCharacterError"
	InvalidStateError     = "InvalidStateError"
	InUseAttributeError   = "InUseAttributeError"
)

// ErrHierarchyRequest creates a HierarchyRequestError.
func ErrHierarchyRequest(message string) *DOMError {
	return &DOMError{Name: HierarchyRequestError, Message: message}
}

// ErrNotFound creates a NotFoundError.
func ErrNotFound(message string) *DOMError {
	return &DOMError{Name: NotFoundError, Message: message}
}

// ErrInvalidCharacter creates an InvalidCharacterError.
func ErrInvalidCharacter(message string) *DOMError {
	return &DOMError{Name: InvalidCharacterError, Message: message}
}

// ErrInvalidState creates an InvalidStateError.
func ErrInvalidState(message string) *DOMError {
	return &DOMError{Name: InvalidStateError, Message: message}
}

// ErrInUseAttribute creates an InUseAttributeError.
func ErrInUseAttribute(message string) *DOMError {
	return &DOMError{Name: InUseAttributeError, Message: message}
}

// IsDOMError reports whether err is a *DOMError with the given name.
func IsDOMError(err error, name string) bool {
	var domErr *DOMError
	return errors.As(err, &domErr) && domErr.Name == name
}
