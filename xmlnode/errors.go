package xmlnode

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package matches exactly one of
// these with errors.Is.
var (
	ErrParse            = errors.New("parse error")
	ErrSerialize        = errors.New("serialize error")
	ErrUnsupportedKind  = errors.New("unsupported node kind")
	ErrWrongType        = errors.New("wrong type")
	ErrIllegalOperation = errors.New("illegal operation")
	ErrMissingOwner     = errors.New("missing owner document")
	ErrNotChild         = errors.New("not a child of this node")
	ErrInvalidName      = errors.New("invalid name")
)

// Error records the operation that failed, its kind and the underlying cause.
type Error struct {
	Op   string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	msg := "xmlnode: " + e.Op + ": " + e.Kind.Error()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// WrongTypeError reports text that does not parse as the requested scalar type.
type WrongTypeError struct {
	Name  string // child element the text came from, if any
	Value string
	Type  string
	Err   error
}

func (e *WrongTypeError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("xmlnode: <%s>: cannot parse %q as %s", e.Name, e.Value, e.Type)
	}
	return fmt.Sprintf("xmlnode: cannot parse %q as %s", e.Value, e.Type)
}

func (e *WrongTypeError) Is(target error) bool {
	return target == ErrWrongType
}

func (e *WrongTypeError) Unwrap() error {
	return e.Err
}
