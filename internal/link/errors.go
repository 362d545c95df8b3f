package link

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedScheme = errors.New("unsupported scheme")
	ErrInvalidPayload    = errors.New("invalid payload")
	ErrMissingSeparator  = errors.New("missing separator")
	ErrInvalidPort       = errors.New("invalid port")
	ErrMissingField      = errors.New("missing field")
	ErrPanic             = errors.New("parser panic")

	errNullObject = errors.New("payload is null")
)

// ParseError reports why a single link could not be converted.
type ParseError struct {
	Scheme  string // scheme the link was routed to
	Stage   string // step of the scheme parser that failed
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s: %s: %v", e.Scheme, e.Stage, e.Message, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func newParseError(scheme, stage, message string, err error) error {
	return &ParseError{
		Scheme:  scheme,
		Stage:   stage,
		Message: message,
		Err:     err,
	}
}
