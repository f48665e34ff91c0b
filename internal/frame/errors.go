package frame

import "fmt"

// UnrecognizedTypeError reports a header frame-type keyword that maps to none
// of the known categories. The orchestrator surfaces it as a per-file skip.
type UnrecognizedTypeError struct {
	Value string
}

func (e *UnrecognizedTypeError) Error() string {
	return fmt.Sprintf("unrecognized frame type %q", e.Value)
}

// MissingFieldError reports a header field that the detected frame category
// requires but the record does not carry.
type MissingFieldError struct {
	Field string
	Frame Type
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s frame missing required %s", e.Frame, e.Field)
}
