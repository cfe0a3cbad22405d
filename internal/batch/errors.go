package batch

import (
	"errors"
	"fmt"
)

var (
	ErrInputNotFound      = errors.New("input file not found")
	ErrBackgroundNotFound = errors.New("background image not found")
	ErrComposition        = errors.New("card composition failed")
)

// CompositionError reports the record a batch stopped at.
type CompositionError struct {
	Line int
	Name string
	Path string
	Err  error
}

func (e *CompositionError) Error() string {
	return fmt.Sprintf("line %d (%s): %v", e.Line, e.Name, e.Err)
}

func (e *CompositionError) Unwrap() []error {
	return []error{ErrComposition, e.Err}
}
