package sqlgen

import (
	"errors"
	"fmt"
)

// Sentinel errors for compiler failures. Both indicate caller bugs and are
// raised synchronously; nothing in this package retries.
var (
	// ErrUnsupportedOperator is wrapped by UnsupportedOperatorError.
	ErrUnsupportedOperator = errors.New("unsupported operator")

	// ErrMalformedValue is wrapped by MalformedValueError.
	ErrMalformedValue = errors.New("malformed filter value")
)

// UnsupportedOperatorError reports a leaf operator outside the closed set.
type UnsupportedOperatorError struct {
	Op Operator
}

func (e *UnsupportedOperatorError) Error() string {
	return fmt.Sprintf("unsupported operator %q", string(e.Op))
}

// Is reports ErrUnsupportedOperator.
func (e *UnsupportedOperatorError) Is(target error) bool {
	return target == ErrUnsupportedOperator
}

// MalformedValueError reports a leaf value whose shape does not fit its
// operator, e.g. a between without exactly two elements.
type MalformedValueError struct {
	Op     Operator
	Reason string
}

func (e *MalformedValueError) Error() string {
	return fmt.Sprintf("malformed value for %q: %s", string(e.Op), e.Reason)
}

// Is reports ErrMalformedValue.
func (e *MalformedValueError) Is(target error) bool {
	return target == ErrMalformedValue
}
