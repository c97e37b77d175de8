package compile

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/leapstack-labs/triptjs/pkg/tript"
)

// Sentinel errors for errors.Is matching.
var (
	ErrUnknownNodeKind = errors.New("unknown node kind")
	ErrUnknownOperator = errors.New("unknown operator")
)

// UnknownNodeKindError reports a node whose kind the compiler does not
// translate.
type UnknownNodeKindError struct {
	Kind tript.Kind
}

func (e *UnknownNodeKindError) Error() string {
	return fmt.Sprintf("unknown node type %q", string(e.Kind))
}

// Is implements errors.Is.
func (e *UnknownNodeKindError) Is(target error) bool {
	return target == ErrUnknownNodeKind
}

// UnknownOperatorError reports an operator-bearing node kind that has no
// binary operator mapping.
type UnknownOperatorError struct {
	Kind tript.Kind
}

func (e *UnknownOperatorError) Error() string {
	return fmt.Sprintf("unknown operator for node type %q", string(e.Kind))
}

// Is implements errors.Is.
func (e *UnknownOperatorError) Is(target error) bool {
	return target == ErrUnknownOperator
}

func unknownNodeKind(kind tript.Kind) error {
	return errors.WithStack(&UnknownNodeKindError{Kind: kind})
}

func unknownOperator(kind tript.Kind) error {
	return errors.WithStack(&UnknownOperatorError{Kind: kind})
}
