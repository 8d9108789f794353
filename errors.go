package chunkmerge

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with errors.Is. The typed errors below carry the details.
var (
	ErrTypeMismatch       = errors.New("type mismatch")
	ErrUnsupportedType    = errors.New("unsupported type")
	ErrIncompatibleValues = errors.New("incompatible values")
)

// TypeMismatchError is returned when two non-null values of different types
// meet at the same key, or as the two operands of MergeObj.
type TypeMismatchError struct {
	// Path locates the key from the outermost merge call; empty for MergeObj operands.
	Path  []string
	Key   string
	Left  string
	Right string
}

func (e *TypeMismatchError) Error() string {
	if e.Key == "" && len(e.Path) == 0 {
		return fmt.Sprintf("chunkmerge: left and right are of different types: left %s, right %s", e.Left, e.Right)
	}
	return fmt.Sprintf("chunkmerge: key %q at %s already exists with type %s, cannot merge %s",
		e.Key, formatPath(e.Path), e.Left, e.Right)
}

func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// UnsupportedTypeError is returned when two unequal values of the same type
// have no merge rule (floats, bools, other types).
type UnsupportedTypeError struct {
	Path []string
	Key  string
	Type string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("chunkmerge: key %q at %s already exists and values have unsupported type %s",
		e.Key, formatPath(e.Path), e.Type)
}

func (e *UnsupportedTypeError) Is(target error) bool {
	return target == ErrUnsupportedType
}

// IncompatibleValuesError is returned by MergeObj for unequal values that are
// neither strings, mappings nor sequences.
type IncompatibleValuesError struct {
	Left  any
	Right any
}

func (e *IncompatibleValuesError) Error() string {
	return fmt.Sprintf("chunkmerge: unable to merge %#v and %#v: both must be string, mapping or sequence, or be equal",
		e.Left, e.Right)
}

func (e *IncompatibleValuesError) Is(target error) bool {
	return target == ErrIncompatibleValues
}

func formatPath(path []string) string {
	if len(path) == 0 {
		return "(root)"
	}
	var b strings.Builder
	for i, seg := range path {
		if i > 0 && !strings.HasPrefix(seg, "[") {
			b.WriteByte('.')
		}
		b.WriteString(seg)
	}
	return b.String()
}
