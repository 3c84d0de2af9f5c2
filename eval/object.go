package eval

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

var (
	ErrIncompatible = errors.New("incompatible type")
	ErrOperation    = errors.New("unsupported operation")
	ErrZero         = errors.New("division by zero")
)

// Object is a value produced by evaluating an expression. The set of
// implementations is closed: integer, real and boolean.
type Object interface {
	Type() string
	Raw() any
	String() string
}

func CreateInt(v int64) Object {
	return integer{
		value: v,
	}
}

func CreateReal(v float64) Object {
	return real{
		value: v,
	}
}

func CreateBool(b bool) Object {
	return boolean{
		value: b,
	}
}

type integer struct {
	value int64
}

func (i integer) Type() string {
	return "integer"
}

func (i integer) Raw() any {
	return i.value
}

func (i integer) String() string {
	return strconv.FormatInt(i.value, 10)
}

type real struct {
	value float64
}

func (f real) Type() string {
	return "real"
}

func (f real) Raw() any {
	return f.value
}

func (f real) String() string {
	return strconv.FormatFloat(f.value, 'g', -1, 64)
}

type boolean struct {
	value bool
}

func (b boolean) Type() string {
	return "boolean"
}

func (b boolean) Raw() any {
	return b.value
}

func (b boolean) String() string {
	return strconv.FormatBool(b.value)
}

// widen gives the real rendition of a numeric object. Booleans do not
// widen.
func widen(obj Object) (float64, bool) {
	switch o := obj.(type) {
	case integer:
		return float64(o.value), true
	case real:
		return o.value, true
	default:
		return 0, false
	}
}

func incompatibleType(op string, left, right Object) error {
	return errors.Wrapf(ErrIncompatible, "%s %s %s", left.Type(), op, right.Type())
}

func unsupportedOp(op string, obj Object) error {
	return errors.Wrapf(ErrOperation, "%s on %s", op, obj.Type())
}

// EvalError is the one error kind evaluation reports. The wrapped cause
// tells failures apart; Position and Op locate the failing operation.
type EvalError struct {
	Op  string
	Err error
	Position
}

func evalError(pos Position, op string, err error) error {
	var ev EvalError
	if errors.As(err, &ev) {
		return err
	}
	return EvalError{
		Op:       op,
		Err:      err,
		Position: pos,
	}
}

func (e EvalError) Error() string {
	return fmt.Sprintf("line %d: %s: %s", e.Line, e.Op, e.Err)
}

func (e EvalError) Unwrap() error {
	return e.Err
}
