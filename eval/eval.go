package eval

import (
	"io"
	"strings"

	"github.com/midbel/lito/environ"
	"github.com/pkg/errors"
)

func Eval(r io.Reader) (Object, error) {
	expr, err := Parse(r)
	if err != nil {
		return nil, err
	}
	return EvalExpr(expr, environ.Empty[Object]())
}

func EvalString(str string) (Object, error) {
	return Eval(strings.NewReader(str))
}

// EvalExpr reduces node to an Object under ev. The environment given by
// the caller is never mutated: let introduces its binding into a copy.
func EvalExpr(node Expression, ev environ.Environment[Object]) (Object, error) {
	return eval(node, ev)
}

func eval(node Expression, ev environ.Environment[Object]) (Object, error) {
	switch n := node.(type) {
	case Literal[int64]:
		return CreateInt(n.Value), nil
	case Literal[float64]:
		return CreateReal(n.Value), nil
	case Literal[bool]:
		return CreateBool(n.Value), nil
	case Variable:
		return evalVariable(n, ev)
	case Unary:
		return evalUnary(n, ev)
	case Binary:
		return evalBinary(n, ev)
	case Relational:
		return evalRelational(n, ev)
	case Let:
		return evalLet(n, ev)
	default:
		return nil, errors.Errorf("%T unsupported node type", node)
	}
}

func evalVariable(v Variable, ev environ.Environment[Object]) (Object, error) {
	obj, err := ev.Resolve(v.Ident)
	if err != nil {
		return nil, evalError(v.Position, v.Ident, err)
	}
	return obj, nil
}

func evalUnary(u Unary, ev environ.Environment[Object]) (Object, error) {
	obj, err := eval(u.Expr, ev)
	if err != nil {
		return nil, err
	}
	if u.Op != Not {
		return nil, evalError(u.Position, opText(u.Op), errors.Wrap(ErrOperation, "unary"))
	}
	b, ok := obj.(boolean)
	if !ok {
		return nil, evalError(u.Position, opText(u.Op), errors.Wrapf(ErrIncompatible, "not %s", obj.Type()))
	}
	return CreateBool(!b.value), nil
}

func evalBinary(b Binary, ev environ.Environment[Object]) (Object, error) {
	left, err := eval(b.Left, ev)
	if err != nil {
		return nil, err
	}
	right, err := eval(b.Right, ev)
	if err != nil {
		return nil, err
	}
	res, err := applyBinary(b.Op, left, right)
	if err != nil {
		return nil, evalError(b.Position, opText(b.Op), err)
	}
	return res, nil
}

// applyBinary holds the whole operator/type matrix for binary nodes.
// Only the three homogeneous pairings are defined; integers never widen
// to reals here.
func applyBinary(op rune, left, right Object) (Object, error) {
	switch l := left.(type) {
	case integer:
		if r, ok := right.(integer); ok {
			return intBinary(op, l, r)
		}
	case real:
		if r, ok := right.(real); ok {
			return realBinary(op, l, r)
		}
	case boolean:
		if r, ok := right.(boolean); ok {
			return boolBinary(op, l, r)
		}
	}
	return nil, incompatibleType(opText(op), left, right)
}

func intBinary(op rune, left, right integer) (Object, error) {
	switch op {
	case Add:
		return CreateInt(left.value + right.value), nil
	case Sub:
		return CreateInt(left.value - right.value), nil
	case Mul:
		return CreateInt(left.value * right.value), nil
	case Div:
		if right.value == 0 {
			return nil, ErrZero
		}
		return CreateInt(left.value / right.value), nil
	case Mod:
		if right.value == 0 {
			return nil, ErrZero
		}
		return CreateInt(left.value % right.value), nil
	default:
		return nil, unsupportedOp(opText(op), left)
	}
}

func realBinary(op rune, left, right real) (Object, error) {
	switch op {
	case Add:
		return CreateReal(left.value + right.value), nil
	case Sub:
		return CreateReal(left.value - right.value), nil
	case Mul:
		return CreateReal(left.value * right.value), nil
	case Div:
		if right.value == 0 {
			return nil, ErrZero
		}
		return CreateReal(left.value / right.value), nil
	default:
		return nil, unsupportedOp(opText(op), left)
	}
}

func boolBinary(op rune, left, right boolean) (Object, error) {
	switch op {
	case And:
		return CreateBool(left.value && right.value), nil
	case Or:
		return CreateBool(left.value || right.value), nil
	default:
		return nil, unsupportedOp(opText(op), left)
	}
}

func evalRelational(rel Relational, ev environ.Environment[Object]) (Object, error) {
	left, err := eval(rel.Left, ev)
	if err != nil {
		return nil, err
	}
	right, err := eval(rel.Right, ev)
	if err != nil {
		return nil, err
	}
	lf, lok := widen(left)
	rf, rok := widen(right)
	if !lok || !rok {
		return nil, evalError(rel.Position, opText(rel.Op), incompatibleType(opText(rel.Op), left, right))
	}
	res, err := compareReals(rel.Op, lf, rf)
	if err != nil {
		return nil, evalError(rel.Position, opText(rel.Op), err)
	}
	return res, nil
}

// compareReals applies a relational operator on the widened operands.
// Equality is exact: 3 == 3.0 holds, 0.1+0.2 == 0.3 does not.
func compareReals(op rune, left, right float64) (Object, error) {
	switch op {
	case Lt:
		return CreateBool(left < right), nil
	case Le:
		return CreateBool(left <= right), nil
	case Gt:
		return CreateBool(left > right), nil
	case Ge:
		return CreateBool(left >= right), nil
	case Eq:
		return CreateBool(left == right), nil
	case Ne:
		return CreateBool(left != right), nil
	default:
		return nil, errors.Wrap(ErrOperation, "relational")
	}
}

func evalLet(e Let, ev environ.Environment[Object]) (Object, error) {
	val, err := eval(e.Expr, ev)
	if err != nil {
		return nil, err
	}
	if e.Body == nil {
		return val, nil
	}
	local := ev.Copy()
	local.Define(e.Ident, val)
	return eval(e.Body, local)
}

func opText(op rune) string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Mod:
		return "%"
	case And:
		return "&&"
	case Or:
		return "||"
	case Not:
		return "!"
	case Eq:
		return "=="
	case Ne:
		return "!="
	case Lt:
		return "<"
	case Le:
		return "<="
	case Gt:
		return ">"
	case Ge:
		return ">="
	default:
		return "?"
	}
}
