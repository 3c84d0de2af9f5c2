package eval

type Expression interface{}

type Literal[T int64 | float64 | bool] struct {
	Value T
	Position
}

func createInt(v int64, pos Position) Literal[int64] {
	return Literal[int64]{
		Value:    v,
		Position: pos,
	}
}

func createReal(v float64, pos Position) Literal[float64] {
	return Literal[float64]{
		Value:    v,
		Position: pos,
	}
}

func createBool(b bool, pos Position) Literal[bool] {
	return Literal[bool]{
		Value:    b,
		Position: pos,
	}
}

type Variable struct {
	Ident string
	Position
}

func createVariable(ident string, pos Position) Variable {
	return Variable{
		Ident:    ident,
		Position: pos,
	}
}

type Unary struct {
	Op   rune
	Expr Expression
	Position
}

type Binary struct {
	Op    rune
	Left  Expression
	Right Expression
	Position
}

type Relational struct {
	Op    rune
	Left  Expression
	Right Expression
	Position
}

// Let binds one identifier for the extent of its body. A nil Body marks
// a top level definition: the bound value is the result and the caller
// decides what to do with the binding.
type Let struct {
	Ident string
	Expr  Expression
	Body  Expression
	Position
}
