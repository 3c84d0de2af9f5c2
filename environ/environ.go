package environ

import (
	"errors"
	"fmt"
)

var ErrNotDefined = errors.New("variable not defined")

type Environment[T any] interface {
	Define(string, T)
	Resolve(string) (T, error)
	Copy() Environment[T]
}

type Env[T any] struct {
	parent Environment[T]
	values map[string]T
}

func Empty[T any]() Environment[T] {
	return Enclosed[T](nil)
}

func Enclosed[T any](parent Environment[T]) Environment[T] {
	return &Env[T]{
		parent: parent,
		values: make(map[string]T),
	}
}

func (e *Env[T]) Resolve(ident string) (T, error) {
	vs, ok := e.values[ident]
	if ok {
		return vs, nil
	}
	if e.parent != nil {
		return e.parent.Resolve(ident)
	}
	var t T
	return t, fmt.Errorf("%s: %w", ident, ErrNotDefined)
}

func (e *Env[T]) Define(ident string, value T) {
	e.values[ident] = value
}

// Copy returns a new environment holding every binding visible from e.
// The copy shares nothing with e: defining into the copy never touches
// e or any of its parents.
func (e *Env[T]) Copy() Environment[T] {
	c := Enclosed[T](nil)
	e.copyInto(c)
	return c
}

func (e *Env[T]) copyInto(target Environment[T]) {
	if p, ok := e.parent.(*Env[T]); ok && p != nil {
		p.copyInto(target)
	}
	for k, v := range e.values {
		target.Define(k, v)
	}
}
