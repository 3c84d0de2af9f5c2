package lito

import (
	"io"
	"strings"

	"github.com/midbel/lito/environ"
	"github.com/midbel/lito/eval"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Option func(*Interpreter)

func WithLogger(logger *zap.Logger) Option {
	return func(i *Interpreter) {
		i.logger = logger
	}
}

func WithEnv(ev environ.Environment[eval.Object]) Option {
	return func(i *Interpreter) {
		i.globals = ev
	}
}

// Interpreter drives evaluation of a stream of expressions against one
// root environment. Evaluation itself stays silent; the interpreter is
// the boundary that writes diagnostics before an error goes back to the
// caller.
type Interpreter struct {
	globals environ.Environment[eval.Object]
	defined map[string]eval.Object
	logger  *zap.Logger
}

func New(options ...Option) *Interpreter {
	i := Interpreter{
		globals: environ.Empty[eval.Object](),
		defined: make(map[string]eval.Object),
		logger:  defaultLogger(),
	}
	for _, opt := range options {
		opt(&i)
	}
	return &i
}

// Run evaluates every expression found in r and returns the result of
// the last one. The first failure stops the run.
func (i *Interpreter) Run(r io.Reader) (eval.Object, error) {
	var (
		parser = eval.NewParser(r)
		last   eval.Object
	)
	for {
		expr, err := parser.Parse()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		last, err = i.Eval(expr)
		if err != nil {
			return nil, err
		}
	}
	return last, nil
}

func (i *Interpreter) RunString(str string) (eval.Object, error) {
	return i.Run(strings.NewReader(str))
}

// Eval evaluates one expression under the interpreter globals. A top
// level let without a body defines its binding into the globals; inside
// an expression, let never leaks out of its own body.
func (i *Interpreter) Eval(expr eval.Expression) (eval.Object, error) {
	res, err := eval.EvalExpr(expr, i.globals)
	if err != nil {
		i.report(err)
		return nil, err
	}
	if let, ok := expr.(eval.Let); ok && let.Body == nil {
		i.Define(let.Ident, res)
	}
	return res, nil
}

func (i *Interpreter) Define(ident string, obj eval.Object) {
	i.globals.Define(ident, obj)
	i.defined[ident] = obj
}

// Definitions returns the bindings introduced at top level, for hosts
// that persist a session.
func (i *Interpreter) Definitions() map[string]eval.Object {
	defs := make(map[string]eval.Object, len(i.defined))
	for k, v := range i.defined {
		defs[k] = v
	}
	return defs
}

func (i *Interpreter) report(err error) {
	var ev eval.EvalError
	if errors.As(err, &ev) {
		i.logger.Error("evaluation failed",
			zap.String("op", ev.Op),
			zap.Int("line", ev.Line),
			zap.NamedError("cause", ev.Err),
		)
		return
	}
	i.logger.Error("evaluation failed", zap.Error(err))
}

func defaultLogger() *zap.Logger {
	logger, err := zap.NewProduction()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
