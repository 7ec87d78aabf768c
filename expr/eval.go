package expr

import (
	"errors"
	"fmt"
	"math"

	"github.com/cerona-lang/cerona/runtime"
	"github.com/cerona-lang/cerona/scanner"
)

// Errors of expression evaluation. Errors returned by this package wrap one
// of these.
var (
	ErrSyntax            = errors.New("syntax error")
	ErrUndefinedVariable = errors.New("undefined variable")
	ErrType              = errors.New("type error")
	ErrZeroDivision      = errors.New("division by zero")
	ErrOverflow          = errors.New("integer overflow")
)

// maxRepeat limits the length of lists and strings created by repetition.
const maxRepeat = 1 << 24

// Expr is a compiled expression. An expression failing to parse is kept
// together with its error, which is reported again on every evaluation.
type Expr struct {
	Root Node
	Err  error
	text string
}

// Compile parses words into an expression. It never fails; parse errors are
// reported by Eval.
func Compile(words []scanner.Word) *Expr {
	root, err := Parse(words)
	return &Expr{Root: root, Err: err, text: scanner.Join(words)}
}

// Eval evaluates an expression in an environment.
func (e *Expr) Eval(env Resolver) (runtime.Value, error) {
	if e.Err != nil {
		return nil, e.Err
	}
	return e.Root.Eval(env)
}

func (e *Expr) String() string {
	if e.Err != nil {
		return e.text
	}
	return e.Root.String()
}

// Eval parses and evaluates words in one step.
func Eval(words []scanner.Word, env Resolver) (runtime.Value, error) {
	return Compile(words).Eval(env)
}

// --- Evaluation of nodes ---------------------------------------------------

func (n *Literal) Eval(env Resolver) (runtime.Value, error) {
	return n.Value, nil
}

func (n *Variable) Eval(env Resolver) (runtime.Value, error) {
	if v, ok := env.Lookup(n.Name); ok {
		return v, nil
	}
	return nil, fmt.Errorf("%w '%s'", ErrUndefinedVariable, n.Name)
}

func (n *Unary) Eval(env Resolver) (runtime.Value, error) {
	x, err := n.X.Eval(env)
	if err != nil {
		return nil, err
	}
	if i, ok := runtime.AsInt(x); ok {
		if n.Op == "+" {
			return runtime.Int(i), nil
		}
		if i == math.MinInt64 {
			return nil, fmt.Errorf("%w: -(%d)", ErrOverflow, i)
		}
		return runtime.Int(-i), nil
	}
	if f, ok := x.(runtime.Float); ok {
		if n.Op == "+" {
			return f, nil
		}
		return -f, nil
	}
	return nil, fmt.Errorf("%w: bad operand kind for unary %s: %s", ErrType, n.Op, x.Kind())
}

func (n *Binary) Eval(env Resolver) (runtime.Value, error) {
	x, err := n.X.Eval(env)
	if err != nil {
		return nil, err
	}
	y, err := n.Y.Eval(env)
	if err != nil {
		return nil, err
	}
	return Arith(n.Op, x, y)
}

func (n *Logical) Eval(env Resolver) (runtime.Value, error) {
	x, err := n.X.Eval(env)
	if err != nil {
		return nil, err
	}
	if runtime.Truthy(x) == (n.Op == "or") {
		return x, nil
	}
	return n.Y.Eval(env)
}

func (n *Not) Eval(env Resolver) (runtime.Value, error) {
	x, err := n.X.Eval(env)
	if err != nil {
		return nil, err
	}
	return runtime.Bool(!runtime.Truthy(x)), nil
}

func (n *Comparison) Eval(env Resolver) (runtime.Value, error) {
	x, err := n.Operands[0].Eval(env)
	if err != nil {
		return nil, err
	}
	for i, op := range n.Ops {
		y, err := n.Operands[i+1].Eval(env)
		if err != nil {
			return nil, err
		}
		ok, err := Relate(op, x, y)
		if err != nil {
			return nil, err
		}
		if !ok {
			return runtime.Bool(false), nil
		}
		x = y
	}
	return runtime.Bool(true), nil
}

func (n *ListLiteral) Eval(env Resolver) (runtime.Value, error) {
	l := make(runtime.List, len(n.Elems))
	for i, e := range n.Elems {
		v, err := e.Eval(env)
		if err != nil {
			return nil, err
		}
		l[i] = v
	}
	return l, nil
}
