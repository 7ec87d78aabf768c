package interp

import (
	"errors"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/cerona-lang/cerona/expr"
	"github.com/cerona-lang/cerona/runtime"
	"github.com/cerona-lang/cerona/scanner"
)

// env is the environment of the current call frame.
func (ip *Interpreter) env() *runtime.SymbolTable {
	return ip.rt.Env()
}

// resolveAll resolves words and joins their string forms, as a fallback for
// expressions which cannot be evaluated.
func (ip *Interpreter) resolveAll(ws []scanner.Word) string {
	parts := make([]string, len(ws))
	for i, w := range ws {
		parts[i] = Resolve(w, ip.env()).String()
	}
	return strings.Join(parts, " ")
}

// condition evaluates a condition of a statement, pointing at the operator
// if it is unknown.
func (ip *Interpreter) condition(cmd *Command, cond []scanner.Word) (bool, error) {
	ok, err := EvalCondition(cond, ip.env())
	var e *Error
	if errors.As(err, &e) && e.Kind == UnknownOperator {
		e.Col = column(cmd.Source, cond[1].Span().From())
	}
	return ok, err
}

func (s *Print) execute(ip *Interpreter) error {
	if len(s.Args) == 0 {
		return newError(GenericRuntimeFailure, -1, "print requires at least one argument")
	}
	v, err := s.Expr.Eval(ip.env())
	if err != nil {
		tracer().Debugf("print falls back to literal output: %v", err)
		v = runtime.Str(ip.resolveAll(s.Args))
	}
	return ip.println(v)
}

func (s *Set) execute(ip *Interpreter) error {
	if s.Name == "" {
		return newError(GenericRuntimeFailure, -1, "set requires variable name and value")
	}
	v, err := s.Expr.Eval(ip.env())
	if err != nil {
		tracer().Debugf("set %s falls back to literal text: %v", s.Name, err)
		v = runtime.Str(scanner.Join(s.Value))
	}
	ip.env().Assign(s.Name, v)
	return nil
}

func (s *IfThen) execute(ip *Interpreter) error {
	ok, err := ip.condition(s.cmd, s.Cond)
	if err != nil || !ok {
		return err
	}
	return ip.execBlock(s.Pieces)
}

func (s *If) execute(ip *Interpreter) error {
	ok, err := ip.condition(s.cmd, s.Cond)
	if err != nil {
		return err
	}
	if ok {
		return ip.execBlock(s.Then)
	}
	return ip.execBlock(s.Else)
}

func (s *While) execute(ip *Interpreter) error {
	for {
		ok, err := ip.condition(s.cmd, s.Cond)
		if err != nil || !ok {
			return err
		}
		if err = ip.execBlock(s.Body); err != nil {
			return err
		}
	}
}

func (s *For) execute(ip *Interpreter) error {
	w := s.cmd.Words
	if len(w) < 4 || !w[2].Is("in") {
		return newError(InvalidForSyntax, -1, "invalid for loop syntax (expected: for VAR in ITERABLE)")
	}
	name := w[1].Text
	var seq runtime.Value
	switch len(w) {
	case 5:
		from, ok1 := ip.bound(w[3])
		to, ok2 := ip.bound(w[4])
		if !ok1 || !ok2 {
			return newError(NonIntegerRangeBound, -1, "for loop range bounds must be integers")
		}
		seq = runtime.Range{Start: from, End: to}
	case 4:
		seq = ip.iterable(w[3])
	default:
		return newError(InvalidForSyntax, -1, "invalid for loop syntax")
	}
	if r, ok := seq.(runtime.Range); ok {
		for i := r.Start; i < r.End; i++ {
			ip.env().Assign(name, runtime.Int(i))
			if err := ip.execBlock(s.Body); err != nil {
				return err
			}
		}
		return nil
	}
	elems, err := runtime.Elements(seq)
	if err != nil {
		return newError(GenericRuntimeFailure, -1, "runtime error: %v", err)
	}
	for _, v := range elems {
		ip.env().Assign(name, v)
		if err := ip.execBlock(s.Body); err != nil {
			return err
		}
	}
	return nil
}

// bound resolves a range bound. Floats are truncated, strings must be integer
// literals.
func (ip *Interpreter) bound(w scanner.Word) (int64, bool) {
	switch v := Resolve(w, ip.env()).(type) {
	case runtime.Int:
		return int64(v), true
	case runtime.Bool:
		return runtime.AsInt(v)
	case runtime.Float:
		f := math.Trunc(float64(v))
		if math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return 0, false
		}
		return int64(f), true
	case runtime.Str:
		i, err := strconv.ParseInt(strings.TrimSpace(string(v)), 10, 64)
		return i, err == nil
	}
	return 0, false
}

// iterable is the value a for loop with a single source word iterates over.
// A bare word is evaluated as an expression; if that fails, it is resolved.
func (ip *Interpreter) iterable(w scanner.Word) runtime.Value {
	if w.Quoted {
		return runtime.Str(w.Text)
	}
	if v, err := expr.Eval([]scanner.Word{w}, ip.env()); err == nil {
		return v
	}
	return Resolve(w, ip.env())
}

func (s *FuncDecl) execute(ip *Interpreter) error {
	ip.funcs.Register(s.Def)
	return nil
}

func (s *Call) execute(ip *Interpreter) error {
	w := s.cmd.Words
	if len(w) < 2 {
		return newError(GenericRuntimeFailure, -1, "call requires function name")
	}
	args := make([]runtime.Value, len(w)-2)
	for i, a := range w[2:] {
		args[i] = Resolve(a, ip.env())
	}
	v, err := ip.Call(w[1].Text, args)
	if err != nil {
		return err
	}
	tracer().P("func", w[1].Text).Debugf("return value %s discarded", runtime.Repr(v))
	return nil
}

func (s *Return) execute(ip *Interpreter) error {
	if ip.rt.CallDepth() == 0 {
		col := column(s.cmd.Source, s.cmd.Words[0].Span().From())
		return newError(UnknownCommand, col, "unknown command 'return'")
	}
	rv := &returnValue{value: runtime.Nil}
	if w := s.cmd.Words; len(w) > 1 {
		rv.value = Resolve(w[1], ip.env())
	}
	return rv
}

func (s *Input) execute(ip *Interpreter) error {
	w := s.cmd.Words
	if len(w) < 2 {
		return newError(GenericRuntimeFailure, -1, "input requires variable name")
	}
	line, err := ip.in.ReadLine(scanner.Join(w[2:]))
	if err == io.EOF {
		return newError(GenericRuntimeFailure, -1, "input: end of input")
	} else if err != nil {
		return err
	}
	ip.env().Assign(w[1].Text, runtime.Str(line))
	return nil
}

func (s *ExprStmt) execute(ip *Interpreter) error {
	v, err := s.Expr.Eval(ip.env())
	if err != nil {
		tracer().Debugf("not an expression: %v", err)
		w := s.cmd.Words[0]
		return newError(UnknownCommand, column(s.cmd.Source, w.Span().From()),
			"unknown command '%s'", w.Text)
	}
	return ip.println(v)
}

func (s *Broken) execute(ip *Interpreter) error {
	return s.Err
}
