package interp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cerona-lang/cerona/runtime"
	"github.com/npillmayer/schuko/gconf"
)

// DefaultMaxCallDepth limits the nesting of function calls.
const DefaultMaxCallDepth = 1000

// TraceStatementsKey is the configuration key which switches on tracing of
// every executed statement (at level Info).
const TraceStatementsKey = "cerona.trace-statements"

// LineReader reads a line of input for input statements. The prompt has to be
// displayed by the reader.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// Interpreter executes Cerona programs. Variables and functions persist
// between calls to Run, so an interpreter may be used as a session.
type Interpreter struct {
	name       string
	rt         *runtime.Runtime
	funcs      *FunctionTable
	out        io.Writer
	in         LineReader
	maxDepth   int
	traceStmts bool
}

// Option configures an interpreter.
type Option func(*Interpreter)

// WithOutput sets the writer for print statements. Default is os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(ip *Interpreter) {
		ip.out = w
	}
}

// WithInput sets the reader for input statements. Prompts are written to the
// interpreter's output. Default is os.Stdin.
func WithInput(r io.Reader) Option {
	return func(ip *Interpreter) {
		ip.in = &readerInput{r: bufio.NewReader(r), ip: ip}
	}
}

// WithLineReader sets a line reader for input statements.
func WithLineReader(lr LineReader) Option {
	return func(ip *Interpreter) {
		ip.in = lr
	}
}

// WithMaxCallDepth limits the nesting of function calls.
func WithMaxCallDepth(n int) Option {
	return func(ip *Interpreter) {
		ip.maxDepth = n
	}
}

// WithName sets the name of the interpreter, used for tracing.
func WithName(name string) Option {
	return func(ip *Interpreter) {
		ip.name = name
	}
}

// New creates an interpreter with an empty global environment.
func New(opts ...Option) *Interpreter {
	ip := &Interpreter{
		name:     "cerona",
		rt:       runtime.NewRuntimeEnvironment(),
		funcs:    NewFunctionTable(),
		out:      os.Stdout,
		maxDepth: DefaultMaxCallDepth,
	}
	ip.in = &readerInput{r: bufio.NewReader(os.Stdin), ip: ip}
	for _, opt := range opts {
		opt(ip)
	}
	ip.traceStmts = gconf.GetBool(TraceStatementsKey)
	return ip
}

// Globals is the global environment.
func (ip *Interpreter) Globals() *runtime.SymbolTable {
	return ip.rt.Globals()
}

// Functions is the table of registered functions.
func (ip *Interpreter) Functions() *FunctionTable {
	return ip.funcs
}

// Run executes a program. The first error stops execution and is returned as
// an *Error.
func (ip *Interpreter) Run(prog *Program) error {
	tracer().P("intp", ip.name).Debugf("running %s", prog.Name)
	return ip.execBlock(prog.Body)
}

// RunSource loads and executes a source text.
func (ip *Interpreter) RunSource(name, source string) error {
	prog, err := Load(name, source)
	if err != nil {
		return err
	}
	return ip.Run(prog)
}

// Call calls a function with argument values and returns its result, which is
// runtime.Nil if the function ends without a return value.
func (ip *Interpreter) Call(name string, args []runtime.Value) (runtime.Value, error) {
	def := ip.funcs.Lookup(name)
	if def == nil {
		return nil, newError(UndefinedFunction, -1, "undefined function '%s'", name)
	}
	if len(args) != len(def.Params) {
		return nil, newError(ArityMismatch, -1, "function '%s' expects %d arguments, got %d (defined at line %d)",
			name, len(def.Params), len(args), def.Line)
	}
	if ip.rt.CallDepth() >= ip.maxDepth {
		return nil, newError(GenericRuntimeFailure, -1, "maximum recursion depth exceeded")
	}
	ip.rt.EnterCall(name, def.Params, args)
	defer ip.rt.LeaveCall()
	err := ip.execBlock(def.Body)
	var rv *returnValue
	if errors.As(err, &rv) {
		return rv.value, nil
	} else if err != nil {
		return nil, err
	}
	return runtime.Nil, nil
}

// returnValue unwinds the statements of a function body up to the call.
type returnValue struct {
	value runtime.Value
}

func (rv *returnValue) Error() string {
	return "return outside of function"
}

func (ip *Interpreter) execBlock(body []Statement) error {
	for _, s := range body {
		if err := ip.exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (ip *Interpreter) exec(s Statement) error {
	if ip.traceStmts {
		tracer().P("line", s.Command().Line).Infof("%s", s)
	}
	err := s.execute(ip)
	if err == nil {
		return nil
	}
	var e *Error
	var rv *returnValue
	switch {
	case errors.As(err, &rv):
		return err
	case errors.As(err, &e):
		return e.locate(s.Command())
	}
	return runtimeError(err).locate(s.Command())
}

func (ip *Interpreter) println(v runtime.Value) error {
	_, err := fmt.Fprintln(ip.out, v.String())
	return err
}

// --- Input -----------------------------------------------------------------

type readerInput struct {
	r  *bufio.Reader
	ip *Interpreter
}

func (in *readerInput) ReadLine(prompt string) (string, error) {
	if prompt != "" {
		fmt.Fprint(in.ip.out, prompt)
	}
	line, err := in.r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
