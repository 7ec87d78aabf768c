package interp

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrorKind classifies interpreter errors.
type ErrorKind int

const (
	GenericRuntimeFailure ErrorKind = iota
	UnterminatedStringLiteral
	InvalidCondition
	UnknownOperator
	MissingBlockTerminator
	ArityMismatch
	UndefinedFunction
	InvalidForSyntax
	NonIntegerRangeBound
	UnknownCommand
)

var kindNames = [...]string{
	"GenericRuntimeFailure",
	"UnterminatedStringLiteral",
	"InvalidCondition",
	"UnknownOperator",
	"MissingBlockTerminator",
	"ArityMismatch",
	"UndefinedFunction",
	"InvalidForSyntax",
	"NonIntegerRangeBound",
	"UnknownCommand",
}

func (k ErrorKind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Sentinels for use with errors.Is. An *Error matches the sentinel of its kind.
var (
	ErrGenericRuntimeFailure     = &Error{Kind: GenericRuntimeFailure, Col: -1}
	ErrUnterminatedStringLiteral = &Error{Kind: UnterminatedStringLiteral, Col: -1}
	ErrInvalidCondition          = &Error{Kind: InvalidCondition, Col: -1}
	ErrUnknownOperator           = &Error{Kind: UnknownOperator, Col: -1}
	ErrMissingBlockTerminator    = &Error{Kind: MissingBlockTerminator, Col: -1}
	ErrArityMismatch             = &Error{Kind: ArityMismatch, Col: -1}
	ErrUndefinedFunction         = &Error{Kind: UndefinedFunction, Col: -1}
	ErrInvalidForSyntax          = &Error{Kind: InvalidForSyntax, Col: -1}
	ErrNonIntegerRangeBound      = &Error{Kind: NonIntegerRangeBound, Col: -1}
	ErrUnknownCommand            = &Error{Kind: UnknownCommand, Col: -1}
)

// Error is an error of a Cerona program. Line is 1-based, Col is the 0-based
// column (in runes) within Source, or -1 if unknown.
type Error struct {
	Kind    ErrorKind
	Message string
	Line    int
	Source  string
	Col     int
	cause   error
}

func newError(kind ErrorKind, col int, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Col:     col,
	}
}

// runtimeError wraps a fault which is not a Cerona error.
func runtimeError(err error) *Error {
	e := newError(GenericRuntimeFailure, -1, "runtime error: %v", err)
	e.cause = err
	return e
}

func (e *Error) Error() string {
	if e.Line == 0 {
		return "error: " + e.Message
	}
	return fmt.Sprintf("error at line %d: %s", e.Line, e.Message)
}

// Is matches errors of the same kind, if target is one of the sentinels.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Line == 0 && t.Kind == e.Kind
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Render renders an error in compiler style, prefixed by name (usually the
// name of the source file):
//
//   test.cer:error at line 3: unknown command 'foo'
//     3 | foo bar
//       | ^
//
func (e *Error) Render(name string) string {
	var sb strings.Builder
	sb.WriteString(name)
	sb.WriteByte(':')
	sb.WriteString(e.Error())
	sb.WriteByte('\n')
	if e.Line > 0 && e.Source != "" {
		fmt.Fprintf(&sb, "  %d | %s\n", e.Line, e.Source)
		if e.Col >= 0 {
			pad := strings.Repeat(" ", len(fmt.Sprint(e.Line)))
			fmt.Fprintf(&sb, "  %s | %s^\n", pad, strings.Repeat(" ", e.Col))
		}
	}
	return sb.String()
}

// locate sets line information of an error, if not already present.
func (e *Error) locate(cmd *Command) *Error {
	if e.Line == 0 && cmd != nil {
		e.Line = cmd.Line
		e.Source = cmd.Source
	}
	return e
}

// column translates a byte offset within a source line into a rune column.
func column(source string, offset uint64) int {
	if int(offset) > len(source) {
		return -1
	}
	return utf8.RuneCountInString(source[:offset])
}
