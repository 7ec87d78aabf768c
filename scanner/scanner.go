/*
Package scanner splits Cerona source lines into words and defines an interface
for scanners producing finer grained tokens.

Two scanners live here: (1) the word splitter for statements, honouring quotes,
backslash escapes and comments, and (2) an adapter for lexmachine, living in
sub-package `lexmach`, which is used for expressions.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"fmt"
	"text/scanner"

	"github.com/cerona-lang/cerona"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cerona.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("cerona.scanner")
}

// EOF is identical to text/scanner.EOF.
// Token types are replicated here for practical reasons.
const (
	EOF    = scanner.EOF
	Ident  = scanner.Ident
	Int    = scanner.Int
	Float  = scanner.Float
	String = scanner.String
)

// Tokenizer is a scanner interface.
type Tokenizer interface {
	NextToken() cerona.Token
	SetErrorHandler(func(error))
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used as default for the
// LexMachine scanner.
type DefaultToken struct {
	kind   cerona.TokType
	lexeme string
	Val    interface{}
	span   cerona.Span
}

func MakeDefaultToken(typ cerona.TokType, lexeme string, span cerona.Span) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
	}
}

func (t DefaultToken) TokType() cerona.TokType {
	return t.kind
}

func (t DefaultToken) Value() interface{} {
	return t.Val
}

func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

func (t DefaultToken) Span() cerona.Span {
	return t.span
}

func (t DefaultToken) String() string {
	return fmt.Sprintf("%q%v", t.lexeme, t.span)
}
