/*
Package expr implements the expression language of Cerona.

Expressions appear as the operands of print and set statements, as the source of
for loops and as statements on their own. The grammar is small and closed:
number, string and boolean literals, variables, list literals, arithmetic,
chained comparisons and the logical operators. Evaluation produces a
runtime.Value.

Expressions are given as the words of a statement line (see scanner.SplitLine).
Quoted words are string literals; bare words are lexed with lexmachine, so

	set result a+b * c

has the same meaning as 'set result a + b * c'.

Failing to parse or evaluate an expression is not fatal for the interpreter:
statements fall back to a literal interpretation of their words. Errors
returned from this package wrap one of ErrSyntax, ErrUndefinedVariable,
ErrType, ErrZeroDivision or ErrOverflow.

________________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package expr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cerona.expr'.
func tracer() tracing.Trace {
	return tracing.Select("cerona.expr")
}
