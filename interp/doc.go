/*
Package interp is the execution core of Cerona.

A Cerona program is a sequence of statements, one per line:

	set x 5
	if x less 10
	    print "small"
	else
	    print "big"
	endif

Load splits the source into commands (line number, words, source text) and builds
a tree of statements from them. Block statements (func, if, while and for) are
matched with their terminators by the block resolver. A block without a
terminator is not rejected at load time: it becomes a statement which fails
with MissingBlockTerminator as soon as control reaches it. Clients may call
Program.Check to find these problems up front.

An Interpreter executes programs. It owns the runtime (a stack of memory
frames, each holding a symbol table as its variable environment) and the table
of functions. All nested if, while and for bodies of a frame share its
environment. A call creates a new frame with a snapshot copy of the caller's
environment, so assignments inside a function never show outside of it.

Functions are registered when execution reaches their func statement. They
may be called only after that.

Errors

Every error stops execution. Errors are of type *Error and carry a Kind, the
line number, the source line and, if known, a column. Use errors.Is with the
kind sentinels (ErrUnknownCommand etc.) to check for a kind.

Tracing

Tracing uses the key 'cerona.interp'. If the global configuration has
'cerona.trace-statements' set, every statement is traced before it executes.

________________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package interp

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cerona.interp'.
func tracer() tracing.Trace {
	return tracing.Select("cerona.interp")
}
