/*
Package crepl/main provides the command line tool for Cerona.

Called with a file name, crepl runs the Cerona program in the file:

	crepl [-trace level] [-trace-statements] [-check] file

Errors are reported in compiler style, together with the offending line.
The exit status is 1 if the program failed and 2 if the file could not be
read. With -check, the program is only loaded and checked for blocks without
terminators. -trace-statements traces every statement before it is executed.

Called without a file name, crepl starts an interactive session (C.REPL).
Every input line is executed immediately; lines of a block are collected until
the block is complete. Variables and functions persist for the whole session.
Lines starting with a colon are commands to the REPL:

	:vars    list variables
	:funcs   list functions
	:tree    show the statement tree of the last input
	:quit    end the session


License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cerona.repl'
func tracer() tracing.Trace {
	return tracing.Select("cerona.repl")
}
