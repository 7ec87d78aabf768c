/*
Package cerona is an interpreter for Cerona, a small line-oriented scripting language.

Cerona programs consist of one statement per line. Lines are split into words,
collected into an immutable list of commands and executed without a separate
compile phase. Package structure is as follows:

■ scanner: Package scanner splits source lines into words, honouring quotes, escapes
and comments. Sub-package lexmach adapts lexmachine for use as a scanner.

■ expr: Package expr implements the small, closed expression grammar used by
print, set and implicit expression statements.

■ runtime: Package runtime provides values, environments and call frames.

■ interp: Package interp implements block resolution, condition evaluation, the
function table and the execution engine. Sub-package crepl is the command line host.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package cerona
