/*
Package runtime implements an interpreter runtime, consisting of
values, environments (symbol tables) and a stack of memory frames.

For a thorough discussion of an interpreter's runtime environment, refer to
"Language Implementation Patterns" by Terence Parr.

Values

Cerona values are dynamically typed. Value is a tagged union of ints, floats,
strings, booleans, lists and integer ranges.

Symbol Tables

A symbol table maps variable names to tags holding values. Cerona has no
block-local scoping: all statements of a call frame share one symbol table.

Memory Frames

This module implements a stack of memory frames. Calling a function pushes a
frame, which starts with a snapshot copy of the caller's symbol table.
Assignments inside the callee therefore never propagate back to the caller.


----------------------------------------------------------------------

BSD License

Copyright (c) 2017-21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software or the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE. */
package runtime

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cerona.runtime'.
func tracer() tracing.Trace {
	return tracing.Select("cerona.runtime")
}

// Runtime is a type implementing a runtime environment for an interpreter
type Runtime struct {
	MemFrameStack *MemoryFrameStack // runtime stack of memory frames
}

// NewRuntimeEnvironment constructs
// a new runtime environment, initialized with an empty global frame.
//
func NewRuntimeEnvironment() *Runtime {
	rt := &Runtime{}
	rt.MemFrameStack = new(MemoryFrameStack)            // initialize memory frame stack
	rt.MemFrameStack.PushNewMemoryFrame("global", nil) // global memory
	return rt
}

// Env returns the environment of the current frame.
func (rt *Runtime) Env() *SymbolTable {
	return rt.MemFrameStack.Current().SymbolTable
}

// Globals returns the environment of the global frame.
func (rt *Runtime) Globals() *SymbolTable {
	return rt.MemFrameStack.Globals().SymbolTable
}

// EnterCall pushes a frame for a call. The callee's environment is a copy of
// the caller's, overwritten by the bindings given.
func (rt *Runtime) EnterCall(name string, params []string, args []Value) *DynamicMemoryFrame {
	env := rt.Env().Copy()
	for i, p := range params {
		env.Assign(p, args[i])
	}
	return rt.MemFrameStack.PushNewMemoryFrame(name, env)
}

// LeaveCall pops the frame of the current call.
func (rt *Runtime) LeaveCall() {
	rt.MemFrameStack.PopMemoryFrame()
}

// CallDepth is the number of active calls.
func (rt *Runtime) CallDepth() int {
	return rt.MemFrameStack.Depth() - 1
}
