package runtime

import (
	"fmt"
)

// This module implements a stack of memory frames.
// Memory frames are used by an interpreter to allocate local storage
// for active function calls.

// DynamicMemoryFrame is a memory frame, representing a piece of memory for a call.
type DynamicMemoryFrame struct {
	Name        string
	SymbolTable *SymbolTable
	Parent      *DynamicMemoryFrame
	Depth       int // number of frames below this one
}

// NewDynamicMemoryFrame creates a new memory frame.
func NewDynamicMemoryFrame(nm string, symtab *SymbolTable) *DynamicMemoryFrame {
	if symtab == nil {
		symtab = NewSymbolTable()
	}
	mf := &DynamicMemoryFrame{
		Name:        nm,
		SymbolTable: symtab,
	}
	return mf
}

func (mf *DynamicMemoryFrame) String() string {
	return fmt.Sprintf("<mem %s #%d>", mf.Name, mf.Depth)
}

// ---------------------------------------------------------------------------

// MemoryFrameStack is a (call-)stack of memory frames.
type MemoryFrameStack struct {
	memoryFrameBase *DynamicMemoryFrame
	memoryFrameTOS  *DynamicMemoryFrame
}

// Current gets the current memory frame of a stack (TOS).
func (mfst *MemoryFrameStack) Current() *DynamicMemoryFrame {
	if mfst.memoryFrameTOS == nil {
		panic("attempt to access memory frame from empty stack")
	}
	return mfst.memoryFrameTOS
}

// Globals gets the outermost memory frame, containing global symbols.
func (mfst *MemoryFrameStack) Globals() *DynamicMemoryFrame {
	if mfst.memoryFrameBase == nil {
		panic("attempt to access global memory frame from empty stack")
	}
	return mfst.memoryFrameBase
}

// Depth is the number of frames on the stack.
func (mfst *MemoryFrameStack) Depth() int {
	if mfst.memoryFrameTOS == nil {
		return 0
	}
	return mfst.memoryFrameTOS.Depth + 1
}

// PushNewMemoryFrame pushes a new memory frame as TOS.
// A frame is constructed, having the recent TOS as its parent. The frame
// uses symtab as its environment; if symtab is nil, the frame starts with an
// empty symbol table.
//
func (mfst *MemoryFrameStack) PushNewMemoryFrame(nm string, symtab *SymbolTable) *DynamicMemoryFrame {
	mfp := mfst.memoryFrameTOS
	newmf := NewDynamicMemoryFrame(nm, symtab)
	newmf.Parent = mfp
	if mfp == nil { // the new frame is the global frame
		mfst.memoryFrameBase = newmf // make new mf anchor
	} else {
		newmf.Depth = mfp.Depth + 1
	}
	mfst.memoryFrameTOS = newmf // new frame now TOS
	tracer().P("mem", newmf.Name).Debugf("pushing new memory frame")
	return newmf
}

// PopMemoryFrame pops the top-most memory frame. Returns the popped frame.
func (mfst *MemoryFrameStack) PopMemoryFrame() *DynamicMemoryFrame {
	if mfst.memoryFrameTOS == nil {
		panic("attempt to pop memory frame from empty call stack")
	}
	mf := mfst.memoryFrameTOS
	tracer().Debugf("popping memory frame [%s]", mf.Name)
	mfst.memoryFrameTOS = mfst.memoryFrameTOS.Parent
	return mf
}
