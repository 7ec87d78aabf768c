package interp

import (
	"fmt"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// FunctionDef is a function, created by executing a func statement.
type FunctionDef struct {
	Name        string
	Params      []string
	Body        []Statement
	Line        int    // line of the func statement
	Fingerprint string // hash of the function's source
	Revision    int    // number of differing definitions registered for the name
}

func (def *FunctionDef) String() string {
	return fmt.Sprintf("<func %s%v @%d>", def.Name, def.Params, def.Line)
}

// fingerprint hashes the source text of a function, from func to endfunc.
// Line numbers are not part of the hash: the same function loaded twice at
// different positions has the same fingerprint.
func fingerprint(def *FunctionDef, cmds []*Command) string {
	src := struct {
		Name   string
		Params []string
		Lines  []string
	}{Name: def.Name, Params: def.Params}
	for _, cmd := range cmds {
		src.Lines = append(src.Lines, words(cmd.Words))
	}
	h, err := structhash.Hash(src, 1)
	if err != nil {
		tracer().Errorf("cannot hash function %s: %v", def.Name, err)
		return ""
	}
	return h
}

// FunctionTable maps function names to definitions. It remembers the order in
// which names have first been registered.
type FunctionTable struct {
	m *linkedhashmap.Map
}

// NewFunctionTable creates an empty function table.
func NewFunctionTable() *FunctionTable {
	return &FunctionTable{m: linkedhashmap.New()}
}

// Register adds a function definition, replacing an existing one with the
// same name. It returns the replaced definition, if any.
//
// The revision of a definition counts the differing definitions of its name.
// Registering a definition with the same fingerprint again does not start a
// new revision.
func (ft *FunctionTable) Register(def *FunctionDef) *FunctionDef {
	old := ft.Lookup(def.Name)
	ft.m.Put(def.Name, def)
	switch {
	case old == nil:
		def.Revision = 1
		tracer().P("func", def.Name).Debugf("defined with parameters %v", def.Params)
	case old.Fingerprint != "" && old.Fingerprint == def.Fingerprint:
		def.Revision = old.Revision
		tracer().P("func", def.Name).Debugf("identical definition registered again")
	default:
		def.Revision = old.Revision + 1
		tracer().P("func", def.Name).Infof("redefined at line %d (was line %d)", def.Line, old.Line)
	}
	return old
}

// Lookup finds a function by name. It returns nil for unknown functions.
func (ft *FunctionTable) Lookup(name string) *FunctionDef {
	if def, found := ft.m.Get(name); found {
		return def.(*FunctionDef)
	}
	return nil
}

// Size is the number of functions.
func (ft *FunctionTable) Size() int {
	return ft.m.Size()
}

// Each calls f for every function, in order of first registration.
func (ft *FunctionTable) Each(f func(def *FunctionDef)) {
	ft.m.Each(func(_ interface{}, v interface{}) {
		f(v.(*FunctionDef))
	})
}
