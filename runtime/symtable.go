package runtime

import (
	"fmt"

	"github.com/emirpasic/gods/maps/treemap"
)

// Symbol table for variables. Every call frame owns exactly one symbol table,
// which is the environment of all statements executing in that frame.
//

// --- Tags -------------------------------------------------------

// Tag is the symbols type to be stored into symbol tables. It may be a
// little surprising this type is not called 'Symbol', but I prefer the
// name 'Tag' because it is less confusing when dealing with parsers
// and grammars: Grammars consist of symbols (within rules), too.
// Thus, symbols are used in the scope of the grammar, tags are used during
// runtime (of the client program).
//
type Tag struct {
	name  string
	Typ   Kind  // kind of the value last assigned
	Value Value // current value
}

// NewTag creates a new tag without a value.
func NewTag(nm string) *Tag {
	return &Tag{
		name:  nm,
		Value: Nil,
	}
}

// Set assigns a value to a tag and records its kind.
func (s *Tag) Set(v Value) *Tag {
	if v == nil {
		v = Nil
	}
	s.Value = v
	s.Typ = v.Kind()
	return s
}

// String is a debug Stringer for symbols.
func (s *Tag) String() string {
	return fmt.Sprintf("<tag '%s':%s>", s.Name(), s.Typ)
}

// Name gets the tag's name.
func (s *Tag) Name() string {
	return s.name
}

// === Symbol Tables =========================================================

// SymbolTable is a symbol table to store tags (map-like semantics).
type SymbolTable struct {
	Table     map[string]*Tag
	createTag func(string) *Tag
}

// NewSymbolTable creates an empty symbol table.
//
func NewSymbolTable() *SymbolTable {
	var symtab = SymbolTable{
		Table:     make(map[string]*Tag),
		createTag: NewTag,
	}
	return &symtab
}

// ResolveTag checks for a tag in the symbol table.
// Returns a tag or nil.
//
func (t *SymbolTable) ResolveTag(tagname string) *Tag {
	return t.Table[tagname]
}

// ResolveOrDefineTag finds
// a tag in the table, inserts a new one if not found.
// Creates non-existent tags on the fly.
// Returns the tag and a flag, signalling wether the tag
// has already been present.
//
func (t *SymbolTable) ResolveOrDefineTag(tagname string) (*Tag, bool) {
	if len(tagname) == 0 {
		return nil, false
	}
	found := true
	tag := t.ResolveTag(tagname)
	if tag == nil { // if not already there, insert it
		tag, _ = t.DefineTag(tagname)
		found = false
	}
	return tag, found
}

// DefineTag creates a new tag to store into the symbol table.
// The tag's name may not be empty
// Overwrites existing tag with this name, if any.
// Returns the new tag and the previously stored tag (or nil).
//
func (t *SymbolTable) DefineTag(tagname string) (*Tag, *Tag) {
	if len(tagname) == 0 {
		return nil, nil
	}
	tag := t.createTag(tagname)
	old := t.InsertTag(tag)
	return tag, old
}

// InsertTag inserts a pre-created symbol.
func (t *SymbolTable) InsertTag(tag *Tag) *Tag {
	old := t.ResolveTag(tag.name)
	t.Table[tag.name] = tag
	return old
}

// Size counts the tags in a symbol table.
func (t *SymbolTable) Size() int {
	return len(t.Table)
}

// --- Environment operations ------------------------------------------------

// Lookup returns the value of a variable.
func (t *SymbolTable) Lookup(name string) (Value, bool) {
	if tag := t.ResolveTag(name); tag != nil {
		return tag.Value, true
	}
	return nil, false
}

// Assign sets a variable, creating it if necessary.
func (t *SymbolTable) Assign(name string, v Value) {
	if tag, _ := t.ResolveOrDefineTag(name); tag != nil {
		tag.Set(v)
	}
}

// Copy creates a snapshot of the table. Tags are copied, values are
// shared; values are immutable, therefore assignments to either table never
// show in the other one.
func (t *SymbolTable) Copy() *SymbolTable {
	c := NewSymbolTable()
	for k, tag := range t.Table {
		c.Table[k] = &Tag{name: tag.name, Typ: tag.Typ, Value: tag.Value}
	}
	return c
}

// Sorted returns the tags of the table ordered by name.
func (t *SymbolTable) Sorted() []*Tag {
	m := treemap.NewWithStringComparator()
	for k, tag := range t.Table {
		m.Put(k, tag)
	}
	tags := make([]*Tag, 0, m.Size())
	m.Each(func(_ interface{}, v interface{}) {
		tags = append(tags, v.(*Tag))
	})
	return tags
}
