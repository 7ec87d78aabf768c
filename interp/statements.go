package interp

import (
	"fmt"
	"strings"

	"github.com/cerona-lang/cerona/expr"
	"github.com/cerona-lang/cerona/scanner"
)

// Statement is a node of the statement tree.
type Statement interface {
	Command() *Command
	String() string
	execute(ip *Interpreter) error
}

// Print is 'print <expr>'.
type Print struct {
	cmd  *Command
	Args []scanner.Word
	Expr *expr.Expr
}

// Set is 'set <name> <expr>'. Name is empty if the statement is incomplete.
type Set struct {
	cmd   *Command
	Name  string
	Value []scanner.Word
	Expr  *expr.Expr
}

// IfThen is the single line 'if <cond> then <stmt>; <stmt>…'.
type IfThen struct {
	cmd    *Command
	Cond   []scanner.Word
	Pieces []Statement
}

// If is a block 'if <cond> … [else …] endif'.
type If struct {
	cmd     *Command
	Cond    []scanner.Word
	Then    []Statement
	Else    []Statement
	HasElse bool
}

// While is a block 'while <cond> … endwhile'.
type While struct {
	cmd  *Command
	Cond []scanner.Word
	Body []Statement
}

// For is a block 'for <var> in <source…> … endfor'. The loop header is checked
// when the statement executes.
type For struct {
	cmd  *Command
	Body []Statement
}

// FuncDecl is a block 'func <name> <params…> … endfunc'. Executing it
// registers the function.
type FuncDecl struct {
	cmd *Command
	Def *FunctionDef
}

// Call is 'call <name> <args…>'.
type Call struct {
	cmd *Command
}

// Return is 'return [<value>]'.
type Return struct {
	cmd *Command
}

// Input is 'input <var> [<prompt…>]'.
type Input struct {
	cmd *Command
}

// ExprStmt is any other line. It is evaluated as an expression and the
// result is printed.
type ExprStmt struct {
	cmd  *Command
	Expr *expr.Expr
}

// Broken is a statement which could not be built, usually a block without a
// terminator. Executing it raises Err.
type Broken struct {
	cmd *Command
	Err *Error
}

func (s *Print) Command() *Command    { return s.cmd }
func (s *Set) Command() *Command      { return s.cmd }
func (s *IfThen) Command() *Command   { return s.cmd }
func (s *If) Command() *Command       { return s.cmd }
func (s *While) Command() *Command    { return s.cmd }
func (s *For) Command() *Command      { return s.cmd }
func (s *FuncDecl) Command() *Command { return s.cmd }
func (s *Call) Command() *Command     { return s.cmd }
func (s *Return) Command() *Command   { return s.cmd }
func (s *Input) Command() *Command    { return s.cmd }
func (s *ExprStmt) Command() *Command { return s.cmd }
func (s *Broken) Command() *Command   { return s.cmd }

func (s *Print) String() string    { return words(s.cmd.Words) }
func (s *Set) String() string      { return words(s.cmd.Words) }
func (s *IfThen) String() string   { return "if " + words(s.Cond) + " then" }
func (s *If) String() string       { return words(s.cmd.Words) }
func (s *While) String() string    { return words(s.cmd.Words) }
func (s *For) String() string      { return words(s.cmd.Words) }
func (s *FuncDecl) String() string { return words(s.cmd.Words) }
func (s *Call) String() string     { return words(s.cmd.Words) }
func (s *Return) String() string   { return words(s.cmd.Words) }
func (s *Input) String() string    { return words(s.cmd.Words) }

func (s *ExprStmt) String() string {
	return s.Expr.String()
}

func (s *Broken) String() string {
	return fmt.Sprintf("%s  ✗ %s", words(s.cmd.Words), s.Err.Message)
}

func words(ws []scanner.Word) string {
	s := make([]string, len(ws))
	for i, w := range ws {
		s[i] = w.String()
	}
	return strings.Join(s, " ")
}

// --- Walking the tree ------------------------------------------------------

// Walk visits statements depth-first. Nested bodies have level+1. If visit
// returns false, Walk does not descend into the statement's children.
func Walk(body []Statement, visit func(s Statement, level int) bool) {
	walk(body, 0, visit)
}

func walk(body []Statement, level int, visit func(Statement, int) bool) {
	for _, s := range body {
		if !visit(s, level) {
			continue
		}
		for _, child := range children(s) {
			walk(child, level+1, visit)
		}
	}
}

func children(s Statement) [][]Statement {
	switch n := s.(type) {
	case *IfThen:
		return [][]Statement{n.Pieces}
	case *If:
		return [][]Statement{n.Then, n.Else}
	case *While:
		return [][]Statement{n.Body}
	case *For:
		return [][]Statement{n.Body}
	case *FuncDecl:
		return [][]Statement{n.Def.Body}
	}
	return nil
}

// OutlineItem is a line of a statement tree outline.
type OutlineItem struct {
	Level int
	Text  string
}

// Outline lists the statements of a tree with their nesting level. The else
// branch of an if statement is introduced by an item "else".
func Outline(body []Statement) []OutlineItem {
	var items []OutlineItem
	var outline func([]Statement, int)
	outline = func(body []Statement, level int) {
		for _, s := range body {
			items = append(items, OutlineItem{Level: level, Text: fmt.Sprintf("%d: %s", s.Command().Line, s)})
			if n, ok := s.(*If); ok {
				outline(n.Then, level+1)
				if n.HasElse {
					items = append(items, OutlineItem{Level: level, Text: "else"})
					outline(n.Else, level+1)
				}
				continue
			}
			for _, child := range children(s) {
				outline(child, level+1)
			}
		}
	}
	outline(body, 0)
	return items
}
