package expr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cerona-lang/cerona"
	"github.com/cerona-lang/cerona/runtime"
	"github.com/cerona-lang/cerona/scanner"
)

// --- Grammar ---------------------------------------------------------------
//
// Expr       ::=  Or
// Or         ::=  And { 'or' And }
// And        ::=  Not { 'and' Not }
// Not        ::=  'not' Not  |  Comparison
// Comparison ::=  Sum { CmpOp Sum }              // chained: a < b < c
// Sum        ::=  Product { ('+'|'-') Product }
// Product    ::=  Unary { ('*'|'/'|'//'|'%') Unary }
// Unary      ::=  ('-'|'+') Unary  |  Primary
// Primary    ::=  number | string | ident | 'True' | 'False' | 'None'
//              |  '(' Expr ')'  |  '[' [ Expr { ',' Expr } [','] ] ']'
// CmpOp      ::=  '==' | '!=' | '<' | '<=' | '>' | '>='
//

// Node is a node of an expression tree.
type Node interface {
	Eval(env Resolver) (runtime.Value, error)
	String() string
}

// Resolver looks up variables. runtime.SymbolTable is a Resolver.
type Resolver interface {
	Lookup(name string) (runtime.Value, bool)
}

// Literal is a constant value.
type Literal struct {
	Value runtime.Value
}

// Variable is a reference to a variable.
type Variable struct {
	Name string
}

// Unary is a prefix operation.
type Unary struct {
	Op string
	X  Node
}

// Binary is an arithmetic operation.
type Binary struct {
	Op   string
	X, Y Node
}

// Logical is 'and' or 'or', evaluating the right operand only if needed.
type Logical struct {
	Op   string
	X, Y Node
}

// Not is logical negation.
type Not struct {
	X Node
}

// Comparison is a chain of comparisons, a < b <= c meaning a < b and b <= c.
type Comparison struct {
	Ops      []string
	Operands []Node
}

// ListLiteral constructs a list.
type ListLiteral struct {
	Elems []Node
}

func (n *Literal) String() string {
	return runtime.Repr(n.Value)
}

func (n *Variable) String() string {
	return n.Name
}

func (n *Unary) String() string {
	return fmt.Sprintf("(%s%s)", n.Op, n.X)
}

func (n *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", n.X, n.Op, n.Y)
}

func (n *Logical) String() string {
	return fmt.Sprintf("(%s %s %s)", n.X, n.Op, n.Y)
}

func (n *Not) String() string {
	return fmt.Sprintf("(not %s)", n.X)
}

func (n *Comparison) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(n.Operands[0].String())
	for i, op := range n.Ops {
		fmt.Fprintf(&sb, " %s %s", op, n.Operands[i+1])
	}
	sb.WriteByte(')')
	return sb.String()
}

func (n *ListLiteral) String() string {
	elems := make([]string, len(n.Elems))
	for i, e := range n.Elems {
		elems[i] = e.String()
	}
	return "[" + strings.Join(elems, ", ") + "]"
}

// --- Parser ----------------------------------------------------------------

type parser struct {
	toks []cerona.Token
	pos  int
}

// Parse parses the words of a statement as an expression.
func Parse(words []scanner.Word) (Node, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: empty expression", ErrSyntax)
	}
	toks, err := Tokenize(words)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	n, err := p.expr()
	if err != nil {
		return nil, err
	}
	if !p.atEnd() {
		t := p.peek()
		return nil, fmt.Errorf("%w: unexpected %q at %d", ErrSyntax, t.Lexeme(), t.Span().From())
	}
	tracer().Debugf("parsed expression %s", n)
	return n, nil
}

func (p *parser) atEnd() bool {
	return p.pos >= len(p.toks)
}

func (p *parser) peek() cerona.Token {
	return p.toks[p.pos]
}

// isOp checks if the next token is one of the given operators or keywords.
// Keywords are bare identifiers; a quoted "and" is a string.
func (p *parser) isOp(ops ...string) (string, bool) {
	if p.atEnd() {
		return "", false
	}
	t := p.peek()
	for _, op := range ops {
		switch op {
		case "and", "or", "not":
			if t.TokType() == tokIdent && t.Lexeme() == op {
				return op, true
			}
		default:
			if t.TokType() == tokenFor(op) {
				return op, true
			}
		}
	}
	return "", false
}

func (p *parser) expect(op string) error {
	if _, ok := p.isOp(op); !ok {
		if p.atEnd() {
			return fmt.Errorf("%w: expected %q at end of expression", ErrSyntax, op)
		}
		return fmt.Errorf("%w: expected %q, have %q", ErrSyntax, op, p.peek().Lexeme())
	}
	p.pos++
	return nil
}

func (p *parser) expr() (Node, error) {
	return p.or()
}

func (p *parser) or() (Node, error) {
	x, err := p.and()
	for err == nil {
		if _, ok := p.isOp("or"); !ok {
			break
		}
		p.pos++
		var y Node
		if y, err = p.and(); err == nil {
			x = &Logical{Op: "or", X: x, Y: y}
		}
	}
	return x, err
}

func (p *parser) and() (Node, error) {
	x, err := p.not()
	for err == nil {
		if _, ok := p.isOp("and"); !ok {
			break
		}
		p.pos++
		var y Node
		if y, err = p.not(); err == nil {
			x = &Logical{Op: "and", X: x, Y: y}
		}
	}
	return x, err
}

func (p *parser) not() (Node, error) {
	if _, ok := p.isOp("not"); ok {
		p.pos++
		x, err := p.not()
		if err != nil {
			return nil, err
		}
		return &Not{X: x}, nil
	}
	return p.comparison()
}

func (p *parser) comparison() (Node, error) {
	x, err := p.sum()
	if err != nil {
		return nil, err
	}
	cmp := &Comparison{Operands: []Node{x}}
	for {
		op, ok := p.isOp("==", "!=", "<", "<=", ">", ">=")
		if !ok {
			break
		}
		p.pos++
		y, err := p.sum()
		if err != nil {
			return nil, err
		}
		cmp.Ops = append(cmp.Ops, op)
		cmp.Operands = append(cmp.Operands, y)
	}
	if len(cmp.Ops) == 0 {
		return x, nil
	}
	return cmp, nil
}

func (p *parser) sum() (Node, error) {
	x, err := p.product()
	for err == nil {
		op, ok := p.isOp("+", "-")
		if !ok {
			break
		}
		p.pos++
		var y Node
		if y, err = p.product(); err == nil {
			x = &Binary{Op: op, X: x, Y: y}
		}
	}
	return x, err
}

func (p *parser) product() (Node, error) {
	x, err := p.unary()
	for err == nil {
		op, ok := p.isOp("*", "/", "//", "%")
		if !ok {
			break
		}
		p.pos++
		var y Node
		if y, err = p.unary(); err == nil {
			x = &Binary{Op: op, X: x, Y: y}
		}
	}
	return x, err
}

func (p *parser) unary() (Node, error) {
	if op, ok := p.isOp("-", "+"); ok {
		p.pos++
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: op, X: x}, nil
	}
	return p.primary()
}

func (p *parser) primary() (Node, error) {
	if p.atEnd() {
		return nil, fmt.Errorf("%w: unexpected end of expression", ErrSyntax)
	}
	t := p.peek()
	p.pos++
	switch int(t.TokType()) {
	case tokNum:
		v, err := parseNumber(t.Lexeme())
		if err != nil {
			return nil, err
		}
		return &Literal{Value: v}, nil
	case tokString:
		return &Literal{Value: runtime.Str(t.Lexeme())}, nil
	case tokIdent:
		switch t.Lexeme() {
		case "True", "true":
			return &Literal{Value: runtime.Bool(true)}, nil
		case "False", "false":
			return &Literal{Value: runtime.Bool(false)}, nil
		case "None":
			return &Literal{Value: runtime.Nil}, nil
		case "and", "or", "not":
			return nil, fmt.Errorf("%w: unexpected keyword %q", ErrSyntax, t.Lexeme())
		}
		return &Variable{Name: t.Lexeme()}, nil
	}
	switch t.TokType() {
	case tokenFor("("):
		x, err := p.expr()
		if err != nil {
			return nil, err
		}
		return x, p.expect(")")
	case tokenFor("["):
		return p.list()
	}
	return nil, fmt.Errorf("%w: unexpected %q at %d", ErrSyntax, t.Lexeme(), t.Span().From())
}

func (p *parser) list() (Node, error) {
	l := &ListLiteral{}
	for {
		if _, ok := p.isOp("]"); ok {
			p.pos++
			return l, nil
		}
		x, err := p.expr()
		if err != nil {
			return nil, err
		}
		l.Elems = append(l.Elems, x)
		if _, ok := p.isOp(","); ok {
			p.pos++
			continue
		}
		return l, p.expect("]")
	}
}

// parseNumber converts a number lexeme. Integers with leading zeros are not
// allowed, as they are ambiguous.
func parseNumber(lexeme string) (runtime.Value, error) {
	if strings.ContainsAny(lexeme, ".eE") {
		f, err := strconv.ParseFloat(lexeme, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid number %q", ErrSyntax, lexeme)
		}
		return runtime.Float(f), nil
	}
	if len(lexeme) > 1 && lexeme[0] == '0' && strings.Trim(lexeme, "0") != "" {
		return nil, fmt.Errorf("%w: leading zeros in integer %q", ErrSyntax, lexeme)
	}
	i, err := strconv.ParseInt(lexeme, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: integer %q", ErrOverflow, lexeme)
	}
	return runtime.Int(i), nil
}
