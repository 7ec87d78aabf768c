package interp

import (
	"errors"
	"strings"

	"github.com/cerona-lang/cerona"
	"github.com/cerona-lang/cerona/expr"
	"github.com/cerona-lang/cerona/scanner"
)

// Command is a non-empty source line, split into words.
type Command struct {
	Line   int            // 1-based line number
	Words  []scanner.Word // never empty
	Source string         // the source line, for error messages
}

// Keyword returns the first word of a command, if it is bare.
func (c *Command) Keyword() string {
	if c.Words[0].Quoted {
		return ""
	}
	return c.Words[0].Text
}

// Span is the byte range of the command's words within the source line.
// A trailing comment is not part of it.
func (c *Command) Span() cerona.Span {
	span := c.Words[0].Span()
	for _, w := range c.Words[1:] {
		span = span.Extend(w.Span())
	}
	return span
}

// thenIndex finds a bare 'then', which makes an if statement a single line if.
func (c *Command) thenIndex() int {
	for i, w := range c.Words {
		if w.Is("then") {
			return i
		}
	}
	return -1
}

// opensBlock is true for commands starting a block of the given keyword.
func (c *Command) opensBlock(keyword string) bool {
	if _, ok := terminators[keyword]; !ok || c.Keyword() != keyword {
		return false
	}
	return keyword != "if" || c.thenIndex() < 0
}

// Program is a loaded Cerona program.
type Program struct {
	Name     string
	Commands []*Command
	Body     []Statement
}

// Load splits a source into commands and builds the statement tree.
// The only error reported by Load is an unterminated string literal; problems
// with the block structure show up at execution time (or by calling Check).
func Load(name, source string) (*Program, error) {
	cmds, err := SplitCommands(source, 1)
	if err != nil {
		return nil, err
	}
	prog := &Program{
		Name:     name,
		Commands: cmds,
		Body:     build(cmds, 0, len(cmds)),
	}
	tracer().Debugf("loaded program %s with %d commands", name, len(cmds))
	return prog, nil
}

// SplitCommands splits a source into commands, skipping empty and comment-only
// lines. firstLine is the line number of the first line of source.
func SplitCommands(source string, firstLine int) ([]*Command, error) {
	var cmds []*Command
	for i, line := range strings.Split(source, "\n") {
		line = strings.TrimRight(line, "\r")
		words, err := scanner.SplitLine(line)
		if err != nil {
			e := newError(UnterminatedStringLiteral, -1, "unterminated string literal")
			var uerr *scanner.UnterminatedError
			if errors.As(err, &uerr) {
				e.Col = uerr.Column
			}
			e.Line, e.Source = firstLine+i, line
			return nil, e
		}
		if len(words) == 0 {
			continue
		}
		cmds = append(cmds, &Command{Line: firstLine + i, Words: words, Source: line})
	}
	return cmds, nil
}

// Check reports the first block without a terminator, or nil.
func (prog *Program) Check() error {
	var err error
	Walk(prog.Body, func(s Statement, level int) bool {
		if b, ok := s.(*Broken); ok && b.Err.Kind == MissingBlockTerminator && err == nil {
			err = b.Err
		}
		return err == nil
	})
	return err
}

// --- Block resolver --------------------------------------------------------

var terminators = map[string]string{
	"func":  "endfunc",
	"if":    "endif",
	"while": "endwhile",
	"for":   "endfor",
}

// FindMatchingEnd returns the index of the terminator matching the block
// opened at cmds[start], or -1 if the commands end first. Only blocks of the
// same keyword are counted; single-line ifs do not open a block.
func FindMatchingEnd(cmds []*Command, start int) int {
	keyword := cmds[start].Keyword()
	if !cmds[start].opensBlock(keyword) {
		return -1
	}
	end := terminators[keyword]
	depth := 1
	for i := start + 1; i < len(cmds); i++ {
		if cmds[i].opensBlock(keyword) {
			depth++
		} else if cmds[i].Keyword() == end {
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// FindIfBranches returns the indices of 'else' and 'endif' of the if block
// opened at cmds[start]. An else belongs to the block if it is not nested in
// an inner if; if there are several, the last one wins. Missing parts are -1.
func FindIfBranches(cmds []*Command, start int) (elseIdx int, endIdx int) {
	elseIdx, endIdx = -1, FindMatchingEnd(cmds, start)
	if endIdx < 0 {
		return
	}
	depth := 1
	for i := start + 1; i < endIdx; i++ {
		switch {
		case cmds[i].opensBlock("if"):
			depth++
		case cmds[i].Keyword() == "endif":
			depth--
		case cmds[i].Keyword() == "else" && depth == 1:
			elseIdx = i
		}
	}
	return
}

// --- Statement tree --------------------------------------------------------

// build creates the statements for cmds[from:to]. Blocks must end within this
// range.
func build(cmds []*Command, from, to int) []Statement {
	var stmts []Statement
	scope := cmds[:to]
	for i := from; i < to; i++ {
		cmd := cmds[i]
		kw := cmd.Keyword()
		if !cmd.opensBlock(kw) {
			stmts = append(stmts, buildSimple(cmd))
			continue
		}
		if kw == "func" && len(cmd.Words) < 2 {
			stmts = append(stmts, &Broken{cmd: cmd,
				Err: newError(GenericRuntimeFailure, -1, "func requires function name")})
			if end := FindMatchingEnd(scope, i); end >= 0 {
				i = end
			}
			continue
		}
		var elseIdx, end int
		if kw == "if" {
			elseIdx, end = FindIfBranches(scope, i)
		} else {
			end = FindMatchingEnd(scope, i)
		}
		if end < 0 {
			stmts = append(stmts, &Broken{cmd: cmd, Err: missingTerminator(cmd)})
			continue
		}
		switch kw {
		case "func":
			def := &FunctionDef{
				Name:   cmd.Words[1].Text,
				Params: scanner.Texts(cmd.Words[2:]),
				Body:   build(cmds, i+1, end),
				Line:   cmd.Line,
			}
			def.Fingerprint = fingerprint(def, cmds[i:end+1])
			stmts = append(stmts, &FuncDecl{cmd: cmd, Def: def})
		case "if":
			s := &If{cmd: cmd, Cond: cmd.Words[1:]}
			if elseIdx < 0 {
				s.Then = build(cmds, i+1, end)
			} else {
				s.Then = build(cmds, i+1, elseIdx)
				s.Else = build(cmds, elseIdx+1, end)
				s.HasElse = true
			}
			stmts = append(stmts, s)
		case "while":
			stmts = append(stmts, &While{cmd: cmd, Cond: cmd.Words[1:], Body: build(cmds, i+1, end)})
		case "for":
			stmts = append(stmts, &For{cmd: cmd, Body: build(cmds, i+1, end)})
		}
		i = end
	}
	return stmts
}

func missingTerminator(cmd *Command) *Error {
	var e *Error
	switch kw := cmd.Keyword(); kw {
	case "func":
		name := ""
		if len(cmd.Words) > 1 {
			name = cmd.Words[1].Text
		}
		e = newError(MissingBlockTerminator, -1, "missing 'endfunc' for function '%s'", name)
	case "if":
		e = newError(MissingBlockTerminator, -1, "missing 'endif' for if statement")
	case "while":
		e = newError(MissingBlockTerminator, -1, "missing 'endwhile' for while loop")
	default:
		e = newError(MissingBlockTerminator, -1, "missing '%s' for %s loop", terminators[kw], kw)
	}
	return e.locate(cmd)
}

// buildSimple creates a statement for a command which does not open a block.
func buildSimple(cmd *Command) Statement {
	w := cmd.Words
	switch cmd.Keyword() {
	case "print":
		return &Print{cmd: cmd, Args: w[1:], Expr: expr.Compile(w[1:])}
	case "set":
		s := &Set{cmd: cmd}
		if len(w) >= 3 {
			s.Name, s.Value, s.Expr = w[1].Text, w[2:], expr.Compile(w[2:])
		}
		return s
	case "call":
		return &Call{cmd: cmd}
	case "if":
		return buildIfThen(cmd)
	case "return":
		return &Return{cmd: cmd}
	case "input":
		return &Input{cmd: cmd}
	}
	return &ExprStmt{cmd: cmd, Expr: expr.Compile(w)}
}

// buildIfThen splits the text after 'then' at semicolons. Every piece is a
// statement of its own, sharing the line of the if. The text ends with the
// last word of the command, so neither a comment nor the pieces of an
// enclosing single line if are included.
func buildIfThen(cmd *Command) Statement {
	then := cmd.thenIndex()
	s := &IfThen{cmd: cmd, Cond: cmd.Words[1:then]}
	rest := int(cmd.Words[then].Span().To())
	end := int(cmd.Span().To())
	for _, seg := range scanner.SplitSegments(cmd.Source[rest:end], ';') {
		words, err := scanner.SplitLine(seg.Text)
		if err != nil || len(words) == 0 {
			continue // quotes are balanced, as the whole line has been split
		}
		offset := uint64(rest + seg.Offset)
		for i := range words {
			words[i] = words[i].Shift(offset)
		}
		piece := &Command{Line: cmd.Line, Words: words, Source: cmd.Source}
		if piece.opensBlock(piece.Keyword()) {
			s.Pieces = append(s.Pieces, &Broken{cmd: piece, Err: missingTerminator(piece)})
			continue
		}
		s.Pieces = append(s.Pieces, buildSimple(piece))
	}
	return s
}
