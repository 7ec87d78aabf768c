package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cerona-lang/cerona/interp"
	"github.com/chzyer/readline"
	"github.com/pterm/pterm"
)

const (
	prompt     = "cerona> "
	contPrompt = "   ...> "
)

// Session is an interactive session. Input lines are collected until all
// blocks are complete, then executed by an interpreter which lives as long as
// the session.
type Session struct {
	ip      *interp.Interpreter
	repl    *readline.Instance
	pending []string        // lines of an incomplete block
	last    *interp.Program // last executed input
	out     io.Writer
}

func newSession() (*Session, error) {
	repl, err := readline.New(prompt)
	if err != nil {
		return nil, err
	}
	s := &Session{repl: repl, out: repl.Stdout()}
	s.ip = interp.New(
		interp.WithName("repl"),
		interp.WithOutput(s.out),
		interp.WithLineReader(readlineInput{repl}),
	)
	return s, nil
}

// Close releases the terminal.
func (s *Session) Close() error {
	return s.repl.Close()
}

// REPL starts interactive mode.
func (s *Session) REPL() {
	for {
		line, err := s.repl.Readline()
		if err == readline.ErrInterrupt {
			s.reset()
			continue
		} else if err != nil { // io.EOF
			break
		}
		if quit := s.Eval(line); quit {
			break
		}
	}
	fmt.Fprintln(s.out, "Good bye!")
}

// Eval handles a line of input. It returns true if the session should end.
func (s *Session) Eval(line string) bool {
	trimmed := strings.TrimSpace(line)
	if len(s.pending) == 0 {
		if trimmed == "" {
			return false
		}
		if strings.HasPrefix(trimmed, ":") {
			return s.command(trimmed)
		}
	}
	force := trimmed == "" // an empty line executes an incomplete block
	s.pending = append(s.pending, line)
	src := strings.Join(s.pending, "\n")
	prog, err := interp.Load("input", src)
	if err != nil {
		pterm.Error.Println(strings.TrimSpace(render("input", err)))
		s.reset()
		return false
	}
	if !force && prog.Check() != nil {
		tracer().Debugf("block incomplete, reading more lines")
		s.repl.SetPrompt(contPrompt)
		return false
	}
	s.reset()
	s.last = prog
	if err := s.ip.Run(prog); err != nil {
		pterm.Error.Println(strings.TrimSpace(render("input", err)))
	}
	return false
}

func (s *Session) reset() {
	s.pending = s.pending[:0]
	s.repl.SetPrompt(prompt)
}

// command executes a REPL command.
func (s *Session) command(cmd string) bool {
	switch cmd {
	case ":quit", ":q":
		return true
	case ":vars":
		s.showVars()
	case ":funcs":
		s.showFuncs()
	case ":tree":
		s.showTree()
	default:
		pterm.Error.Println("unknown command " + cmd + " (use :vars, :funcs, :tree or :quit)")
	}
	return false
}

func (s *Session) showVars() {
	if s.ip.Globals().Size() == 0 {
		pterm.Info.Println("no variables")
		return
	}
	tags := s.ip.Globals().Sorted()
	data := pterm.TableData{{"name", "kind", "value"}}
	for _, tag := range tags {
		data = append(data, []string{tag.Name(), tag.Typ.String(), tag.Value.String()})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func (s *Session) showFuncs() {
	if s.ip.Functions().Size() == 0 {
		pterm.Info.Println("no functions")
		return
	}
	s.ip.Functions().Each(func(def *interp.FunctionDef) {
		pterm.Info.Println(describe(def))
	})
}

// describe is a one-line description of a function for :funcs.
func describe(def *interp.FunctionDef) string {
	d := fmt.Sprintf("%s(%s)  defined at line %d", def.Name, strings.Join(def.Params, ", "), def.Line)
	if def.Revision > 1 {
		d += fmt.Sprintf(", revision %d", def.Revision)
	}
	return d
}

// showTree displays the statement tree of the last input as a tree on the
// terminal.
func (s *Session) showTree() {
	if s.last == nil {
		pterm.Info.Println("no input yet")
		return
	}
	ll := pterm.LeveledList{}
	for _, item := range interp.Outline(s.last.Body) {
		ll = append(ll, pterm.LeveledListItem{
			Level: item.Level,
			Text:  item.Text,
		})
	}
	tracer().Debugf("|ll| = %d", len(ll))
	root := pterm.NewTreeFromLeveledList(ll)
	pterm.DefaultTree.WithRoot(root).Render()
}

// --- Input statements ------------------------------------------------------

// readlineInput reads input statement lines from the terminal.
type readlineInput struct {
	rl *readline.Instance
}

func (in readlineInput) ReadLine(p string) (string, error) {
	in.rl.SetPrompt(p)
	defer in.rl.SetPrompt(prompt)
	line, err := in.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", io.EOF
	}
	return line, err
}
