package interp

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cerona-lang/cerona/runtime"
	"github.com/cerona-lang/cerona/scanner"
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"gopkg.in/yaml.v3"
)

type fixtureCase struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
	Stdin  string `yaml:"stdin"`
	Stdout string `yaml:"stdout"`
	Error  string `yaml:"error"`
	Line   int    `yaml:"line"`
}

type fixtureFile struct {
	Cases []fixtureCase `yaml:"cases"`
}

func loadFixtures(t *testing.T) map[string][]fixtureCase {
	files, err := filepath.Glob(filepath.Join("testdata", "*.yaml"))
	if err != nil || len(files) == 0 {
		t.Fatalf("no fixtures found: %v", err)
	}
	fixtures := make(map[string][]fixtureCase)
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			t.Fatal(err)
		}
		var ff fixtureFile
		if err := yaml.Unmarshal(data, &ff); err != nil {
			t.Fatalf("cannot parse %s: %v", f, err)
		}
		fixtures[filepath.Base(f)] = ff.Cases
	}
	return fixtures
}

func TestFixtures(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cerona.interp")
	defer teardown()
	//
	for file, cases := range loadFixtures(t) {
		for _, c := range cases {
			t.Run(file+"/"+c.Name, func(t *testing.T) {
				var out bytes.Buffer
				ip := New(WithOutput(&out), WithInput(strings.NewReader(c.Stdin)))
				err := ip.RunSource(c.Name, c.Source)
				if out.String() != c.Stdout {
					t.Errorf("expected output %q, have %q", c.Stdout, out.String())
				}
				if c.Error == "" {
					if err != nil {
						t.Errorf("unexpected error: %v", err)
					}
					return
				}
				var e *Error
				if !errors.As(err, &e) {
					t.Fatalf("expected error %s, have %v", c.Error, err)
				}
				if e.Kind.String() != c.Error || e.Line != c.Line {
					t.Errorf("expected %s at line %d, have %s at line %d: %s",
						c.Error, c.Line, e.Kind, e.Line, e.Message)
				}
			})
		}
	}
}

func TestLoadCommands(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cerona.interp")
	defer teardown()
	//
	prog, err := Load("test", "# comment\n\nset x 1\r\n  print x  \n")
	if err != nil {
		t.Fatal(err)
	}
	if len(prog.Commands) != 2 {
		t.Fatalf("expected 2 commands, have %d", len(prog.Commands))
	}
	if prog.Commands[0].Line != 3 || prog.Commands[1].Line != 4 {
		t.Errorf("unexpected line numbers %d and %d", prog.Commands[0].Line, prog.Commands[1].Line)
	}
	if prog.Commands[0].Source != "set x 1" {
		t.Errorf("expected carriage return to be stripped, have %q", prog.Commands[0].Source)
	}
}

func TestCommandSpan(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cerona.interp")
	defer teardown()
	//
	prog, err := Load("test", `  print "a b" # c; d`)
	if err != nil {
		t.Fatal(err)
	}
	span := prog.Commands[0].Span()
	if span.From() != 2 || span.To() != 13 {
		t.Errorf("expected command span (2…13), have %v", span)
	}
}

func TestLoadUnterminated(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cerona.interp")
	defer teardown()
	//
	_, err := Load("test", "set x 1\nprint 'abc")
	if !errors.Is(err, ErrUnterminatedStringLiteral) {
		t.Fatalf("expected unterminated string literal, have %v", err)
	}
	e := err.(*Error)
	if e.Line != 2 || e.Col != 6 {
		t.Errorf("expected error at 2:6, have %d:%d", e.Line, e.Col)
	}
}

func TestFindMatchingEnd(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cerona.interp")
	defer teardown()
	//
	src := `while a less b
if a less b then print 1
if a less b
while c less d
endwhile
else
endif
endwhile`
	cmds, err := SplitCommands(src, 1)
	if err != nil {
		t.Fatal(err)
	}
	if end := FindMatchingEnd(cmds, 0); end != 7 {
		t.Errorf("expected endwhile at 7, have %d", end)
	}
	if end := FindMatchingEnd(cmds, 3); end != 4 {
		t.Errorf("expected inner endwhile at 4, have %d", end)
	}
	if els, end := FindIfBranches(cmds, 2); els != 5 || end != 6 {
		t.Errorf("expected else at 5 and endif at 6, have %d and %d", els, end)
	}
	if end := FindMatchingEnd(cmds[:7], 0); end != -1 {
		t.Errorf("expected no endwhile within range, have %d", end)
	}
	if end := FindMatchingEnd(cmds, 1); end != -1 {
		t.Errorf("single line if opens no block, have %d", end)
	}
}

func TestCheck(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cerona.interp")
	defer teardown()
	//
	prog, _ := Load("test", "print 1\nif 1 equals 2\nfor i in 0 3\nendif")
	err := prog.Check()
	if !errors.Is(err, ErrMissingBlockTerminator) {
		t.Fatalf("expected missing terminator, have %v", err)
	}
	if err.(*Error).Line != 3 {
		t.Errorf("expected missing endfor at line 3, have %d", err.(*Error).Line)
	}
	prog, _ = Load("test", "func f\nprint 1\nendfunc")
	if err := prog.Check(); err != nil {
		t.Errorf("unexpected error %v", err)
	}
}

func TestCondition(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cerona.interp")
	defer teardown()
	//
	env := runtime.NewSymbolTable()
	env.Assign("a", runtime.Int(10))
	env.Assign("b", runtime.Float(10))
	env.Assign("big", runtime.Int(9007199254740993))
	env.Assign("big1", runtime.Int(9007199254740992))
	var inputs = []struct {
		cond   string
		result bool
	}{
		{"big greater big1", true},
		{"big1 less big", true},
		{"9007199254740993 > 9007199254740992", true},
		{"big > 9007199254740992", true},
		{"big greaterequals 9007199254740993.0", true},
		{"10 equals 10.0", false},
		{"10 notequals 10.0", true},
		{"10 greaterequals 10.0", true},
		{"a == b", false},
		{"a >= b", true},
		{"a <= b", true},
		{"-1.5 < 1", true},
		{"9 < 10", true},
		{"9 < 10x", false},
		{"b greater 9.5", true},
		{`"a" equals a`, false},
		{`"a" equals "a"`, true},
		{"hello contains ell", true},
		{"ell in hello", true},
	}
	for _, input := range inputs {
		words, _ := scanner.SplitLine(input.cond)
		ok, err := EvalCondition(words, env)
		if err != nil {
			t.Errorf("%q: unexpected error %v", input.cond, err)
			continue
		}
		if ok != input.result {
			t.Errorf("%q: expected %v, have %v", input.cond, input.result, ok)
		}
	}
}

func TestConditionErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cerona.interp")
	defer teardown()
	//
	env := runtime.NewSymbolTable()
	words, _ := scanner.SplitLine("a b")
	if _, err := EvalCondition(words, env); !errors.Is(err, ErrInvalidCondition) {
		t.Errorf("expected invalid condition, have %v", err)
	}
	words, _ = scanner.SplitLine("a is b")
	_, err := EvalCondition(words, env)
	if !errors.Is(err, ErrUnknownOperator) {
		t.Fatalf("expected unknown operator, have %v", err)
	}
	if !strings.Contains(err.Error(), "greaterequals") {
		t.Errorf("expected list of valid operators, have %q", err.Error())
	}
}

func TestRenderError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cerona.interp")
	defer teardown()
	//
	ip := New(WithOutput(&bytes.Buffer{}))
	err := ip.RunSource("test.cer", "set x 1\n  foo bar")
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("expected error, have %v", err)
	}
	expected := "test.cer:error at line 2: unknown command 'foo'\n" +
		"  2 |   foo bar\n" +
		"    |   ^\n"
	if r := e.Render("test.cer"); r != expected {
		t.Errorf("unexpected rendering:\n%s", r)
	}
}

func TestUnknownOperatorColumn(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cerona.interp")
	defer teardown()
	//
	ip := New(WithOutput(&bytes.Buffer{}))
	err := ip.RunSource("test", "if x is 1 then print x")
	var e *Error
	if !errors.As(err, &e) || e.Kind != UnknownOperator {
		t.Fatalf("expected unknown operator, have %v", err)
	}
	if e.Col != 5 {
		t.Errorf("expected column 5, have %d", e.Col)
	}
}

func TestSession(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cerona.interp")
	defer teardown()
	//
	var out bytes.Buffer
	ip := New(WithOutput(&out), WithName("session"))
	if err := ip.RunSource("1", "set x 1\nfunc f a\nreturn a\nendfunc"); err != nil {
		t.Fatal(err)
	}
	if err := ip.RunSource("2", "print x\ncall f 3"); err != nil {
		t.Fatal(err)
	}
	if out.String() != "1\n" {
		t.Errorf("unexpected output %q", out.String())
	}
	v, err := ip.Call("f", []runtime.Value{runtime.Int(42)})
	if err != nil || v != runtime.Int(42) {
		t.Errorf("expected f to return 42, have %v, %v", v, err)
	}
	tags := ip.Globals().Sorted()
	if len(tags) != 1 || tags[0].Name() != "x" {
		t.Errorf("expected only x in globals, have %v", tags)
	}
}

func TestMaxCallDepth(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cerona.interp")
	defer teardown()
	//
	ip := New(WithOutput(&bytes.Buffer{}), WithMaxCallDepth(10))
	err := ip.RunSource("test", "set n 0\nfunc f\nset n n + 1\nprint n\ncall f\nendfunc\ncall f")
	if !errors.Is(err, ErrGenericRuntimeFailure) {
		t.Fatalf("expected runtime failure, have %v", err)
	}
	if !strings.Contains(err.Error(), "maximum recursion depth") {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestTraceStatementsConfig(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cerona.interp")
	defer teardown()
	//
	if New().traceStmts {
		t.Fatalf("statement tracing should be off without configuration")
	}
	gconf.Initialize(testconfig.Conf{TraceStatementsKey: true})
	defer gconf.Initialize(testconfig.Conf{})
	ip := New(WithOutput(&bytes.Buffer{}))
	if !ip.traceStmts {
		t.Fatalf("expected statement tracing to be switched on by configuration")
	}
	if err := ip.RunSource("test", "set x 1\nif x equals 1 then print x"); err != nil {
		t.Error(err)
	}
}

func TestBareReturnIsNil(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cerona.interp")
	defer teardown()
	//
	ip := New(WithOutput(&bytes.Buffer{}))
	if err := ip.RunSource("test", "func f\nreturn\nendfunc"); err != nil {
		t.Fatal(err)
	}
	v, err := ip.Call("f", nil)
	if err != nil || v.Kind() != runtime.NilType {
		t.Errorf("expected None, have %v, %v", v, err)
	}
}

func TestFunctionTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cerona.interp")
	defer teardown()
	//
	p1, _ := Load("a", "func g\nprint 1\nendfunc\nfunc f x\nprint x\nendfunc")
	p2, _ := Load("b", "\n\nfunc g\nprint 1\nendfunc")
	p3, _ := Load("c", "func g\nprint 2\nendfunc")
	g1 := p1.Body[0].(*FuncDecl).Def
	g2 := p2.Body[0].(*FuncDecl).Def
	g3 := p3.Body[0].(*FuncDecl).Def
	if g1.Fingerprint == "" || g1.Fingerprint != g2.Fingerprint {
		t.Errorf("expected equal fingerprints for equal sources")
	}
	if g1.Fingerprint == g3.Fingerprint {
		t.Errorf("expected different fingerprints for different sources")
	}
	ft := NewFunctionTable()
	ft.Register(g1)
	ft.Register(p1.Body[1].(*FuncDecl).Def)
	if old := ft.Register(g2); old != g1 || g2.Revision != 1 {
		t.Errorf("identical definition must keep revision 1, have %d", g2.Revision)
	}
	if old := ft.Register(g3); old != g2 {
		t.Errorf("expected redefinition to return previous definition")
	}
	if g3.Revision != 2 {
		t.Errorf("changed definition should have revision 2, have %d", g3.Revision)
	}
	var names []string
	ft.Each(func(def *FunctionDef) {
		names = append(names, def.Name)
	})
	if strings.Join(names, ",") != "g,f" || ft.Lookup("g") != g3 {
		t.Errorf("unexpected function table contents %v", names)
	}
}

func TestOutline(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cerona.interp")
	defer teardown()
	//
	prog, _ := Load("test", "if x less 1\nprint 1\nelse\nprint 2\nendif\nprint 3")
	items := Outline(prog.Body)
	levels := make([]int, len(items))
	for i, item := range items {
		levels[i] = item.Level
		t.Logf("%s%s", strings.Repeat("  ", item.Level), item.Text)
	}
	if len(items) != 5 || items[2].Text != "else" {
		t.Fatalf("unexpected outline %v", items)
	}
	if levels[0] != 0 || levels[1] != 1 || levels[3] != 1 || levels[4] != 0 {
		t.Errorf("unexpected levels %v", levels)
	}
}
