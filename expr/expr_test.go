package expr

import (
	"errors"
	"testing"

	"github.com/cerona-lang/cerona/runtime"
	"github.com/cerona-lang/cerona/scanner"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func evalLine(t *testing.T, line string, env Resolver) (runtime.Value, error) {
	words, err := scanner.SplitLine(line)
	if err != nil {
		t.Fatalf("cannot split %q: %v", line, err)
	}
	return Eval(words, env)
}

func testEnv() *runtime.SymbolTable {
	env := runtime.NewSymbolTable()
	env.Assign("a", runtime.Int(5))
	env.Assign("b", runtime.Int(3))
	env.Assign("c", runtime.Int(2))
	env.Assign("x", runtime.Int(100))
	env.Assign("y", runtime.Int(4))
	env.Assign("s", runtime.Str("ab"))
	env.Assign("l", runtime.List{runtime.Int(1), runtime.Int(2)})
	return env
}

func TestTokenize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cerona.expr")
	defer teardown()
	//
	words, _ := scanner.SplitLine(`a+b*2 "x y"`)
	toks, err := Tokenize(words)
	if err != nil {
		t.Fatal(err)
	}
	if len(toks) != 6 {
		t.Fatalf("expected 6 tokens, have %d: %v", len(toks), toks)
	}
	if toks[2].Lexeme() != "b" || toks[2].Span().From() != 2 {
		t.Errorf("expected token 'b' at position 2, have %q at %d", toks[2].Lexeme(), toks[2].Span().From())
	}
	if toks[5].TokType() != tokString || toks[5].Lexeme() != "x y" {
		t.Errorf("expected string token \"x y\", have %v", toks[5])
	}
}

func TestEval(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cerona.expr")
	defer teardown()
	//
	env := testEnv()
	var inputs = []struct {
		line   string
		result string
	}{
		{"a + b * c", "11"},
		{"(a + b) * c", "16"},
		{"x / y", "25.0"},
		{"7 // 2", "3"},
		{"-7 // 2", "-4"},
		{"-7 % 3", "2"},
		{"7 % -3", "-2"},
		{"7.5 // 2", "3.0"},
		{"1 + 2.5", "3.5"},
		{"True + 1", "2"},
		{"2 - -3", "5"},
		{"1e3", "1000.0"},
		{".5 * 2", "1.0"},
		{`s + "c"`, "abc"},
		{"s * 3", "ababab"},
		{"l + [3]", "[1, 2, 3]"},
		{"l * 2", "[1, 2, 1, 2]"},
		{`[1, 'a', 2.5]`, "[1, 'a', 2.5]"},
		{"[]", "[]"},
		{"1 < 2 < 3", "True"},
		{"3 > 2 > 2", "False"},
		{"a == 5.0", "True"},
		{`a == "5"`, "False"},
		{`s != "ab"`, "False"},
		{"0 or 'x'", "x"},
		{"a and b", "3"},
		{"not 0", "True"},
		{"not a > 10 and b", "3"},
		{"None", "None"},
		{"true", "True"},
		{`"True"`, "True"},
	}
	for _, input := range inputs {
		v, err := evalLine(t, input.line, env)
		if err != nil {
			t.Errorf("%q: unexpected error %v", input.line, err)
			continue
		}
		if v.String() != input.result {
			t.Errorf("%q: expected %s, have %s", input.line, input.result, v.String())
		}
	}
}

func TestEvalErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cerona.expr")
	defer teardown()
	//
	env := testEnv()
	var inputs = []struct {
		line string
		err  error
	}{
		{"1 / 0", ErrZeroDivision},
		{"1 % 0", ErrZeroDivision},
		{"1.0 // 0", ErrZeroDivision},
		{"z + 1", ErrUndefinedVariable},
		{"007", ErrSyntax},
		{"Hello, Cerona!", ErrSyntax},
		{"1 +", ErrSyntax},
		{"(1 + 2", ErrSyntax},
		{"1 2", ErrSyntax},
		{"9223372036854775807 + 1", ErrOverflow},
		{"99999999999999999999", ErrOverflow},
		{`"a" - 1`, ErrType},
		{`"a" < 1`, ErrType},
		{`-s`, ErrType},
		{"and", ErrSyntax},
		{`"abcd" * 4611686018427387904`, ErrOverflow},
		{"[1, 2, 3, 4] * 4611686018427387904", ErrOverflow},
		{"4611686018427387904 * l", ErrOverflow},
	}
	for _, input := range inputs {
		v, err := evalLine(t, input.line, env)
		if err == nil {
			t.Errorf("%q: expected error, have value %v", input.line, v)
			continue
		}
		if !errors.Is(err, input.err) {
			t.Errorf("%q: expected %v, have %v", input.line, input.err, err)
		}
	}
}

func TestQuotedWordIsNoVariable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cerona.expr")
	defer teardown()
	//
	env := testEnv()
	v, err := evalLine(t, `"a"`, env)
	if err != nil {
		t.Fatal(err)
	}
	if v != runtime.Str("a") {
		t.Errorf("expected string 'a', have %v", v)
	}
}

func TestCompileKeepsError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cerona.expr")
	defer teardown()
	//
	words, _ := scanner.SplitLine("1 +")
	e := Compile(words)
	if e.Err == nil {
		t.Fatalf("expected parse error to be kept")
	}
	if _, err := e.Eval(testEnv()); !errors.Is(err, ErrSyntax) {
		t.Errorf("expected syntax error, have %v", err)
	}
	if e.String() != "1 +" {
		t.Errorf("expected source text for broken expression, have %q", e.String())
	}
}

func TestShortCircuit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cerona.expr")
	defer teardown()
	//
	env := testEnv()
	if v, err := evalLine(t, "0 and undefined", env); err != nil || v != runtime.Int(0) {
		t.Errorf("expected 'and' to short-circuit, have %v, %v", v, err)
	}
	if v, err := evalLine(t, "1 or undefined", env); err != nil || v != runtime.Int(1) {
		t.Errorf("expected 'or' to short-circuit, have %v, %v", v, err)
	}
}

func TestParseTree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cerona.expr")
	defer teardown()
	//
	words, _ := scanner.SplitLine("a + b * -c < 10")
	n, err := Parse(words)
	if err != nil {
		t.Fatal(err)
	}
	if n.String() != "((a + (b * (-c))) < 10)" {
		t.Errorf("unexpected tree %s", n)
	}
}
