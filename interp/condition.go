package interp

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cerona-lang/cerona/expr"
	"github.com/cerona-lang/cerona/runtime"
	"github.com/cerona-lang/cerona/scanner"
)

// Operators of conditions. Most of them have a word and a symbol spelling.
var operators = []string{"equals", "==", "notequals", "!=", "greater", ">",
	"greaterequals", ">=", "less", "<", "lessequals", "<=", "contains", "in"}

var numberPattern = regexp.MustCompile(`^-?[0-9]*\.?[0-9]*$`)

// Resolve returns the value of a word: a quoted word is a string, a bare word
// naming a variable is the variable's value, any other bare word is a string.
func Resolve(w scanner.Word, env expr.Resolver) runtime.Value {
	if !w.Quoted {
		if v, ok := env.Lookup(w.Text); ok {
			return v
		}
	}
	return runtime.Str(w.Text)
}

// numeric returns the numeric value of an operand. Strings are numeric if they
// consist of digits with an optional leading '-' and at most one '.'.
// Integer strings become integers, so they compare exactly.
func numeric(v runtime.Value) (runtime.Value, bool) {
	s, ok := v.(runtime.Str)
	if !ok {
		return v, runtime.IsNumeric(v)
	}
	if !numberPattern.MatchString(string(s)) || !strings.ContainsAny(string(s), "0123456789") {
		return nil, false
	}
	if !strings.Contains(string(s), ".") {
		if i, err := strconv.ParseInt(string(s), 10, 64); err == nil {
			return runtime.Int(i), true
		}
	}
	f, err := strconv.ParseFloat(string(s), 64)
	return runtime.Float(f), err == nil
}

// EvalCondition evaluates a condition of the form <left> <operator> <right>.
//
// Equality operators always compare the string forms of the operands, so 10
// and 10.0 are not equal. Ordering operators compare numerically if both
// operands are numeric, and compare string forms otherwise.
func EvalCondition(cond []scanner.Word, env expr.Resolver) (bool, error) {
	if len(cond) != 3 {
		return false, newError(InvalidCondition, -1,
			"invalid condition: expected 3 tokens, got %d", len(cond))
	}
	left, right := Resolve(cond[0], env), Resolve(cond[2], env)
	op := cond[1].Text
	ls, rs := left.String(), right.String()
	switch op {
	case "equals", "==":
		return ls == rs, nil
	case "notequals", "!=":
		return ls != rs, nil
	case "contains":
		return strings.Contains(ls, rs), nil
	case "in":
		return strings.Contains(rs, ls), nil
	}
	c := strings.Compare(ls, rs)
	ln, lok := numeric(left)
	rn, rok := numeric(right)
	if lok && rok {
		c, _ = runtime.Compare(ln, rn) // numbers always order
	}
	switch op {
	case "greater", ">":
		return c > 0, nil
	case "greaterequals", ">=":
		return c >= 0, nil
	case "less", "<":
		return c < 0, nil
	case "lessequals", "<=":
		return c <= 0, nil
	}
	return false, newError(UnknownOperator, -1, "unknown operator '%s' (valid: %s)",
		op, strings.Join(operators, ", "))
}
