package expr

import (
	"fmt"
	"math"
	"strings"

	"github.com/cerona-lang/cerona/runtime"
)

// Arith applies an arithmetic operator to two values.
//
// Integers (and booleans) stay integers for +, -, *, // and %; '/' always
// produces a float. Strings and lists concatenate with '+' and repeat with '*'.
func Arith(op string, x, y runtime.Value) (runtime.Value, error) {
	if a, ok := runtime.AsInt(x); ok {
		if b, ok := runtime.AsInt(y); ok {
			return intArith(op, a, b)
		}
	}
	if runtime.IsNumeric(x) && runtime.IsNumeric(y) {
		a, _ := runtime.AsFloat(x)
		b, _ := runtime.AsFloat(y)
		return floatArith(op, a, b)
	}
	switch op {
	case "+":
		switch a := x.(type) {
		case runtime.Str:
			if b, ok := y.(runtime.Str); ok {
				return a + b, nil
			}
		case runtime.List:
			if b, ok := y.(runtime.List); ok {
				l := make(runtime.List, 0, len(a)+len(b))
				return append(append(l, a...), b...), nil
			}
		}
	case "*":
		if n, ok := runtime.AsInt(y); ok {
			return repeat(x, n)
		}
		if n, ok := runtime.AsInt(x); ok {
			return repeat(y, n)
		}
	}
	return nil, fmt.Errorf("%w: unsupported operand kinds for %s: %s and %s",
		ErrType, op, x.Kind(), y.Kind())
}

func repeat(v runtime.Value, n int64) (runtime.Value, error) {
	if n < 0 {
		n = 0
	}
	switch s := v.(type) {
	case runtime.Str:
		if tooLong(len(s), n) {
			return nil, fmt.Errorf("%w: repeated string too long", ErrOverflow)
		}
		return runtime.Str(strings.Repeat(string(s), int(n))), nil
	case runtime.List:
		if tooLong(len(s), n) {
			return nil, fmt.Errorf("%w: repeated list too long", ErrOverflow)
		}
		l := make(runtime.List, 0, int64(len(s))*n)
		for i := int64(0); i < n; i++ {
			l = append(l, s...)
		}
		return l, nil
	}
	return nil, fmt.Errorf("%w: cannot repeat value of kind %s", ErrType, v.Kind())
}

// tooLong checks if repeating size elements n times exceeds maxRepeat,
// without overflowing.
func tooLong(size int, n int64) bool {
	if size == 0 {
		return false
	}
	return n > maxRepeat/int64(size)
}

func intArith(op string, a, b int64) (runtime.Value, error) {
	switch op {
	case "+":
		if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
			return nil, fmt.Errorf("%w: %d + %d", ErrOverflow, a, b)
		}
		return runtime.Int(a + b), nil
	case "-":
		if (b < 0 && a > math.MaxInt64+b) || (b > 0 && a < math.MinInt64+b) {
			return nil, fmt.Errorf("%w: %d - %d", ErrOverflow, a, b)
		}
		return runtime.Int(a - b), nil
	case "*":
		if a != 0 && b != 0 {
			r := a * b
			if r/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
				return nil, fmt.Errorf("%w: %d * %d", ErrOverflow, a, b)
			}
			return runtime.Int(r), nil
		}
		return runtime.Int(0), nil
	case "/":
		if b == 0 {
			return nil, ErrZeroDivision
		}
		return runtime.Float(float64(a) / float64(b)), nil
	case "//":
		if b == 0 {
			return nil, ErrZeroDivision
		}
		if a == math.MinInt64 && b == -1 {
			return nil, fmt.Errorf("%w: %d // %d", ErrOverflow, a, b)
		}
		q := a / b
		if (a%b != 0) && ((a < 0) != (b < 0)) {
			q--
		}
		return runtime.Int(q), nil
	case "%":
		if b == 0 {
			return nil, ErrZeroDivision
		}
		if b == -1 {
			return runtime.Int(0), nil
		}
		m := a % b
		if m != 0 && (m < 0) != (b < 0) {
			m += b
		}
		return runtime.Int(m), nil
	}
	return nil, fmt.Errorf("%w: unknown operator %s", ErrSyntax, op)
}

func floatArith(op string, a, b float64) (runtime.Value, error) {
	switch op {
	case "+":
		return runtime.Float(a + b), nil
	case "-":
		return runtime.Float(a - b), nil
	case "*":
		return runtime.Float(a * b), nil
	case "/":
		if b == 0 {
			return nil, ErrZeroDivision
		}
		return runtime.Float(a / b), nil
	case "//":
		if b == 0 {
			return nil, ErrZeroDivision
		}
		return runtime.Float(math.Floor(a / b)), nil
	case "%":
		if b == 0 {
			return nil, ErrZeroDivision
		}
		m := math.Mod(a, b)
		if m != 0 && (m < 0) != (b < 0) {
			m += b
		}
		return runtime.Float(m), nil
	}
	return nil, fmt.Errorf("%w: unknown operator %s", ErrSyntax, op)
}

// Relate applies a comparison operator. Equality never fails, ordering of
// values which cannot be ordered is a type error.
func Relate(op string, x, y runtime.Value) (bool, error) {
	switch op {
	case "==":
		return runtime.Equal(x, y), nil
	case "!=":
		return !runtime.Equal(x, y), nil
	}
	c, err := runtime.Compare(x, y)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrType, err)
	}
	switch op {
	case "<":
		return c < 0, nil
	case "<=":
		return c <= 0, nil
	case ">":
		return c > 0, nil
	case ">=":
		return c >= 0, nil
	}
	return false, fmt.Errorf("%w: unknown comparison %s", ErrSyntax, op)
}
