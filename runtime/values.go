package runtime

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"
)

// Kind is the type tag of a value.
type Kind int8

// Value kinds. Cerona variables are dynamically typed; the same variable may
// hold values of different kinds over its lifetime.
const (
	Undefined Kind = iota
	IntegerType
	FloatType
	StringType
	BooleanType
	ListType
	RangeType
	NilType
)

var kindNames = [...]string{"undefined", "int", "float", "str", "bool", "list", "range", "none"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Value is a Cerona runtime value. String returns the form in which a value is
// printed by print statements.
type Value interface {
	Kind() Kind
	String() string
}

// Int is an integer value.
type Int int64

// Float is a floating point value.
type Float float64

// Str is a string value.
type Str string

// Bool is a boolean value.
type Bool bool

// List is an ordered sequence of values.
type List []Value

// Range is the integer range [Start, End).
type Range struct {
	Start, End int64
}

type nilValue struct{}

// Nil is the absence of a value, e.g. the result of a bare return.
var Nil Value = nilValue{}

func (Int) Kind() Kind       { return IntegerType }
func (Float) Kind() Kind     { return FloatType }
func (Str) Kind() Kind       { return StringType }
func (Bool) Kind() Kind      { return BooleanType }
func (List) Kind() Kind      { return ListType }
func (Range) Kind() Kind     { return RangeType }
func (nilValue) Kind() Kind  { return NilType }
func (nilValue) String() string { return "None" }

func (i Int) String() string {
	return strconv.FormatInt(int64(i), 10)
}

// String formats a float in shortest form. The result always shows it is a
// float: 25 is printed as "25.0". Exponent notation is used for exponents
// below -4 or from 16 on.
func (f Float) String() string {
	x := float64(f)
	switch {
	case math.IsInf(x, 1):
		return "inf"
	case math.IsInf(x, -1):
		return "-inf"
	case math.IsNaN(x):
		return "nan"
	}
	e := strconv.FormatFloat(x, 'e', -1, 64)
	exp, _ := strconv.Atoi(e[strings.IndexByte(e, 'e')+1:])
	if exp < -4 || exp >= 16 {
		return e
	}
	s := strconv.FormatFloat(x, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

func (s Str) String() string {
	return string(s)
}

func (b Bool) String() string {
	if b {
		return "True"
	}
	return "False"
}

func (l List) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range l {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(Repr(v))
	}
	sb.WriteByte(']')
	return sb.String()
}

func (r Range) String() string {
	return fmt.Sprintf("range(%d, %d)", r.Start, r.End)
}

// Len is the number of integers in a range.
func (r Range) Len() int64 {
	if r.End <= r.Start {
		return 0
	}
	return r.End - r.Start
}

// Repr is the representation of a value as an element of a list. Strings are
// quoted, everything else prints as usual.
func Repr(v Value) string {
	s, ok := v.(Str)
	if !ok {
		return v.String()
	}
	q := byte('\'')
	if strings.ContainsRune(string(s), '\'') && !strings.ContainsRune(string(s), '"') {
		q = '"'
	}
	var sb strings.Builder
	sb.WriteByte(q)
	for _, r := range string(s) {
		switch {
		case r == '\\':
			sb.WriteString(`\\`)
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\t':
			sb.WriteString(`\t`)
		case r == rune(q):
			sb.WriteByte('\\')
			sb.WriteByte(q)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte(q)
	return sb.String()
}

// --- Predicates and comparison ---------------------------------------------

// Truthy reports whether a value counts as true: zero numbers, empty strings,
// lists and ranges, false and none are false, everything else is true.
func Truthy(v Value) bool {
	switch x := v.(type) {
	case Int:
		return x != 0
	case Float:
		return x != 0
	case Str:
		return x != ""
	case Bool:
		return bool(x)
	case List:
		return len(x) > 0
	case Range:
		return x.Len() > 0
	}
	return false
}

// IsNumeric is true for ints, floats and booleans. Booleans take part in
// arithmetic as 0 and 1.
func IsNumeric(v Value) bool {
	switch v.(type) {
	case Int, Float, Bool:
		return true
	}
	return false
}

// AsFloat converts a numeric value to float64.
func AsFloat(v Value) (float64, bool) {
	switch x := v.(type) {
	case Int:
		return float64(x), true
	case Float:
		return float64(x), true
	case Bool:
		if x {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// AsInt converts an integer valued value (int or bool) to int64.
func AsInt(v Value) (int64, bool) {
	switch x := v.(type) {
	case Int:
		return int64(x), true
	case Bool:
		if x {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func compareOrdered[T constraints.Ordered](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Equal is value equality. Numbers compare by value across kinds, lists
// element-wise. Values of unrelated kinds are never equal.
func Equal(a, b Value) bool {
	if IsNumeric(a) && IsNumeric(b) {
		if x, ok := AsInt(a); ok {
			if y, ok := AsInt(b); ok {
				return x == y
			}
		}
		x, _ := AsFloat(a)
		y, _ := AsFloat(b)
		return x == y
	}
	switch x := a.(type) {
	case Str:
		y, ok := b.(Str)
		return ok && x == y
	case List:
		y, ok := b.(List)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case Range:
		y, ok := b.(Range)
		return ok && (x == y || x.Len() == 0 && y.Len() == 0)
	case nilValue:
		return b.Kind() == NilType
	}
	return false
}

// Compare orders two values. Numbers compare by value, strings
// lexicographically, lists element by element. Other combinations
// cannot be ordered and result in an error.
func Compare(a, b Value) (int, error) {
	if IsNumeric(a) && IsNumeric(b) {
		if x, ok := AsInt(a); ok {
			if y, ok := AsInt(b); ok {
				return compareOrdered(x, y), nil
			}
		}
		x, _ := AsFloat(a)
		y, _ := AsFloat(b)
		return compareOrdered(x, y), nil
	}
	switch x := a.(type) {
	case Str:
		if y, ok := b.(Str); ok {
			return compareOrdered(x, y), nil
		}
	case List:
		if y, ok := b.(List); ok {
			for i := 0; i < len(x) && i < len(y); i++ {
				if Equal(x[i], y[i]) {
					continue
				}
				return Compare(x[i], y[i])
			}
			return compareOrdered(len(x), len(y)), nil
		}
	}
	return 0, fmt.Errorf("cannot order values of kind %s and %s", a.Kind(), b.Kind())
}

// Elements returns the values an iteration over v produces: list elements,
// the integers of a range, or the characters of a string.
func Elements(v Value) ([]Value, error) {
	switch x := v.(type) {
	case List:
		return x, nil
	case Range:
		elems := make([]Value, 0, x.Len())
		for i := x.Start; i < x.End; i++ {
			elems = append(elems, Int(i))
		}
		return elems, nil
	case Str:
		elems := make([]Value, 0, len(x))
		for _, r := range string(x) {
			elems = append(elems, Str(string(r)))
		}
		return elems, nil
	}
	return nil, fmt.Errorf("value of kind %s is not iterable", v.Kind())
}
