package cerona

import "fmt"

// --- A general purpose interface for tokens --------------------------------

// TokType is a category type for a Token. We do not define any constants here, as
// it is up to scanners to define them.
type TokType int

// Tokens represent input tokens. They are produced by the line scanner (words of a
// statement) as well as by the expression lexer (numbers, identifiers, operators).
//
// An example would be a token for a floating point number:
//
//    TokType = Float       // identifier for this kind of tokens (scanner specific)
//    Lexeme  = "3.1416"    // lexeme how it appeared in the input line
//    Value   = 3.1416      // is a float64 value
//    Span    = 67…73       // occured from byte position 67 in the input line
//
type Token interface {
	TokType() TokType
	Lexeme() string
	Value() interface{}
	Span() Span
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a run of input bytes. A span denotes a
// start position and the position just behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Shift moves a span by offset. Used to translate spans of sub-tokens into
// positions of the enclosing line.
func (s Span) Shift(offset uint64) Span {
	return Span{s[0] + offset, s[1] + offset}
}

// Extend returns the smallest span covering both s and other.
func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
