package scanner

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/cerona-lang/cerona"
)

// Word is a token of a statement line: either a bare word or a quoted string
// literal. Quotes are stripped from the text of quoted words, but remain part
// of the word's span.
type Word struct {
	Text   string
	Quoted bool
	span   cerona.Span
}

var _ cerona.Token = Word{}

// Bare creates an unquoted word without position information.
func Bare(text string) Word {
	return Word{Text: text}
}

// Quote creates a quoted word without position information.
func Quote(text string) Word {
	return Word{Text: text, Quoted: true}
}

// TokType is Ident for bare words and String for quoted ones.
func (w Word) TokType() cerona.TokType {
	if w.Quoted {
		return cerona.TokType(String)
	}
	return cerona.TokType(Ident)
}

func (w Word) Lexeme() string {
	return w.Text
}

func (w Word) Value() interface{} {
	return w.Text
}

// Span is the byte range of the word within its line, including quotes.
func (w Word) Span() cerona.Span {
	return w.span
}

// Shift moves the span of a word by offset bytes. It is used for words split
// from a part of a line.
func (w Word) Shift(offset uint64) Word {
	w.span = w.span.Shift(offset)
	return w
}

// Is checks for a bare word with text s. Keywords are never quoted.
func (w Word) Is(s string) bool {
	return !w.Quoted && w.Text == s
}

func (w Word) String() string {
	if w.Quoted {
		return fmt.Sprintf("%q", w.Text)
	}
	return w.Text
}

// Texts returns the texts of a sequence of words.
func Texts(words []Word) []string {
	t := make([]string, len(words))
	for i, w := range words {
		t[i] = w.Text
	}
	return t
}

// Join joins the texts of words with single spaces.
func Join(words []Word) string {
	return strings.Join(Texts(words), " ")
}

// --- Line splitting --------------------------------------------------------

// UnterminatedError is returned by SplitLine if a quote is still open at the end
// of the line. Column is the rune offset of the opening quote.
type UnterminatedError struct {
	Column int
}

func (e *UnterminatedError) Error() string {
	return fmt.Sprintf("unterminated string literal (column %d)", e.Column)
}

func isQuote(r rune) bool {
	return r == '"' || r == '\''
}

func isBlank(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

// SplitLine splits a source line into words.
//
// A '#' outside of quotes starts a comment reaching to the end of the line.
// Words are separated by whitespace outside of quotes. A quoted span ("…" or '…')
// becomes a single word, with quotes removed. Inside a quoted span the other
// quote character is literal. A backslash includes the following character
// literally, without any further escape decoding.
//
// A pending bare word is flushed before a quote opens, so
//
//    abc"def"   ⇒   [abc] ["def"]
//
// An empty or comment-only line results in an empty slice.
func SplitLine(line string) ([]Word, error) {
	var words []Word
	var current strings.Builder
	start := -1    // byte offset where the current word started
	var quote rune // open quote char, 0 if none
	escape := false
	flush := func(end int, quoted bool) {
		if quoted || current.Len() > 0 {
			words = append(words, Word{
				Text:   current.String(),
				Quoted: quoted,
				span:   cerona.Span{uint64(start), uint64(end)},
			})
		}
		current.Reset()
		start = -1
	}
	for pos, r := range line {
		if start < 0 {
			start = pos
		}
		switch {
		case escape:
			current.WriteRune(r)
			escape = false
		case r == '\\':
			escape = true
		case quote != 0 && r == quote:
			quote = 0
			flush(pos+1, true)
		case quote != 0:
			current.WriteRune(r)
		case isQuote(r):
			if current.Len() > 0 {
				flush(pos, false)
			}
			start = pos
			quote = r
		case r == '#':
			flush(pos, false)
			tracer().Debugf("split %q => %v", line, words)
			return words, nil
		case isBlank(r):
			if current.Len() > 0 {
				flush(pos, false)
			}
			start = -1
		default:
			current.WriteRune(r)
		}
	}
	if quote != 0 {
		return nil, &UnterminatedError{Column: utf8.RuneCountInString(line[:start])}
	}
	flush(len(line), false)
	tracer().Debugf("split %q => %v", line, words)
	return words, nil
}

// Segment is a part of a line, starting at byte offset Offset within the line.
type Segment struct {
	Text   string
	Offset int
}

// SplitSegments splits text at every occurence of sep which is neither quoted
// nor escaped. Segments are not trimmed.
func SplitSegments(text string, sep rune) []Segment {
	var segs []Segment
	var quote rune
	escape := false
	from := 0
	for pos, r := range text {
		switch {
		case escape:
			escape = false
		case r == '\\':
			escape = true
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case isQuote(r):
			quote = r
		case r == sep:
			segs = append(segs, Segment{Text: text[from:pos], Offset: from})
			from = pos + utf8.RuneLen(r)
		}
	}
	return append(segs, Segment{Text: text[from:], Offset: from})
}
