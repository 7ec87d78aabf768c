package lexmach

import (
	"fmt"
	"strings"

	"github.com/cerona-lang/cerona"
	"github.com/cerona-lang/cerona/scanner"
	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// tracer traces with key 'cerona.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("cerona.scanner")
}

// LMAdapter holds a compiled lexmachine DFA. One adapter serves any number of
// scanners, one per input.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
}

// NewLMAdapter creates a new lexmachine adapter. init adds the patterns for
// tokens of variable text (numbers, identifiers, white space). Every literal
// ('[', '==', …) is added as a fixed pattern, with its token type taken from
// tokenIds.
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter(init func(*lexmachine.Lexer), literals []string, tokenIds map[string]int) (*LMAdapter, error) {
	adapter := &LMAdapter{Lexer: lexmachine.NewLexer()}
	init(adapter.Lexer)
	for _, lit := range literals {
		id, ok := tokenIds[lit]
		if !ok {
			return nil, fmt.Errorf("no token type for literal %q", lit)
		}
		r := "\\" + strings.Join(strings.Split(lit, ""), "\\")
		adapter.Lexer.Add([]byte(r), MakeToken(lit, id))
	}
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

// Scanner creates a scanner for a given input.
func (lm *LMAdapter) Scanner(input string) (*LMScanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return &LMScanner{}, err
	}
	return &LMScanner{scanner: s, length: len(input), Error: logError}, nil
}

// LMScanner reads the tokens of one input.
type LMScanner struct {
	scanner *lexmachine.Scanner
	length  int
	Error   func(error)
}

var _ scanner.Tokenizer = (*LMScanner)(nil)

// ScanError reports input no pattern matches. Offset is the byte position
// within the scanner's input.
type ScanError struct {
	Offset int
	Text   string
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("unexpected %q at %d", e.Text, e.Offset)
}

// SetErrorHandler sets an error handler for the scanner. A nil handler logs
// errors.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		lms.Error = logError
		return
	}
	lms.Error = h
}

func logError(e error) {
	tracer().Errorf("scanner error: %v", e)
}

// NextToken returns the next token. Input no pattern matches is reported to
// the error handler as a *ScanError and skipped. Spans are byte offsets into
// the scanner's input; the EOF token sits at the end of the input.
func (lms *LMScanner) NextToken() cerona.Token {
	tok, err, eof := lms.scanner.Next()
	for err != nil {
		if ui, is := err.(*machines.UnconsumedInput); is {
			next := ui.StartTC + 1
			if ui.FailTC > ui.StartTC {
				next = ui.FailTC
			}
			if next > len(ui.Text) {
				next = len(ui.Text)
			}
			lms.Error(&ScanError{Offset: ui.StartTC, Text: string(ui.Text[ui.StartTC:next])})
			lms.scanner.TC = next
		} else {
			lms.Error(err)
		}
		tok, err, eof = lms.scanner.Next()
	}
	if eof {
		end := uint64(lms.length)
		return scanner.MakeDefaultToken(scanner.EOF, "", cerona.Span{end, end})
	}
	token := tok.(*lexmachine.Token)
	tracer().Debugf("token %d | %q", token.Type, token.Lexeme)
	return scanner.MakeDefaultToken(
		cerona.TokType(token.Type),
		string(token.Lexeme),
		cerona.Span{uint64(token.TC), uint64(token.TC + len(token.Lexeme))},
	)
}

// ---------------------------------------------------------------------------

// Skip is an action which drops a match, e.g. white space.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is an action which turns a match into a token of type id.
func MakeToken(name string, id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}
