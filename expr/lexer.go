package expr

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"sync"

	"github.com/cerona-lang/cerona"
	"github.com/cerona-lang/cerona/scanner"
	"github.com/cerona-lang/cerona/scanner/lexmach"
	"github.com/timtadh/lexmachine"
)

// The tokens representing literal operators and punctuation. Order matters
// only for documentation; lexmachine prefers the longest match.
var literals = []string{"(", ")", "[", "]", ",",
	"+", "-", "*", "/", "//", "%",
	"==", "!=", "<", "<=", ">", ">="}

// tokenIds will be set in initTokens()
var tokenIds map[string]int // A map from the token names to their token types

// Token categories not covered by literals.
const (
	tokNum    = scanner.Float
	tokIdent  = scanner.Ident
	tokString = scanner.String
	tokEOF    = scanner.EOF
)

var initOnce sync.Once // monitors one-time initialization
func initTokens() {
	initOnce.Do(func() {
		tokenIds = make(map[string]int)
		tokenIds["NUM"] = tokNum
		tokenIds["ID"] = tokIdent
		tokenIds["STRING"] = tokString
		for i, lit := range literals {
			tokenIds[lit] = 100 + i
		}
	})
}

// tokenFor returns the token type of a literal operator.
func tokenFor(lit string) cerona.TokType {
	initTokens()
	id, ok := tokenIds[lit]
	if !ok {
		panic(fmt.Errorf("unknown token: %s", lit))
	}
	return cerona.TokType(id)
}

var lexer *lexmach.LMAdapter
var lexerErr error
var lexerOnce sync.Once // monitors one-time creation of the lexer

// Lexer returns the lexmachine adapter for expressions, creating it on first use.
func Lexer() (*lexmach.LMAdapter, error) {
	lexerOnce.Do(func() {
		initTokens()
		tracer().Infof("Creating expression lexer")
		init := func(lexer *lexmachine.Lexer) {
			lexer.Add([]byte(`[0-9]+(\.[0-9]*)?((e|E)(\+|\-)?[0-9]+)?`), lexmach.MakeToken("NUM", tokNum))
			lexer.Add([]byte(`\.[0-9]+((e|E)(\+|\-)?[0-9]+)?`), lexmach.MakeToken("NUM", tokNum))
			lexer.Add([]byte(`([a-z]|[A-Z]|_)([a-z]|[A-Z]|[0-9]|_)*`), lexmach.MakeToken("ID", tokIdent))
			lexer.Add([]byte(`( |\t)+`), lexmach.Skip)
		}
		lexer, lexerErr = lexmach.NewLMAdapter(init, literals, tokenIds)
	})
	return lexer, lexerErr
}

// Tokenize translates the words of a statement into expression tokens.
// Quoted words become string tokens as a whole; bare words are split into
// numbers, identifiers and operators. Spans refer to the source line.
func Tokenize(words []scanner.Word) ([]cerona.Token, error) {
	lm, err := Lexer()
	if err != nil {
		return nil, err
	}
	var toks []cerona.Token
	for _, w := range words {
		if w.Quoted {
			t := scanner.MakeDefaultToken(cerona.TokType(tokString), w.Text, w.Span())
			t.Val = w.Text
			toks = append(toks, t)
			continue
		}
		scan, err := lm.Scanner(w.Text)
		if err != nil {
			return nil, err
		}
		var scanErr error
		scan.SetErrorHandler(func(e error) {
			if scanErr == nil {
				scanErr = e
			}
		})
		offset := w.Span().From()
		for t := scan.NextToken(); t.TokType() != tokEOF; t = scan.NextToken() {
			toks = append(toks, scanner.MakeDefaultToken(t.TokType(), t.Lexeme(), t.Span().Shift(offset)))
		}
		if scanErr != nil {
			return nil, fmt.Errorf("%w: cannot scan %q: %v", ErrSyntax, w.Text, scanErr)
		}
	}
	return toks, nil
}
