/*
Package lexmach provides an adapter to use the lexmachine scanner generator as a
scanner.Tokenizer.

For more information on lexmachine, see e.g.
https://hackthology.com/how-to-tokenize-complex-strings-with-lexmachine.html

An adapter is initialized with patterns for tokens of variable text and a list
of literal operators. Please refer to the lexmachine documentation on how to
write patterns.

	var literals []string       // literal operators and punctuation
	var tokenIds map[string]int // token types of the literals

	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`[0-9]+`), lexmach.MakeToken("NUM", scanner.Int))
		lexer.Add([]byte(`( |\t)+`), lexmach.Skip)
	}
	LM, err := NewLMAdapter(init, literals, tokenIds)

The DFA is compiled once; a scanner is created for every input.

	scan, err := LM.Scanner("a + b*2")
	for token := scan.NextToken(); token.TokType() != scanner.EOF; token = scan.NextToken() {
		…
	}

Input no pattern matches is reported to the scanner's error handler as a
*ScanError, carrying its offset, and skipped.

Package expr uses this adapter to lex the bare words of expressions.

________________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexmach
