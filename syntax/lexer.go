// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package syntax

// Tokenize splits a brace pattern into tokens. Consecutive ordinary
// characters are always merged into a single Literal token.
//
// If escape is true, a backslash makes the character following it literal,
// be it a brace, a comma or another backslash, and the backslash itself is
// dropped. A trailing backslash with nothing to escape is ignored. If escape
// is false, backslashes are ordinary characters.
//
// Tokenize never fails; structural errors are reported by Build.
func Tokenize(src string, escape bool) []Token {
	// Structural characters are all ASCII, so scanning bytes is enough and
	// keeps any invalid UTF-8 in the input intact.
	var toks []Token
	var lit []byte
	inLit := false
	flushLit := func() {
		if inLit {
			toks = append(toks, Token{Kind: Literal, Lit: string(lit)})
			lit = lit[:0]
			inLit = false
		}
	}
	escaped := false
	for i := 0; i < len(src); i++ {
		b := src[i]
		if escaped {
			lit = append(lit, b)
			inLit = true
			escaped = false
			continue
		}
		switch b {
		case '{':
			flushLit()
			toks = append(toks, Token{Kind: OpenBrace})
		case '}':
			flushLit()
			toks = append(toks, Token{Kind: CloseBrace})
		case ',':
			flushLit()
			toks = append(toks, Token{Kind: Comma})
		case '\\':
			if escape {
				escaped = true
				break
			}
			lit = append(lit, b)
			inLit = true
		default:
			lit = append(lit, b)
			inLit = true
		}
	}
	flushLit()
	return toks
}
