// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package syntax

import "strconv"

// TokenKind is the set of lexical tokens in a brace pattern.
type TokenKind int

const (
	Literal    TokenKind = iota // ordinary text
	OpenBrace                   // {
	CloseBrace                  // }
	Comma                       // ,
)

func (k TokenKind) String() string {
	switch k {
	case Literal:
		return "Literal"
	case OpenBrace:
		return "OpenBrace"
	case CloseBrace:
		return "CloseBrace"
	case Comma:
		return "Comma"
	}
	return "TokenKind(" + strconv.Itoa(int(k)) + ")"
}

// Token is a single lexical token. Lit is only set for Literal tokens, and
// holds the text after any escape sequences have been removed.
type Token struct {
	Kind TokenKind
	Lit  string
}

func (t Token) String() string {
	switch t.Kind {
	case OpenBrace:
		return "{"
	case CloseBrace:
		return "}"
	case Comma:
		return ","
	}
	return strconv.Quote(t.Lit)
}
