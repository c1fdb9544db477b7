// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package syntax

import "fmt"

// ParserOption is a function which can be passed to NewParser
// to alter its behavior.
type ParserOption func(*Parser)

// Escape enables backslash escaping of braces, commas and backslashes.
func Escape(enabled bool) ParserOption {
	return func(p *Parser) { p.escape = enabled }
}

// Strict makes the parser reject alternation groups which are never closed,
// such as "a{b,c". By default, an unclosed group is accepted and its last
// branch takes the rest of the input.
func Strict(enabled bool) ParserOption {
	return func(p *Parser) { p.strict = enabled }
}

// NewParser allocates a new Parser and applies any number of options.
func NewParser(options ...ParserOption) *Parser {
	p := &Parser{}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Parser holds the configuration used to tokenize and build patterns.
// It holds no state between calls, so it may be reused.
type Parser struct {
	escape bool
	strict bool
}

// Parse tokenizes src and builds its syntax tree.
func (p *Parser) Parse(src string) (Pattern, error) {
	return build(Tokenize(src, p.escape), p.strict)
}

// ParseError represents an error found while building a pattern. Index is
// the position of Token within the token sequence.
type ParseError struct {
	Index int
	Token Token

	// Unclosed is set when Token is an OpenBrace that was never closed.
	// Only reported by a Strict parser.
	Unclosed bool
}

func (e *ParseError) Error() string {
	if e.Unclosed {
		return fmt.Sprintf("unclosed %s at position %d", e.Token, e.Index)
	}
	return fmt.Sprintf("unexpected %s at position %d", e.Token, e.Index)
}

// Build builds the syntax tree for a sequence of tokens, as returned by
// Tokenize. A closing brace or comma outside of any group results in a
// *ParseError.
//
// Groups that are never closed are accepted; the last branch of such a group
// absorbs the rest of the input, so "a{b,c" is the same as "a{b,c}".
func Build(toks []Token) (Pattern, error) {
	return build(toks, false)
}

func build(toks []Token, strict bool) (Pattern, error) {
	p := &parser{toks: toks, strict: strict}
	pat := p.pattern()
	if p.err != nil {
		return nil, p.err
	}
	if p.idx < len(toks) {
		return nil, &ParseError{Index: p.idx, Token: toks[p.idx]}
	}
	return pat, nil
}

type parser struct {
	toks []Token
	idx  int

	strict bool
	err    error
}

// pattern consumes nodes until a closing brace, a comma or the end of input,
// leaving the stop token for the caller.
func (p *parser) pattern() Pattern {
	var pat Pattern
	for p.idx < len(p.toks) {
		tok := p.toks[p.idx]
		switch tok.Kind {
		case CloseBrace, Comma:
			return pat
		case OpenBrace:
			pat = append(pat, p.choices())
		default:
			pat = append(pat, &Leaf{Text: tok.Lit})
			p.idx++
		}
	}
	return pat
}

// choices parses a group starting at an OpenBrace. It always produces at
// least one branch.
func (p *parser) choices() *Choices {
	open := p.idx
	p.idx++
	ch := &Choices{}
	for {
		ch.Branches = append(ch.Branches, p.pattern())
		if p.idx >= len(p.toks) {
			if p.strict && p.err == nil {
				p.err = &ParseError{Index: open, Token: p.toks[open], Unclosed: true}
			}
			return ch
		}
		tok := p.toks[p.idx]
		p.idx++
		if tok.Kind == CloseBrace {
			return ch
		}
		// a comma; parse the next branch
	}
}
