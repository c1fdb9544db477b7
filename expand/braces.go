// Copyright (c) 2018, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

// Package expand performs brace expansion on patterns parsed by the syntax
// package, producing one string at a time.
package expand

import (
	"bytes"
	"math/big"

	"mvdan.cc/braces/syntax"
)

// Braces parses src and returns an Iterator over its expansions. For example,
// "foo{bar,baz}" expands to "foobar" and "foobaz".
//
// If escape is true, backslashes escape braces, commas and backslashes. The
// only errors are those from building the syntax tree, of type
// *syntax.ParseError.
func Braces(src string, escape bool) (*Iterator, error) {
	pat, err := syntax.NewParser(syntax.Escape(escape)).Parse(src)
	if err != nil {
		return nil, err
	}
	return New(pat), nil
}

// New returns an Iterator over the expansions of pat.
// The iterator does not modify pat.
func New(pat syntax.Pattern) *Iterator {
	it := &Iterator{
		root:     newPatternState(pat),
		maxLen:   syntax.MaxLen(pat),
		count:    syntax.Count(pat),
		bigCount: syntax.BigCount(pat),
	}
	// Only hand-built trees, with groups lacking branches, expand to nothing.
	it.done = it.bigCount.Sign() == 0
	return it
}

// Iterator produces the expansions of a pattern in a fixed order: groups
// further to the right vary faster, and branches are taken in order.
// For example, "{a,b}{c,d}" yields "ac", "ad", "bc" and "bd".
//
// An Iterator is not safe for concurrent use.
type Iterator struct {
	root *patternState
	done bool

	maxLen   int
	count    uint64
	bigCount *big.Int
}

// NextInto writes the next expansion into buf, replacing its contents, and
// reports whether there was one. Reusing the same buffer across calls avoids
// allocating for each expansion.
func (it *Iterator) NextInto(buf *bytes.Buffer) bool {
	if it.done {
		return false
	}
	buf.Reset()
	it.root.render(buf)
	it.done = !it.root.advance()
	return true
}

// Next returns the next expansion, and false once there are none left.
func (it *Iterator) Next() (string, bool) {
	if it.done {
		return "", false
	}
	var buf bytes.Buffer
	buf.Grow(it.maxLen)
	it.NextInto(&buf)
	return buf.String(), true
}

// MaxLen returns the length in bytes of the longest expansion.
func (it *Iterator) MaxLen() int { return it.maxLen }

// Count returns the total number of expansions, saturating at
// math.MaxUint64. It does not change as the iterator advances.
func (it *Iterator) Count() uint64 { return it.count }

// BigCount is like Count, but exact.
func (it *Iterator) BigCount() *big.Int { return new(big.Int).Set(it.bigCount) }

// All expands src and returns all of its expansions at once. It is meant for
// small patterns; use Braces to go through large ones.
func All(src string, escape bool) ([]string, error) {
	it, err := Braces(src, escape)
	if err != nil {
		return nil, err
	}
	var words []string
	if it.count < 1<<16 {
		words = make([]string, 0, it.count)
	}
	for {
		word, ok := it.Next()
		if !ok {
			return words, nil
		}
		words = append(words, word)
	}
}
