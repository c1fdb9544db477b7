// Copyright (c) 2018, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package syntax

import (
	"math"
	"math/big"
	"strings"
	"testing"

	"github.com/go-quicktest/qt"
)

var sizeTests = []struct {
	in     string
	maxLen int
	count  uint64
}{
	{``, 0, 1},
	{`abc`, 3, 1},
	{`a{b,c}d`, 3, 2},
	{`{a,b}c{e,f{g,h}}`, 4, 6},
	{`a{,b,,c,}d`, 3, 5},
	{`a{,b,,c,}d{}`, 3, 5},
	{`{}`, 0, 1},
	{`{,}`, 0, 2},
	{`{a,bb,ccc}{d,ee}`, 5, 6},
	{`{a,b}{c,d}{e,f}`, 3, 8},
	{`x{a{b,c},d{e,f,g}}`, 3, 5},
	{`{世,界界}`, 6, 2},
	{`{\{,\}}`, 1, 2},
}

func TestSize(t *testing.T) {
	t.Parallel()
	for _, tc := range sizeTests {
		p, err := NewParser(Escape(true)).Parse(tc.in)
		qt.Assert(t, qt.IsNil(err))
		qt.Check(t, qt.Equals(MaxLen(p), tc.maxLen), qt.Commentf("MaxLen(%q)", tc.in))
		qt.Check(t, qt.Equals(Count(p), tc.count), qt.Commentf("Count(%q)", tc.in))
		qt.Check(t, qt.Equals(BigCount(p).Uint64(), tc.count), qt.Commentf("BigCount(%q)", tc.in))
	}
}

func TestCountAlgebra(t *testing.T) {
	t.Parallel()
	// Each group counts the sum of its branches.
	ch := choices(nil, pat(leaf("a")), pat(choices(nil, nil)), nil)
	qt.Assert(t, qt.Equals(nodeCount(ch), uint64(1+1+2+1)))

	// A pattern counts the product of its nodes.
	p := pat(ch, leaf("x"), ch)
	qt.Assert(t, qt.Equals(Count(p), uint64(5*1*5)))

	// Ill-formed groups without branches count zero and have no length.
	empty := pat(leaf("ab"), &Choices{})
	qt.Assert(t, qt.Equals(Count(empty), uint64(0)))
	qt.Assert(t, qt.Equals(MaxLen(empty), 2))
}

func TestCountSaturates(t *testing.T) {
	t.Parallel()
	// 2^70 expansions
	src := strings.Repeat("{a,b}", 70)
	p, err := NewParser().Parse(src)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(Count(p), uint64(math.MaxUint64)))

	want := new(big.Int).Lsh(big.NewInt(1), 70)
	qt.Assert(t, qt.Equals(BigCount(p).Cmp(want), 0))
	qt.Assert(t, qt.Equals(MaxLen(p), 70))

	// A group without branches after saturating still makes the count zero.
	p = append(p, &Choices{})
	qt.Assert(t, qt.Equals(Count(p), uint64(0)))
	qt.Assert(t, qt.Equals(BigCount(p).Sign(), 0))
}
