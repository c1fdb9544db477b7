// Copyright (c) 2018, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package syntax

import (
	"math"
	"math/big"
	"math/bits"
)

// MaxLen returns the length in bytes of the longest string that pat expands
// to, without expanding it.
func MaxLen(pat Pattern) int {
	n := 0
	for _, node := range pat {
		n += nodeMaxLen(node)
	}
	return n
}

func nodeMaxLen(node Node) int {
	switch node := node.(type) {
	case *Leaf:
		return len(node.Text)
	case *Choices:
		longest := 0
		for _, br := range node.Branches {
			if n := MaxLen(br); n > longest {
				longest = n
			}
		}
		return longest
	}
	panic("unexpected node type")
}

// Count returns the number of strings that pat expands to, without expanding
// it. Each group contributes the sum of its branches, and a pattern is the
// product of its nodes; the empty pattern counts as one.
//
// The result saturates at math.MaxUint64; use BigCount for an exact value.
func Count(pat Pattern) uint64 {
	n := uint64(1)
	saturated := false
	for _, node := range pat {
		c := nodeCount(node)
		if c == 0 {
			// a zero factor wins over saturation
			return 0
		}
		if saturated {
			continue
		}
		hi, lo := bits.Mul64(n, c)
		if hi != 0 {
			saturated = true
			continue
		}
		n = lo
	}
	if saturated {
		return math.MaxUint64
	}
	return n
}

func nodeCount(node Node) uint64 {
	switch node := node.(type) {
	case *Leaf:
		return 1
	case *Choices:
		sum := uint64(0)
		for _, br := range node.Branches {
			var carry uint64
			sum, carry = bits.Add64(sum, Count(br), 0)
			if carry != 0 {
				return math.MaxUint64
			}
		}
		return sum
	}
	panic("unexpected node type")
}

// BigCount is like Count, but never saturates.
func BigCount(pat Pattern) *big.Int {
	n := big.NewInt(1)
	for _, node := range pat {
		switch node := node.(type) {
		case *Leaf:
		case *Choices:
			sum := new(big.Int)
			for _, br := range node.Branches {
				sum.Add(sum, BigCount(br))
			}
			n.Mul(n, sum)
		}
	}
	return n
}
