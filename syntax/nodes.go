// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

// Package syntax implements parsing of brace expansion patterns, such as
// "a{b,c{d,e}}f", into syntax trees.
package syntax

// Node represents a single element of a Pattern. The only implementations
// are *Leaf and *Choices.
type Node interface {
	nodeKind()
}

// Pattern is a sequence of nodes whose expansions are concatenated. The empty
// Pattern expands to exactly one string, the empty string.
//
// Patterns built by Build never contain two consecutive *Leaf nodes.
type Pattern []Node

// Leaf is a run of literal text.
type Leaf struct {
	Text string
}

// Choices is an alternation group such as "{a,b,c}". Each branch is a
// Pattern of its own, and an empty branch expands to the empty string.
type Choices struct {
	Branches []Pattern
}

func (*Leaf) nodeKind()    {}
func (*Choices) nodeKind() {}
