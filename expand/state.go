// Copyright (c) 2018, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package expand

import (
	"bytes"
	"fmt"

	"mvdan.cc/braces/syntax"
)

// state is one node of the enumeration state tree, mirroring a syntax node.
// It behaves like one digit of a mixed-radix counter.
type state interface {
	// reset moves the node and all of its children to their first state.
	reset()

	// render appends the text of the current state to buf. It never
	// truncates buf.
	render(buf *bytes.Buffer)

	// advance moves to the next state, reporting whether it is valid. Once
	// it returns false, the node must be reset before it is used again.
	advance() bool
}

// leafState has a single state.
type leafState struct {
	text  string
	valid bool
}

func (s *leafState) reset() { s.valid = true }

func (s *leafState) render(buf *bytes.Buffer) {
	if s.valid {
		buf.WriteString(s.text)
	}
}

func (s *leafState) advance() bool {
	s.valid = false
	return false
}

// choicesState goes through each of its branches in order.
type choicesState struct {
	children []*patternState
	index    int
}

func (s *choicesState) reset() {
	for _, child := range s.children {
		child.reset()
	}
	s.index = 0
}

func (s *choicesState) render(buf *bytes.Buffer) {
	if s.index < len(s.children) {
		s.children[s.index].render(buf)
	}
}

func (s *choicesState) advance() bool {
	if s.index >= len(s.children) {
		return false
	}
	if s.children[s.index].advance() {
		return true
	}
	// The exhausted branch is not visited again until the next reset, and
	// the next one is still in its first state.
	s.index++
	return s.index < len(s.children)
}

// patternState concatenates its children. The last child varies fastest,
// carrying into the previous one when it runs out of states.
type patternState struct {
	children []state
}

func (s *patternState) reset() {
	for _, child := range s.children {
		child.reset()
	}
}

func (s *patternState) render(buf *bytes.Buffer) {
	for _, child := range s.children {
		child.render(buf)
	}
}

func (s *patternState) advance() bool {
	for i := len(s.children) - 1; i >= 0; i-- {
		child := s.children[i]
		if child.advance() {
			return true
		}
		child.reset()
	}
	return false
}

// newPatternState builds the state tree for pat, in its first state.
func newPatternState(pat syntax.Pattern) *patternState {
	s := &patternState{children: make([]state, len(pat))}
	for i, node := range pat {
		switch node := node.(type) {
		case *syntax.Leaf:
			s.children[i] = &leafState{text: node.Text, valid: true}
		case *syntax.Choices:
			cs := &choicesState{children: make([]*patternState, 0, len(node.Branches))}
			for _, br := range node.Branches {
				// branches which expand to nothing are never visited
				if syntax.Count(br) == 0 {
					continue
				}
				cs.children = append(cs.children, newPatternState(br))
			}
			s.children[i] = cs
		default:
			panic(fmt.Sprintf("unexpected node type: %T", node))
		}
	}
	return s
}
