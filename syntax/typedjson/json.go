// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

// Package typedjson allows encoding and decoding brace pattern syntax trees as
// JSON. A Pattern is a JSON array of node objects, and each node object
// carries a "Type" key naming its node type, "Leaf" or "Choices":
//
//	[{"Type":"Leaf","Text":"a"},{"Type":"Choices","Branches":[[...],[]]}]
//
// For the sake of simplicity, the "Type" key is always first in each object.
package typedjson

import (
	"encoding/json"
	"fmt"
	"io"

	"mvdan.cc/braces/syntax"
)

// Encode is a shortcut for EncodeOptions.Encode, with the default options.
func Encode(w io.Writer, pat syntax.Pattern) error {
	return EncodeOptions{}.Encode(w, pat)
}

// EncodeOptions allows configuring how syntax trees are encoded.
type EncodeOptions struct {
	Indent string // e.g. "\t"

	// Allows us to add options later.
}

// Encode writes pat to w in its typed JSON form,
// as described in the package documentation.
func (opts EncodeOptions) Encode(w io.Writer, pat syntax.Pattern) error {
	enc := json.NewEncoder(w)
	if opts.Indent != "" {
		enc.SetIndent("", opts.Indent)
	}
	return enc.Encode(encodePattern(pat))
}

type encNode struct {
	Type     string
	Text     string      `json:",omitempty"`
	Branches [][]encNode `json:",omitempty"`
}

func encodePattern(pat syntax.Pattern) []encNode {
	// never nil, so that empty patterns encode as [] rather than null
	enc := make([]encNode, 0, len(pat))
	for _, node := range pat {
		switch node := node.(type) {
		case *syntax.Leaf:
			enc = append(enc, encNode{Type: "Leaf", Text: node.Text})
		case *syntax.Choices:
			brs := make([][]encNode, len(node.Branches))
			for i, br := range node.Branches {
				brs[i] = encodePattern(br)
			}
			enc = append(enc, encNode{Type: "Choices", Branches: brs})
		default:
			panic(fmt.Sprintf("unexpected node type: %T", node))
		}
	}
	return enc
}

// Decode is a shortcut for DecodeOptions.Decode, with the default options.
func Decode(r io.Reader) (syntax.Pattern, error) {
	return DecodeOptions{}.Decode(r)
}

// DecodeOptions allows configuring how syntax trees are decoded.
type DecodeOptions struct {
	// Empty for now; allows us to add options later.
}

// Decode reads a pattern in its typed JSON form from r,
// as described in the package documentation.
func (opts DecodeOptions) Decode(r io.Reader) (syntax.Pattern, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var enc []encNode
	if err := dec.Decode(&enc); err != nil {
		return nil, err
	}
	return decodePattern(enc)
}

func decodePattern(enc []encNode) (syntax.Pattern, error) {
	var pat syntax.Pattern
	for _, n := range enc {
		switch n.Type {
		case "Leaf":
			if n.Branches != nil {
				return nil, fmt.Errorf("Leaf nodes cannot have branches")
			}
			pat = append(pat, &syntax.Leaf{Text: n.Text})
		case "Choices":
			if n.Text != "" {
				return nil, fmt.Errorf("Choices nodes cannot have text")
			}
			ch := &syntax.Choices{Branches: make([]syntax.Pattern, len(n.Branches))}
			for i, br := range n.Branches {
				var err error
				if ch.Branches[i], err = decodePattern(br); err != nil {
					return nil, err
				}
			}
			pat = append(pat, ch)
		case "":
			return nil, fmt.Errorf("node is missing its Type")
		default:
			return nil, fmt.Errorf("unknown type: %q", n.Type)
		}
	}
	return pat, nil
}
