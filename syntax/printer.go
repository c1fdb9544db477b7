// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package syntax

import (
	"bufio"
	"io"
	"strings"
)

// Print writes pat to w in its canonical source form. Braces, commas and
// backslashes within literal text are escaped with a backslash, so the output
// parses back into an equal Pattern when escaping is enabled.
//
// Groups are always printed closed, so unclosed groups in the original
// source come out as "{...}".
func Print(w io.Writer, pat Pattern) error {
	bw, ok := w.(*bufio.Writer)
	if !ok {
		bw = bufio.NewWriter(w)
	}
	p := printer{w: bw}
	p.pattern(pat)
	return bw.Flush()
}

// String returns the canonical source form of pat, as written by Print.
func (pat Pattern) String() string {
	var sb strings.Builder
	p := printer{w: &sb}
	p.pattern(pat)
	return sb.String()
}

type byteStringWriter interface {
	WriteByte(byte) error
	WriteString(string) (int, error)
}

type printer struct {
	w byteStringWriter
}

func (p *printer) pattern(pat Pattern) {
	for _, node := range pat {
		switch node := node.(type) {
		case *Leaf:
			p.literal(node.Text)
		case *Choices:
			p.w.WriteByte('{')
			for i, br := range node.Branches {
				if i > 0 {
					p.w.WriteByte(',')
				}
				p.pattern(br)
			}
			p.w.WriteByte('}')
		}
	}
}

func (p *printer) literal(s string) {
	last := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{', '}', ',', '\\':
			p.w.WriteString(s[last:i])
			p.w.WriteByte('\\')
			last = i
		}
	}
	p.w.WriteString(s[last:])
}
