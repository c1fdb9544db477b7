// Copyright (c) 2018, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

// Package internal holds helpers shared by the tests of the programs.
package internal

import (
	"fmt"
	"io"
	"strings"
)

// ChanPipe is a very simple pipe that uses a single channel to move chunks of
// bytes around. Reads never split a chunk, and writes never block as long as
// the channel has room.
type ChanPipe struct {
	c       chan []byte
	pending []byte
}

// NewChanPipe returns a ChanPipe which can hold size pending writes.
func NewChanPipe(size int) *ChanPipe {
	return &ChanPipe{c: make(chan []byte, size)}
}

func (p *ChanPipe) Read(b []byte) (int, error) {
	if len(p.pending) == 0 {
		bs, ok := <-p.c
		if !ok { // closed channel
			return 0, io.EOF
		}
		p.pending = bs
	}
	n := copy(b, p.pending)
	p.pending = p.pending[n:]
	return n, nil
}

// ReadString keeps reading from the pipe until the bytes from the supplied
// string are read, failing if anything else is read first. Extra bytes in
// the last chunk are kept for the next read.
func (p *ChanPipe) ReadString(s string) error {
	for len(s) > 0 {
		if len(p.pending) == 0 {
			bs, ok := <-p.c
			if !ok { // closed channel
				return fmt.Errorf("ReadString: reached EOF while waiting for %q", s)
			}
			p.pending = bs
		}
		read := string(p.pending)
		switch {
		case strings.HasPrefix(s, read):
			s = s[len(read):]
			p.pending = nil
		case strings.HasPrefix(read, s):
			p.pending = p.pending[len(s):]
			s = ""
		default:
			return fmt.Errorf("ReadString: read %q, wanted %q", read, s)
		}
	}
	return nil
}

func (p *ChanPipe) Write(b []byte) (int, error) {
	// the writer may reuse b once we return
	p.c <- append([]byte(nil), b...)
	return len(b), nil
}

func (p *ChanPipe) WriteString(s string) (int, error) {
	p.c <- []byte(s)
	return len(s), nil
}

// Close makes pending and future reads reach io.EOF once the remaining chunks
// are consumed.
func (p *ChanPipe) Close() error {
	close(p.c)
	return nil
}
