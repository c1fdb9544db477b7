// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// lineReader reads one pattern at a time, showing a prompt first.
// It returns io.EOF once there is no more input.
type lineReader interface {
	ReadLine() (string, error)
}

type scanReader struct {
	sc  *bufio.Scanner
	out io.Writer
}

func newScanReader(r io.Reader, w io.Writer) *scanReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(nil, 1<<20)
	return &scanReader{sc: sc, out: w}
}

func (r *scanReader) ReadLine() (string, error) {
	fmt.Fprint(r.out, prompt)
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.sc.Text(), nil
}

// termReader provides line editing on a terminal. The terminal is only in raw
// mode while a line is being read, so that Ctrl+C interrupts searches.
type termReader struct {
	fd int
	t  *term.Terminal
}

func newTermReader(stdin, stdout *os.File) *termReader {
	rw := struct {
		io.Reader
		io.Writer
	}{stdin, stdout}
	return &termReader{fd: int(stdin.Fd()), t: term.NewTerminal(rw, prompt)}
}

func (r *termReader) ReadLine() (string, error) {
	old, err := term.MakeRaw(r.fd)
	if err != nil {
		return "", err
	}
	defer term.Restore(r.fd, old)
	return r.t.ReadLine()
}

const maxHistory = 1000

// history keeps the patterns entered in previous sessions.
type history struct {
	path  string
	lines []string
}

func loadHistory(path string) (*history, error) {
	h := &history{path: path}
	if path == "" {
		return h, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return h, nil
	}
	if err != nil {
		return nil, err
	}
	for _, line := range strings.Split(string(data), "\n") {
		if line != "" {
			h.lines = append(h.lines, line)
		}
	}
	return h, nil
}

func (h *history) add(line string) {
	if h == nil {
		return
	}
	if n := len(h.lines); n > 0 && h.lines[n-1] == line {
		return
	}
	h.lines = append(h.lines, line)
	if len(h.lines) > maxHistory {
		h.lines = h.lines[len(h.lines)-maxHistory:]
	}
}

func (h *history) print(w io.Writer) {
	if h == nil {
		return
	}
	for i, line := range h.lines {
		fmt.Fprintf(w, "%5d  %s\n", i+1, line)
	}
}

// save writes the history file, atomically where supported.
func (h *history) save() error {
	if h == nil || h.path == "" || len(h.lines) == 0 {
		return nil
	}
	data := strings.Join(h.lines, "\n") + "\n"
	return writeFile(h.path, []byte(data), 0o666)
}
