// Copyright (c) 2022, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package bruteforce

import (
	"bufio"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// ErrorSentinel replaces the demangled form of names which fail to demangle.
const ErrorSentinel = "ERROR"

// Demangler turns mangled symbol names into their demangled form.
type Demangler interface {
	Demangle(name string) (string, error)
}

// DemangleFunc adapts a function to the Demangler interface.
type DemangleFunc func(name string) (string, error)

func (f DemangleFunc) Demangle(name string) (string, error) { return f(name) }

// NoDemangler leaves names unchanged.
var NoDemangler Demangler = DemangleFunc(func(name string) (string, error) {
	return name, nil
})

func demangle(d Demangler, name string) string {
	s, err := d.Demangle(name)
	if err != nil {
		return ErrorSentinel
	}
	return s
}

// CommandDemangler runs a single external demangler process, such as
// c++filt, and exchanges one line with it per name. The command must read
// names from standard input and write one flushed line of output per line of
// input.
//
// A CommandDemangler is not safe for concurrent use.
type CommandDemangler struct {
	cmd *exec.Cmd
	in  io.WriteCloser
	out *bufio.Reader
}

// StartCommand starts the demangler process. Close must be called to stop it.
func StartCommand(name string, args ...string) (*CommandDemangler, error) {
	cmd := exec.Command(name, args...)
	in, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	out, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &CommandDemangler{cmd: cmd, in: in, out: bufio.NewReader(out)}, nil
}

func (c *CommandDemangler) Demangle(name string) (string, error) {
	if strings.ContainsAny(name, "\r\n") {
		return "", fmt.Errorf("cannot demangle a name with newlines: %q", name)
	}
	if _, err := io.WriteString(c.in, name+"\n"); err != nil {
		return "", err
	}
	line, err := c.out.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(line, "\n"), nil
}

// Close stops the demangler process and waits for it to exit.
func (c *CommandDemangler) Close() error {
	c.in.Close()
	return c.cmd.Wait()
}
