// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"mvdan.cc/braces/expand"
	"mvdan.cc/braces/syntax"
	"mvdan.cc/braces/syntax/typedjson"
)

var (
	showVersion = flag.Bool("version", false, "")

	escape = flag.Bool("e", false, "")
	strict = flag.Bool("strict", false, "")

	count    = flag.Bool("n", false, "")
	maxLen   = flag.Bool("maxlen", false, "")
	toJSON   = flag.Bool("tojson", false, "")
	printPat = flag.Bool("p", false, "")

	parser *syntax.Parser

	in  io.Reader = os.Stdin
	out io.Writer = os.Stdout

	version = "(devel)" // to match the default from runtime/debug
)

func main() {
	os.Exit(main1())
}

func main1() int {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: braceexp [flags] [pattern ...]

Each pattern is expanded and its expansions are printed one per line. If no
patterns are given, each line of standard input is a pattern.

  -version  show version and exit

Parser options:

  -e        backslashes escape braces, commas and backslashes
  -strict   reject groups which are never closed

Utilities:

  -n        print the number of expansions instead
  -maxlen   print the length of the longest expansion instead
  -p        print the pattern in its canonical form instead
  -tojson   print the syntax tree as a typed JSON instead
`)
	}
	flag.Parse()

	if *showVersion {
		// don't overwrite the version if it was set by -ldflags=-X
		if info, ok := debug.ReadBuildInfo(); ok && version == "(devel)" {
			mod := &info.Main
			if mod.Replace != nil {
				mod = mod.Replace
			}
			version = mod.Version
		}
		fmt.Println(version)
		return 0
	}
	modes := 0
	for _, b := range []bool{*count, *maxLen, *toJSON, *printPat} {
		if b {
			modes++
		}
	}
	if modes > 1 {
		fmt.Fprintln(os.Stderr, "only one of -n, -maxlen, -p or -tojson may be used")
		return 1
	}
	parser = syntax.NewParser(syntax.Escape(*escape), syntax.Strict(*strict))

	bw := bufio.NewWriter(out)
	defer bw.Flush()

	status := 0
	process := func(src string) {
		if err := expandPattern(bw, src); err != nil {
			bw.Flush()
			fmt.Fprintf(os.Stderr, "%s: %v\n", src, err)
			status = 1
		}
	}
	if flag.NArg() > 0 {
		for _, src := range flag.Args() {
			process(src)
		}
		return status
	}
	sc := bufio.NewScanner(in)
	sc.Buffer(nil, 1<<20)
	for sc.Scan() {
		process(sc.Text())
	}
	if err := sc.Err(); err != nil {
		bw.Flush()
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return status
}

func expandPattern(w *bufio.Writer, src string) error {
	pat, err := parser.Parse(src)
	if err != nil {
		return err
	}
	switch {
	case *count:
		_, err := fmt.Fprintln(w, syntax.BigCount(pat))
		return err
	case *maxLen:
		_, err := fmt.Fprintln(w, syntax.MaxLen(pat))
		return err
	case *printPat:
		if err := syntax.Print(w, pat); err != nil {
			return err
		}
		return w.WriteByte('\n')
	case *toJSON:
		return typedjson.EncodeOptions{Indent: "\t"}.Encode(w, pat)
	}
	it := expand.New(pat)
	var buf bytes.Buffer
	buf.Grow(it.MaxLen() + 1)
	for it.NextInto(&buf) {
		buf.WriteByte('\n')
		if _, err := w.Write(buf.Bytes()); err != nil {
			return err
		}
	}
	return nil
}
