// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"sort"
	"strings"

	"golang.org/x/term"

	"mvdan.cc/braces/bruteforce"
)

var (
	showVersion = flag.Bool("version", false, "")

	command     = flag.String("c", "", "")
	escape      = flag.Bool("e", false, "")
	demangleCmd = flag.String("demangle", "", "")
	logPath     = flag.String("log", "positive_symbol_log.txt", "")
	historyPath = flag.String("history", "history.txt", "")

	in  io.Reader = os.Stdin
	out io.Writer = os.Stdout

	version = "(devel)" // to match the default from runtime/debug
)

const prompt = "sym> "

func main() {
	os.Exit(main1())
}

func main1() int {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: braceforce [flags] symbols.map [more.map ...]

Loads the symbol maps and searches for the names of the symbols only known by
their hashes. Each pattern is read from standard input, unless -c is used.

  -version        show version and exit

  -c pattern      search for a single pattern and exit
  -e              backslashes escape braces, commas and backslashes
  -demangle cmd   demangler command reading one name per line, like c++filt
  -log path       file to append new matches to (default "positive_symbol_log.txt")
  -history path   file to keep the pattern history in (default "history.txt")
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
	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "specify the path to at least one symbol map")
		flag.Usage()
		return 1
	}

	s := &session{out: out, paths: flag.Args(), demangler: bruteforce.NoDemangler}
	if fields := strings.Fields(*demangleCmd); len(fields) > 0 {
		d, err := bruteforce.StartCommand(fields[0], fields[1:]...)
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not start demangler: %v\n", err)
			return 1
		}
		defer d.Close()
		s.demangler = d
	}
	if *logPath != "" {
		lf := &lazyFile{path: *logPath}
		defer func() {
			if err := lf.Close(); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		}()
		s.log = lf
	}
	if err := s.load(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if *command != "" {
		if err := s.search(*command); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	hist, err := loadHistory(*historyPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	s.history = hist

	var lr lineReader = newScanReader(in, out)
	if stdin, ok := in.(*os.File); ok && term.IsTerminal(int(stdin.Fd())) {
		if stdout, ok := out.(*os.File); ok && term.IsTerminal(int(stdout.Fd())) {
			lr = newTermReader(stdin, stdout)
		}
	}
	runErr := s.interactive(lr)
	if err := hist.save(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if runErr != nil {
		fmt.Fprintln(os.Stderr, runErr)
		return 1
	}
	return 0
}

// session holds the state of the program across patterns.
type session struct {
	out       io.Writer
	paths     []string
	demangler bruteforce.Demangler
	log       io.Writer
	history   *history

	searcher *bruteforce.Searcher
}

// load reads the symbol maps into a new database. The previous database, if
// any, is kept if loading fails.
func (s *session) load(ctx context.Context) error {
	db, err := bruteforce.LoadDatabase(ctx, s.demangler, s.paths...)
	if err != nil {
		return err
	}
	searcher := bruteforce.NewSearcher(db, s.demangler, s.out)
	searcher.Escape = *escape
	searcher.Log = s.log
	s.searcher = searcher

	names := make([]string, len(s.paths))
	for i, path := range s.paths {
		names[i] = filepath.Base(path)
	}
	stats := db.Stats()
	percent := 0.0
	if stats.Total > 0 {
		percent = float64(stats.Unknown) / float64(stats.Total) * 100
	}
	fmt.Fprintf(s.out, "Loaded %d symbols from %s (%d (%.3f%%) unknown).\n\n",
		stats.Total, strings.Join(names, ", "), stats.Unknown, percent)
	return nil
}

// search runs a single pattern. An interrupt only stops the search.
func (s *session) search(line string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	res, err := s.searcher.Search(ctx, line)
	if errors.Is(err, context.Canceled) {
		fmt.Fprintf(s.out, "Interrupted after checking %d symbols.\n", res.Checked)
		return nil
	}
	return err
}

func (s *session) interactive(lr lineReader) error {
	s.printHelp()
	for {
		line, err := lr.ReadLine()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		s.history.add(line)
		switch line {
		case "r":
			if err := s.load(context.Background()); err != nil {
				fmt.Fprintf(s.out, "error: %v\n", err)
			}
		case "h":
			s.history.print(s.out)
		default:
			if err := s.search(line); err != nil {
				fmt.Fprintf(s.out, "error: %v\n", err)
			}
		}
	}
}

func (s *session) printHelp() {
	fmt.Fprint(s.out, `Commands:
- Ctrl+D: exit
- Ctrl+C: stop the current search
- r: reload the symbol database
- h: show the pattern history
- (anything else): run as a bruteforce pattern

Pattern format:
- Curly braces ("{a,b,c}") expand to multiple strings ("a", "b", "c").
    - Empty elements are OK: "{a,b,}" -> "a", "b", "".
- Square brackets ("[abc]") will be replaced by a length prefix ("3abc").
- You can use the following shorthand aliases to easily search for symbols with common signatures:
`)
	shorthands := s.searcher.Shorthands
	names := make([]string, 0, len(shorthands))
	for name := range shorthands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(s.out, "    - %q: %q\n", name, shorthands[name])
	}
	fmt.Fprintln(s.out)
}

// lazyFile appends to a file, which is only opened on the first write.
type lazyFile struct {
	path string
	f    *os.File
}

func (l *lazyFile) Write(p []byte) (int, error) {
	if l.f == nil {
		f, err := os.OpenFile(l.path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o666)
		if err != nil {
			return 0, err
		}
		l.f = f
	}
	return l.f.Write(p)
}

func (l *lazyFile) Close() error {
	if l.f == nil {
		return nil
	}
	return l.f.Close()
}
