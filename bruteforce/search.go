// Copyright (c) 2022, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package bruteforce

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"mvdan.cc/braces/djb2"
	"mvdan.cc/braces/expand"
)

const (
	DefaultEchoFirst = 50
	DefaultEchoEvery = 2_000_000
)

// Searcher checks the expansions of brace patterns against a Database.
type Searcher struct {
	DB        *Database
	Demangler Demangler

	// Shorthands are replaced in each pattern before expanding it.
	Shorthands map[string]string

	// Escape enables backslash escapes in patterns.
	Escape bool

	// Out receives the report of each search.
	Out io.Writer

	// Log, if not nil, receives the mangled name of each new match, one per
	// line.
	Log io.Writer

	// EchoFirst is how many of the first candidates are always shown, and
	// EchoEvery how often one of the rest is sampled. Zero disables either.
	EchoFirst uint64
	EchoEvery uint64
}

// NewSearcher returns a Searcher with the default shorthands and sampling.
func NewSearcher(db *Database, d Demangler, out io.Writer) *Searcher {
	return &Searcher{
		DB:         db,
		Demangler:  d,
		Shorthands: DefaultShorthands(),
		Out:        out,
		EchoFirst:  DefaultEchoFirst,
		EchoEvery:  DefaultEchoEvery,
	}
}

// Match is a previously unknown symbol whose hashes matched a candidate.
type Match struct {
	Entry     Entry
	Mangled   string
	Demangled string
}

// Result summarizes a search.
type Result struct {
	Checked uint64
	Matches []Match
	Elapsed time.Duration
}

// how often to check for cancellation, in candidates
const ctxCheckInterval = 1 << 12

// Search expands the pattern in line and checks every candidate, writing its
// report to s.Out. If ctx is cancelled, it stops early and returns the partial
// result along with the context's error.
func (s *Searcher) Search(ctx context.Context, line string) (*Result, error) {
	line = ApplyShorthands(line, s.Shorthands)
	it, err := expand.Braces(line, s.Escape)
	if err != nil {
		return nil, err
	}
	total := it.Count()
	if total > s.EchoFirst {
		fmt.Fprintf(s.Out, "Checking %d symbols...\n", total)
	}

	start := time.Now()
	res := &Result{}
	var cand bytes.Buffer
	cand.Grow(it.MaxLen())
	var mangled []byte
	var jitter uint64
	for i := uint64(0); it.NextInto(&cand); i++ {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				res.Elapsed = time.Since(start)
				return res, err
			}
		}
		res.Checked++
		echo := i < s.EchoFirst || (s.EchoEvery > 0 && (i+jitter)%s.EchoEvery == 0)

		mangled = AppendLengthPrefixed(mangled[:0], cand.Bytes())
		mangledHash := djb2.Hash(mangled, djb2.Seed)
		byDemangled := s.DB.byHash[mangledHash]
		if byDemangled == nil && !echo {
			continue
		}

		name := string(mangled)
		demangled := demangle(s.Demangler, name)
		demangledHash := djb2.HashString(demangled, djb2.Seed)

		status := ""
		var unknown []Entry
		if entries, ok := byDemangled[demangledHash]; ok {
			for _, e := range entries {
				if !e.Known() {
					unknown = append(unknown, e)
				}
			}
			if len(unknown) == 0 {
				status = "(known)"
			} else {
				echo = true
				status = strings.Repeat("!", 17) + " "
			}
		}
		if !echo {
			continue
		}

		fmt.Fprintf(s.Out, "%08x_%08x | %s\n", mangledHash, demangledHash, name)
		fmt.Fprintf(s.Out, "%s| %s\n", center(status, 18), demangled)
		if s.EchoFirst > 0 && i == s.EchoFirst-1 {
			fmt.Fprintf(s.Out, "For performance, only the first %d symbols are displayed (above), plus a small sample of the rest (below):\n", s.EchoFirst)
		}

		// Jitter keeps the sampling interval from lining up with the period
		// of a group in the pattern, which would only show a few kinds of
		// candidates.
		jitter++

		if len(unknown) > 0 {
			fmt.Fprintln(s.Out, strings.Repeat("^", 70))
			for _, e := range unknown {
				res.Matches = append(res.Matches, Match{Entry: e, Mangled: name, Demangled: demangled})
				if s.Log != nil {
					fmt.Fprintln(s.Log, name)
				}
			}
		}
	}
	res.Elapsed = time.Since(start)
	s.summary(res)
	return res, nil
}

func (s *Searcher) summary(res *Result) {
	checked := fmt.Sprintf("(%d symbol%s checked)", res.Checked, plural(res.Checked, "", "s"))
	if len(res.Matches) == 0 {
		fmt.Fprintf(s.Out, "No new matches %s.\n", checked)
	} else {
		fmt.Fprintln(s.Out)
		fmt.Fprintln(s.Out, strings.Repeat("!", 70))
		fmt.Fprintf(s.Out, "Found %d new match%s %s!\n",
			len(res.Matches), plural(uint64(len(res.Matches)), "", "es"), checked)
		for _, m := range res.Matches {
			fmt.Fprintf(s.Out, "%08x | %-40s | %s\n", m.Entry.Address, m.Mangled, m.Demangled)
		}
		fmt.Fprintln(s.Out, strings.Repeat("!", 70))
		fmt.Fprintln(s.Out)
	}
	if res.Elapsed > 10*time.Second {
		fmt.Fprintf(s.Out, "(Query executed in %.3f seconds)\n", res.Elapsed.Seconds())
	}
}

func plural(n uint64, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// center pads s with spaces on both sides to width, with any odd space on the
// right.
func center(s string, width int) string {
	pad := width - len(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}
