// Copyright (c) 2022, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package bruteforce

import (
	"context"
	"strings"
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/google/go-cmp/cmp"

	"mvdan.cc/braces/syntax"
)

func TestSearchMatch(t *testing.T) {
	t.Parallel()
	db := NewDatabase(map[uint32]string{
		0x10: "foo__Fv",
		0x20: placeholder("bar__Fi"),
	}, testDemangler)
	var out, log strings.Builder
	s := NewSearcher(db, testDemangler, &out)
	s.Log = &log
	s.EchoFirst, s.EchoEvery = 0, 0

	res, err := s.Search(context.Background(), "{foo,bar}__F{v,i}")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(res.Checked, uint64(4)))
	qt.Assert(t, qt.DeepEquals(res.Matches, []Match{{
		Entry:     Entry{Address: 0x20, MangledHash: 0x8ceb483b, DemangledHash: 0x6ed651f2},
		Mangled:   "bar__Fi",
		Demangled: "demangled bar__Fi",
	}}))
	qt.Assert(t, qt.Equals(log.String(), "bar__Fi\n"))

	bangs := strings.Repeat("!", 70)
	want := strings.Join([]string{
		"Checking 4 symbols...",
		"8ceb483b_6ed651f2 | bar__Fi",
		"!!!!!!!!!!!!!!!!! | demangled bar__Fi",
		strings.Repeat("^", 70),
		"",
		bangs,
		"Found 1 new match (4 symbols checked)!",
		"00000020 | bar__Fi                                  | demangled bar__Fi",
		bangs,
		"",
		"",
	}, "\n")
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchEcho(t *testing.T) {
	t.Parallel()
	db := NewDatabase(map[uint32]string{0x10: "a"}, NoDemangler)
	var out strings.Builder
	s := NewSearcher(db, NoDemangler, &out)
	s.EchoFirst, s.EchoEvery = 2, 0

	res, err := s.Search(context.Background(), "{a,b,c}")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(res.Checked, uint64(3)))
	qt.Assert(t, qt.HasLen(res.Matches, 0))

	want := strings.Join([]string{
		"Checking 3 symbols...",
		"0002b5c4_0002b5c4 | a",
		"     (known)      | a",
		"0002b5c7_0002b5c7 | b",
		"                  | b",
		"For performance, only the first 2 symbols are displayed (above), plus a small sample of the rest (below):",
		"No new matches (3 symbols checked).",
		"",
	}, "\n")
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchSample(t *testing.T) {
	t.Parallel()
	db := NewDatabase(nil, NoDemangler)
	var out strings.Builder
	s := NewSearcher(db, NoDemangler, &out)
	s.EchoFirst, s.EchoEvery = 0, 10

	res, err := s.Search(context.Background(), "{0,1,2,3,4,5,6,7,8,9}{0,1,2,3,4,5,6,7,8,9}")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(res.Checked, uint64(100)))

	// The first candidate is always sampled, and the jitter shifts the rest
	// so that they do not all end in the same digit.
	var sampled []string
	for _, line := range strings.Split(out.String(), "\n") {
		if _, name, ok := strings.Cut(line, "_"); ok {
			sampled = append(sampled, name[len("00000000 | "):])
		}
	}
	qt.Assert(t, qt.IsTrue(len(sampled) > 5))
	qt.Assert(t, qt.Equals(sampled[0], "00"))
	qt.Assert(t, qt.Not(qt.Equals(sampled[1][1], sampled[2][1])))
}

func TestSearchShorthands(t *testing.T) {
	t.Parallel()
	db := NewDatabase(map[uint32]string{0x10: placeholder("__ct__3FooFPc")}, testDemangler)
	var out strings.Builder
	s := NewSearcher(db, testDemangler, &out)
	s.EchoFirst, s.EchoEvery = 0, 0

	res, err := s.Search(context.Background(), "__ct__[Foo]END1")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(res.Matches, 1))
	qt.Assert(t, qt.Equals(res.Matches[0].Mangled, "__ct__3FooFPc"))
}

func TestSearchErrors(t *testing.T) {
	t.Parallel()
	s := NewSearcher(NewDatabase(nil, NoDemangler), NoDemangler, new(strings.Builder))

	_, err := s.Search(context.Background(), "a}b")
	var perr *syntax.ParseError
	qt.Assert(t, qt.ErrorAs(err, &perr))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := s.Search(ctx, "{a,b}")
	qt.Assert(t, qt.ErrorIs(err, context.Canceled))
	qt.Assert(t, qt.Equals(res.Checked, uint64(0)))
}

func TestCenter(t *testing.T) {
	t.Parallel()
	qt.Assert(t, qt.Equals(center("ab", 6), "  ab  "))
	qt.Assert(t, qt.Equals(center("abc", 6), " abc  "))
	qt.Assert(t, qt.Equals(center("toolong", 3), "toolong"))
}
