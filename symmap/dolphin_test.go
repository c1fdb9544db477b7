// Copyright (c) 2022, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package symmap

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-quicktest/qt"
)

func TestLoadFile(t *testing.T) {
	t.Parallel()
	m, err := LoadFile(filepath.Join("testdata", "game.map"))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(m, &Map{Sections: []Section{
		{Name: ".init", Symbols: []Symbol{
			{0x00000000, 0x94, 0x80003100, 1, "__start"},
			{0x00000094, 0x20, 0x80003194, 4, "__init_registers"},
		}},
		{Name: ".text", Symbols: []Symbol{
			{0x00000000, 0x3c, 0x80006740, 4, "__ct__Q23nw42cFv"},
			{0x0000003c, 0x10, 0x8000677c, 4, "hashname_0a6729dd_3f55d800"},
		}},
	}}))

	// .text reuses the addresses of .init, and comes later
	qt.Assert(t, qt.DeepEquals(m.Symbols(), map[uint32]string{
		0x00: "__ct__Q23nw42cFv",
		0x3c: "hashname_0a6729dd_3f55d800",
		0x94: "__init_registers",
	}))
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()
	_, err := Load(strings.NewReader("  00000010 000004 80000010  4 orphan\n"))
	qt.Assert(t, qt.ErrorMatches(err, `orphan at 00000010 doesn't belong to any section`))

	_, err = Load(strings.NewReader(".bss section layout\n 100000000 4 0 4 toobig\n"))
	qt.Assert(t, qt.ErrorMatches(err, `symbol toobig: .*value out of range`))

	_, err = LoadFile(filepath.Join("testdata", "missing.map"))
	qt.Assert(t, qt.IsNotNil(err))
}

func TestLoadNumericNames(t *testing.T) {
	t.Parallel()
	// Names starting with digits must not be taken for the alignment,
	// whether or not the file offset column is present.
	m, err := Load(strings.NewReader(`.data section layout
  00000000 000008 80100000  4 7Foo
  00000008 000004 80100008  8 42
  0000000c 000004 8010000c 000a000c  4 3Bar
`))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(m.Sections, []Section{{Name: ".data", Symbols: []Symbol{
		{0x00, 0x8, 0x80100000, 4, "7Foo"},
		{0x08, 0x4, 0x80100008, 8, "42"},
		{0x0c, 0x4, 0x8010000c, 4, "3Bar"},
	}}}))
}

func TestLoadEmpty(t *testing.T) {
	t.Parallel()
	m, err := Load(strings.NewReader("\n\nnothing to see here\n"))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(m.Sections, 0))
	qt.Assert(t, qt.HasLen(m.Symbols(), 0))
}
