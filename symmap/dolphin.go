// Copyright (c) 2022, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

// Package symmap parses symbol map files, such as the ones written by the
// Dolphin emulator or by CodeWarrior's linker.
package symmap

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Symbol is a single entry of a symbol map.
type Symbol struct {
	PhysicalAddress uint32
	Size            uint32
	VirtualAddress  uint32
	Alignment       uint32
	Name            string
}

// Section is a named group of symbols, such as ".text".
type Section struct {
	Name    string
	Symbols []Symbol
}

// Map is a parsed symbol map.
type Map struct {
	Sections []Section
}

var (
	sectionHeaderRx = regexp.MustCompile(`(\S+) section layout`)

	// phys size virt [file offset] alignment name
	symbolLineRx = regexp.MustCompile(`^\s*` +
		`([[:xdigit:]]+)\s+` +
		`([[:xdigit:]]+)\s+` +
		`([[:xdigit:]]+)\s+` +
		`(?:[[:xdigit:]]+\s+)?` +
		`(\d+)\s+` +
		`(\S+)`)
)

// Load parses a symbol map in Dolphin's format. Lines which are neither
// section headers nor symbols are skipped, but a symbol appearing before any
// section header is an error.
func Load(r io.Reader) (*Map, error) {
	m := &Map{}
	var cur *Section
	sc := bufio.NewScanner(r)
	sc.Buffer(nil, 1<<20)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if sm := sectionHeaderRx.FindStringSubmatch(line); sm != nil {
			m.Sections = append(m.Sections, Section{Name: sm[1]})
			cur = &m.Sections[len(m.Sections)-1]
			continue
		}
		sm := symbolLineRx.FindStringSubmatch(line)
		if sm == nil {
			continue
		}
		sym, err := parseSymbol(sm)
		if err != nil {
			return nil, err
		}
		if cur == nil {
			return nil, fmt.Errorf("%s at %08x doesn't belong to any section",
				sym.Name, sym.PhysicalAddress)
		}
		cur.Symbols = append(cur.Symbols, sym)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

func parseSymbol(sm []string) (Symbol, error) {
	var vals [4]uint32
	for i, base := range [...]int{16, 16, 16, 10} {
		n, err := strconv.ParseUint(sm[1+i], base, 32)
		if err != nil {
			return Symbol{}, fmt.Errorf("symbol %s: %w", sm[5], err)
		}
		vals[i] = uint32(n)
	}
	return Symbol{
		PhysicalAddress: vals[0],
		Size:            vals[1],
		VirtualAddress:  vals[2],
		Alignment:       vals[3],
		Name:            sm[5],
	}, nil
}

// LoadFile is a shortcut to open a file and call Load on it.
func LoadFile(path string) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Symbols returns the names of all symbols, keyed by physical address. If two
// symbols share an address, the last one wins.
func (m *Map) Symbols() map[uint32]string {
	syms := make(map[uint32]string)
	for _, sec := range m.Sections {
		for _, sym := range sec.Symbols {
			syms[sym.PhysicalAddress] = sym.Name
		}
	}
	return syms
}
