// Copyright (c) 2022, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

// Package bruteforce searches for the names of symbols which are only known
// by the djb2 hashes of their mangled and demangled names, by expanding brace
// patterns of candidate names and hashing each of them.
package bruteforce

import (
	"context"
	"regexp"
	"slices"
	"strconv"

	"golang.org/x/sync/errgroup"

	"mvdan.cc/braces/djb2"
	"mvdan.cc/braces/symmap"
)

// Entry is a symbol in a Database.
type Entry struct {
	Address       uint32
	MangledHash   uint32
	DemangledHash uint32

	// Name is the mangled name, or empty if the symbol is only known by its
	// hashes.
	Name string
}

// Known reports whether the symbol's name is known.
func (e Entry) Known() bool { return e.Name != "" }

// Database indexes symbols by the hash of their mangled name, and then by the
// hash of their demangled name. Most candidates can be discarded with the
// first lookup alone, without demangling them.
type Database struct {
	byHash map[uint32]map[uint32][]Entry

	total, unknown int
}

// Stats holds the number of symbols in a Database.
type Stats struct {
	Total   int
	Unknown int
}

// placeholderRx matches the names given to symbols whose name is unknown,
// carrying the mangled and demangled hashes in hexadecimal.
var placeholderRx = regexp.MustCompile(`^hashname_([[:xdigit:]]{8})_([[:xdigit:]]{8})`)

// NewDatabase builds a database from symbol names keyed by address. The
// demangler is used to hash the demangled form of known names.
func NewDatabase(symbols map[uint32]string, d Demangler) *Database {
	db := &Database{byHash: make(map[uint32]map[uint32][]Entry)}
	addrs := make([]uint32, 0, len(symbols))
	for addr := range symbols {
		addrs = append(addrs, addr)
	}
	slices.Sort(addrs)
	for _, addr := range addrs {
		db.add(newEntry(addr, symbols[addr], d))
	}
	return db
}

func newEntry(addr uint32, name string, d Demangler) Entry {
	if sm := placeholderRx.FindStringSubmatch(name); sm != nil {
		// the regular expression only allows hex digits
		mangled, _ := strconv.ParseUint(sm[1], 16, 32)
		demangled, _ := strconv.ParseUint(sm[2], 16, 32)
		return Entry{
			Address:       addr,
			MangledHash:   uint32(mangled),
			DemangledHash: uint32(demangled),
		}
	}
	return Entry{
		Address:       addr,
		MangledHash:   djb2.HashString(name, djb2.Seed),
		DemangledHash: djb2.HashString(demangle(d, name), djb2.Seed),
		Name:          name,
	}
}

func (db *Database) add(e Entry) {
	byDemangled := db.byHash[e.MangledHash]
	if byDemangled == nil {
		byDemangled = make(map[uint32][]Entry)
		db.byHash[e.MangledHash] = byDemangled
	}
	byDemangled[e.DemangledHash] = append(byDemangled[e.DemangledHash], e)
	db.total++
	if !e.Known() {
		db.unknown++
	}
}

// Stats returns the number of symbols in the database.
func (db *Database) Stats() Stats {
	return Stats{Total: db.total, Unknown: db.unknown}
}

// Lookup returns the symbols matching both hashes, if any.
func (db *Database) Lookup(mangled, demangled uint32) []Entry {
	return db.byHash[mangled][demangled]
}

// LoadDatabase parses the symbol maps at the given paths concurrently and
// builds a database from all of their symbols. When several maps name the
// same address, the later path wins.
func LoadDatabase(ctx context.Context, d Demangler, paths ...string) (*Database, error) {
	maps := make([]*symmap.Map, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m, err := symmap.LoadFile(path)
			if err != nil {
				return err
			}
			maps[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	symbols := make(map[uint32]string)
	for _, m := range maps {
		for addr, name := range m.Symbols() {
			symbols[addr] = name
		}
	}
	return NewDatabase(symbols, d), nil
}
