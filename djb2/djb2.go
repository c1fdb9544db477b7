// Copyright (c) 2022, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

// Package djb2 implements the xor variant of the djb2 hash, h = h*33 ^ c,
// along with functions to undo suffixes off a hash value.
package djb2

import "hash"

// Seed is the initial value commonly used for djb2 hashes.
const Seed uint32 = 0x1505

// inverse33 is the multiplicative inverse of 33 modulo 2^32.
const inverse33 uint32 = 1041204193

// Hash returns the hash of b, starting from seed.
func Hash(b []byte, seed uint32) uint32 {
	h := seed
	for _, c := range b {
		h = h*33 ^ uint32(c)
	}
	return h
}

// HashString is like Hash, but takes a string.
func HashString(s string, seed uint32) uint32 {
	h := seed
	for i := 0; i < len(s); i++ {
		h = h*33 ^ uint32(s[i])
	}
	return h
}

// Unhash undoes the suffix b off the hash value h, so that
// Unhash(b, Hash(b, seed)) == seed.
func Unhash(b []byte, h uint32) uint32 {
	for i := len(b) - 1; i >= 0; i-- {
		h = (h ^ uint32(b[i])) * inverse33
	}
	return h
}

// UnhashInt undoes the decimal representation of value off the hash value h.
// It also returns n plus the number of digits undone, which helps when
// undoing nested length prefixes.
//
// It is equivalent to Unhash([]byte(strconv.FormatUint(value, 10)), h),
// without allocating.
func UnhashInt(value uint64, h uint32, n int) (uint32, int) {
	for {
		h = (h ^ uint32(value%10+'0')) * inverse33
		value /= 10
		n++
		if value == 0 {
			return h, n
		}
	}
}

// New returns a streaming hash.Hash32 starting from seed.
func New(seed uint32) hash.Hash32 {
	return &digest{seed: seed, h: seed}
}

type digest struct {
	seed, h uint32
}

func (d *digest) Write(p []byte) (int, error) {
	d.h = Hash(p, d.h)
	return len(p), nil
}

func (d *digest) Sum32() uint32 { return d.h }

func (d *digest) Sum(b []byte) []byte {
	h := d.h
	return append(b, byte(h>>24), byte(h>>16), byte(h>>8), byte(h))
}

func (d *digest) Reset()         { d.h = d.seed }
func (d *digest) Size() int      { return 4 }
func (d *digest) BlockSize() int { return 1 }
