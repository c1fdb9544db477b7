// Copyright (c) 2022, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package bruteforce

import (
	"bytes"
	"sort"
	"strings"
)

// primitives matches the mangled forms of common primitive parameter types,
// such as "i", "Uc", "PCf" or "Rb".
const primitives = "{,P,R,C}{{,U,S}{c,s,i,l,f},b}"

// DefaultShorthands returns the shorthands for common function signature
// endings. ENDn matches an optionally const function taking up to n-1
// primitive parameters.
func DefaultShorthands() map[string]string {
	p := primitives
	return map[string]string{
		"END1": "{C,}F{v," + p + "}",
		"END2": "{C,}F{v," + p + "," + p + p + "}",
		"END3": "{C,}F{v," + p + "," + p + p + "," + p + p + p + "}",
	}
}

// ApplyShorthands replaces each shorthand name in s with its expansion, in
// sorted order of names.
func ApplyShorthands(s string, shorthands map[string]string) string {
	names := make([]string, 0, len(shorthands))
	for name := range shorthands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		s = strings.ReplaceAll(s, name, shorthands[name])
	}
	return s
}

// AppendLengthPrefixed appends src to dst with each bracketed "[...]" run
// replaced by its length in decimal followed by its contents, as in mangled
// names: "[foo][quux]" becomes "3foo4quux". Inner brackets are replaced
// first, so an outer length counts the prefixes produced by inner ones, and
// "[[ab]c]" becomes "42abc". Brackets without a match are kept as they are.
func AppendLengthPrefixed(dst, src []byte) []byte {
	if bytes.IndexByte(src, '[') < 0 {
		return append(dst, src...)
	}
	var stack [16]int
	opens := stack[:0] // offsets in dst of each unmatched '['
	for _, c := range src {
		switch c {
		case '[':
			opens = append(opens, len(dst))
			dst = append(dst, c)
		case ']':
			if len(opens) == 0 {
				dst = append(dst, c)
				break
			}
			at := opens[len(opens)-1]
			opens = opens[:len(opens)-1]
			n := len(dst) - at - 1
			width := 1
			for v := n; v >= 10; v /= 10 {
				width++
			}

			// Make room for the prefix where the '[' was.
			end := len(dst)
			for i := 1; i < width; i++ {
				dst = append(dst, 0)
			}
			copy(dst[at+width:], dst[at+1:end])
			for i, v := at+width-1, n; i >= at; i-- {
				dst[i] = byte('0' + v%10)
				v /= 10
			}
		default:
			dst = append(dst, c)
		}
	}
	return dst
}
