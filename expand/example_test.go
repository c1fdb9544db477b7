// Copyright (c) 2019, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package expand_test

import (
	"bytes"
	"fmt"

	"mvdan.cc/braces/expand"
)

func ExampleBraces() {
	it, err := expand.Braces("a{,b,,c,}d", true)
	if err != nil {
		return
	}
	fmt.Println(it.Count(), "expansions, up to", it.MaxLen(), "bytes")

	// Reuse a single buffer to avoid allocating per expansion.
	var buf bytes.Buffer
	buf.Grow(it.MaxLen())
	for it.NextInto(&buf) {
		fmt.Println(buf.String())
	}
	// Output:
	// 5 expansions, up to 3 bytes
	// ad
	// abd
	// ad
	// acd
	// ad
}

func ExampleAll() {
	words, err := expand.All("{a,b}c{e,f{g,h}}", true)
	if err != nil {
		return
	}
	fmt.Println(words)
	// Output:
	// [ace acfg acfh bce bcfg bcfh]
}
