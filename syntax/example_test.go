// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package syntax_test

import (
	"fmt"

	"mvdan.cc/braces/syntax"
)

func Example() {
	p := syntax.NewParser(syntax.Escape(true))
	pat, err := p.Parse(`{a,b}c{e,f{g,h}}`)
	if err != nil {
		return
	}
	fmt.Println(pat)
	fmt.Println(syntax.Count(pat), syntax.MaxLen(pat))
	// Output:
	// {a,b}c{e,f{g,h}}
	// 6 4
}

func ExampleParseError() {
	_, err := syntax.NewParser().Parse("a}b")
	fmt.Println(err)
	// Output:
	// unexpected } at position 1
}
