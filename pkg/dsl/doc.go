/*
Package dsl provides a fluent builder for constructing rule tables in Go code.

It is an alternative to YAML files (see the schema package) when a table is
known at compile time, generated programmatically, or written inside a test.

Example usage:

	b := dsl.New()

	a, bb := domain.StateOf(0), domain.StateOf(1)
	b.When(domain.Zero, a).Write(domain.One).Right().Go(bb)
	b.When(domain.One, a).Write(domain.One).Left().Go(bb)
	b.When(domain.Zero, bb).Write(domain.One).Left().Go(a)
	b.When(domain.One, bb).Write(domain.One).Right().Halt()

	rules, err := b.Build()
	// ... pass rules to turing.New(...)
*/
package dsl
