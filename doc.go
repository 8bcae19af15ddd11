/*
Package turing simulates deterministic single-tape Turing machines.

A machine is a rule table mapping (symbol under the head, current state) to
(symbol to write, head shift, next state), applied against a two-way infinite
binary tape until the Halt state is reached or a step budget runs out. The
tape keeps a frame of its contents after every write so a run can be replayed.

# Usage

Build a rule table (by hand, with the dsl package, from a YAML file with the
schema package, or at random with the generator package) and run it:

	package main

	import (
		"fmt"
		"log"

		"github.com/aretw0/turing"
		"github.com/aretw0/turing/pkg/domain"
		"github.com/aretw0/turing/pkg/dsl"
	)

	func main() {
		b := dsl.New()
		b.When(domain.Zero, domain.StateOf(0)).Write(domain.One).Right().Go(domain.StateOf(1))
		b.When(domain.One, domain.StateOf(0)).Write(domain.One).Left().Go(domain.StateOf(1))
		b.When(domain.Zero, domain.StateOf(1)).Write(domain.One).Left().Go(domain.StateOf(0))
		b.When(domain.One, domain.StateOf(1)).Write(domain.One).Right().Halt()

		rules, err := b.Build()
		if err != nil {
			log.Fatal(err)
		}

		m, err := turing.New(rules)
		if err != nil {
			log.Fatal(err)
		}

		res := m.Step(100)
		fmt.Println(res) // stopped early after 6 of 100 steps (halted)
	}

# Failure Signaling

Step never runs unbounded: it stops at the first transition without a rule.
The result tells "ran to completion" apart from "stopped early", and the
outcome further separates a normal halt (OutcomeHalted) from a gap in the
table (OutcomeStuck).
*/
package turing
