package turing_test

import (
	"fmt"
	"log"
	"os"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/dsl"
)

func busyBeaver() *domain.RuleTable {
	a, b := domain.StateOf(0), domain.StateOf(1)
	bld := dsl.New()
	bld.When(domain.Zero, a).Write(domain.One).Right().Go(b)
	bld.When(domain.One, a).Write(domain.One).Left().Go(b)
	bld.When(domain.Zero, b).Write(domain.One).Left().Go(a)
	bld.When(domain.One, b).Write(domain.One).Right().Halt()
	return bld.MustBuild()
}

// ExampleNew runs the two-state busy beaver to completion.
func ExampleNew() {
	m, err := turing.New(busyBeaver())
	if err != nil {
		log.Fatal(err)
	}

	res := m.Step(100)
	fmt.Println(res)
	fmt.Println(m.Halted(), m.Position())

	for p := -3; p <= 2; p++ {
		fmt.Print(m.Get(p))
	}
	fmt.Println()
	// Output:
	// stopped early after 6 of 100 steps (halted)
	// true 0
	// 011110
}

// ExampleRunner prints the rule table and the outcome of a run.
func ExampleRunner() {
	m, err := turing.New(busyBeaver(), turing.WithName("bb2"))
	if err != nil {
		log.Fatal(err)
	}

	r := turing.NewRunner(os.Stdout)
	r.NoHistory = true
	if _, err := r.Run(m, 100); err != nil {
		log.Fatal(err)
	}
	// Output:
	// --- bb2 (2 states) ---
	// #  a   b   H
	// 0 1Rb 1La
	// 1 1Lb 1RH
	//
	// stopped early after 6 of 100 steps (halted)
	// state: H  head: 0  steps: 6
}
