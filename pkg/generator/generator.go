// Package generator produces random rule tables.
package generator

import (
	"fmt"
	"math/rand/v2"

	"github.com/aretw0/turing/pkg/domain"
)

// MaxStates bounds the size of a generated table.
const MaxStates = 4096

// Generator draws random symbols, shifts, states and whole rule tables.
// It is not safe for concurrent use.
type Generator struct {
	rng  *rand.Rand
	seed uint64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed makes the generator reproducible.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// New creates a generator. Without WithSeed the seed is random.
func New(opts ...Option) *Generator {
	g := &Generator{seed: rand.Uint64()}
	for _, opt := range opts {
		opt(g)
	}
	g.rng = rand.New(rand.NewPCG(g.seed, g.seed^0x9e3779b97f4a7c15))
	return g
}

// Seed returns the seed in use, so a random run can be reproduced.
func (g *Generator) Seed() uint64 {
	return g.seed
}

// Symbol draws a uniformly random symbol.
func (g *Generator) Symbol() domain.Symbol {
	if g.rng.IntN(2) == 0 {
		return domain.Zero
	}
	return domain.One
}

// Shift draws a uniformly random direction.
func (g *Generator) Shift() domain.Shift {
	if g.rng.IntN(2) == 0 {
		return domain.Right
	}
	return domain.Left
}

// State draws uniformly from n states where the last one (n-1) is Halt.
func (g *Generator) State(n int) domain.State {
	k := g.rng.IntN(n)
	if k == n-1 {
		return domain.Halt
	}
	return domain.StateOf(k)
}

// Rules builds a table over n states, Halt included (so n-1 numbered states).
// Every (symbol, state) pair gets a rule, Halt rows too; the engine never
// consults them because Halt is absorbing. The table therefore has 2*n rows.
func (g *Generator) Rules(n int) (*domain.RuleTable, error) {
	if n < 2 {
		return nil, fmt.Errorf("need at least 2 states (one numbered state plus Halt), got %d", n)
	}
	if n > MaxStates {
		return nil, fmt.Errorf("%d states exceeds the limit of %d", n, MaxStates)
	}

	states := make([]domain.State, n)
	for i := 0; i < n-1; i++ {
		states[i] = domain.StateOf(i)
	}
	states[n-1] = domain.Halt

	entries := make([]domain.Entry, 0, n*len(domain.Symbols()))
	for _, sym := range domain.Symbols() {
		for _, s := range states {
			entries = append(entries, domain.Entry{
				Key:  domain.NewRuleKey(sym, s),
				Rule: domain.NewRule(g.Symbol(), g.Shift(), g.State(n)),
			})
		}
	}
	return domain.NewRuleTable(entries...)
}
