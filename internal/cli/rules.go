package cli

import (
	"errors"
	"fmt"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/generator"
	"github.com/aretw0/turing/pkg/schema"
)

// DefaultStates is the random table size when no rules file is given: two states plus Halt.
const DefaultStates = 3

// RulesOptions selects where a rule table comes from.
type RulesOptions struct {
	// Path is a YAML or JSON rules document. Mutually exclusive with States.
	Path string
	// States is the random table size, Halt included.
	States int
	// Seed makes a random table reproducible when HasSeed is set.
	Seed    uint64
	HasSeed bool
}

// Rules is a loaded table and a label for it.
type Rules struct {
	Table *domain.RuleTable
	Name  string
}

// LoadRules reads the rules document at opts.Path or generates a random table.
func LoadRules(opts RulesOptions) (*Rules, error) {
	if opts.Path != "" && opts.States != 0 {
		return nil, errors.New("--file and --random cannot be used together")
	}

	if opts.Path != "" {
		doc, err := schema.LoadFile(opts.Path)
		if err != nil {
			return nil, err
		}
		table, err := doc.Table()
		if err != nil {
			return nil, fmt.Errorf("invalid rules in %s: %w", opts.Path, err)
		}
		name := doc.Name
		if name == "" {
			name = opts.Path
		}
		return &Rules{Table: table, Name: name}, nil
	}

	n := opts.States
	if n == 0 {
		n = DefaultStates
	}
	var genOpts []generator.Option
	if opts.HasSeed {
		genOpts = append(genOpts, generator.WithSeed(opts.Seed))
	}
	gen := generator.New(genOpts...)
	table, err := gen.Rules(n)
	if err != nil {
		return nil, err
	}
	return &Rules{Table: table, Name: fmt.Sprintf("random-%d (seed %d)", n, gen.Seed())}, nil
}
