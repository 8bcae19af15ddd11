package report

import (
	"testing"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestReport_Markdown(t *testing.T) {
	rules := domain.MustRuleTable(
		domain.Entry{Key: domain.NewRuleKey(domain.Zero, domain.Initial), Rule: domain.NewRule(domain.One, domain.Right, domain.Halt)},
	)
	r := Report{
		Name:     "one-step",
		Rules:    rules,
		Result:   domain.StepResult{Requested: 5, Steps: 1, Outcome: domain.OutcomeHalted},
		State:    domain.Halt,
		Position: 1,
		History: []domain.Frame{
			{Cells: []domain.Symbol{domain.Zero}},
			{Cells: []domain.Symbol{domain.One}},
		},
	}

	md := r.Markdown()
	assert.Contains(t, md, "# one-step")
	assert.Contains(t, md, "| **0** | `1RH` |")
	assert.Contains(t, md, "- **Outcome:** halted")
	assert.Contains(t, md, "- **Steps:** 1 of 5")
	assert.Contains(t, md, "tape_1: 1  origin: 0")
}
