package table_test

import (
	"strings"
	"testing"

	"github.com/aretw0/turing/internal/presentation/table"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func rules() *domain.RuleTable {
	a, b := domain.StateOf(0), domain.StateOf(1)
	return domain.MustRuleTable(
		domain.Entry{Key: domain.NewRuleKey(domain.Zero, a), Rule: domain.NewRule(domain.One, domain.Right, b)},
		domain.Entry{Key: domain.NewRuleKey(domain.One, a), Rule: domain.NewRule(domain.One, domain.Left, b)},
		domain.Entry{Key: domain.NewRuleKey(domain.Zero, b), Rule: domain.NewRule(domain.One, domain.Left, a)},
		domain.Entry{Key: domain.NewRuleKey(domain.One, b), Rule: domain.NewRule(domain.One, domain.Right, domain.Halt)},
	)
}

func TestRender(t *testing.T) {
	got := table.Render(rules())
	want := strings.Join([]string{
		"#  a   b   H",
		"0 1Rb 1La",
		"1 1Lb 1RH",
		"",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestRender_MissingKeyIsBlank(t *testing.T) {
	partial := domain.MustRuleTable(
		domain.Entry{Key: domain.NewRuleKey(domain.One, domain.StateOf(0)), Rule: domain.NewRule(domain.Zero, domain.Left, domain.Halt)},
	)
	got := table.Render(partial)
	lines := strings.Split(got, "\n")
	assert.Equal(t, "0", lines[1])
	assert.Equal(t, "1 0LH", lines[2])
}

func TestMarkdown(t *testing.T) {
	got := table.Markdown(rules())
	assert.Contains(t, got, "| # | a | b | H |")
	assert.Contains(t, got, "|---|---|---|---|")
	assert.Contains(t, got, "| **1** | `1Lb` | `1RH` |   |")
}
