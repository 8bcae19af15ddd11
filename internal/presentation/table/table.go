package table

import (
	"fmt"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
)

// Render produces the rule grid: one column per state, one row per symbol.
// The corner cell is "#"; keys without a rule render as blanks.
//
//	#  a   b   H
//	0 1Rb 1La
//	1 1Lb 1RH
func Render(rules *domain.RuleTable) string {
	states := rules.States()
	symbols := domain.Symbols()

	width := 3
	for _, s := range states {
		width = max(width, len(s.String()))
	}
	for _, e := range rules.Entries() {
		width = max(width, len(e.Rule.String()))
	}

	var sb strings.Builder
	sb.WriteString("#")
	for _, s := range states {
		sb.WriteString(" " + center(s.String(), width))
	}
	sb.WriteString("\n")

	for _, sym := range symbols {
		sb.WriteString(sym.String())
		for _, s := range states {
			cell := ""
			if rule, ok := rules.Get(domain.NewRuleKey(sym, s)); ok {
				cell = rule.String()
			}
			sb.WriteString(fmt.Sprintf(" %-*s", width, cell))
		}
		sb.WriteString("\n")
	}

	return trimLines(sb.String())
}

// Markdown renders the same grid as a Markdown table, for rich terminal output.
func Markdown(rules *domain.RuleTable) string {
	states := rules.States()

	var sb strings.Builder
	sb.WriteString("| # |")
	for _, s := range states {
		sb.WriteString(fmt.Sprintf(" %s |", s))
	}
	sb.WriteString("\n|---|")
	for range states {
		sb.WriteString("---|")
	}
	sb.WriteString("\n")

	for _, sym := range domain.Symbols() {
		sb.WriteString(fmt.Sprintf("| **%s** |", sym))
		for _, s := range states {
			cell := " "
			if rule, ok := rules.Get(domain.NewRuleKey(sym, s)); ok {
				cell = "`" + rule.String() + "`"
			}
			sb.WriteString(fmt.Sprintf(" %s |", cell))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func center(s string, width int) string {
	pad := width - len(s)
	if pad <= 0 {
		return s
	}
	left := (pad + 1) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}

func trimLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return strings.Join(lines, "\n")
}
