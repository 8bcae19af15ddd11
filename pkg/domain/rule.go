package domain

import "fmt"

// RuleKey is the lookup key of the transition table: the symbol under the head and the current state.
type RuleKey struct {
	Symbol Symbol `json:"symbol" yaml:"symbol"`
	State  State  `json:"state" yaml:"state"`
}

// NewRuleKey builds a RuleKey.
func NewRuleKey(symbol Symbol, state State) RuleKey {
	return RuleKey{Symbol: symbol, State: state}
}

func (k RuleKey) String() string {
	return k.Symbol.String() + k.State.String()
}

// Rule is the action taken when a key matches: write Symbol, move by Shift, enter State.
type Rule struct {
	Symbol Symbol `json:"symbol" yaml:"symbol"`
	Shift  Shift  `json:"shift" yaml:"shift"`
	State  State  `json:"state" yaml:"state"`
}

// NewRule builds a Rule.
func NewRule(symbol Symbol, shift Shift, state State) Rule {
	return Rule{Symbol: symbol, Shift: shift, State: state}
}

// String renders the rule in compact form, e.g. "1RH".
func (r Rule) String() string {
	return r.Symbol.String() + r.Shift.String() + r.State.String()
}

// Entry is one row of a RuleTable.
type Entry struct {
	Key  RuleKey `json:"key" yaml:"key"`
	Rule Rule    `json:"rule" yaml:"rule"`
}

func (e Entry) String() string {
	return fmt.Sprintf("%s -> %s", e.Key, e.Rule)
}

// LookupResult classifies the outcome of a rule lookup.
type LookupResult uint8

const (
	// LookupMatched means exactly one rule matched the key.
	LookupMatched LookupResult = iota
	// LookupHalted means the key's state is Halt, which never has an outgoing rule.
	LookupHalted
	// LookupGap means the key's state is non-halting but the table has no rule for it.
	LookupGap
)

func (r LookupResult) String() string {
	switch r {
	case LookupMatched:
		return "matched"
	case LookupHalted:
		return "halted"
	case LookupGap:
		return "table gap"
	default:
		return fmt.Sprintf("LookupResult(%d)", uint8(r))
	}
}
