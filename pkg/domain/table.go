package domain

import (
	"encoding/json"
	"fmt"
	"sort"
)

// RuleTable is an ordered, immutable mapping from RuleKey to Rule.
// Insertion order is kept for presentation; lookups go through an index.
type RuleTable struct {
	entries []Entry
	index   map[RuleKey]int
}

// NewRuleTable builds a table from the given entries.
// It returns ErrDuplicateRule if two entries share a key.
func NewRuleTable(entries ...Entry) (*RuleTable, error) {
	t := &RuleTable{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[RuleKey]int, len(entries)),
	}
	for _, e := range entries {
		if _, exists := t.index[e.Key]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRule, e.Key)
		}
		t.index[e.Key] = len(t.entries)
		t.entries = append(t.entries, e)
	}
	return t, nil
}

// MustRuleTable is like NewRuleTable but panics on error. Intended for static tables and tests.
func MustRuleTable(entries ...Entry) *RuleTable {
	t, err := NewRuleTable(entries...)
	if err != nil {
		panic(err)
	}
	return t
}

// Get returns the rule stored for key, if any. Unlike Find it does not treat Halt specially.
func (t *RuleTable) Get(key RuleKey) (Rule, bool) {
	i, ok := t.index[key]
	if !ok {
		return Rule{}, false
	}
	return t.entries[i].Rule, true
}

// Find performs the engine lookup. Halt is absorbing: a Halt key never matches,
// even if a table carries rows for it.
func (t *RuleTable) Find(key RuleKey) (Rule, LookupResult) {
	if key.State.IsHalt() {
		return Rule{}, LookupHalted
	}
	rule, ok := t.Get(key)
	if !ok {
		return Rule{}, LookupGap
	}
	return rule, LookupMatched
}

// Entries returns a copy of the table rows in insertion order.
func (t *RuleTable) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len is the number of rules.
func (t *RuleTable) Len() int {
	return len(t.entries)
}

// StateCount is the state count implied by the table size (rules / alphabet size).
func (t *RuleTable) StateCount() int {
	return len(t.entries) / len(Symbols())
}

// States returns every state mentioned by the table, numbered states ascending and Halt last.
func (t *RuleTable) States() []State {
	seen := make(map[State]bool)
	for _, e := range t.entries {
		seen[e.Key.State] = true
		seen[e.Rule.State] = true
	}
	states := make([]State, 0, len(seen))
	for s := range seen {
		if !s.IsHalt() {
			states = append(states, s)
		}
	}
	sort.Slice(states, func(i, j int) bool { return states[i] < states[j] })
	if seen[Halt] {
		states = append(states, Halt)
	}
	return states
}

// Missing lists the (symbol, non-halting state) keys that have no rule.
// A table with no missing keys never gets stuck on a gap.
func (t *RuleTable) Missing() []RuleKey {
	var missing []RuleKey
	for _, s := range t.States() {
		if s.IsHalt() {
			continue
		}
		for _, sym := range Symbols() {
			key := NewRuleKey(sym, s)
			if _, ok := t.index[key]; !ok {
				missing = append(missing, key)
			}
		}
	}
	return missing
}

// MarshalJSON encodes the table as its list of entries.
func (t *RuleTable) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.entries)
}

// UnmarshalJSON decodes a list of entries, rejecting duplicate keys.
func (t *RuleTable) UnmarshalJSON(data []byte) error {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	built, err := NewRuleTable(entries...)
	if err != nil {
		return err
	}
	*t = *built
	return nil
}
