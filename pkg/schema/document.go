package schema

import (
	"fmt"
	"os"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Document is the on-disk form of a rule table.
type Document struct {
	Name        string     `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Rules       []RuleSpec `json:"rules" yaml:"rules" mapstructure:"rules"`
}

// RuleSpec is one row of a Document.
// Either Do (compact "1RH" form) or the Write/Move/Next triple must be set.
type RuleSpec struct {
	Read  string `json:"read" yaml:"read" mapstructure:"read"`
	State string `json:"state" yaml:"state" mapstructure:"state"`
	Write string `json:"write,omitempty" yaml:"write,omitempty" mapstructure:"write"`
	Move  string `json:"move,omitempty" yaml:"move,omitempty" mapstructure:"move"`
	Next  string `json:"next,omitempty" yaml:"next,omitempty" mapstructure:"next"`
	Do    string `json:"do,omitempty" yaml:"do,omitempty" mapstructure:"do"`
}

// LoadFile reads and parses a document from disk.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule file %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rule file %s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes a YAML or JSON document. Unknown keys are rejected.
func Parse(data []byte) (*Document, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	if raw == nil {
		return nil, &ValidationError{Key: "rules", Reason: "required"}
	}

	var doc Document
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &doc,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return &doc, nil
}

// Table compiles the document into a RuleTable.
func (d *Document) Table() (*domain.RuleTable, error) {
	return Compile(d.Rules)
}

// Compile converts rule specs into a RuleTable, reporting every malformed field.
func Compile(specs []RuleSpec) (*domain.RuleTable, error) {
	var errs []error
	entries := make([]domain.Entry, 0, len(specs))
	seen := make(map[domain.RuleKey]int, len(specs))

	for i, spec := range specs {
		entry, fieldErrs := compileRule(i, spec)
		if len(fieldErrs) > 0 {
			errs = append(errs, fieldErrs...)
			continue
		}
		if prev, dup := seen[entry.Key]; dup {
			errs = append(errs, &ValidationError{
				Key:    fmt.Sprintf("rules[%d]", i),
				Reason: fmt.Sprintf("%s: already defined by rules[%d]", domain.ErrDuplicateRule, prev),
				Value:  entry.Key.String(),
				Err:    domain.ErrDuplicateRule,
			})
			continue
		}
		seen[entry.Key] = i
		entries = append(entries, entry)
	}
	if err := aggregate(errs); err != nil {
		return nil, err
	}
	return domain.NewRuleTable(entries...)
}

func compileRule(i int, spec RuleSpec) (domain.Entry, []error) {
	var errs []error
	field := func(name string) string { return fmt.Sprintf("rules[%d].%s", i, name) }
	fail := func(name, value string, err error) {
		errs = append(errs, &ValidationError{Key: field(name), Value: value, Err: err})
	}

	read, err := domain.ParseSymbol(spec.Read)
	if err != nil {
		fail("read", spec.Read, err)
	}
	state, err := domain.ParseState(spec.State)
	if err != nil {
		fail("state", spec.State, err)
	}

	var rule domain.Rule
	if spec.Do != "" {
		if spec.Write != "" || spec.Move != "" || spec.Next != "" {
			errs = append(errs, &ValidationError{Key: field("do"), Reason: "cannot be combined with write, move or next", Err: domain.ErrInvalidValue})
		} else if rule, err = ParseAction(spec.Do); err != nil {
			fail("do", spec.Do, err)
		}
	} else {
		if rule.Symbol, err = domain.ParseSymbol(spec.Write); err != nil {
			fail("write", spec.Write, err)
		}
		if rule.Shift, err = domain.ParseShift(spec.Move); err != nil {
			fail("move", spec.Move, err)
		}
		if rule.State, err = domain.ParseState(spec.Next); err != nil {
			fail("next", spec.Next, err)
		}
	}

	return domain.Entry{Key: domain.NewRuleKey(read, state), Rule: rule}, errs
}

// ParseAction parses the compact rule form produced by domain.Rule.String, e.g. "1RH" or "0L12".
func ParseAction(s string) (domain.Rule, error) {
	if len(s) < 3 {
		return domain.Rule{}, fmt.Errorf("%w: action %q", domain.ErrInvalidValue, s)
	}
	sym, err := domain.ParseSymbol(s[:1])
	if err != nil {
		return domain.Rule{}, err
	}
	shift, err := domain.ParseShift(s[1:2])
	if err != nil {
		return domain.Rule{}, err
	}
	state, err := domain.ParseState(s[2:])
	if err != nil {
		return domain.Rule{}, err
	}
	return domain.NewRule(sym, shift, state), nil
}

// FromTable converts a RuleTable back into its document form, using the compact action syntax.
func FromTable(name string, table *domain.RuleTable) *Document {
	doc := &Document{Name: name, Rules: make([]RuleSpec, 0, table.Len())}
	for _, e := range table.Entries() {
		doc.Rules = append(doc.Rules, RuleSpec{
			Read:  e.Key.Symbol.String(),
			State: e.Key.State.String(),
			Do:    e.Rule.String(),
		})
	}
	return doc
}

// Encode renders the document as YAML.
func (d *Document) Encode() ([]byte, error) {
	out, err := yaml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return out, nil
}
