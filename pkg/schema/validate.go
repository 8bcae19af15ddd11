package schema

import (
	"fmt"

	"github.com/aretw0/turing/pkg/domain"
)

// Validate reports the keys a machine could get stuck on: every (symbol,
// state) pair for a non-halting state that appears in the table but has no rule.
// The engine itself never requires a total table, so this check is opt-in.
func Validate(table *domain.RuleTable) error {
	var errs []error
	for _, key := range table.Missing() {
		errs = append(errs, &ValidationError{
			Key:    key.String(),
			Reason: fmt.Sprintf("%s: no rule for symbol %s in state %s", domain.ErrTableGap, key.Symbol, key.State),
			Err:    domain.ErrTableGap,
		})
	}
	if table.Len() == 0 {
		errs = append(errs, &ValidationError{Key: "rules", Reason: "table is empty"})
	}
	return aggregate(errs)
}
