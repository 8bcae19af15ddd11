package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
)

// GraphOverlay contains dynamic machine data to visualize on the graph.
type GraphOverlay struct {
	VisitedStates []domain.State
	CurrentState  *domain.State
}

// GenerateMermaid produces a Mermaid flowchart of the state diagram.
// It applies semantic styling:
// - Initial state: ((Circle))
// - Halt: (((Double Circle)))
// - Default: [Rectangle]
// Each rule becomes an edge labelled "read/write,shift".
// It also applies overlay styles (Visited/Current) if provided.
func GenerateMermaid(rules *domain.RuleTable, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for _, state := range rules.States() {
		id := nodeID(state)
		opener, closer := "[", "]"
		switch {
		case state == domain.Initial:
			opener, closer = "((", "))"
		case state.IsHalt():
			opener, closer = "(((", ")))"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", id, opener, state, closer))
	}

	for _, e := range rules.Entries() {
		label := fmt.Sprintf("%s/%s,%s", e.Key.Symbol, e.Rule.Symbol, e.Rule.Shift)
		arrow := fmt.Sprintf("-- \"%s\" -->", label)
		if e.Key.State.IsHalt() {
			// unreachable rows kept by some generators
			arrow = fmt.Sprintf("-. \"%s\" .->", label)
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", nodeID(e.Key.State), arrow, nodeID(e.Rule.State)))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[domain.State]bool)
		for _, s := range overlay.VisitedStates {
			if seen[s] {
				continue
			}
			seen[s] = true
			sb.WriteString(fmt.Sprintf("    class %s visited;\n", nodeID(s)))
		}
		if overlay.CurrentState != nil {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", nodeID(*overlay.CurrentState)))
		}
	}

	return sb.String()
}

// nodeID keeps Mermaid identifiers stable regardless of how states print.
func nodeID(s domain.State) string {
	if s.IsHalt() {
		return "halt"
	}
	return fmt.Sprintf("s%d", s.Index())
}
