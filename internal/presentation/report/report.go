// Package report renders a finished run as a Markdown document.
package report

import (
	"fmt"
	"strings"

	"github.com/aretw0/turing/internal/presentation/history"
	"github.com/aretw0/turing/internal/presentation/table"
	"github.com/aretw0/turing/pkg/domain"
)

// Report summarizes a run as Markdown, suitable for NewRenderer.
type Report struct {
	Name     string
	Rules    *domain.RuleTable
	Result   domain.StepResult
	State    domain.State
	Position int
	History  []domain.Frame
}

// Markdown renders the report.
func (r Report) Markdown() string {
	var sb strings.Builder

	title := "Turing Machine"
	if r.Name != "" {
		title = r.Name
	}
	sb.WriteString(fmt.Sprintf("# %s\n\n", title))

	sb.WriteString("## Rules\n\n")
	sb.WriteString(table.Markdown(r.Rules))
	sb.WriteString("\n## Result\n\n")
	sb.WriteString(fmt.Sprintf("- **Outcome:** %s\n", r.Result.Outcome))
	sb.WriteString(fmt.Sprintf("- **Steps:** %d of %d\n", r.Result.Steps, r.Result.Requested))
	sb.WriteString(fmt.Sprintf("- **State:** `%s`\n", r.State))
	sb.WriteString(fmt.Sprintf("- **Head:** %d\n", r.Position))

	if len(r.History) > 0 {
		sb.WriteString("\n## Tape History\n\n```\n")
		sb.WriteString(history.Render(r.History))
		sb.WriteString("```\n")
	}
	return sb.String()
}
