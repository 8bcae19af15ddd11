package main

import (
	"fmt"
	"os"

	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/internal/presentation/graph"
	"github.com/aretw0/turing/internal/presentation/table"
	"github.com/aretw0/turing/pkg/schema"
	"github.com/spf13/cobra"
)

// rulesCmd represents the rules command
var rulesCmd = &cobra.Command{
	Use:   "rules [rules-file]",
	Short: "Print a rule table",
	Long: `Loads a rule table (or generates a random one) and prints it without running it.

Formats:
- text (default): the grid used by run, states as columns and symbols as rows.
- markdown: the same grid as a Markdown table.
- yaml: a rules document that run --file accepts, handy to save a random table.
- mermaid: the state diagram.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rules, err := cli.LoadRules(rulesOptions(cmd, args))
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		switch format {
		case "text":
			fmt.Print(table.Render(rules.Table))
		case "markdown", "md":
			fmt.Print(table.Markdown(rules.Table))
		case "yaml":
			data, err := schema.FromTable(rules.Name, rules.Table).Encode()
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(data)
			return err
		case "mermaid":
			fmt.Print(graph.GenerateMermaid(rules.Table, nil))
		default:
			return fmt.Errorf("unknown format %q (supported: text, markdown, yaml, mermaid)", format)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)

	addRulesFlags(rulesCmd)
	rulesCmd.Flags().String("format", "text", "Output format: text, markdown, yaml or mermaid")
}
