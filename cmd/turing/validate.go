package main

import (
	"errors"
	"fmt"

	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/pkg/schema"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <rules-file>",
	Short: "Check a rule table for gaps",
	Long: `Loads a rules document and reports every (symbol, state) pair, for a state the
table uses, that has no rule. A machine on such a table can get stuck.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rules, err := cli.LoadRules(cli.RulesOptions{Path: args[0]})
		if err != nil {
			return err
		}

		if err := schema.Validate(rules.Table); err != nil {
			for _, e := range schema.ValidationErrors(err) {
				fmt.Printf("- %v\n", e)
			}
			return errors.New("validation failed")
		}
		fmt.Printf("%s is total (%d rules, %d states) ✅\n", rules.Name, rules.Table.Len(), rules.Table.StateCount())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
