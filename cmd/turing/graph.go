package main

import (
	"fmt"

	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/internal/presentation/graph"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [rules-file]",
	Short: "Export the state diagram",
	Long: `Outputs a Mermaid diagram (graph LR) of the rule table.

With --session the stored machine is drawn instead, highlighting its current state.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID, _ := cmd.Flags().GetString("session")
		if sessionID == "" {
			rules, err := cli.LoadRules(rulesOptions(cmd, args))
			if err != nil {
				return err
			}
			fmt.Print(graph.GenerateMermaid(rules.Table, nil))
			return nil
		}

		logger, closeLog, err := newLogger(cmd)
		if err != nil {
			return err
		}
		defer closeLog()

		mgr, err := cli.NewManager(cmd.Context(), storeOptions(cmd), logger)
		if err != nil {
			return err
		}
		snap, err := mgr.Load(cmd.Context(), sessionID)
		if err != nil {
			return fmt.Errorf("error loading session '%s': %w", sessionID, err)
		}
		rules, err := domain.NewRuleTable(snap.Rules...)
		if err != nil {
			return err
		}
		current := snap.State
		fmt.Print(graph.GenerateMermaid(rules, &graph.GraphOverlay{CurrentState: &current}))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)

	addRulesFlags(graphCmd)
	graphCmd.Flags().StringP("session", "s", "", "Draw the machine stored under this session ID")
}
