package main

import (
	"fmt"
	"os"

	"github.com/aretw0/turing/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [rules-file]",
	Short: "Run a machine for a bounded number of steps",
	Long: `Runs a machine from a rule table file, or from a random table when no file is given,
then prints the rule table, how the run ended and the tape history.

With --session the machine is persisted in the configured store and the next run
with the same session resumes where this one stopped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, closeLog, err := newLogger(cmd)
		if err != nil {
			return err
		}
		defer closeLog()

		steps, _ := cmd.Flags().GetInt("steps")
		headless, _ := cmd.Flags().GetBool("headless")
		markdown, _ := cmd.Flags().GetBool("markdown")
		noHistory, _ := cmd.Flags().GetBool("no-history")
		sessionID, _ := cmd.Flags().GetString("session")
		fresh, _ := cmd.Flags().GetBool("fresh")

		if steps < 0 {
			return fmt.Errorf("--steps must not be negative")
		}

		opts := cli.RunOptions{
			Rules:     rulesOptions(cmd, args),
			Steps:     steps,
			Headless:  headless,
			Markdown:  markdown,
			NoHistory: noHistory,
			SessionID: sessionID,
			Fresh:     fresh,
			Store:     storeOptions(cmd),
		}
		return cli.Execute(cmd.Context(), opts, os.Stdout, logger)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	addRulesFlags(runCmd)
	runCmd.Flags().IntP("steps", "n", cli.DefaultSteps, "Maximum number of steps to run")
	runCmd.Flags().Bool("headless", false, "Plain output only: no banner, header or colors")
	runCmd.Flags().Bool("markdown", false, "Write a Markdown report (rendered on a terminal)")
	runCmd.Flags().Bool("no-history", false, "Do not keep or print the tape history")
	runCmd.Flags().StringP("session", "s", "", "Persist the machine under this session ID")
	runCmd.Flags().Bool("fresh", false, "Discard the stored session before running")

	rootCmd.RunE = runCmd.RunE
	rootCmd.Args = runCmd.Args
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
}
