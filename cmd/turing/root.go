package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/turing/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "turing",
	Short: "Turing is a deterministic single-tape Turing machine simulator",
	Long: `Turing runs binary Turing machines from a rule table file or a random table,
printing the rules, the outcome and the full tape history.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// The command context is cancelled on SIGINT or SIGTERM.
func Execute() {
	ctx := cli.NewSignalContext(context.Background())
	defer ctx.Cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		ctx.Cancel()
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-file", "", "Also append JSON logs to this file")
	rootCmd.PersistentFlags().String("store", "memory", "Session store: memory, file or redis")
	rootCmd.PersistentFlags().String("dir", ".turing/sessions", "Session directory for the file store")
	rootCmd.PersistentFlags().String("redis-addr", "localhost:6379", "Redis address for the redis store")
	rootCmd.PersistentFlags().Duration("session-ttl", 0, "Expire redis sessions after this long (0 keeps them)")
	rootCmd.PersistentFlags().String("encryption-key", "", "Encrypt stored sessions with this 32-byte key, hex or base64 (env TURING_ENCRYPTION_KEY)")
}

// newLogger builds the logger from the persistent flags. Callers must invoke the close func.
func newLogger(cmd *cobra.Command) (*slog.Logger, func() error, error) {
	level, _ := cmd.Flags().GetString("log-level")
	file, _ := cmd.Flags().GetString("log-file")
	return cli.CreateLogger(cli.LogOptions{Level: level, File: file})
}

func storeOptions(cmd *cobra.Command) cli.StoreOptions {
	kind, _ := cmd.Flags().GetString("store")
	dir, _ := cmd.Flags().GetString("dir")
	addr, _ := cmd.Flags().GetString("redis-addr")
	ttl, _ := cmd.Flags().GetDuration("session-ttl")
	key, _ := cmd.Flags().GetString("encryption-key")
	if key == "" {
		key = os.Getenv("TURING_ENCRYPTION_KEY")
	}
	return cli.StoreOptions{Kind: kind, Dir: dir, RedisAddr: addr, TTL: ttl, EncryptionKey: key}
}

// addRulesFlags registers the flags accepted by rulesOptions.
func addRulesFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("file", "f", "", "Rule table document (YAML or JSON)")
	cmd.Flags().IntP("random", "r", 0, fmt.Sprintf("Generate a random table over N states, Halt included (default %d)", cli.DefaultStates))
	cmd.Flags().Uint64("seed", 0, "Seed for the random table")
}

func rulesOptions(cmd *cobra.Command, args []string) cli.RulesOptions {
	path, _ := cmd.Flags().GetString("file")
	if path == "" && len(args) > 0 {
		path = args[0]
	}
	states, _ := cmd.Flags().GetInt("random")
	seed, _ := cmd.Flags().GetUint64("seed")
	return cli.RulesOptions{
		Path:    path,
		States:  states,
		Seed:    seed,
		HasSeed: cmd.Flags().Changed("seed"),
	}
}
