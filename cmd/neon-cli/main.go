// Command neon-cli plays Neon Dominance in the terminal, either locally or
// over TCP, and replays recorded transcripts.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/peterkuimelis/neondominance/internal/config"
)

var (
	logger     *zap.Logger
	cfg        config.Config
	configPath string
	verbose    bool
	seed       int64
	runnerDeck int
	corpDeck   int
)

var rootCmd = &cobra.Command{
	Use:   "neon-cli",
	Short: "Neon Dominance: a Runner-vs-Corporation card game",
	Long: `Neon Dominance pits a human Runner against the Corporation AI.

Play locally with "play", host a TCP server with "host" and connect to one
with "join". Recorded transcripts can be printed with "replay".`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zc := zap.NewProductionConfig()
		zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		if flags.Changed("seed") {
			cfg.Seed = seed
		}
		if flags.Changed("runner-deck") {
			cfg.RunnerDeck = runnerDeck
		}
		if flags.Changed("corp-deck") {
			cfg.CorpDeck = corpDeck
		}
		return cfg.Validate()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "YAML config file")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging to stderr")
	pf.Int64Var(&seed, "seed", 1, "random seed")
	pf.IntVar(&runnerDeck, "runner-deck", 1, "runner deck number (1-indexed from the decks file)")
	pf.IntVar(&corpDeck, "corp-deck", 1, "corporation deck number (1-indexed from the decks file)")

	rootCmd.AddCommand(playCmd, hostCmd, joinCmd, replayCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
