package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/peterkuimelis/neondominance/internal/game"
	"github.com/peterkuimelis/neondominance/internal/log"
	neonnet "github.com/peterkuimelis/neondominance/internal/net"
)

var transcriptPath string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a local game as the Runner",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("transcript") {
			cfg.Transcript = transcriptPath
		}

		var events log.EventLogger = log.NewTextLogger(cmd.OutOrStdout())
		if cfg.Transcript != "" {
			tl, err := log.NewTranscriptLogger(cfg.Transcript)
			if err != nil {
				return err
			}
			defer func() {
				if err := tl.Close(); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "transcript: %v\n", err)
				}
			}()
			events = log.Tee{events, tl}
		}

		sc, err := cfg.SessionConfig(events)
		if err != nil {
			return err
		}
		sc.Zap = logger
		sess, err := game.NewSession(sc)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return neonnet.Play(ctx, sess, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	playCmd.Flags().StringVarP(&transcriptPath, "transcript", "t", "", "record events to a zstd JSONL transcript")
}
