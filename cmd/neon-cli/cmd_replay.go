package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/peterkuimelis/neondominance/internal/log"
)

var replayCmd = &cobra.Command{
	Use:   "replay FILE",
	Short: "Print the events of a recorded transcript",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		events, err := log.ReadTranscriptFile(args[0])
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), log.FormatAll(events))
		return nil
	},
}
