package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	neonnet "github.com/peterkuimelis/neondominance/internal/net"
)

var (
	hostAddr string
	joinAddr string
)

var hostCmd = &cobra.Command{
	Use:   "host",
	Short: "Serve games over TCP, one session per connection",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		fmt.Fprintf(cmd.OutOrStdout(), "Hosting Neon Dominance on %s (Ctrl-C to stop)\n", hostAddr)
		srv := &neonnet.Server{Addr: hostAddr, Config: cfg, Log: logger}
		return srv.Run(ctx)
	},
}

var joinCmd = &cobra.Command{
	Use:   "join",
	Short: "Connect to a host and play as the Runner",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		join := neonnet.ClientMessage{}
		flags := cmd.Flags()
		if flags.Changed("seed") {
			join.Seed = seed
		}
		if flags.Changed("runner-deck") {
			join.RunnerDeck = runnerDeck
		}
		if flags.Changed("corp-deck") {
			join.CorpDeck = corpDeck
		}
		return neonnet.Connect(ctx, joinAddr, join, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	hostCmd.Flags().StringVar(&hostAddr, "addr", ":7777", "TCP address to listen on")
	joinCmd.Flags().StringVar(&joinAddr, "addr", "localhost:7777", "server address to connect to")
}
