// Command neon-web serves the card and deck catalogues and WebSocket game
// sessions over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/peterkuimelis/neondominance/internal/config"
	"github.com/peterkuimelis/neondominance/internal/web"
)

func main() {
	port := flag.Int("port", 8080, "HTTP port to listen on")
	configPath := flag.String("config", "", "YAML config file")
	decksFile := flag.String("decks", "", "path to decks YAML file (overrides the config)")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}
	if *decksFile != "" {
		cfg.DecksFile = *decksFile
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := fmt.Sprintf(":%d", *port)
	if err := web.NewServer(cfg, logger).ListenAndServe(ctx, addr); err != nil {
		logger.Error("web server", zap.Error(err))
		os.Exit(1)
	}
}
