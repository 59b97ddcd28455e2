// Command neon-mcp exposes a Neon Dominance session as MCP tools over stdio.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/peterkuimelis/neondominance/internal/config"
	neonmcp "github.com/peterkuimelis/neondominance/internal/mcp"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	decks := flag.String("decks", "", "path to decks YAML file (overrides the config)")
	verbose := flag.Bool("verbose", false, "debug logging to stderr")
	flag.Parse()

	// stdout carries the protocol; the production config logs to stderr.
	zc := zap.NewProductionConfig()
	if *verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := zc.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}
	if *decks != "" {
		cfg.DecksFile = *decks
	}

	s := server.NewMCPServer("neon-dominance", "1.0.0")
	neonmcp.RegisterTools(s, neonmcp.NewTools(cfg, logger))

	if err := server.ServeStdio(s); err != nil {
		logger.Error("serve stdio", zap.Error(err))
		os.Exit(1)
	}
}
