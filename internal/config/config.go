// Package config loads session settings from a YAML file and NEON_*
// environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/peterkuimelis/neondominance/internal/game"
	"github.com/peterkuimelis/neondominance/internal/log"
)

// Config is everything needed to start a session.
type Config struct {
	Seed       int64      `yaml:"seed" env:"NEON_SEED"`
	DecksFile  string     `yaml:"decks_file" env:"NEON_DECKS_FILE"`
	RunnerDeck int        `yaml:"runner_deck" env:"NEON_RUNNER_DECK"` // 1-indexed within the runner decks
	CorpDeck   int        `yaml:"corp_deck" env:"NEON_CORP_DECK"`
	Transcript string     `yaml:"transcript" env:"NEON_TRANSCRIPT"` // optional zstd JSONL event transcript
	Rules      game.Rules `yaml:"rules"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Seed:       1,
		DecksFile:  "decks.yaml",
		RunnerDeck: 1,
		CorpDeck:   1,
		Rules:      game.DefaultRules(),
	}
}

// Load reads path over Default and then applies the environment. An empty
// path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := decode(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ApplyEnv overlays any NEON_* variables that are set.
func (c *Config) ApplyEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks the deck selection and the rule set.
func (c Config) Validate() error {
	var errs []error
	if c.DecksFile == "" {
		errs = append(errs, errors.New("decks_file is required"))
	}
	if c.RunnerDeck < 1 {
		errs = append(errs, fmt.Errorf("runner_deck must be at least 1, got %d", c.RunnerDeck))
	}
	if c.CorpDeck < 1 {
		errs = append(errs, fmt.Errorf("corp_deck must be at least 1, got %d", c.CorpDeck))
	}
	if err := c.Rules.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("rules: %w", err))
	}
	return errors.Join(errs...)
}

// Decks resolves the configured runner and corp decks from DecksFile.
func (c Config) Decks() (runner, corp game.Deck, err error) {
	runner, err = game.DeckByNumber(c.DecksFile, game.SideRunner, c.RunnerDeck)
	if err != nil {
		return game.Deck{}, game.Deck{}, err
	}
	corp, err = game.DeckByNumber(c.DecksFile, game.SideCorp, c.CorpDeck)
	if err != nil {
		return game.Deck{}, game.Deck{}, err
	}
	return runner, corp, nil
}

// SessionConfig resolves the decks and fills a game.SessionConfig. The
// caller supplies the event logger.
func (c Config) SessionConfig(events log.EventLogger) (game.SessionConfig, error) {
	runner, corp, err := c.Decks()
	if err != nil {
		return game.SessionConfig{}, err
	}
	return game.SessionConfig{
		Seed:           c.Seed,
		Rules:          c.Rules,
		RunnerDeck:     runner.Cards,
		CorpDeck:       corp.Cards,
		RunnerDeckName: runner.Name,
		CorpDeckName:   corp.Name,
		Logger:         events,
	}, nil
}
