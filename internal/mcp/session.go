package mcp

import (
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/peterkuimelis/neondominance/internal/config"
	"github.com/peterkuimelis/neondominance/internal/game"
	"github.com/peterkuimelis/neondominance/internal/log"
	neonnet "github.com/peterkuimelis/neondominance/internal/net"
)

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	Events   []neonnet.EventView `json:"events"`
	Output   string              `json:"output,omitempty"`
	Card     *game.CardView      `json:"card,omitempty"`
	Run      *game.RunState      `json:"run,omitempty"`
	Status   *game.Status        `json:"status,omitempty"`
	Hand     []game.CardView     `json:"hand,omitempty"`
	Servers  []game.ServerView   `json:"servers,omitempty"`
	Info     *game.Info          `json:"info,omitempty"`
	GameOver bool                `json:"game_over"`
	Winner   string              `json:"winner,omitempty"`
	Result   string              `json:"result,omitempty"`
}

// Tools holds the single game session of one stdio process. Tool calls may
// arrive concurrently; mu serialises them.
type Tools struct {
	Config config.Config
	Log    *zap.Logger

	mu     sync.Mutex
	sess   *game.GameSession
	events *log.MemoryLogger
	sent   int
}

// NewTools returns a tool set that starts sessions from cfg.
func NewTools(cfg config.Config, z *zap.Logger) *Tools {
	if z == nil {
		z = zap.NewNop()
	}
	return &Tools{Config: cfg, Log: z}
}

// start replaces any running session. Zero arguments keep the configured
// defaults.
func (t *Tools) start(seed int64, runnerDeck, corpDeck int) error {
	cfg := t.Config
	if seed != 0 {
		cfg.Seed = seed
	}
	if runnerDeck != 0 {
		cfg.RunnerDeck = runnerDeck
	}
	if corpDeck != 0 {
		cfg.CorpDeck = corpDeck
	}

	events := log.NewMemoryLogger()
	sc, err := cfg.SessionConfig(log.Tee{events, log.NewZapLogger(t.Log)})
	if err != nil {
		return err
	}
	sc.Zap = t.Log
	sess, err := game.NewSession(sc)
	if err != nil {
		return err
	}
	t.sess, t.events, t.sent = sess, events, 0
	return nil
}

// drainEvents returns the events logged since the previous tool response.
func (t *Tools) drainEvents() []neonnet.EventView {
	all := t.events.Events()
	fresh := all[t.sent:]
	t.sent = len(all)
	views := neonnet.ViewEvents(fresh)
	if views == nil {
		views = []neonnet.EventView{}
	}
	return views
}

// respond fills the fields every response carries.
func (t *Tools) respond(resp *ToolResponse) *ToolResponse {
	resp.Events = t.drainEvents()
	st := t.sess.Status()
	resp.Status = &st
	if over, winner, reason := t.sess.Over(); over {
		resp.GameOver = true
		resp.Winner = winner.String()
		resp.Result = reason
	}
	return resp
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
