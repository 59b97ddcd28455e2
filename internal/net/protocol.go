package net

import (
	"github.com/peterkuimelis/neondominance/internal/game"
	"github.com/peterkuimelis/neondominance/internal/log"
)

// Message types for the JSON protocol over TCP. Each message is one JSON
// value; the stream is a sequence of them.

// --- Server → Client messages ---

const (
	MsgWelcome  = "welcome"
	MsgResult   = "result"
	MsgError    = "error"
	MsgGameOver = "game_over"
)

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type string `json:"type"`

	// For "welcome"
	Session string     `json:"session,omitempty"`
	Info    *game.Info `json:"info,omitempty"`

	// For "result" and "error"
	Output string `json:"output,omitempty"`
	Error  string `json:"error,omitempty"`
	Kind   string `json:"kind,omitempty"` // game.ErrorKind of Error

	// Sent with every message: the events logged since the previous one
	Events []EventView  `json:"events,omitempty"`
	Status *game.Status `json:"status,omitempty"`

	// For "game_over"
	Winner string `json:"winner,omitempty"`
	Result string `json:"result,omitempty"`
}

// EventView is a simplified game event for the client.
type EventView struct {
	Seq     int    `json:"seq"`
	Turn    int    `json:"turn"`
	Phase   string `json:"phase"`
	Side    string `json:"side"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Details string `json:"details"`
}

// ViewEvents converts logged events for the wire.
func ViewEvents(events []log.GameEvent) []EventView {
	if len(events) == 0 {
		return nil
	}
	out := make([]EventView, 0, len(events))
	for _, e := range events {
		out = append(out, EventView{
			Seq:     e.Seq,
			Turn:    e.Turn,
			Phase:   e.Phase,
			Side:    e.Side,
			Type:    e.Type.String(),
			Card:    e.Card,
			Details: e.Details,
		})
	}
	return out
}

// --- Client → Server messages ---

const (
	MsgJoin    = "join"
	MsgCommand = "command"
)

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"`

	// For "command": one line of the text command language
	Line string `json:"line,omitempty"`

	// For "join" (initial handshake); zero keeps the server's default
	Seed       int64 `json:"seed,omitempty"`
	RunnerDeck int   `json:"runner_deck,omitempty"`
	CorpDeck   int   `json:"corp_deck,omitempty"`
}
