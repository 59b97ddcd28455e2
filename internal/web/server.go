package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"sort"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/peterkuimelis/neondominance/internal/config"
	"github.com/peterkuimelis/neondominance/internal/game"
	neonnet "github.com/peterkuimelis/neondominance/internal/net"
)

// CardInfo is the JSON representation of a card for the /api/cards endpoint.
type CardInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	CardType    string   `json:"cardType"`
	Side        string   `json:"side"`
	Cost        int      `json:"cost"`
	Strength    int      `json:"strength,omitempty"`
	MemoryUnits int      `json:"memoryUnits,omitempty"`
	Subtype     string   `json:"subtype,omitempty"`
	Breaks      []string `json:"breaks,omitempty"`
	Points      int      `json:"points,omitempty"`
	Requirement int      `json:"requirement,omitempty"`
}

// DeckInfo is the JSON representation of a deck for the /api/decks endpoint.
// Number is 1-indexed within the deck's side.
type DeckInfo struct {
	Number int      `json:"number"`
	Name   string   `json:"name"`
	Side   string   `json:"side"`
	Size   int      `json:"size"`
	Cards  []string `json:"cards"`
}

// Server is the web API: card and deck catalogues plus a WebSocket that
// plays one session per connection.
type Server struct {
	cfg config.Config
	log *zap.Logger
	mux *http.ServeMux
}

// NewServer creates a new web server.
func NewServer(cfg config.Config, z *zap.Logger) *Server {
	if z == nil {
		z = zap.NewNop()
	}
	s := &Server{cfg: cfg, log: z, mux: http.NewServeMux()}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("GET /api/cards", s.handleCards)
	s.mux.HandleFunc("GET /api/decks", s.handleDecks)
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	var cards []CardInfo
	for _, name := range game.CardNames() {
		c := game.LookupCard(name)
		ci := CardInfo{
			Name:        c.Name,
			Description: c.Description,
			CardType:    c.Type.String(),
			Side:        c.Side().String(),
			Cost:        c.Cost,
			Strength:    c.Strength(),
			MemoryUnits: c.MemoryUnits(),
		}
		if c.ICE != nil {
			ci.Subtype = c.ICE.Subtype
		}
		if c.Breaker != nil {
			ci.Breaks = c.Breaker.Breaks
		}
		if c.Agenda != nil {
			ci.Points = c.Agenda.AgendaPoints
			ci.Requirement = c.Agenda.AdvancementRequirement
		}
		cards = append(cards, ci)
	}
	writeJSON(w, cards)
}

func (s *Server) handleDecks(w http.ResponseWriter, r *http.Request) {
	decks, err := game.LoadDecks(s.cfg.DecksFile)
	if err != nil {
		s.log.Error("load decks", zap.Error(err))
		http.Error(w, "could not load decks file", http.StatusInternalServerError)
		return
	}

	numbers := map[game.Side]int{}
	out := make([]DeckInfo, 0, len(decks))
	for _, d := range decks {
		numbers[d.Side]++
		di := DeckInfo{
			Number: numbers[d.Side],
			Name:   d.Name,
			Side:   d.Side.String(),
			Size:   len(d.Cards),
		}
		// Unique card names for display
		seen := make(map[string]bool)
		for _, c := range d.Cards {
			if !seen[c.Name] {
				di.Cards = append(di.Cards, c.Name)
				seen[c.Name] = true
			}
		}
		sort.Strings(di.Cards)
		out = append(out, di)
	}
	writeJSON(w, out)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// wsCodec speaks the TCP protocol's messages, one per WebSocket text frame.
type wsCodec struct {
	ctx  context.Context
	conn *websocket.Conn
}

func (c wsCodec) Read(msg *neonnet.ClientMessage) error {
	err := wsjson.Read(c.ctx, c.conn, msg)
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		return io.EOF
	}
	return err
}

func (c wsCodec) Write(msg neonnet.ServerMessage) error {
	ctx, cancel := context.WithTimeout(c.ctx, 10*time.Second)
	defer cancel()
	return wsjson.Write(ctx, c.conn, msg)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		s.log.Warn("websocket accept", zap.Error(err))
		return
	}
	defer conn.CloseNow()

	z := s.log.With(zap.String("conn", uuid.NewString()), zap.String("remote", r.RemoteAddr))
	z.Info("websocket connected")
	if err := neonnet.ServeSession(wsCodec{ctx: r.Context(), conn: conn}, s.cfg, z); err != nil {
		z.Warn("websocket session ended", zap.Error(err))
		conn.Close(websocket.StatusInternalError, "session error")
		return
	}
	conn.Close(websocket.StatusNormalClosure, "game ended")
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	stop := context.AfterFunc(ctx, func() {
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdown)
	})
	defer stop()

	s.log.Info("web server listening", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
