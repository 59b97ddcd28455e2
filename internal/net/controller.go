package net

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/peterkuimelis/neondominance/internal/config"
	"github.com/peterkuimelis/neondominance/internal/game"
	"github.com/peterkuimelis/neondominance/internal/log"
)

// Codec carries protocol messages over one connection. Read returns io.EOF
// once the peer has gone away cleanly.
type Codec interface {
	Read(msg *ClientMessage) error
	Write(msg ServerMessage) error
}

type jsonCodec struct {
	mu  sync.Mutex // guards enc
	enc *json.Encoder
	dec *json.Decoder
}

// NewJSONCodec streams JSON values over rw, as the TCP protocol does.
func NewJSONCodec(rw io.ReadWriter) Codec {
	return &jsonCodec{enc: json.NewEncoder(rw), dec: json.NewDecoder(rw)}
}

func (c *jsonCodec) Read(msg *ClientMessage) error {
	err := c.dec.Decode(msg)
	if errors.Is(err, net.ErrClosed) {
		return io.EOF
	}
	return err
}

func (c *jsonCodec) Write(msg ServerMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enc.Encode(msg)
}

// sessionController drives one session for one connection. Commands are
// handled strictly in arrival order.
type sessionController struct {
	codec  Codec
	zap    *zap.Logger
	sess   *game.GameSession
	events *log.MemoryLogger
	sent   int // events already forwarded
}

// ServeSession reads the join handshake from codec, starts a session from
// cfg and runs its command loop until the game ends or the peer leaves.
// The join message may override cfg's seed and deck numbers.
func ServeSession(codec Codec, cfg config.Config, z *zap.Logger) error {
	if z == nil {
		z = zap.NewNop()
	}
	c := &sessionController{codec: codec, zap: z}
	if err := c.join(cfg); err != nil {
		_ = codec.Write(ServerMessage{Type: MsgError, Error: err.Error(), Kind: game.ErrorKind(err)})
		return err
	}
	return c.serve()
}

// pending returns the events logged since the last message and marks them
// sent.
func (c *sessionController) pending() []EventView {
	all := c.events.Events()
	fresh := all[c.sent:]
	c.sent = len(all)
	return ViewEvents(fresh)
}

func (c *sessionController) status() *game.Status {
	st := c.sess.Status()
	return &st
}

func (c *sessionController) join(cfg config.Config) error {
	var msg ClientMessage
	if err := c.codec.Read(&msg); err != nil {
		return fmt.Errorf("read join message: %w", err)
	}
	if msg.Type != MsgJoin {
		return fmt.Errorf("expected join, got %q", msg.Type)
	}
	if msg.Seed != 0 {
		cfg.Seed = msg.Seed
	}
	if msg.RunnerDeck != 0 {
		cfg.RunnerDeck = msg.RunnerDeck
	}
	if msg.CorpDeck != 0 {
		cfg.CorpDeck = msg.CorpDeck
	}

	c.events = log.NewMemoryLogger()
	sc, err := cfg.SessionConfig(log.Tee{c.events, log.NewZapLogger(c.zap)})
	if err != nil {
		return fmt.Errorf("load decks: %w", err)
	}
	sc.Zap = c.zap
	sess, err := game.NewSession(sc)
	if err != nil {
		return err
	}
	c.sess = sess

	info := sess.Info()
	return c.codec.Write(ServerMessage{
		Type:    MsgWelcome,
		Session: uuid.NewString(),
		Info:    &info,
		Events:  c.pending(),
		Status:  c.status(),
	})
}

func (c *sessionController) serve() error {
	for {
		var msg ClientMessage
		if err := c.codec.Read(&msg); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read message: %w", err)
		}
		if msg.Type != MsgCommand {
			if err := c.codec.Write(ServerMessage{Type: MsgError, Error: fmt.Sprintf("unexpected %q message", msg.Type), Kind: "protocol"}); err != nil {
				return err
			}
			continue
		}

		out, err := Execute(c.sess, msg.Line)
		reply := ServerMessage{Type: MsgResult, Output: out}
		if err != nil {
			reply = ServerMessage{Type: MsgError, Error: err.Error(), Kind: game.ErrorKind(err)}
			c.zap.Debug("command rejected", zap.String("line", msg.Line), zap.Error(err))
		}
		reply.Events = c.pending()
		reply.Status = c.status()
		if err := c.codec.Write(reply); err != nil {
			return fmt.Errorf("send %s: %w", reply.Type, err)
		}

		if over, winner, reason := c.sess.Over(); over {
			c.zap.Info("game over", zap.Stringer("winner", winner), zap.String("reason", reason))
			return c.codec.Write(ServerMessage{Type: MsgGameOver, Winner: winner.String(), Result: reason, Status: c.status()})
		}
	}
}
