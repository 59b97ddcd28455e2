package net

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/peterkuimelis/neondominance/internal/game"
)

// Client connects to a game server and provides a terminal REPL.
type Client struct {
	conn net.Conn
	in   *bufio.Scanner
	out  io.Writer
}

// Connect dials addr, sends the join handshake and runs the REPL on in/out.
func Connect(ctx context.Context, addr string, join ClientMessage, in io.Reader, out io.Writer) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	join.Type = MsgJoin
	if err := json.NewEncoder(conn).Encode(join); err != nil {
		return fmt.Errorf("send join: %w", err)
	}

	client := &Client{conn: conn, in: bufio.NewScanner(in), out: out}
	return client.RunREPL(ctx)
}

// RunREPL prints every server message and answers each with one command
// line read from the user. It returns nil on "quit", end of input or game
// over.
func (c *Client) RunREPL(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() { _ = c.conn.Close() })
	defer stop()

	dec := json.NewDecoder(c.conn)
	enc := json.NewEncoder(c.conn)
	for {
		var msg ServerMessage
		if err := dec.Decode(&msg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read message: %w", err)
		}
		c.render(msg)

		switch msg.Type {
		case MsgGameOver:
			return nil
		case MsgError:
			if msg.Status == nil {
				// Rejected handshake; the server closes the connection.
				return errors.New(msg.Error)
			}
		}

		line, ok := c.prompt()
		if !ok {
			return nil
		}
		if err := enc.Encode(ClientMessage{Type: MsgCommand, Line: line}); err != nil {
			return fmt.Errorf("send command: %w", err)
		}
	}
}

// prompt reads the next command line, answering help locally.
func (c *Client) prompt() (string, bool) {
	for {
		fmt.Fprint(c.out, "> ")
		if !c.in.Scan() {
			return "", false
		}
		line := strings.TrimSpace(c.in.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "quit", "exit":
			return "", false
		case "help", "?":
			fmt.Fprintln(c.out, Help)
			continue
		}
		return line, true
	}
}

func (c *Client) render(msg ServerMessage) {
	for _, ev := range msg.Events {
		renderEvent(c.out, ev)
	}
	switch msg.Type {
	case MsgWelcome:
		if msg.Info != nil {
			fmt.Fprintln(c.out, RenderInfo(*msg.Info))
		}
		if msg.Status != nil {
			fmt.Fprintln(c.out, RenderStatus(*msg.Status))
		}
		fmt.Fprintln(c.out, "Type help for commands.")
	case MsgResult:
		if msg.Output != "" {
			fmt.Fprintln(c.out, msg.Output)
		}
	case MsgError:
		fmt.Fprintln(c.out, alertStyle.Render("error: "+msg.Error))
	case MsgGameOver:
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, "═══════════════════════════════════")
		fmt.Fprintln(c.out, "          GAME OVER")
		fmt.Fprintln(c.out, "═══════════════════════════════════")
		fmt.Fprintf(c.out, "%s wins: %s\n", msg.Winner, msg.Result)
		fmt.Fprintln(c.out, "═══════════════════════════════════")
	}
}

// renderEvent formats like the TextLogger.
func renderEvent(w io.Writer, ev EventView) {
	phase := ev.Phase
	for len(phase) < 8 {
		phase += " "
	}
	side := ev.Side
	for len(side) < 6 {
		side += " "
	}
	fmt.Fprintf(w, "T%-2d %s %s| %s\n", ev.Turn, phase, side, ev.Details)
}

// Play runs a local session on in/out without a network. Events reach out
// through whatever logger the session was built with.
func Play(ctx context.Context, sess *game.GameSession, in io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(in)
	fmt.Fprintln(out, RenderInfo(sess.Info()))
	fmt.Fprintln(out, RenderStatus(sess.Status()))
	fmt.Fprintln(out, "Type help for commands.")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if over, winner, reason := sess.Over(); over {
			fmt.Fprintf(out, "GAME OVER: %s wins (%s)\n", winner, reason)
			return nil
		}
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		if line == "quit" || line == "exit" {
			return nil
		}
		text, err := Execute(sess, line)
		if err != nil {
			fmt.Fprintln(out, alertStyle.Render("error: "+err.Error()))
			continue
		}
		if text != "" {
			fmt.Fprintln(out, text)
		}
	}
}
