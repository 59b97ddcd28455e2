package net

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// startServer serves on a loopback port until the test ends.
func startServer(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	srv := &Server{Config: testConfig(), Log: zaptest.NewLogger(t)}
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("server did not stop")
		}
	})
	return ln.Addr().String()
}

func dial(t *testing.T, addr string) (net.Conn, *json.Encoder, *json.Decoder) {
	t.Helper()
	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, conn.SetDeadline(time.Now().Add(5*time.Second)))
	return conn, json.NewEncoder(conn), json.NewDecoder(conn)
}

func TestServerProtocol(t *testing.T) {
	addr := startServer(t)
	_, enc, dec := dial(t, addr)

	require.NoError(t, enc.Encode(ClientMessage{Type: MsgJoin, Seed: 5}))
	var welcome ServerMessage
	require.NoError(t, dec.Decode(&welcome))
	require.Equal(t, MsgWelcome, welcome.Type)
	require.NotNil(t, welcome.Info)
	assert.Equal(t, int64(5), welcome.Info.Seed)
	assert.NotEmpty(t, welcome.Session)
	assert.NotEmpty(t, welcome.Events, "opening events are forwarded")

	require.NoError(t, enc.Encode(ClientMessage{Type: MsgCommand, Line: "credit"}))
	var reply ServerMessage
	require.NoError(t, dec.Decode(&reply))
	assert.Equal(t, MsgResult, reply.Type)
	assert.Equal(t, "Gained 1 credit (6 total)", reply.Output)
	require.NotNil(t, reply.Status)
	assert.Equal(t, 6, reply.Status.Runner.Credits)
	require.Len(t, reply.Events, 1)
	assert.Equal(t, "CreditsChange", reply.Events[0].Type)

	require.NoError(t, enc.Encode(ClientMessage{Type: MsgCommand, Line: "install 42"}))
	reply = ServerMessage{}
	require.NoError(t, dec.Decode(&reply))
	assert.Equal(t, MsgError, reply.Type)
	assert.Equal(t, "invalid_card_index", reply.Kind)
	assert.Empty(t, reply.Events)

	require.NoError(t, enc.Encode(ClientMessage{Type: MsgJoin}))
	reply = ServerMessage{}
	require.NoError(t, dec.Decode(&reply))
	assert.Equal(t, "protocol", reply.Kind)
}

func TestServerStopsWhenListenerClosed(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	srv := &Server{Config: testConfig(), Log: zaptest.NewLogger(t)}
	done := make(chan error, 1)
	go func() { done <- srv.Serve(context.Background(), ln) }()

	_, enc, dec := dial(t, ln.Addr().String())
	require.NoError(t, enc.Encode(ClientMessage{Type: MsgJoin, Seed: 5}))
	var welcome ServerMessage
	require.NoError(t, dec.Decode(&welcome))
	require.Equal(t, MsgWelcome, welcome.Type)

	require.NoError(t, ln.Close())
	select {
	case err := <-done:
		require.ErrorIs(t, err, net.ErrClosed)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve kept running after its listener closed")
	}
}

func TestServerRejectsBadJoin(t *testing.T) {
	addr := startServer(t)
	_, enc, dec := dial(t, addr)

	require.NoError(t, enc.Encode(ClientMessage{Type: MsgJoin, CorpDeck: 9}))
	var reply ServerMessage
	require.NoError(t, dec.Decode(&reply))
	assert.Equal(t, MsgError, reply.Type)
	assert.Contains(t, reply.Error, "corp deck 9")
}

func TestClientREPL(t *testing.T) {
	addr := startServer(t)
	var out bytes.Buffer
	in := strings.NewReader("help\ncredit\n\nhand\nquit\n")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, Connect(ctx, addr, ClientMessage{}, in, &out))

	text := out.String()
	assert.Contains(t, text, "Type help for commands.")
	assert.Contains(t, text, "Commands:")
	assert.Contains(t, text, "Gained 1 credit (6 total)")
	assert.Contains(t, text, "[1] ")
}

func TestPlayLocal(t *testing.T) {
	sess := newSession(t)
	var out bytes.Buffer
	in := strings.NewReader("credit\nteleport\nquit\n")

	require.NoError(t, Play(context.Background(), sess, in, &out))
	assert.Contains(t, out.String(), "Gained 1 credit")
	assert.Contains(t, out.String(), "unknown command")
}
