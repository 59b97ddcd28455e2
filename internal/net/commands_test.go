package net

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/neondominance/internal/config"
	"github.com/peterkuimelis/neondominance/internal/game"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.DecksFile = "../../decks.yaml"
	return cfg
}

func newSession(t *testing.T) *game.GameSession {
	t.Helper()
	sc, err := testConfig().SessionConfig(nil)
	require.NoError(t, err)
	sess, err := game.NewSession(sc)
	require.NoError(t, err)
	return sess
}

func TestExecuteBasicActions(t *testing.T) {
	sess := newSession(t)

	out, err := Execute(sess, "credit")
	require.NoError(t, err)
	assert.Equal(t, "Gained 1 credit (6 total)", out)

	out, err = Execute(sess, "  ")
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = Execute(sess, "run remote 1")
	require.NoError(t, err)
	assert.Contains(t, out, "Remote1")
	assert.Contains(t, out, "successful")

	_, err = Execute(sess, "continue")
	assert.True(t, errors.Is(err, game.ErrRunAlreadyResolved), "continue after resolution: %v", err)

	out, err = Execute(sess, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "RUNNER")
	assert.Contains(t, out, "CORPORATION")

	out, err = Execute(sess, "end")
	require.NoError(t, err)
	assert.Contains(t, out, "Turn 3")
}

func TestExecuteRejectsBadInput(t *testing.T) {
	sess := newSession(t)
	before := sess.Status()

	tests := []struct {
		line string
		want error
	}{
		{"install 99", game.ErrInvalidCardIndex},
		{"install x", game.ErrInvalidCardIndex},
		{"discard", game.ErrInvalidCardIndex},
		{"run", game.ErrInvalidServer},
		{"run Remote9", game.ErrInvalidServer},
		{"run HQ --reckless", game.ErrInvalidApproach},
		{"jack_out", game.ErrNoActiveRun},
		{"trash", game.ErrNoActiveRun},
		{"trash x", game.ErrInvalidCardIndex},
		{"uninstall 1", game.ErrInvalidCardIndex},
		{"reshuffle", game.ErrInvalidAmount},
		{"teleport", ErrUnknownCommand},
	}
	for _, tt := range tests {
		_, err := Execute(sess, tt.line)
		assert.Truef(t, errors.Is(err, tt.want), "%q = %v, want %v", tt.line, err, tt.want)
	}
	assert.Equal(t, before, sess.Status(), "rejected commands must not change the game")
}

func TestExecuteReshuffle(t *testing.T) {
	sess := newSession(t)
	deck := sess.Status().Runner.Deck

	_, err := Execute(sess, "discard 1")
	require.NoError(t, err)
	out, err := Execute(sess, "reshuffle")
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("Shuffled discard into deck (%d cards)", deck+1), out)

	st := sess.Status()
	assert.Equal(t, 0, st.Runner.Discard)
	assert.Equal(t, 2, st.Runner.Clicks, "discard and reshuffle cost a click each")
}

func TestExecuteQueries(t *testing.T) {
	sess := newSession(t)
	for _, line := range []string{"credits", "memory", "installed", "hand", "servers", "info", "help"} {
		out, err := Execute(sess, line)
		require.NoError(t, err, line)
		assert.NotEmpty(t, out, line)
	}
	out, _ := Execute(sess, "hand")
	assert.True(t, strings.Contains(out, "[1] "), "hand lists 1-based indices: %q", out)

	out, _ = Execute(sess, "memory")
	assert.Equal(t, "Memory 0/4 used, 4 free", out)
}

func TestRunArgs(t *testing.T) {
	server, approach, err := runArgs([]string{"remote", "2", "--careful"})
	require.NoError(t, err)
	assert.Equal(t, "remote 2", server)
	assert.Equal(t, game.ApproachCareful, approach)

	server, approach, err = runArgs([]string{"--stealth", "HQ"})
	require.NoError(t, err)
	assert.Equal(t, "HQ", server)
	assert.Equal(t, game.ApproachStealth, approach)
}
