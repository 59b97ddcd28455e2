package log

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func sampleEvents() []GameEvent {
	events := []GameEvent{
		NewTurnEvent(1, "Runner"),
		NewRunStartEvent("7c9e6679-7425-40de-944b-e07fc1f90ae7", "HQ", "stealth"),
		NewIceEncounterEvent("Ice Wall", 0, 1),
		NewIceBrokenEvent("Ice Wall", 2, 1),
		NewRunSuccessEvent("HQ", 1),
		NewWinEvent("Runner", "3 groups liberated"),
	}
	for i := range events {
		events[i].Turn = 1
		events[i].Phase = "Action"
	}
	return events
}

func TestMemoryLoggerSequence(t *testing.T) {
	l := NewMemoryLogger()
	for _, e := range sampleEvents() {
		l.Log(e)
	}
	events := l.Events()
	require.Len(t, events, 6)
	for i, e := range events {
		assert.Equal(t, i+1, e.Seq)
	}
	assert.Len(t, l.EventsOfType(EventIceBroken), 1)
	assert.Equal(t, EventWin, l.LastEvent().Type)
	assert.Len(t, l.Since(4), 2)
	assert.Empty(t, l.Since(6))
}

func TestTextLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewTextLogger(&buf)
	l.Log(sampleEvents()[0])

	line := strings.TrimSpace(buf.String())
	assert.True(t, strings.HasPrefix(line, "T1  Action   Runner|"), "line %q", line)
	assert.Len(t, l.Events(), 1)
}

func TestTeeFansOut(t *testing.T) {
	a, b := NewMemoryLogger(), NewMemoryLogger()
	tee := Tee{a, b}
	for _, e := range sampleEvents()[:3] {
		tee.Log(e)
	}
	assert.Len(t, a.Events(), 3)
	assert.Len(t, b.Events(), 3)
	assert.Equal(t, a.Events(), tee.Events())
	assert.Nil(t, Tee{}.Events())
}

func TestZapLoggerMirrorsEvents(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := NewZapLogger(zap.New(core))
	l.Log(sampleEvents()[3])

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "Break Ice Wall with strength 2 for 1 credits", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, "IceBroken", fields["type"])
	assert.Equal(t, "Ice Wall", fields["card"])

	// A nil zap logger is accepted.
	NewZapLogger(nil).Log(sampleEvents()[0])
}

func TestTranscriptRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.jsonl.zst")
	tl, err := NewTranscriptLogger(path)
	require.NoError(t, err)

	for _, e := range sampleEvents() {
		tl.Log(e)
	}
	require.NoError(t, tl.Err())
	require.NoError(t, tl.Close())
	// Logging after Close keeps memory history but writes nothing.
	tl.Log(sampleEvents()[0])

	got, err := ReadTranscriptFile(path)
	require.NoError(t, err)
	assert.Equal(t, tl.Events()[:6], got)
}

func TestReadTranscriptRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.zst")
	require.NoError(t, os.WriteFile(path, []byte("not zstd"), 0o644))
	_, err := ReadTranscriptFile(path)
	assert.Error(t, err)
}
