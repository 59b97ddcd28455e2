package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for logging game events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// Since returns the events logged after sequence number seq.
func (l *MemoryLogger) Since(seq int) []GameEvent {
	for i, e := range l.events {
		if e.Seq > seq {
			return l.events[i:]
		}
	}
	return nil
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(l.LastEvent()))
}

// --- Tee: fans one event out to several loggers ---

// Tee forwards every event to each logger. Events() reports the first
// logger's history.
type Tee []EventLogger

func (t Tee) Log(event GameEvent) {
	for _, l := range t {
		l.Log(event)
	}
}

func (t Tee) Events() []GameEvent {
	if len(t) == 0 {
		return nil
	}
	return t[0].Events()
}

// --- Formatting ---

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	phase := e.Phase
	// Pad phase to 8 chars for alignment
	for len(phase) < 8 {
		phase += " "
	}
	side := e.Side
	for len(side) < 6 {
		side += " "
	}
	return fmt.Sprintf("T%-2d %s %s| %s", e.Turn, phase, side, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---
//
// Turn and Phase are stamped by the session when the event is logged.

func NewPhaseChangeEvent(side, phase string) GameEvent {
	return GameEvent{
		Side:    side,
		Type:    EventPhaseChange,
		Details: fmt.Sprintf("Phase → %s", phase),
	}
}

func NewTurnEvent(turn int, side string) GameEvent {
	return GameEvent{
		Side:    side,
		Type:    EventNewTurn,
		Details: fmt.Sprintf("=== Turn %d (%s) ===", turn, side),
	}
}

func NewDrawEvent(side, cardName string) GameEvent {
	return GameEvent{
		Side:    side,
		Type:    EventDraw,
		Card:    cardName,
		Details: fmt.Sprintf("%s draws %s", side, cardName),
	}
}

func NewShuffleEvent(side string) GameEvent {
	return GameEvent{
		Side:    side,
		Type:    EventShuffle,
		Details: fmt.Sprintf("%s shuffles their deck", side),
	}
}

func NewReshuffleEvent(side string) GameEvent {
	return GameEvent{
		Side:    side,
		Type:    EventReshuffle,
		Details: fmt.Sprintf("%s shuffles discard into a new draw pile", side),
	}
}

func NewInstallEvent(side, cardName, where string, cost int) GameEvent {
	return GameEvent{
		Side:    side,
		Type:    EventInstall,
		Card:    cardName,
		Details: fmt.Sprintf("%s installs %s in %s (%d credits)", side, cardName, where, cost),
	}
}

func NewPlayEvent(side, cardName, effect string) GameEvent {
	return GameEvent{
		Side:    side,
		Type:    EventPlay,
		Card:    cardName,
		Details: fmt.Sprintf("%s plays %s: %s", side, cardName, effect),
	}
}

func NewDiscardEvent(side, cardName, reason string) GameEvent {
	return GameEvent{
		Side:    side,
		Type:    EventDiscard,
		Card:    cardName,
		Details: fmt.Sprintf("%s discards %s (%s)", side, cardName, reason),
	}
}

func NewCreditsChangeEvent(side string, delta, total int, reason string) GameEvent {
	return GameEvent{
		Side:    side,
		Type:    EventCreditsChange,
		Details: fmt.Sprintf("%s credits %+d → %d (%s)", side, delta, total, reason),
	}
}

func NewRunStartEvent(runID, server, approach string) GameEvent {
	return GameEvent{
		Side:    "runner",
		Type:    EventRunStart,
		Details: fmt.Sprintf("Run %s on %s (approach: %s)", shortID(runID), server, approach),
	}
}

func NewIceEncounterEvent(iceName string, index, strength int) GameEvent {
	return GameEvent{
		Side:    "runner",
		Type:    EventIceEncounter,
		Card:    iceName,
		Details: fmt.Sprintf("Encounter %s at position %d (STR %d)", iceName, index+1, strength),
	}
}

func NewIceBrokenEvent(iceName string, breakerStrength, credits int) GameEvent {
	return GameEvent{
		Side:    "runner",
		Type:    EventIceBroken,
		Card:    iceName,
		Details: fmt.Sprintf("Break %s with strength %d for %d credits", iceName, breakerStrength, credits),
	}
}

func NewIceBypassedEvent(iceName string) GameEvent {
	return GameEvent{
		Side:    "runner",
		Type:    EventIceBypassed,
		Card:    iceName,
		Details: fmt.Sprintf("Slip past %s unseen", iceName),
	}
}

func NewIcePassedEvent(iceName string) GameEvent {
	return GameEvent{
		Side:    "runner",
		Type:    EventIcePassed,
		Card:    iceName,
		Details: fmt.Sprintf("Pass unrezzed %s", iceName),
	}
}

func NewIceNotBrokenEvent(iceName string, breakerStrength, iceStrength int) GameEvent {
	return GameEvent{
		Side:    "runner",
		Type:    EventIceNotBroken,
		Card:    iceName,
		Details: fmt.Sprintf("Cannot break %s (strength %d vs %d)", iceName, breakerStrength, iceStrength),
	}
}

func NewInsufficientResourceEvent(side, what string) GameEvent {
	return GameEvent{
		Side:    side,
		Type:    EventInsufficientResource,
		Details: fmt.Sprintf("%s cannot pay: %s", side, what),
	}
}

func NewDamageEvent(amount, total int) GameEvent {
	return GameEvent{
		Side:    "runner",
		Type:    EventDamage,
		Details: fmt.Sprintf("Runner takes %d neural damage (total %d)", amount, total),
	}
}

func NewRunSuccessEvent(server string, successfulRuns int) GameEvent {
	return GameEvent{
		Side:    "runner",
		Type:    EventRunSuccess,
		Details: fmt.Sprintf("Run on %s successful (%d total)", server, successfulRuns),
	}
}

func NewRunFailedEvent(server string) GameEvent {
	return GameEvent{
		Side:    "runner",
		Type:    EventRunFailed,
		Details: fmt.Sprintf("Run on %s failed", server),
	}
}

func NewJackOutEvent(server string, cost int) GameEvent {
	return GameEvent{
		Side:    "runner",
		Type:    EventJackOut,
		Details: fmt.Sprintf("Jack out of %s (%d credits)", server, cost),
	}
}

func NewAccessEvent(server, cardName string) GameEvent {
	return GameEvent{
		Side:    "runner",
		Type:    EventAccess,
		Card:    cardName,
		Details: fmt.Sprintf("Access %s in %s", cardName, server),
	}
}

func NewAgendaExposedEvent(cardName string, points int) GameEvent {
	return GameEvent{
		Side:    "runner",
		Type:    EventAgendaExposed,
		Card:    cardName,
		Details: fmt.Sprintf("Expose agenda %s (%d points) to Archives", cardName, points),
	}
}

func NewLiberationEvent(groups int) GameEvent {
	return GameEvent{
		Side:    "runner",
		Type:    EventLiberation,
		Details: fmt.Sprintf("A resistance group is liberated (%d total)", groups),
	}
}

func NewRezEvent(cardName string, cost int) GameEvent {
	return GameEvent{
		Side:    "corp",
		Type:    EventRez,
		Card:    cardName,
		Details: fmt.Sprintf("corp rezzes %s (%d credits)", cardName, cost),
	}
}

func NewAdvanceEvent(cardName string, advancement, requirement int) GameEvent {
	return GameEvent{
		Side:    "corp",
		Type:    EventAdvance,
		Card:    cardName,
		Details: fmt.Sprintf("corp advances %s (%d/%d)", cardName, advancement, requirement),
	}
}

func NewScoreEvent(cardName string, points, total int) GameEvent {
	return GameEvent{
		Side:    "corp",
		Type:    EventScore,
		Card:    cardName,
		Details: fmt.Sprintf("corp scores %s for %d points (%d total)", cardName, points, total),
	}
}

func NewComplianceChangeEvent(delta, total int, reason string) GameEvent {
	return GameEvent{
		Side:    "corp",
		Type:    EventComplianceChange,
		Details: fmt.Sprintf("Compliance %+d → %d%% (%s)", delta, total, reason),
	}
}

func NewDayEndEvent(day, compliance, streak int) GameEvent {
	return GameEvent{
		Side:    "corp",
		Type:    EventDayEnd,
		Details: fmt.Sprintf("Day %d ends at %d%% compliance (streak %d)", day, compliance, streak),
	}
}

func NewDeckExhaustedEvent(side string) GameEvent {
	return GameEvent{
		Side:    side,
		Type:    EventDeckExhausted,
		Details: fmt.Sprintf("%s cannot draw: deck and discard are empty", side),
	}
}

func NewWinEvent(winner, reason string) GameEvent {
	return GameEvent{
		Side:    winner,
		Type:    EventWin,
		Details: fmt.Sprintf("%s wins! (%s)", winner, reason),
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
