package game

import (
	"fmt"

	"github.com/peterkuimelis/neondominance/internal/log"
)

// WinConditionEvaluator detects terminal game states. It only ever writes
// the result fields of GameState, and only once.
type WinConditionEvaluator struct {
	state *GameState
	rules Rules
	emit  func(log.GameEvent)
}

func NewWinConditionEvaluator(state *GameState, rules Rules, emit func(log.GameEvent)) *WinConditionEvaluator {
	if emit == nil {
		emit = func(log.GameEvent) {}
	}
	return &WinConditionEvaluator{state: state, rules: rules, emit: emit}
}

// Evaluate checks every win condition and reports whether the game is over.
// Calling it again after the game has ended changes nothing.
func (w *WinConditionEvaluator) Evaluate() bool {
	gs := w.state
	if gs.Over {
		return true
	}
	switch {
	case gs.Runner.GroupsLiberated >= w.rules.GroupsToWin:
		w.declare(SideRunner, fmt.Sprintf("%d groups liberated", gs.Runner.GroupsLiberated))
	case gs.Corp.ConsecutiveComplianceDays >= w.rules.ComplianceDays:
		w.declare(SideCorp, fmt.Sprintf("compliance held at %d%%+ for %d days",
			w.rules.ComplianceThreshold, gs.Corp.ConsecutiveComplianceDays))
	case gs.Runner.AgendaPoints >= w.rules.AgendaPointsToWin:
		w.declare(SideRunner, fmt.Sprintf("%d agenda points exposed", gs.Runner.AgendaPoints))
	case gs.Corp.AgendaPoints >= w.rules.AgendaPointsToWin:
		w.declare(SideCorp, fmt.Sprintf("%d agenda points scored", gs.Corp.AgendaPoints))
	}
	return gs.Over
}

// DeckExhausted ends the game against side, which could not draw.
func (w *WinConditionEvaluator) DeckExhausted(side Side) {
	if w.state.Over {
		return
	}
	w.emit(log.NewDeckExhaustedEvent(side.String()))
	w.declare(side.Other(), fmt.Sprintf("%s deck exhausted", side))
}

// DayBoundary updates the compliance streak at the end of a Corporation
// turn, then evaluates.
func (w *WinConditionEvaluator) DayBoundary() bool {
	gs := w.state
	if gs.Over {
		return true
	}
	gs.Day++
	if gs.Corp.Compliance >= w.rules.ComplianceThreshold {
		gs.Corp.ConsecutiveComplianceDays++
	} else {
		gs.Corp.ConsecutiveComplianceDays = 0
	}
	w.emit(log.NewDayEndEvent(gs.Day, gs.Corp.Compliance, gs.Corp.ConsecutiveComplianceDays))
	return w.Evaluate()
}

func (w *WinConditionEvaluator) declare(winner Side, reason string) {
	gs := w.state
	gs.Over = true
	gs.Winner = winner
	gs.Reason = reason
	w.emit(log.NewWinEvent(winner.String(), reason))
}
