package game

import (
	"errors"
	"fmt"

	"github.com/peterkuimelis/neondominance/internal/log"
)

// TurnController walks each side through Setup → Action → End and hands the
// Corporation's Action phase to CorpAI.
type TurnController struct {
	state *GameState
	rules Rules
	emit  func(log.GameEvent)
	runs  *RunEngine
	ai    *CorpAI
	win   *WinConditionEvaluator
}

func NewTurnController(state *GameState, rules Rules, runs *RunEngine, ai *CorpAI, win *WinConditionEvaluator, emit func(log.GameEvent)) *TurnController {
	if emit == nil {
		emit = func(log.GameEvent) {}
	}
	return &TurnController{state: state, rules: rules, emit: emit, runs: runs, ai: ai, win: win}
}

// BeginTurn runs the current side's Setup phase and opens its Action phase.
// For the Corporation the whole turn is played out before returning.
func (tc *TurnController) BeginTurn() {
	gs := tc.state
	if gs.Over {
		return
	}
	gs.Turn++
	side := gs.Side
	tc.emit(log.NewTurnEvent(gs.Turn, side.String()))
	tc.setPhase(PhaseSetup)

	if side == SideRunner {
		tc.setupRunner()
	} else {
		tc.setupCorp()
	}
	if tc.win.Evaluate() {
		return
	}

	tc.setPhase(PhaseAction)
	if side == SideCorp {
		tc.ai.TakeTurn()
		if gs.Over {
			return
		}
		// The Corporation passes once its clicks are spent.
		_, _ = tc.EndTurn(SideCorp)
	}
}

func (tc *TurnController) setupRunner() {
	runner := tc.state.Runner
	runner.Ledger.ResetClicks(tc.rules.RunnerClicks)
	income := 0
	for _, c := range runner.Deck.Installed() {
		if c.Card.Resource != nil {
			income += c.Card.Resource.CreditsPerTurn
		}
	}
	if income > 0 {
		_ = runner.Ledger.GainCredits(income)
		tc.emit(log.NewCreditsChangeEvent(SideRunner.String(), income, runner.Ledger.Credits(), "resources"))
	}
}

func (tc *TurnController) setupCorp() {
	corp := tc.state.Corp
	corp.Ledger.ResetClicks(tc.rules.CorpClicks)
	income := 0
	var depleted []*CardInstance
	for _, srv := range corp.Servers {
		for _, c := range srv.Content {
			if c.Card.Asset == nil || !c.Rezzed {
				continue
			}
			take := c.Card.Asset.CreditsPerTurn
			if c.Card.Asset.CreditPool > 0 {
				left := c.Counters[CounterCredits]
				take = min(take, left)
				if take > 0 {
					c.Counters[CounterCredits] = left - take
				}
				if left-take == 0 {
					depleted = append(depleted, c)
				}
			}
			income += take
		}
	}
	if income > 0 {
		_ = corp.Ledger.GainCredits(income)
		tc.emit(log.NewCreditsChangeEvent(SideCorp.String(), income, corp.Ledger.Credits(), "assets"))
	}
	for _, c := range depleted {
		for _, srv := range corp.Servers {
			if srv.RemoveContent(c) {
				break
			}
		}
		corp.Deck.Trash(c)
		tc.emit(log.NewDiscardEvent(SideCorp.String(), c.Card.Name, "no credits left"))
	}

	// Mandatory draw
	drawn, err := corp.Deck.Draw(1)
	for _, c := range drawn {
		tc.emit(log.NewDrawEvent(SideCorp.String(), c.Card.Name))
	}
	if errors.Is(err, ErrDeckExhausted) {
		tc.win.DeckExhausted(SideCorp)
	}
}

// EndTurn closes side's Action phase, enforces the hand limit and starts the
// other side's turn. It returns the phase the game is in afterwards.
func (tc *TurnController) EndTurn(side Side) (Phase, error) {
	gs := tc.state
	if gs.Over {
		return gs.Phase, ErrGameOver
	}
	if side != gs.Side {
		return gs.Phase, fmt.Errorf("end turn: %s: %w", side, ErrNotYourTurn)
	}
	if gs.Phase != PhaseAction {
		return gs.Phase, fmt.Errorf("end turn in %s: %w", gs.Phase, ErrWrongPhase)
	}
	if tc.runs != nil && tc.runs.Active() {
		return gs.Phase, fmt.Errorf("end turn: %w", ErrRunInProgress)
	}

	tc.setPhase(PhaseEnd)
	dm := gs.DeckFor(side)
	for dm.HandCount() > tc.rules.MaxHandSize {
		hand := dm.Hand()
		newest := hand[len(hand)-1]
		_ = dm.Discard(newest)
		tc.emit(log.NewDiscardEvent(side.String(), newest.Card.Name, "hand limit"))
	}

	if side == SideCorp {
		if tc.win.DayBoundary() {
			return gs.Phase, nil
		}
	} else if tc.win.Evaluate() {
		return gs.Phase, nil
	}

	gs.Side = side.Other()
	tc.BeginTurn()
	return gs.Phase, nil
}

func (tc *TurnController) setPhase(p Phase) {
	tc.state.Phase = p
	tc.emit(log.NewPhaseChangeEvent(tc.state.Side.String(), p.String()))
}
