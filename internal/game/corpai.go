package game

import (
	"errors"
	"fmt"

	"github.com/peterkuimelis/neondominance/internal/log"
)

// Strategy biases the Corporation's action weights for a whole session.
type Strategy int

const (
	StrategyBalanced Strategy = iota
	StrategyAggressive
	StrategyDefensive
	StrategyEconomic
)

const strategyCount = 4

func (s Strategy) String() string {
	switch s {
	case StrategyBalanced:
		return "balanced"
	case StrategyAggressive:
		return "aggressive"
	case StrategyDefensive:
		return "defensive"
	case StrategyEconomic:
		return "economic"
	default:
		return "unknown"
	}
}

// CorpAction is one click-costing choice available to the Corporation.
type CorpAction int

const (
	CorpDraw CorpAction = iota
	CorpGainCredit
	CorpInstallICE
	CorpInstallAgenda
	CorpInstallAsset
	CorpAdvance
	CorpRez
	CorpPlayOperation
	corpActionCount
)

func (a CorpAction) String() string {
	switch a {
	case CorpDraw:
		return "draw"
	case CorpGainCredit:
		return "gain_credit"
	case CorpInstallICE:
		return "install_ice"
	case CorpInstallAgenda:
		return "install_agenda"
	case CorpInstallAsset:
		return "install_asset"
	case CorpAdvance:
		return "advance"
	case CorpRez:
		return "rez"
	case CorpPlayOperation:
		return "play_operation"
	default:
		return "unknown"
	}
}

// CorpAI plays the Corporation's Action phase with a seeded weighted policy.
type CorpAI struct {
	state    *GameState
	rules    Rules
	rng      RNG
	emit     func(log.GameEvent)
	win      *WinConditionEvaluator
	Strategy Strategy
}

// NewCorpAI picks the session's strategy with rng.
func NewCorpAI(state *GameState, rules Rules, rng RNG, win *WinConditionEvaluator, emit func(log.GameEvent)) *CorpAI {
	if emit == nil {
		emit = func(log.GameEvent) {}
	}
	return &CorpAI{
		state:    state,
		rules:    rules,
		rng:      rng,
		emit:     emit,
		win:      win,
		Strategy: Strategy(rng.Intn(strategyCount)),
	}
}

// TakeTurn spends every Corporation click. It returns the actions taken in
// order. A deck exhausted by a draw ends the game and the turn.
func (ai *CorpAI) TakeTurn() []CorpAction {
	var taken []CorpAction
	corp := ai.state.Corp
	for corp.Ledger.Clicks() > 0 && !ai.state.Over {
		action := ai.decide()
		if err := ai.perform(action); err != nil {
			// decide only offers feasible actions; fall back to the basic
			// credit action if one still fails.
			action = CorpGainCredit
			if err := ai.perform(action); err != nil {
				break
			}
		}
		taken = append(taken, action)
		if ai.win != nil && ai.win.Evaluate() {
			break
		}
	}
	return taken
}

// Weights returns the current weight of every action, with infeasible
// actions at zero.
func (ai *CorpAI) Weights() []int {
	corp := ai.state.Corp
	w := make([]int, corpActionCount)
	w[CorpDraw] = 10
	w[CorpGainCredit] = 10
	w[CorpInstallICE] = 10

	switch ai.Strategy {
	case StrategyEconomic:
		w[CorpGainCredit] += 20
		w[CorpInstallAsset] += 15
		w[CorpPlayOperation] += 10
	case StrategyAggressive:
		w[CorpInstallAgenda] += 20
		w[CorpAdvance] += 25
	case StrategyDefensive:
		w[CorpInstallICE] += 20
		w[CorpRez] += 10
	default:
		w[CorpInstallAgenda] += 5
		w[CorpAdvance] += 10
	}

	if corp.Ledger.Credits() < 3 {
		w[CorpGainCredit] += 15
		w[CorpInstallICE] -= 5
		w[CorpInstallAgenda] -= 5
	}
	if corp.Deck.HandCount() < 3 {
		w[CorpDraw] += 15
	}
	if ai.handCard(CardTypeAgenda) >= 0 {
		w[CorpInstallAgenda] += 10
	}
	if ai.handCard(CardTypeAsset) >= 0 {
		w[CorpInstallAsset] += 10
	}
	if ai.affordableOperation() >= 0 {
		w[CorpPlayOperation] += 10
	}
	if ai.advanceTarget() != nil {
		w[CorpAdvance] += 15
	}
	if ai.rezTarget() != nil {
		w[CorpRez] += 10
	}

	for a := CorpAction(0); a < corpActionCount; a++ {
		if w[a] < 0 || !ai.feasible(a) {
			w[a] = 0
		}
	}
	return w
}

func (ai *CorpAI) decide() CorpAction {
	corp := ai.state.Corp
	if corp.Deck.HandCount() == 0 && ai.feasible(CorpDraw) {
		return CorpDraw
	}
	if i := weightedPick(ai.rng, ai.Weights()); i >= 0 {
		return CorpAction(i)
	}
	return CorpGainCredit
}

func (ai *CorpAI) feasible(a CorpAction) bool {
	corp := ai.state.Corp
	switch a {
	case CorpDraw:
		return corp.Deck.DrawCount()+corp.Deck.DiscardCount() > 0
	case CorpGainCredit:
		return true
	case CorpInstallICE:
		return ai.handCard(CardTypeICE) >= 0
	case CorpInstallAgenda:
		return ai.handCard(CardTypeAgenda) >= 0 && corp.Servers.FirstEmptyRemote() != nil
	case CorpInstallAsset:
		return ai.handCard(CardTypeAsset) >= 0 && corp.Servers.FirstEmptyRemote() != nil
	case CorpAdvance:
		return ai.advanceTarget() != nil && corp.Ledger.Credits() >= 1
	case CorpRez:
		return ai.rezTarget() != nil
	case CorpPlayOperation:
		return ai.affordableOperation() >= 0
	}
	return false
}

func (ai *CorpAI) perform(a CorpAction) error {
	corp := ai.state.Corp
	switch a {
	case CorpDraw:
		if err := corp.Ledger.SpendClick(1); err != nil {
			return err
		}
		drawn, err := corp.Deck.Draw(1)
		for _, c := range drawn {
			ai.emit(log.NewDrawEvent(SideCorp.String(), c.Card.Name))
		}
		if errors.Is(err, ErrDeckExhausted) {
			ai.win.DeckExhausted(SideCorp)
			return nil
		}
		return err

	case CorpGainCredit:
		if err := corp.Ledger.Charge(Cost{Clicks: 1}); err != nil {
			return err
		}
		_ = corp.Ledger.GainCredits(1)
		ai.emit(log.NewCreditsChangeEvent(SideCorp.String(), 1, corp.Ledger.Credits(), "click"))
		return nil

	case CorpInstallICE:
		idx := ai.handCard(CardTypeICE)
		if idx < 0 {
			return fmt.Errorf("install ice: %w", ErrInvalidCardIndex)
		}
		if err := corp.Ledger.SpendClick(1); err != nil {
			return err
		}
		card, _ := corp.Deck.Take(idx)
		srv := corp.Servers.LeastDefended()
		srv.InstallICE(card)
		ai.emit(log.NewInstallEvent(SideCorp.String(), card.Card.Name, srv.Name.String(), 0))
		ai.tryRez(card)
		return nil

	case CorpInstallAgenda, CorpInstallAsset:
		ct := CardTypeAgenda
		if a == CorpInstallAsset {
			ct = CardTypeAsset
		}
		idx := ai.handCard(ct)
		srv := corp.Servers.FirstEmptyRemote()
		if idx < 0 || srv == nil {
			return fmt.Errorf("%s: %w", a, ErrInvalidServer)
		}
		if err := corp.Ledger.SpendClick(1); err != nil {
			return err
		}
		card, _ := corp.Deck.Take(idx)
		if err := srv.InstallContent(card); err != nil {
			return err
		}
		ai.emit(log.NewInstallEvent(SideCorp.String(), card.Card.Name, srv.Name.String(), 0))
		if ct == CardTypeAsset {
			ai.tryRez(card)
		}
		return nil

	case CorpAdvance:
		card := ai.advanceTarget()
		if card == nil {
			return fmt.Errorf("advance: %w", ErrInvalidCardIndex)
		}
		if err := corp.Ledger.Charge(Cost{Clicks: 1, Credits: 1}); err != nil {
			return err
		}
		card.Advancement++
		ai.emit(log.NewAdvanceEvent(card.Card.Name, card.Advancement, card.Card.Agenda.AdvancementRequirement))
		if card.Advancement >= card.Card.Agenda.AdvancementRequirement {
			ai.score(card)
		}
		return nil

	case CorpRez:
		card := ai.rezTarget()
		if card == nil {
			return fmt.Errorf("rez: %w", ErrInvalidCardIndex)
		}
		if err := corp.Ledger.Charge(Cost{Clicks: 1, Credits: card.Card.Cost}); err != nil {
			return err
		}
		card.Rez()
		ai.emit(log.NewRezEvent(card.Card.Name, card.Card.Cost))
		return nil

	case CorpPlayOperation:
		idx := ai.affordableOperation()
		if idx < 0 {
			return fmt.Errorf("play operation: %w", ErrInvalidCardIndex)
		}
		card, _ := corp.Deck.CardInHand(idx)
		if err := corp.Ledger.Charge(Cost{Clicks: 1, Credits: card.Card.Cost}); err != nil {
			return err
		}
		_ = corp.Ledger.GainCredits(card.Card.Operation.GainCredits)
		_ = corp.Deck.Discard(card)
		ai.emit(log.NewPlayEvent(SideCorp.String(), card.Card.Name,
			fmt.Sprintf("gain %d credits", card.Card.Operation.GainCredits)))
		return nil
	}
	return fmt.Errorf("unknown corp action %d", int(a))
}

// tryRez rezzes a freshly installed card if the Corporation can pay for it.
func (ai *CorpAI) tryRez(card *CardInstance) {
	corp := ai.state.Corp
	if err := corp.Ledger.SpendCredits(card.Card.Cost); err != nil {
		return
	}
	card.Rez()
	ai.emit(log.NewRezEvent(card.Card.Name, card.Card.Cost))
}

func (ai *CorpAI) score(card *CardInstance) {
	corp := ai.state.Corp
	for _, srv := range corp.Servers {
		if srv.RemoveContent(card) {
			break
		}
	}
	corp.Deck.Score(card)
	points := card.Card.Agenda.AgendaPoints
	corp.AgendaPoints += points
	ai.emit(log.NewScoreEvent(card.Card.Name, points, corp.AgendaPoints))
	applied := corp.AdjustCompliance(points * ai.rules.ComplianceAgendaSwing)
	ai.emit(log.NewComplianceChangeEvent(applied, corp.Compliance, "agenda scored"))
}

// handCard returns the index of the first hand card of type ct, or -1.
func (ai *CorpAI) handCard(ct CardType) int {
	for i, c := range ai.state.Corp.Deck.Hand() {
		if c.Card.Type == ct {
			return i
		}
	}
	return -1
}

func (ai *CorpAI) affordableOperation() int {
	credits := ai.state.Corp.Ledger.Credits()
	for i, c := range ai.state.Corp.Deck.Hand() {
		if c.Card.Operation != nil && c.Card.Cost <= credits {
			return i
		}
	}
	return -1
}

// advanceTarget returns the installed agenda closest to scoring.
func (ai *CorpAI) advanceTarget() *CardInstance {
	var best *CardInstance
	bestLeft := 0
	for _, srv := range ai.state.Corp.Servers {
		for _, c := range srv.Content {
			if c.Card.Agenda == nil {
				continue
			}
			left := c.Card.Agenda.AdvancementRequirement - c.Advancement
			if best == nil || left < bestLeft {
				best, bestLeft = c, left
			}
		}
	}
	return best
}

// rezTarget returns the first unrezzed ICE or asset the Corporation can pay
// for, outermost ICE first.
func (ai *CorpAI) rezTarget() *CardInstance {
	credits := ai.state.Corp.Ledger.Credits()
	for _, srv := range ai.state.Corp.Servers {
		for _, c := range srv.ICE {
			if !c.Rezzed && c.Card.Cost <= credits {
				return c
			}
		}
		for _, c := range srv.Content {
			if c.Card.Asset != nil && !c.Rezzed && c.Card.Cost <= credits {
				return c
			}
		}
	}
	return nil
}
