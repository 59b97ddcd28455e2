package game

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/peterkuimelis/neondominance/internal/log"
)

// SessionConfig holds configuration for creating a new game session.
type SessionConfig struct {
	Seed           int64
	Rules          Rules   // zero value means DefaultRules()
	RunnerDeck     []*Card // Runner's deck (card definitions)
	CorpDeck       []*Card // Corporation's deck (card definitions)
	RunnerDeckName string
	CorpDeckName   string
	Logger         log.EventLogger
	Zap            *zap.Logger
	NoShuffle      bool // skip the opening shuffle (for deterministic tests)
}

// GameSession owns every component of one game. It is not safe for
// concurrent use; transports serialise commands per session.
type GameSession struct {
	state  *GameState
	rules  Rules
	seed   int64
	logger log.EventLogger
	zap    *zap.Logger

	runs  *RunEngine
	turns *TurnController
	ai    *CorpAI
	win   *WinConditionEvaluator

	deckSize   [2]int
	runnerName string
	corpName   string
}

// NewSession builds both sides from cfg, shuffles, deals opening hands and
// starts the Runner's first turn.
func NewSession(cfg SessionConfig) (*GameSession, error) {
	rules := cfg.Rules
	if rules == (Rules{}) {
		rules = DefaultRules()
	}
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("rules: %w", err)
	}
	for _, side := range []struct {
		side  Side
		cards []*Card
	}{{SideRunner, cfg.RunnerDeck}, {SideCorp, cfg.CorpDeck}} {
		if len(side.cards) == 0 {
			return nil, fmt.Errorf("%s deck is empty", side.side)
		}
		for _, c := range side.cards {
			if err := c.Validate(); err != nil {
				return nil, err
			}
			if c.Side() != side.side {
				return nil, fmt.Errorf("%s deck contains %s card %s", side.side, c.Side(), c.Name)
			}
		}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	z := cfg.Zap
	if z == nil {
		z = zap.NewNop()
	}

	s := &GameSession{
		rules:      rules,
		seed:       cfg.Seed,
		logger:     logger,
		zap:        z.With(zap.Int64("seed", cfg.Seed)),
		runnerName: cfg.RunnerDeckName,
		corpName:   cfg.CorpDeckName,
		deckSize:   [2]int{len(cfg.RunnerDeck), len(cfg.CorpDeck)},
	}

	rng := NewRNG(cfg.Seed)
	gs := &GameState{Side: SideRunner, Phase: PhaseSetup}
	s.state = gs

	build := func(side Side, cards []*Card) *DeckManager {
		instances := make([]*CardInstance, 0, len(cards))
		for _, c := range cards {
			instances = append(instances, gs.CreateCardInstance(c, side))
		}
		dm := NewDeckManager(side, rng, instances)
		dm.OnReshuffle = func() { s.emit(log.NewReshuffleEvent(side.String())) }
		return dm
	}
	gs.Runner = &RunnerState{
		Ledger: NewLedger(rules.RunnerStartCredits, rules.RunnerMemory),
		Deck:   build(SideRunner, cfg.RunnerDeck),
	}
	gs.Corp = &CorpState{
		Ledger:     NewLedger(rules.CorpStartCredits, 0),
		Deck:       build(SideCorp, cfg.CorpDeck),
		Servers:    NewServers(),
		Compliance: rules.InitialCompliance,
	}

	s.win = NewWinConditionEvaluator(gs, rules, s.emit)
	s.runs = NewRunEngine(gs, rules, rng, cfg.Seed, s.emit)
	s.ai = NewCorpAI(gs, rules, rng, s.win, s.emit)
	s.turns = NewTurnController(gs, rules, s.runs, s.ai, s.win, s.emit)

	for _, dm := range []*DeckManager{gs.Runner.Deck, gs.Corp.Deck} {
		if !cfg.NoShuffle {
			dm.Shuffle()
			s.emit(log.NewShuffleEvent(dm.Side().String()))
		}
		drawn, err := dm.Draw(rules.InitialHandSize)
		for _, c := range drawn {
			s.emit(log.NewDrawEvent(dm.Side().String(), c.Card.Name))
		}
		if err != nil {
			return nil, fmt.Errorf("opening hand: %w", err)
		}
	}

	s.zap.Info("session started",
		zap.String("corp_strategy", s.ai.Strategy.String()),
		zap.Int("runner_deck", s.deckSize[SideRunner]),
		zap.Int("corp_deck", s.deckSize[SideCorp]))
	s.turns.BeginTurn()
	return s, nil
}

// emit stamps turn and phase on e and logs it.
func (s *GameSession) emit(e log.GameEvent) {
	e.Turn = s.state.Turn
	e.Phase = s.state.Phase.String()
	s.logger.Log(e)
	if e.Type == log.EventWin {
		s.zap.Info("game over", zap.String("winner", e.Side), zap.String("reason", s.state.Reason))
	}
}

// guard rejects commands from a side that may not act right now.
func (s *GameSession) guard(side Side) error {
	gs := s.state
	if gs.Over {
		return ErrGameOver
	}
	if side != gs.Side {
		return fmt.Errorf("%s: %w", side, ErrNotYourTurn)
	}
	if gs.Phase != PhaseAction {
		return fmt.Errorf("%s phase: %w", gs.Phase, ErrWrongPhase)
	}
	return nil
}

// guardIdle is guard plus no run in progress.
func (s *GameSession) guardIdle(side Side) error {
	if err := s.guard(side); err != nil {
		return err
	}
	if s.runs.Active() {
		return ErrRunInProgress
	}
	return nil
}

// --- Commands ---

// Draw spends a click to draw one card. An empty deck and discard end the
// game against side.
func (s *GameSession) Draw(side Side) (*CardInstance, error) {
	if err := s.guardIdle(side); err != nil {
		return nil, err
	}
	ledger, dm := s.state.LedgerFor(side), s.state.DeckFor(side)
	if err := ledger.SpendClick(1); err != nil {
		return nil, fmt.Errorf("draw: %w", err)
	}
	drawn, err := dm.Draw(1)
	if errors.Is(err, ErrDeckExhausted) {
		s.win.DeckExhausted(side)
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	s.emit(log.NewDrawEvent(side.String(), drawn[0].Card.Name))
	return drawn[0], nil
}

// Install installs the hand card at handIndex into the Runner's rig, or
// plays it if it is an event. Click, credits and MU are charged together.
func (s *GameSession) Install(side Side, handIndex int) (*CardInstance, error) {
	if err := s.guardIdle(side); err != nil {
		return nil, err
	}
	if side != SideRunner {
		return nil, fmt.Errorf("install: the Corporation installs through its AI: %w", ErrNotYourTurn)
	}
	runner := s.state.Runner
	card, err := runner.Deck.CardInHand(handIndex)
	if err != nil {
		return nil, fmt.Errorf("install: %w", err)
	}

	cost := Cost{Clicks: 1, Credits: card.Card.Cost, Memory: card.Card.MemoryUnits()}
	if err := runner.Ledger.Charge(cost); err != nil {
		return nil, fmt.Errorf("install %s: %w", card.Card.Name, err)
	}

	if card.Card.Event != nil {
		return card, s.playEvent(card)
	}

	if _, err := runner.Deck.Install(handIndex); err != nil {
		return nil, err
	}
	if hw := card.Card.Hardware; hw != nil {
		_ = runner.Ledger.AddMemoryCapacity(hw.MemoryBonus)
	}
	s.emit(log.NewInstallEvent(side.String(), card.Card.Name, "rig", card.Card.Cost))
	return card, nil
}

func (s *GameSession) playEvent(card *CardInstance) error {
	runner := s.state.Runner
	ev := card.Card.Event
	_ = runner.Deck.Discard(card)
	s.emit(log.NewPlayEvent(SideRunner.String(), card.Card.Name, card.Card.Description))
	if ev.GainCredits > 0 {
		_ = runner.Ledger.GainCredits(ev.GainCredits)
		s.emit(log.NewCreditsChangeEvent(SideRunner.String(), ev.GainCredits, runner.Ledger.Credits(), card.Card.Name))
	}
	runner.BypassNext += ev.BypassIce
	if ev.DrawCards > 0 {
		drawn, err := runner.Deck.Draw(ev.DrawCards)
		for _, c := range drawn {
			s.emit(log.NewDrawEvent(SideRunner.String(), c.Card.Name))
		}
		if errors.Is(err, ErrDeckExhausted) {
			s.win.DeckExhausted(SideRunner)
			return err
		}
	}
	return nil
}

// Discard spends a click to discard the hand card at handIndex.
func (s *GameSession) Discard(side Side, handIndex int) (*CardInstance, error) {
	if err := s.guardIdle(side); err != nil {
		return nil, err
	}
	ledger, dm := s.state.LedgerFor(side), s.state.DeckFor(side)
	card, err := dm.CardInHand(handIndex)
	if err != nil {
		return nil, fmt.Errorf("discard: %w", err)
	}
	if err := ledger.SpendClick(1); err != nil {
		return nil, fmt.Errorf("discard: %w", err)
	}
	_ = dm.Discard(card)
	s.emit(log.NewDiscardEvent(side.String(), card.Card.Name, "click"))
	return card, nil
}

// GainCredit is the basic action: one click for one credit.
func (s *GameSession) GainCredit(side Side) (int, error) {
	if err := s.guardIdle(side); err != nil {
		return 0, err
	}
	ledger := s.state.LedgerFor(side)
	if err := ledger.SpendClick(1); err != nil {
		return ledger.Credits(), fmt.Errorf("credit: %w", err)
	}
	_ = ledger.GainCredits(1)
	s.emit(log.NewCreditsChangeEvent(side.String(), 1, ledger.Credits(), "click"))
	return ledger.Credits(), nil
}

// Run starts a run on server. The returned state may already be terminal
// when the server has no ICE left to encounter.
func (s *GameSession) Run(side Side, server string, approach Approach) (RunState, error) {
	name, err := ParseServerName(server)
	if err != nil {
		return RunState{}, err
	}
	if err := s.guardIdle(side); err != nil {
		return RunState{}, err
	}
	if side != SideRunner {
		return RunState{}, fmt.Errorf("run: only the Runner runs: %w", ErrNotYourTurn)
	}
	rs, err := s.runs.Start(name, approach)
	if err != nil {
		return rs, err
	}
	s.afterRunStep(rs)
	return rs, nil
}

// ContinueRun resolves the next encounter of run runID. An empty runID
// means the current run.
func (s *GameSession) ContinueRun(runID string) (RunState, error) {
	if err := s.checkRun(runID); err != nil {
		return s.lastRun(), err
	}
	rs, err := s.runs.Continue()
	if err != nil {
		return rs, err
	}
	s.afterRunStep(rs)
	return rs, nil
}

// ResolveRun continues run runID until it is terminal.
func (s *GameSession) ResolveRun(runID string) (RunState, error) {
	if err := s.checkRun(runID); err != nil {
		return s.lastRun(), err
	}
	rs, err := s.runs.Resolve()
	if err != nil {
		return rs, err
	}
	s.afterRunStep(rs)
	return rs, nil
}

// JackOut aborts run runID. An empty runID means the current run.
func (s *GameSession) JackOut(runID string) (RunState, error) {
	if err := s.checkRun(runID); err != nil {
		return s.lastRun(), err
	}
	rs, err := s.runs.JackOut()
	if err != nil {
		return rs, err
	}
	s.afterRunStep(rs)
	return rs, nil
}

// checkRun validates that runID names the current, unresolved run.
func (s *GameSession) checkRun(runID string) error {
	cur, ok := s.runs.Current()
	if !ok {
		return ErrNoActiveRun
	}
	if runID != "" && runID != cur.ID {
		return fmt.Errorf("run %s: %w", runID, ErrNoActiveRun)
	}
	if cur.Terminal {
		return fmt.Errorf("run %s is %s: %w", cur.ID, cur.Outcome, ErrRunAlreadyResolved)
	}
	if s.state.Over {
		return ErrGameOver
	}
	return nil
}

func (s *GameSession) lastRun() RunState {
	rs, _ := s.runs.Current()
	return rs
}

func (s *GameSession) afterRunStep(rs RunState) {
	if rs.Terminal {
		s.win.Evaluate()
	}
}

// TrashAccessed pays to trash a card accessed on the Runner's last
// successful run this turn. It costs no click. cardID 0 picks the first
// trashable card.
func (s *GameSession) TrashAccessed(side Side, cardID int) (*CardInstance, error) {
	if err := s.guardIdle(side); err != nil {
		return nil, err
	}
	if side != SideRunner {
		return nil, fmt.Errorf("trash: only the Runner trashes accessed cards: %w", ErrNotYourTurn)
	}
	return s.runs.TrashAccessed(cardID)
}

// Uninstall trashes the Runner's installed card at index, releasing its MU.
// Removing hardware lowers the MU ceiling and fails if programs would no
// longer fit. It costs no click.
func (s *GameSession) Uninstall(side Side, index int) (*CardInstance, error) {
	if err := s.guardIdle(side); err != nil {
		return nil, err
	}
	if side != SideRunner {
		return nil, fmt.Errorf("uninstall: %w", ErrNotYourTurn)
	}
	runner := s.state.Runner
	rig := runner.Deck.Installed()
	if index < 0 || index >= len(rig) {
		return nil, fmt.Errorf("uninstall: %w: %d (rig has %d)", ErrInvalidCardIndex, index, len(rig))
	}
	card := rig[index]

	if hw := card.Card.Hardware; hw != nil {
		if err := runner.Ledger.AddMemoryCapacity(-hw.MemoryBonus); err != nil {
			return nil, fmt.Errorf("uninstall %s: %w", card.Card.Name, err)
		}
	}
	if mu := card.Card.MemoryUnits(); mu > 0 {
		if err := runner.Ledger.ReleaseMemory(mu); err != nil {
			return nil, fmt.Errorf("uninstall %s: %w", card.Card.Name, err)
		}
	}
	_ = runner.Deck.Discard(card)
	s.emit(log.NewDiscardEvent(side.String(), card.Card.Name, "uninstalled"))
	return card, nil
}

// ShuffleDiscard spends a click to shuffle side's discard pile back into its
// draw pile.
func (s *GameSession) ShuffleDiscard(side Side) (int, error) {
	if err := s.guardIdle(side); err != nil {
		return 0, err
	}
	ledger, dm := s.state.LedgerFor(side), s.state.DeckFor(side)
	if dm.DiscardCount() == 0 {
		return dm.DrawCount(), fmt.Errorf("reshuffle: %w: discard pile is empty", ErrInvalidAmount)
	}
	if err := ledger.SpendClick(1); err != nil {
		return dm.DrawCount(), fmt.Errorf("reshuffle: %w", err)
	}
	dm.ShuffleDiscardIntoDeck()
	s.emit(log.NewReshuffleEvent(side.String()))
	return dm.DrawCount(), nil
}

// EndTurn ends side's turn. The Corporation's turn is played immediately,
// so a Runner call returns in the Runner's next Action phase unless the game
// ended.
func (s *GameSession) EndTurn(side Side) (Phase, error) {
	phase, err := s.turns.EndTurn(side)
	if err == nil {
		s.runs.closeAccess()
	}
	return phase, err
}

// --- Queries ---

// Status returns a snapshot of the whole game.
func (s *GameSession) Status() Status {
	gs := s.state
	st := Status{
		Turn:            gs.Turn,
		Day:             gs.Day,
		Side:            gs.Side.String(),
		Phase:           gs.Phase.String(),
		Runner:          sideStatus(gs.Runner.Ledger, gs.Runner.Deck),
		MemoryUsed:      gs.Runner.Ledger.MemoryUsed(),
		MemoryAvailable: gs.Runner.Ledger.MemoryAvailable(),
		NeuralDamage:    gs.Runner.NeuralDamage,
		SuccessfulRuns:  gs.Runner.SuccessfulRuns,
		GroupsLiberated: gs.Runner.GroupsLiberated,
		RunnerPoints:    gs.Runner.AgendaPoints,
		Corp:            sideStatus(gs.Corp.Ledger, gs.Corp.Deck),
		Compliance:      gs.Corp.Compliance,
		ComplianceDays:  gs.Corp.ConsecutiveComplianceDays,
		AgendaPoints:    gs.Corp.AgendaPoints,
		GameOver:        gs.Over,
	}
	st.Corp.Installed = gs.Corp.Servers.CardCount()
	if rs, ok := s.runs.Current(); ok && !rs.Terminal {
		st.Run = &rs
	}
	if gs.Over {
		st.Winner = gs.Winner.String()
		st.Reason = gs.Reason
	}
	return st
}

func sideStatus(l *Ledger, dm *DeckManager) SideStatus {
	return SideStatus{
		Credits:   l.Credits(),
		Clicks:    l.Clicks(),
		Hand:      dm.HandCount(),
		Deck:      dm.DrawCount(),
		Discard:   dm.DiscardCount(),
		Installed: dm.InstalledCount(),
	}
}

// Credits returns side's credit balance.
func (s *GameSession) Credits(side Side) int {
	return s.state.LedgerFor(side).Credits()
}

// Memory returns the Runner's MU usage.
func (s *GameSession) Memory() Memory {
	l := s.state.Runner.Ledger
	return Memory{Available: l.MemoryAvailable(), Used: l.MemoryUsed(), Free: l.MemoryFree()}
}

// Installed lists the Runner's rig, or every card in the Corporation's
// servers.
func (s *GameSession) Installed(side Side) []CardView {
	if side == SideRunner {
		return viewCards(s.state.Runner.Deck.Installed())
	}
	var cards []*CardInstance
	for _, srv := range s.state.Corp.Servers {
		cards = append(cards, srv.ICE...)
		cards = append(cards, srv.Content...)
	}
	return viewCards(cards)
}

// Hand lists side's hand in index order.
func (s *GameSession) Hand(side Side) []CardView {
	return viewCards(s.state.DeckFor(side).Hand())
}

// Servers lists every server in canonical order.
func (s *GameSession) Servers() []ServerView {
	views := make([]ServerView, 0, ServerCount)
	for _, srv := range s.state.Corp.Servers {
		views = append(views, ServerView{
			Name:    srv.Name.String(),
			ICE:     viewCards(srv.ICE),
			Content: viewCards(srv.Content),
		})
	}
	return views
}

// Info returns the session's fixed parameters.
func (s *GameSession) Info() Info {
	return Info{
		Seed:           s.seed,
		RunnerDeck:     s.runnerName,
		CorpDeck:       s.corpName,
		RunnerDeckSize: s.deckSize[SideRunner],
		CorpDeckSize:   s.deckSize[SideCorp],
		CorpStrategy:   s.ai.Strategy.String(),
		Rules:          s.rules,
	}
}

// CurrentRun returns the current or most recent run.
func (s *GameSession) CurrentRun() (RunState, bool) {
	return s.runs.Current()
}

// Census counts every card side still holds in any zone. It always equals
// the side's original deck size.
func (s *GameSession) Census(side Side) int {
	n := s.state.DeckFor(side).Total()
	if side == SideCorp {
		n += s.state.Corp.Servers.CardCount()
	}
	return n
}

// DeckSize returns side's original deck size.
func (s *GameSession) DeckSize(side Side) int {
	return s.deckSize[side]
}

// Over reports whether the game has ended, and if so who won and why.
func (s *GameSession) Over() (bool, Side, string) {
	return s.state.Over, s.state.Winner, s.state.Reason
}

// ActiveSide returns the side whose turn it is.
func (s *GameSession) ActiveSide() Side {
	return s.state.Side
}

// Events returns the session's event history.
func (s *GameSession) Events() []log.GameEvent {
	return s.logger.Events()
}
