package game

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/peterkuimelis/neondominance/internal/log"
)

// RunPhase is the position of a run in its state machine.
type RunPhase int

const (
	RunInitiated RunPhase = iota
	RunApproachChosen
	RunEncounteringIce
	RunIceBroken
	RunIcePassed
	RunIceNotBroken
	RunDamaged
	RunFailed
	RunPassedAllIce
	RunSuccessful
	RunJackedOut
)

func (p RunPhase) String() string {
	switch p {
	case RunInitiated:
		return "Initiated"
	case RunApproachChosen:
		return "ApproachChosen"
	case RunEncounteringIce:
		return "EncounteringIce"
	case RunIceBroken:
		return "IceBroken"
	case RunIcePassed:
		return "IcePassed"
	case RunIceNotBroken:
		return "IceNotBroken"
	case RunDamaged:
		return "Damaged"
	case RunFailed:
		return "Failed"
	case RunPassedAllIce:
		return "PassedAllIce"
	case RunSuccessful:
		return "Successful"
	case RunJackedOut:
		return "JackedOut"
	default:
		return "Unknown"
	}
}

// Outcome is the externally visible result of a run.
type Outcome int

const (
	OutcomeInProgress Outcome = iota
	OutcomeSuccessful
	OutcomeFailed
	OutcomeJackedOut
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccessful:
		return "successful"
	case OutcomeFailed:
		return "failed"
	case OutcomeJackedOut:
		return "jacked-out"
	default:
		return "in-progress"
	}
}

// EncounterResult records how one ICE was resolved.
type EncounterResult int

const (
	EncounterBroken EncounterResult = iota
	EncounterBypassed
	EncounterPassed
	EncounterNotBroken
)

func (r EncounterResult) String() string {
	switch r {
	case EncounterBroken:
		return "broken"
	case EncounterBypassed:
		return "bypassed"
	case EncounterPassed:
		return "passed"
	case EncounterNotBroken:
		return "not-broken"
	default:
		return "unknown"
	}
}

// Encounter is one resolved ICE of a run.
type Encounter struct {
	Index           int             `json:"index"`
	ICE             string          `json:"ice"`
	ICEStrength     int             `json:"ice_strength"`
	Breaker         string          `json:"breaker,omitempty"`
	BreakerStrength int             `json:"breaker_strength"`
	Credits         int             `json:"credits"`
	Result          EncounterResult `json:"result"`
}

// RunState is a snapshot of a run. Sessions hand out copies; mutating one
// has no effect on the game.
type RunState struct {
	ID           string      `json:"id"`
	Server       ServerName  `json:"server"`
	Approach     Approach    `json:"approach"`
	Phase        RunPhase    `json:"phase"`
	IceIndex     int         `json:"ice_index"`
	IceTotal     int         `json:"ice_total"`
	CreditsSpent int         `json:"credits_spent"`
	Damage       int         `json:"damage"`
	Outcome      Outcome     `json:"outcome"`
	Terminal     bool        `json:"terminal"`
	Encounters   []Encounter `json:"encounters"`
	Accessed     []CardView  `json:"accessed"`
	Failure      string      `json:"failure,omitempty"` // error kind that forced the failure
	Trail        []RunPhase  `json:"trail"`             // every phase entered, in order
}

func (rs *RunState) clone() RunState {
	c := *rs
	c.Encounters = append([]Encounter(nil), rs.Encounters...)
	c.Accessed = append([]CardView(nil), rs.Accessed...)
	c.Trail = append([]RunPhase(nil), rs.Trail...)
	return c
}

// runNamespace scopes run IDs; an ID is a function of (seed, run number).
var runNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("neondominance/run"))

// RunEngine drives one run at a time against the Corporation's servers.
type RunEngine struct {
	state *GameState
	rules Rules
	rng   RNG
	seed  int64
	emit  func(log.GameEvent)

	run     *RunState
	server  *Server
	skips   int // ICE still to skip this run
	charged int // credits already taken from the ledger this run
	seq     int

	// trashable holds accessed cards the Runner may still pay to trash.
	trashable []*CardInstance
}

// NewRunEngine builds an engine over state. emit receives every run event.
func NewRunEngine(state *GameState, rules Rules, rng RNG, seed int64, emit func(log.GameEvent)) *RunEngine {
	if emit == nil {
		emit = func(log.GameEvent) {}
	}
	return &RunEngine{state: state, rules: rules, rng: rng, seed: seed, emit: emit}
}

// Active reports whether a run is in progress.
func (e *RunEngine) Active() bool {
	return e.run != nil && !e.run.Terminal
}

// Current returns the current or most recent run.
func (e *RunEngine) Current() (RunState, bool) {
	if e.run == nil {
		return RunState{}, false
	}
	return e.run.clone(), true
}

// Start begins a run on name. The click and any approach surcharge are paid
// together; on a shortfall nothing changes.
func (e *RunEngine) Start(name ServerName, approach Approach) (RunState, error) {
	if e.Active() {
		return RunState{}, fmt.Errorf("run %s: %w", e.run.ID, ErrRunInProgress)
	}
	srv := e.state.Corp.Servers.Get(name)
	if srv == nil {
		return RunState{}, fmt.Errorf("%w: %d", ErrInvalidServer, int(name))
	}
	runner := e.state.Runner

	cost := Cost{Clicks: 1}
	if approach == ApproachStealth {
		cost.Credits = e.rules.StealthCost
	}
	if err := runner.Ledger.Charge(cost); err != nil {
		return RunState{}, fmt.Errorf("run %s: %w", name, err)
	}

	e.trashable = nil
	e.seq++
	e.run = &RunState{
		ID:           uuid.NewSHA1(runNamespace, []byte(strconv.FormatInt(e.seed, 10)+"/"+strconv.Itoa(e.seq))).String(),
		Server:       name,
		Approach:     approach,
		IceTotal:     len(srv.ICE),
		CreditsSpent: cost.Credits,
	}
	e.server = srv
	e.charged = cost.Credits
	e.skips = runner.BypassNext
	runner.BypassNext = 0
	e.setPhase(RunInitiated)
	e.emit(log.NewRunStartEvent(e.run.ID, name.String(), approach.String()))

	e.setPhase(RunApproachChosen)
	if approach == ApproachStealth && len(srv.ICE) > 0 && rollPercent(e.rng, e.rules.StealthSkipPercent) {
		e.skips++
	}

	e.advance()
	return e.run.clone(), nil
}

// Continue resolves the ICE currently being encountered.
func (e *RunEngine) Continue() (RunState, error) {
	if err := e.checkActive(); err != nil {
		return e.snapshot(), err
	}
	ice := e.server.ICE[e.run.IceIndex]
	enc := Encounter{Index: e.run.IceIndex, ICE: ice.Card.Name, ICEStrength: ice.Card.ICE.Strength}

	if !ice.Rezzed {
		enc.Result = EncounterPassed
		e.run.Encounters = append(e.run.Encounters, enc)
		e.setPhase(RunIcePassed)
		e.emit(log.NewIcePassedEvent(ice.Card.Name))
		e.run.IceIndex++
		e.advance()
		return e.run.clone(), nil
	}

	breaker := e.state.Runner.BestBreaker(ice)
	if breaker != nil {
		enc.Breaker = breaker.Card.Name
		enc.BreakerStrength = breaker.Card.Breaker.Strength + e.rules.strengthModifier(e.run.Approach)
	}
	if breaker == nil || enc.BreakerStrength < enc.ICEStrength {
		e.emit(log.NewIceNotBrokenEvent(ice.Card.Name, enc.BreakerStrength, enc.ICEStrength))
		e.fail(enc)
		return e.run.clone(), nil
	}

	cost := breaker.Card.Breaker.BreakCost * ice.Card.ICE.Subroutines
	if have := e.state.Runner.Ledger.Credits() - e.pending(); have < cost {
		err := &ResourceError{Resource: ResourceCredits, Need: cost, Have: have}
		e.run.Failure = ErrorKind(err)
		e.emit(log.NewInsufficientResourceEvent(SideRunner.String(), fmt.Sprintf("break %s: %v", ice.Card.Name, err)))
		e.fail(enc)
		return e.run.clone(), nil
	}

	enc.Credits = cost
	enc.Result = EncounterBroken
	e.run.CreditsSpent += cost
	e.run.Encounters = append(e.run.Encounters, enc)
	e.setPhase(RunIceBroken)
	e.emit(log.NewIceBrokenEvent(ice.Card.Name, enc.BreakerStrength, cost))
	e.run.IceIndex++
	e.advance()
	return e.run.clone(), nil
}

// Resolve continues until the run reaches a terminal state.
func (e *RunEngine) Resolve() (RunState, error) {
	if err := e.checkActive(); err != nil {
		return e.snapshot(), err
	}
	for e.Active() {
		if _, err := e.Continue(); err != nil {
			return e.snapshot(), err
		}
	}
	return e.run.clone(), nil
}

// JackOut aborts the run in progress. It always succeeds; the jack-out fee is
// capped at the credits the Runner has left.
func (e *RunEngine) JackOut() (RunState, error) {
	if err := e.checkActive(); err != nil {
		return e.snapshot(), err
	}
	cost := e.rules.jackOutCost(e.run.Approach)
	if have := e.state.Runner.Ledger.Credits() - e.pending(); cost > have {
		cost = have
	}
	e.run.CreditsSpent += cost
	e.setPhase(RunJackedOut)
	e.emit(log.NewJackOutEvent(e.run.Server.String(), cost))
	if err := e.finish(OutcomeJackedOut); err != nil {
		return e.run.clone(), err
	}
	return e.run.clone(), nil
}

func (e *RunEngine) setPhase(p RunPhase) {
	e.run.Phase = p
	e.run.Trail = append(e.run.Trail, p)
}

func (e *RunEngine) checkActive() error {
	if e.run == nil {
		return ErrNoActiveRun
	}
	if e.run.Terminal {
		return fmt.Errorf("run %s is %s: %w", e.run.ID, e.run.Outcome, ErrRunAlreadyResolved)
	}
	return nil
}

func (e *RunEngine) snapshot() RunState {
	if e.run == nil {
		return RunState{}
	}
	return e.run.clone()
}

// pending is the credits this run owes but has not yet taken.
func (e *RunEngine) pending() int {
	return e.run.CreditsSpent - e.charged
}

// advance skips bypassed ICE and stops at the next encounter, or finishes
// the run successfully when no ICE remain.
func (e *RunEngine) advance() {
	for e.run.IceIndex < len(e.server.ICE) {
		ice := e.server.ICE[e.run.IceIndex]
		if e.skips == 0 {
			e.setPhase(RunEncounteringIce)
			e.emit(log.NewIceEncounterEvent(ice.Card.Name, e.run.IceIndex, ice.Card.ICE.Strength))
			return
		}
		e.skips--
		e.run.Encounters = append(e.run.Encounters, Encounter{
			Index:       e.run.IceIndex,
			ICE:         ice.Card.Name,
			ICEStrength: ice.Card.ICE.Strength,
			Result:      EncounterBypassed,
		})
		e.setPhase(RunIceBroken)
		e.emit(log.NewIceBypassedEvent(ice.Card.Name))
		e.run.IceIndex++
	}
	e.skips = 0
	e.setPhase(RunPassedAllIce)
	e.setPhase(RunSuccessful)
	// The ledger was validated at every break, so finishing cannot fail here.
	_ = e.finish(OutcomeSuccessful)
}

func (e *RunEngine) fail(enc Encounter) {
	enc.Result = EncounterNotBroken
	e.run.Encounters = append(e.run.Encounters, enc)
	e.setPhase(RunIceNotBroken)
	e.run.Damage = e.rules.failureDamage(e.run.Approach)
	e.setPhase(RunDamaged)
	e.setPhase(RunFailed)
	_ = e.finish(OutcomeFailed)
}

// finish applies the run's outcome to permanent side state. It runs exactly
// once per run, at the terminal transition.
func (e *RunEngine) finish(outcome Outcome) error {
	runner := e.state.Runner
	e.run.Outcome = outcome
	e.run.Terminal = true
	e.skips = 0

	owed := e.pending()
	e.charged = e.run.CreditsSpent
	if owed > 0 {
		if err := runner.Ledger.SpendCredits(owed); err != nil {
			return fmt.Errorf("settle run %s: %w", e.run.ID, err)
		}
		e.emit(log.NewCreditsChangeEvent(SideRunner.String(), -owed, runner.Ledger.Credits(), "run"))
	}

	switch outcome {
	case OutcomeFailed:
		runner.NeuralDamage += e.run.Damage
		e.emit(log.NewDamageEvent(e.run.Damage, runner.NeuralDamage))
		e.emit(log.NewRunFailedEvent(e.run.Server.String()))

	case OutcomeSuccessful:
		runner.SuccessfulRuns++
		e.emit(log.NewRunSuccessEvent(e.run.Server.String(), runner.SuccessfulRuns))
		e.access()
		if e.rules.ComplianceRunLoss > 0 {
			e.compliance(-e.rules.ComplianceRunLoss, "successful run")
		}
		if runner.SuccessfulRuns%e.rules.RunsPerLiberation == 0 {
			runner.GroupsLiberated++
			e.emit(log.NewLiberationEvent(runner.GroupsLiberated))
			if e.rules.ComplianceLiberationLoss > 0 {
				e.compliance(-e.rules.ComplianceLiberationLoss, "group liberated")
			}
		}
		perRun := 0
		for _, c := range runner.Deck.Installed() {
			if c.Card.Resource != nil {
				perRun += c.Card.Resource.CreditsPerRun
			}
		}
		if perRun > 0 {
			_ = runner.Ledger.GainCredits(perRun)
			e.emit(log.NewCreditsChangeEvent(SideRunner.String(), perRun, runner.Ledger.Credits(), "run payout"))
		}
	}
	return nil
}

// access reveals the server's protected cards. Accessed agendas are exposed
// to Archives and their points go to the Runner.
func (e *RunEngine) access() {
	corp := e.state.Corp
	var cards []*CardInstance
	switch e.run.Server {
	case ServerRD:
		if top := corp.Deck.Peek(); top != nil {
			cards = append(cards, top)
		}
	case ServerHQ:
		if hand := corp.Deck.Hand(); len(hand) > 0 {
			cards = append(cards, hand[e.rng.Intn(len(hand))])
		}
	case ServerArchives:
		cards = corp.Deck.DiscardPile()
	default:
		cards = append(cards, e.server.Content...)
	}

	for _, c := range cards {
		e.run.Accessed = append(e.run.Accessed, ViewCard(c))
		e.emit(log.NewAccessEvent(e.run.Server.String(), c.Card.Name))
		if c.Card.Asset != nil && c.Card.TrashCost > 0 && !e.run.Server.IsCentral() {
			e.trashable = append(e.trashable, c)
		}
		if c.Card.Agenda == nil || e.run.Server == ServerArchives {
			continue
		}
		e.server.RemoveContent(c)
		c.Advancement = 0
		corp.Deck.Trash(c)
		points := c.Card.Agenda.AgendaPoints
		e.state.Runner.AgendaPoints += points
		e.emit(log.NewAgendaExposedEvent(c.Card.Name, points))
		e.compliance(-points*e.rules.ComplianceAgendaSwing, "agenda exposed")
	}
}

// TrashAccessed pays the trash cost of a card accessed on the last
// successful run and moves it to Archives. cardID 0 picks the first such
// card.
func (e *RunEngine) TrashAccessed(cardID int) (*CardInstance, error) {
	if e.run == nil {
		return nil, ErrNoActiveRun
	}
	if e.Active() {
		return nil, fmt.Errorf("trash: %w", ErrRunInProgress)
	}
	idx := -1
	for i, c := range e.trashable {
		if cardID == 0 || c.ID == cardID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("trash: card %d was not accessed: %w", cardID, ErrInvalidCardIndex)
	}
	card := e.trashable[idx]
	runner := e.state.Runner
	if err := runner.Ledger.SpendCredits(card.Card.TrashCost); err != nil {
		return nil, fmt.Errorf("trash %s: %w", card.Card.Name, err)
	}
	e.trashable = append(e.trashable[:idx], e.trashable[idx+1:]...)
	e.state.Corp.Servers.Get(e.run.Server).RemoveContent(card)
	e.state.Corp.Deck.Trash(card)
	e.emit(log.NewCreditsChangeEvent(SideRunner.String(), -card.Card.TrashCost, runner.Ledger.Credits(), "trash "+card.Card.Name))
	e.emit(log.NewDiscardEvent(SideCorp.String(), card.Card.Name, "trashed by the Runner"))
	return card, nil
}

// closeAccess ends the window for trashing accessed cards.
func (e *RunEngine) closeAccess() {
	e.trashable = nil
}

func (e *RunEngine) compliance(delta int, reason string) {
	applied := e.state.Corp.AdjustCompliance(delta)
	e.emit(log.NewComplianceChangeEvent(applied, e.state.Corp.Compliance, reason))
}
