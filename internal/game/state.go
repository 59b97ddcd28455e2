package game

// RunnerState is the Runner's entire state.
type RunnerState struct {
	Ledger *Ledger
	Deck   *DeckManager

	NeuralDamage    int
	SuccessfulRuns  int
	GroupsLiberated int
	AgendaPoints    int // from agendas exposed on successful runs

	// BypassNext counts ICE the next run skips, granted by events.
	BypassNext int
}

// Breakers returns the installed icebreakers.
func (r *RunnerState) Breakers() []*CardInstance {
	var result []*CardInstance
	for _, c := range r.Deck.Installed() {
		if c.Card.Breaker != nil {
			result = append(result, c)
		}
	}
	return result
}

// BestBreaker returns the strongest installed breaker that can interface
// with ice, or nil. Ties go to the cheaper break cost, then to install order.
func (r *RunnerState) BestBreaker(ice *CardInstance) *CardInstance {
	var best *CardInstance
	for _, c := range r.Breakers() {
		if !c.Card.Breaker.CanBreak(ice.Card.ICE.Subtype) {
			continue
		}
		switch {
		case best == nil:
			best = c
		case c.Card.Breaker.Strength > best.Card.Breaker.Strength:
			best = c
		case c.Card.Breaker.Strength == best.Card.Breaker.Strength &&
			c.Card.Breaker.BreakCost < best.Card.Breaker.BreakCost:
			best = c
		}
	}
	return best
}

// CorpState is the Corporation's entire state.
type CorpState struct {
	Ledger  *Ledger
	Deck    *DeckManager
	Servers Servers

	Compliance                int // 0-100
	ConsecutiveComplianceDays int
	AgendaPoints              int
}

// AdjustCompliance moves compliance by delta, clamped to 0-100, and returns
// the applied change.
func (c *CorpState) AdjustCompliance(delta int) int {
	next := c.Compliance + delta
	if next < 0 {
		next = 0
	}
	if next > 100 {
		next = 100
	}
	applied := next - c.Compliance
	c.Compliance = next
	return applied
}

// --- GameState ---

// GameState holds the complete state of a session.
type GameState struct {
	Runner *RunnerState
	Corp   *CorpState

	Turn  int // 1-based turn counter
	Day   int // completed Runner+Corp turn pairs
	Side  Side
	Phase Phase

	// Game result
	Over   bool
	Winner Side
	Reason string

	// ID counter for card instances
	nextID int
}

// NextID generates a unique card instance ID.
func (gs *GameState) NextID() int {
	gs.nextID++
	return gs.nextID
}

// CreateCardInstance creates a CardInstance from a Card definition.
func (gs *GameState) CreateCardInstance(card *Card, owner Side) *CardInstance {
	return &CardInstance{
		Card:     card,
		ID:       gs.NextID(),
		Owner:    owner,
		Zone:     ZoneDeck,
		Counters: make(map[string]int),
	}
}

// LedgerFor returns the ledger of side.
func (gs *GameState) LedgerFor(side Side) *Ledger {
	if side == SideCorp {
		return gs.Corp.Ledger
	}
	return gs.Runner.Ledger
}

// DeckFor returns the deck manager of side.
func (gs *GameState) DeckFor(side Side) *DeckManager {
	if side == SideCorp {
		return gs.Corp.Deck
	}
	return gs.Runner.Deck
}
