package game

import (
	"fmt"
	"strings"
)

// --- Enums ---

type Side int

const (
	SideRunner Side = iota
	SideCorp
)

func (s Side) String() string {
	if s == SideCorp {
		return "corp"
	}
	return "runner"
}

// Other returns the opposing side.
func (s Side) Other() Side {
	return 1 - s
}

// ParseSide accepts "runner" or "corp" (any case).
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "runner":
		return SideRunner, nil
	case "corp", "corporation":
		return SideCorp, nil
	default:
		return 0, fmt.Errorf("unknown side %q", s)
	}
}

type CardType int

const (
	CardTypeProgram CardType = iota
	CardTypeIcebreaker
	CardTypeResource
	CardTypeHardware
	CardTypeEvent
	CardTypeICE
	CardTypeAsset
	CardTypeOperation
	CardTypeAgenda
)

func (ct CardType) String() string {
	switch ct {
	case CardTypeProgram:
		return "Program"
	case CardTypeIcebreaker:
		return "Icebreaker"
	case CardTypeResource:
		return "Resource"
	case CardTypeHardware:
		return "Hardware"
	case CardTypeEvent:
		return "Event"
	case CardTypeICE:
		return "ICE"
	case CardTypeAsset:
		return "Asset"
	case CardTypeOperation:
		return "Operation"
	case CardTypeAgenda:
		return "Agenda"
	default:
		return "Unknown"
	}
}

// Side returns the side that plays cards of this type.
func (ct CardType) Side() Side {
	switch ct {
	case CardTypeICE, CardTypeAsset, CardTypeOperation, CardTypeAgenda:
		return SideCorp
	default:
		return SideRunner
	}
}

// --- Card variants ---

// ProgramStats belongs to non-breaker programs.
type ProgramStats struct {
	MemoryUnits int
}

// BreakerStats belongs to icebreakers. BreakCost is charged per subroutine
// broken. Breaks lists the ICE subtypes the breaker can interface with;
// "all" matches any subtype.
type BreakerStats struct {
	MemoryUnits int
	Strength    int
	BreakCost   int
	Breaks      []string
}

// CanBreak reports whether the breaker interfaces with ICE of subtype.
func (b *BreakerStats) CanBreak(subtype string) bool {
	for _, t := range b.Breaks {
		if strings.EqualFold(t, "all") || strings.EqualFold(t, subtype) {
			return true
		}
	}
	return false
}

type HardwareStats struct {
	MemoryBonus int
}

type ResourceStats struct {
	CreditsPerTurn int // paid during the Runner's Setup
	CreditsPerRun  int // paid on each successful run
}

// EventStats describe a one-shot Runner event resolved on play.
type EventStats struct {
	GainCredits int
	DrawCards   int
	BypassIce   int // ICE skipped at the start of the next run
}

type ICEStats struct {
	Strength    int
	Subroutines int
	Subtype     string // Barrier, Code Gate, Sentry
}

type AssetStats struct {
	CreditsPerTurn int // paid during the Corp's Setup while rezzed
	CreditPool     int // credits placed on the card when rezzed; 0 means unlimited
}

type OperationStats struct {
	GainCredits int
}

type AgendaStats struct {
	AdvancementRequirement int
	AgendaPoints           int
}

// --- Card definition (static, from registry) ---

// Card is an immutable card definition. Exactly one variant block is set and
// it must match Type.
type Card struct {
	Name        string
	Description string
	Type        CardType
	Cost        int // install/play cost; rez cost for ICE and assets
	TrashCost   int

	Program   *ProgramStats
	Breaker   *BreakerStats
	Hardware  *HardwareStats
	Resource  *ResourceStats
	Event     *EventStats
	ICE       *ICEStats
	Asset     *AssetStats
	Operation *OperationStats
	Agenda    *AgendaStats
}

func (c *Card) String() string {
	return c.Name
}

// Side returns the side that owns this card.
func (c *Card) Side() Side {
	return c.Type.Side()
}

// MemoryUnits returns the MU this card consumes while installed.
func (c *Card) MemoryUnits() int {
	switch {
	case c.Program != nil:
		return c.Program.MemoryUnits
	case c.Breaker != nil:
		return c.Breaker.MemoryUnits
	}
	return 0
}

// Strength returns the printed strength of a breaker or ICE, 0 otherwise.
func (c *Card) Strength() int {
	switch {
	case c.Breaker != nil:
		return c.Breaker.Strength
	case c.ICE != nil:
		return c.ICE.Strength
	}
	return 0
}

// Validate checks that the variant block matches the card type.
func (c *Card) Validate() error {
	set := 0
	for _, ok := range []bool{
		c.Program != nil, c.Breaker != nil, c.Hardware != nil, c.Resource != nil,
		c.Event != nil, c.ICE != nil, c.Asset != nil, c.Operation != nil, c.Agenda != nil,
	} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("card %q: want exactly one variant block, have %d", c.Name, set)
	}
	var match bool
	switch c.Type {
	case CardTypeProgram:
		match = c.Program != nil
	case CardTypeIcebreaker:
		match = c.Breaker != nil
	case CardTypeHardware:
		match = c.Hardware != nil
	case CardTypeResource:
		match = c.Resource != nil
	case CardTypeEvent:
		match = c.Event != nil
	case CardTypeICE:
		match = c.ICE != nil
	case CardTypeAsset:
		match = c.Asset != nil
	case CardTypeOperation:
		match = c.Operation != nil
	case CardTypeAgenda:
		match = c.Agenda != nil
	}
	if !match {
		return fmt.Errorf("card %q: variant block does not match type %s", c.Name, c.Type)
	}
	if c.Breaker != nil && len(c.Breaker.Breaks) == 0 {
		return fmt.Errorf("card %q: breaker lists no ICE subtypes", c.Name)
	}
	if c.Cost < 0 || c.TrashCost < 0 {
		return fmt.Errorf("card %q: negative cost", c.Name)
	}
	return nil
}

// --- Zone types ---

type ZoneType int

const (
	ZoneDeck ZoneType = iota
	ZoneHand
	ZoneDiscard
	ZoneInstalled
	ZoneScore
	ZoneServer
)

func (z ZoneType) String() string {
	switch z {
	case ZoneDeck:
		return "Deck"
	case ZoneHand:
		return "Hand"
	case ZoneDiscard:
		return "Discard"
	case ZoneInstalled:
		return "Installed"
	case ZoneScore:
		return "Score Area"
	case ZoneServer:
		return "Server"
	default:
		return "Unknown"
	}
}

// --- CardInstance (runtime card in a zone) ---

type CardInstance struct {
	Card  *Card
	ID    int // unique instance ID within a session
	Owner Side
	Zone  ZoneType

	Installed   bool
	Rezzed      bool
	Advancement int
	Counters    map[string]int
}

// CounterCredits is the counter holding credits stored on a card.
const CounterCredits = "credits"

// Rez turns the card face up and loads any credits it stores.
func (ci *CardInstance) Rez() {
	ci.Rezzed = true
	if ci.Card.Asset != nil && ci.Card.Asset.CreditPool > 0 {
		if ci.Counters == nil {
			ci.Counters = make(map[string]int)
		}
		ci.Counters[CounterCredits] = ci.Card.Asset.CreditPool
	}
}

func (ci *CardInstance) String() string {
	if ci == nil {
		return "(empty)"
	}
	return ci.Card.Name
}

// DisplayString returns a human-readable description for the event log.
func (ci *CardInstance) DisplayString() string {
	if ci == nil {
		return "(empty)"
	}
	switch ci.Card.Type {
	case CardTypeIcebreaker:
		return fmt.Sprintf("%s (STR %d)", ci.Card.Name, ci.Card.Breaker.Strength)
	case CardTypeICE:
		if !ci.Rezzed {
			return fmt.Sprintf("%s (unrezzed)", ci.Card.Name)
		}
		return fmt.Sprintf("%s (%s STR %d)", ci.Card.Name, ci.Card.ICE.Subtype, ci.Card.ICE.Strength)
	case CardTypeAgenda:
		return fmt.Sprintf("%s (%d/%d)", ci.Card.Name, ci.Advancement, ci.Card.Agenda.AdvancementRequirement)
	}
	return ci.Card.Name
}

// --- Run approach ---

type Approach int

const (
	ApproachNone Approach = iota
	ApproachStealth
	ApproachAggressive
	ApproachCareful
)

func (a Approach) String() string {
	switch a {
	case ApproachStealth:
		return "stealth"
	case ApproachAggressive:
		return "aggressive"
	case ApproachCareful:
		return "careful"
	default:
		return "none"
	}
}

// ParseApproach accepts the bare name or the --flag form.
func ParseApproach(s string) (Approach, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "--") {
	case "", "none", "standard":
		return ApproachNone, nil
	case "stealth":
		return ApproachStealth, nil
	case "aggressive":
		return ApproachAggressive, nil
	case "careful":
		return ApproachCareful, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidApproach, s)
	}
}

// --- Phases ---

type Phase int

const (
	PhaseSetup Phase = iota
	PhaseAction
	PhaseEnd
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "Setup"
	case PhaseAction:
		return "Action"
	case PhaseEnd:
		return "End"
	default:
		return "None"
	}
}
