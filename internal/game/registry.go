package game

import (
	"fmt"
	"sort"
)

// CardRegistry maps card names to their constructor functions.
var CardRegistry = map[string]func() *Card{
	// Runner
	"Icebreaker.exe":      IcebreakerExe,
	"Corroder":            Corroder,
	"Gordian Blade":       GordianBlade,
	"Ninja":               Ninja,
	"Quantum Protocol":    QuantumProtocol,
	"Digital Lockpick":    DigitalLockpick,
	"Ghost Runner":        GhostRunner,
	"Net Shield":          NetShield,
	"Magnum Opus":         MagnumOpus,
	"Neural Matrix":       NeuralMatrix,
	"Memory Chip":         MemoryChip,
	"Cyberdeck Extension": CyberdeckExtension,
	"Crypto Cache":        CryptoCache,
	"Data Mining":         DataMining,
	"Sure Gamble":         SureGamble,
	"Diesel":              Diesel,
	"Run Exploit":         RunExploit,

	// Corporation
	"Ice Wall":             IceWall,
	"Enigma":               Enigma,
	"Rototurret":           Rototurret,
	"Neural Katana":        NeuralKatana,
	"Wall of Static":       WallOfStatic,
	"Tollbooth":            Tollbooth,
	"Priority Directive":   PriorityDirective,
	"Priority Requisition": PriorityRequisition,
	"Hostile Takeover":     HostileTakeover,
	"Adonis Campaign":      AdonisCampaign,
	"PAD Campaign":         PADCampaign,
	"Hedge Fund":           HedgeFund,
	"Corporate Strategy":   CorporateStrategy,
}

// LookupCard looks up a card by name and returns a new instance.
// Panics if the card is not found.
func LookupCard(name string) *Card {
	c, err := FindCard(name)
	if err != nil {
		panic(err.Error())
	}
	return c
}

// FindCard returns a fresh definition for name, or ErrUnknownCard.
func FindCard(name string) (*Card, error) {
	ctor, ok := CardRegistry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCard, name)
	}
	return ctor(), nil
}

// CardNames returns every registered name, sorted.
func CardNames() []string {
	names := make([]string, 0, len(CardRegistry))
	for name := range CardRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// --- Runner cards ---

func IcebreakerExe() *Card {
	return &Card{
		Name: "Icebreaker.exe", Type: CardTypeIcebreaker, Cost: 3,
		Description: "Break ice subroutines with strength <= 2.",
		Breaker:     &BreakerStats{MemoryUnits: 1, Strength: 2, BreakCost: 1, Breaks: []string{"all"}},
	}
}

func Corroder() *Card {
	return &Card{
		Name: "Corroder", Type: CardTypeIcebreaker, Cost: 2,
		Description: "Break barrier subroutines.",
		Breaker:     &BreakerStats{MemoryUnits: 1, Strength: 2, BreakCost: 1, Breaks: []string{"Barrier"}},
	}
}

func GordianBlade() *Card {
	return &Card{
		Name: "Gordian Blade", Type: CardTypeIcebreaker, Cost: 4,
		Description: "Break code gate subroutines.",
		Breaker:     &BreakerStats{MemoryUnits: 1, Strength: 2, BreakCost: 1, Breaks: []string{"Code Gate"}},
	}
}

func Ninja() *Card {
	return &Card{
		Name: "Ninja", Type: CardTypeIcebreaker, Cost: 4,
		Description: "Break sentry subroutines.",
		Breaker:     &BreakerStats{MemoryUnits: 1, Strength: 3, BreakCost: 1, Breaks: []string{"Sentry"}},
	}
}

func QuantumProtocol() *Card {
	return &Card{
		Name: "Quantum Protocol", Type: CardTypeIcebreaker, Cost: 4,
		Description: "Break up to 3 subroutines on a single piece of ice.",
		Breaker:     &BreakerStats{MemoryUnits: 2, Strength: 4, BreakCost: 1, Breaks: []string{"all"}},
	}
}

func DigitalLockpick() *Card {
	return &Card{
		Name: "Digital Lockpick", Type: CardTypeIcebreaker, Cost: 2,
		Description: "Break barrier ice subroutines.",
		Breaker:     &BreakerStats{MemoryUnits: 1, Strength: 3, BreakCost: 2, Breaks: []string{"Barrier"}},
	}
}

func GhostRunner() *Card {
	return &Card{
		Name: "Ghost Runner", Type: CardTypeIcebreaker, Cost: 3,
		Description: "Break stealth ice subroutines.",
		Breaker:     &BreakerStats{MemoryUnits: 1, Strength: 1, BreakCost: 0, Breaks: []string{"Stealth"}},
	}
}

func NetShield() *Card {
	return &Card{
		Name: "Net Shield", Type: CardTypeProgram, Cost: 2,
		Description: "Prevent the first point of net damage each turn.",
		Program:     &ProgramStats{MemoryUnits: 1},
	}
}

func MagnumOpus() *Card {
	return &Card{
		Name: "Magnum Opus", Type: CardTypeProgram, Cost: 5,
		Description: "Click: Gain 2 credits.",
		Program:     &ProgramStats{MemoryUnits: 2},
	}
}

func NeuralMatrix() *Card {
	return &Card{
		Name: "Neural Matrix", Type: CardTypeHardware, Cost: 2,
		Description: "+2 Memory Units.",
		Hardware:    &HardwareStats{MemoryBonus: 2},
	}
}

func MemoryChip() *Card {
	return &Card{
		Name: "Memory Chip", Type: CardTypeHardware, Cost: 1,
		Description: "+1 Memory Unit.",
		Hardware:    &HardwareStats{MemoryBonus: 1},
	}
}

func CyberdeckExtension() *Card {
	return &Card{
		Name: "Cyberdeck Extension", Type: CardTypeHardware, Cost: 3,
		Description: "+2 Memory Units.",
		Hardware:    &HardwareStats{MemoryBonus: 2},
	}
}

func CryptoCache() *Card {
	return &Card{
		Name: "Crypto Cache", Type: CardTypeResource, Cost: 2,
		Description: "Gain 1 credit at the start of your turn.",
		Resource:    &ResourceStats{CreditsPerTurn: 1},
	}
}

func DataMining() *Card {
	return &Card{
		Name: "Data Mining", Type: CardTypeResource, Cost: 2,
		Description: "Gain 1 credit whenever you make a successful run.",
		Resource:    &ResourceStats{CreditsPerRun: 1},
	}
}

func SureGamble() *Card {
	return &Card{
		Name: "Sure Gamble", Type: CardTypeEvent, Cost: 5,
		Description: "Gain 9 credits.",
		Event:       &EventStats{GainCredits: 9},
	}
}

func Diesel() *Card {
	return &Card{
		Name: "Diesel", Type: CardTypeEvent, Cost: 0,
		Description: "Draw 3 cards.",
		Event:       &EventStats{DrawCards: 3},
	}
}

func RunExploit() *Card {
	return &Card{
		Name: "Run Exploit", Type: CardTypeEvent, Cost: 2,
		Description: "Bypass the first piece of ice encountered during your next run.",
		Event:       &EventStats{BypassIce: 1},
	}
}

// --- Corporation cards ---

func IceWall() *Card {
	return &Card{
		Name: "Ice Wall", Type: CardTypeICE, Cost: 1,
		Description: "End the run.",
		ICE:         &ICEStats{Strength: 1, Subroutines: 1, Subtype: "Barrier"},
	}
}

func Enigma() *Card {
	return &Card{
		Name: "Enigma", Type: CardTypeICE, Cost: 3,
		Description: "The Runner loses 1 click. End the run.",
		ICE:         &ICEStats{Strength: 2, Subroutines: 2, Subtype: "Code Gate"},
	}
}

func Rototurret() *Card {
	return &Card{
		Name: "Rototurret", Type: CardTypeICE, Cost: 4,
		Description: "Trash 1 program. End the run.",
		ICE:         &ICEStats{Strength: 0, Subroutines: 2, Subtype: "Sentry"},
	}
}

func NeuralKatana() *Card {
	return &Card{
		Name: "Neural Katana", Type: CardTypeICE, Cost: 4,
		Description: "Do 3 net damage. End the run.",
		ICE:         &ICEStats{Strength: 3, Subroutines: 1, Subtype: "Sentry"},
	}
}

func WallOfStatic() *Card {
	return &Card{
		Name: "Wall of Static", Type: CardTypeICE, Cost: 3,
		Description: "End the run.",
		ICE:         &ICEStats{Strength: 3, Subroutines: 1, Subtype: "Barrier"},
	}
}

func Tollbooth() *Card {
	return &Card{
		Name: "Tollbooth", Type: CardTypeICE, Cost: 8,
		Description: "The Runner loses 3 credits, if able. End the run if the Runner cannot pay 3 credits.",
		ICE:         &ICEStats{Strength: 5, Subroutines: 1, Subtype: "Code Gate"},
	}
}

func PriorityDirective() *Card {
	return &Card{
		Name: "Priority Directive", Type: CardTypeAgenda,
		Description: "Compliance directive for the central districts.",
		Agenda:      &AgendaStats{AdvancementRequirement: 3, AgendaPoints: 2},
	}
}

func PriorityRequisition() *Card {
	return &Card{
		Name: "Priority Requisition", Type: CardTypeAgenda,
		Description: "Requisition of civic infrastructure.",
		Agenda:      &AgendaStats{AdvancementRequirement: 5, AgendaPoints: 3},
	}
}

func HostileTakeover() *Card {
	return &Card{
		Name: "Hostile Takeover", Type: CardTypeAgenda,
		Description: "Absorb a rival district.",
		Agenda:      &AgendaStats{AdvancementRequirement: 2, AgendaPoints: 1},
	}
}

func AdonisCampaign() *Card {
	return &Card{
		Name: "Adonis Campaign", Type: CardTypeAsset, Cost: 4, TrashCost: 3,
		Description: "Place 12 credits here when rezzed. Take 3 at the start of your turn; trash it when empty.",
		Asset:       &AssetStats{CreditsPerTurn: 3, CreditPool: 12},
	}
}

func PADCampaign() *Card {
	return &Card{
		Name: "PAD Campaign", Type: CardTypeAsset, Cost: 2, TrashCost: 4,
		Description: "Gain 1 credit at the start of your turn.",
		Asset:       &AssetStats{CreditsPerTurn: 1},
	}
}

func HedgeFund() *Card {
	return &Card{
		Name: "Hedge Fund", Type: CardTypeOperation, Cost: 5,
		Description: "Gain 9 credits.",
		Operation:   &OperationStats{GainCredits: 9},
	}
}

func CorporateStrategy() *Card {
	return &Card{
		Name: "Corporate Strategy", Type: CardTypeOperation, Cost: 2,
		Description: "Gain 5 credits.",
		Operation:   &OperationStats{GainCredits: 5},
	}
}
