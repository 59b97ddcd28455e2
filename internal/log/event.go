package log

// EventType enumerates all observable game events.
type EventType int

const (
	EventPhaseChange EventType = iota
	EventNewTurn
	EventDraw
	EventShuffle
	EventReshuffle
	EventInstall
	EventPlay
	EventDiscard
	EventCreditsChange
	EventRunStart
	EventIceEncounter
	EventIceBroken
	EventIceBypassed
	EventIcePassed
	EventIceNotBroken
	EventInsufficientResource
	EventDamage
	EventRunSuccess
	EventRunFailed
	EventJackOut
	EventAccess
	EventAgendaExposed
	EventLiberation
	EventRez
	EventAdvance
	EventScore
	EventComplianceChange
	EventDayEnd
	EventDeckExhausted
	EventWin
)

func (e EventType) String() string {
	switch e {
	case EventPhaseChange:
		return "PhaseChange"
	case EventNewTurn:
		return "NewTurn"
	case EventDraw:
		return "Draw"
	case EventShuffle:
		return "Shuffle"
	case EventReshuffle:
		return "Reshuffle"
	case EventInstall:
		return "Install"
	case EventPlay:
		return "Play"
	case EventDiscard:
		return "Discard"
	case EventCreditsChange:
		return "CreditsChange"
	case EventRunStart:
		return "RunStart"
	case EventIceEncounter:
		return "IceEncounter"
	case EventIceBroken:
		return "IceBroken"
	case EventIceBypassed:
		return "IceBypassed"
	case EventIcePassed:
		return "IcePassed"
	case EventIceNotBroken:
		return "IceNotBroken"
	case EventInsufficientResource:
		return "InsufficientResource"
	case EventDamage:
		return "Damage"
	case EventRunSuccess:
		return "RunSuccess"
	case EventRunFailed:
		return "RunFailed"
	case EventJackOut:
		return "JackOut"
	case EventAccess:
		return "Access"
	case EventAgendaExposed:
		return "AgendaExposed"
	case EventLiberation:
		return "Liberation"
	case EventRez:
		return "Rez"
	case EventAdvance:
		return "Advance"
	case EventScore:
		return "Score"
	case EventComplianceChange:
		return "ComplianceChange"
	case EventDayEnd:
		return "DayEnd"
	case EventDeckExhausted:
		return "DeckExhausted"
	case EventWin:
		return "Win"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a session.
type GameEvent struct {
	Seq     int       `json:"seq"`            // monotonic sequence number
	Turn    int       `json:"turn"`           // which turn (1-based)
	Phase   string    `json:"phase"`          // current phase name (e.g. "Action")
	Side    string    `json:"side"`           // acting side ("runner" or "corp")
	Type    EventType `json:"type"`           // event type
	Card    string    `json:"card,omitempty"` // card name (if applicable)
	Details string    `json:"details"`        // human-readable detail string
}
