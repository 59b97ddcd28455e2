package game

import (
	"errors"
	"fmt"
)

var (
	ErrInsufficientResource = errors.New("insufficient resource")
	ErrInsufficientMemory   = errors.New("insufficient memory")
	ErrDeckExhausted        = errors.New("deck exhausted")
	ErrInvalidServer        = errors.New("invalid server")
	ErrInvalidCardIndex     = errors.New("invalid card index")
	ErrNoActiveRun          = errors.New("no active run")
	ErrRunAlreadyResolved   = errors.New("run already resolved")
	ErrRunInProgress        = errors.New("run in progress")
	ErrNotYourTurn          = errors.New("not your turn")
	ErrWrongPhase           = errors.New("wrong phase")
	ErrGameOver             = errors.New("game over")
	ErrInvalidApproach      = errors.New("invalid approach")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrUnknownCard          = errors.New("unknown card")
)

// Resource names a ResourceLedger account.
type Resource int

const (
	ResourceCredits Resource = iota
	ResourceClicks
	ResourceMemory
)

func (r Resource) String() string {
	switch r {
	case ResourceCredits:
		return "credits"
	case ResourceClicks:
		return "clicks"
	case ResourceMemory:
		return "memory"
	default:
		return "unknown"
	}
}

// ResourceError reports a shortfall. It matches ErrInsufficientResource, and
// also ErrInsufficientMemory when the resource is MU.
type ResourceError struct {
	Resource Resource
	Need     int
	Have     int
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("insufficient %s: need %d, have %d", e.Resource, e.Need, e.Have)
}

func (e *ResourceError) Is(target error) bool {
	if target == ErrInsufficientResource {
		return true
	}
	return target == ErrInsufficientMemory && e.Resource == ResourceMemory
}

// ErrorKind classifies err into a stable identifier for transports.
// Unclassified errors map to "internal".
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInsufficientMemory):
		return "insufficient_memory"
	case errors.Is(err, ErrInsufficientResource):
		return "insufficient_resource"
	case errors.Is(err, ErrDeckExhausted):
		return "deck_exhausted"
	case errors.Is(err, ErrInvalidServer):
		return "invalid_server"
	case errors.Is(err, ErrInvalidCardIndex):
		return "invalid_card_index"
	case errors.Is(err, ErrNoActiveRun):
		return "no_active_run"
	case errors.Is(err, ErrRunAlreadyResolved):
		return "run_already_resolved"
	case errors.Is(err, ErrRunInProgress):
		return "run_in_progress"
	case errors.Is(err, ErrNotYourTurn):
		return "not_your_turn"
	case errors.Is(err, ErrWrongPhase):
		return "wrong_phase"
	case errors.Is(err, ErrGameOver):
		return "game_over"
	case errors.Is(err, ErrInvalidApproach):
		return "invalid_approach"
	case errors.Is(err, ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, ErrUnknownCard):
		return "unknown_card"
	default:
		return "internal"
	}
}
