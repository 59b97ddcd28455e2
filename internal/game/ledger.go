package game

import "fmt"

// Cost is a multi-resource price charged atomically by Ledger.Charge.
type Cost struct {
	Clicks  int
	Credits int
	Memory  int
}

// Ledger tracks one side's credits, clicks and memory units. Every mutating
// call checks its post-condition first and leaves the ledger untouched on
// failure.
type Ledger struct {
	credits         int
	clicks          int
	memoryAvailable int
	memoryUsed      int
}

// NewLedger creates a ledger with the given opening balances.
func NewLedger(credits, memory int) *Ledger {
	return &Ledger{credits: credits, memoryAvailable: memory}
}

func (l *Ledger) Credits() int         { return l.credits }
func (l *Ledger) Clicks() int          { return l.clicks }
func (l *Ledger) MemoryAvailable() int { return l.memoryAvailable }
func (l *Ledger) MemoryUsed() int      { return l.memoryUsed }

// MemoryFree returns the unallocated MU.
func (l *Ledger) MemoryFree() int {
	return l.memoryAvailable - l.memoryUsed
}

func (l *Ledger) SpendCredits(n int) error {
	if err := checkAmount(n); err != nil {
		return err
	}
	if l.credits-n < 0 {
		return &ResourceError{Resource: ResourceCredits, Need: n, Have: l.credits}
	}
	l.credits -= n
	return nil
}

func (l *Ledger) GainCredits(n int) error {
	if err := checkAmount(n); err != nil {
		return err
	}
	l.credits += n
	return nil
}

func (l *Ledger) SpendClick(n int) error {
	if err := checkAmount(n); err != nil {
		return err
	}
	if l.clicks-n < 0 {
		return &ResourceError{Resource: ResourceClicks, Need: n, Have: l.clicks}
	}
	l.clicks -= n
	return nil
}

// ResetClicks sets the click budget for a new turn.
func (l *Ledger) ResetClicks(n int) {
	if n < 0 {
		n = 0
	}
	l.clicks = n
}

func (l *Ledger) AllocateMemory(n int) error {
	if err := checkAmount(n); err != nil {
		return err
	}
	if l.memoryUsed+n > l.memoryAvailable {
		return &ResourceError{Resource: ResourceMemory, Need: n, Have: l.MemoryFree()}
	}
	l.memoryUsed += n
	return nil
}

func (l *Ledger) ReleaseMemory(n int) error {
	if err := checkAmount(n); err != nil {
		return err
	}
	if n > l.memoryUsed {
		return fmt.Errorf("%w: release %d MU with %d in use", ErrInvalidAmount, n, l.memoryUsed)
	}
	l.memoryUsed -= n
	return nil
}

// AddMemoryCapacity raises (or, with a negative n, lowers) the MU ceiling.
// Lowering below current usage fails.
func (l *Ledger) AddMemoryCapacity(n int) error {
	if l.memoryAvailable+n < l.memoryUsed {
		return &ResourceError{Resource: ResourceMemory, Need: -n, Have: l.MemoryFree()}
	}
	l.memoryAvailable += n
	return nil
}

// CanAfford returns the first shortfall c would cause, or nil.
func (l *Ledger) CanAfford(c Cost) error {
	if c.Clicks < 0 || c.Credits < 0 || c.Memory < 0 {
		return fmt.Errorf("%w: negative cost %+v", ErrInvalidAmount, c)
	}
	if l.clicks < c.Clicks {
		return &ResourceError{Resource: ResourceClicks, Need: c.Clicks, Have: l.clicks}
	}
	if l.credits < c.Credits {
		return &ResourceError{Resource: ResourceCredits, Need: c.Credits, Have: l.credits}
	}
	if l.memoryUsed+c.Memory > l.memoryAvailable {
		return &ResourceError{Resource: ResourceMemory, Need: c.Memory, Have: l.MemoryFree()}
	}
	return nil
}

// Charge applies c all-or-nothing.
func (l *Ledger) Charge(c Cost) error {
	if err := l.CanAfford(c); err != nil {
		return err
	}
	l.clicks -= c.Clicks
	l.credits -= c.Credits
	l.memoryUsed += c.Memory
	return nil
}

func checkAmount(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidAmount, n)
	}
	return nil
}
