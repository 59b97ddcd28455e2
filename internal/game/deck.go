package game

import "fmt"

// DeckManager owns one side's draw pile, hand, discard, installed rig and
// score area. Every card it holds is in exactly one of those slices.
type DeckManager struct {
	side      Side
	rng       RNG
	draw      []*CardInstance // top of pile is last element (pop from end)
	hand      []*CardInstance
	discard   []*CardInstance
	installed []*CardInstance
	score     []*CardInstance

	// OnReshuffle fires when an empty draw pile is rebuilt from discard.
	OnReshuffle func()
}

// NewDeckManager builds a draw pile from cards in order; cards[0] ends up at
// the bottom.
func NewDeckManager(side Side, rng RNG, cards []*CardInstance) *DeckManager {
	dm := &DeckManager{side: side, rng: rng}
	for _, c := range cards {
		c.Zone = ZoneDeck
		dm.draw = append(dm.draw, c)
	}
	return dm
}

func (dm *DeckManager) Side() Side { return dm.side }

func (dm *DeckManager) DrawCount() int      { return len(dm.draw) }
func (dm *DeckManager) HandCount() int      { return len(dm.hand) }
func (dm *DeckManager) DiscardCount() int   { return len(dm.discard) }
func (dm *DeckManager) InstalledCount() int { return len(dm.installed) }
func (dm *DeckManager) ScoreCount() int     { return len(dm.score) }

// Total counts every card the manager holds.
func (dm *DeckManager) Total() int {
	return len(dm.draw) + len(dm.hand) + len(dm.discard) + len(dm.installed) + len(dm.score)
}

// Hand returns a copy of the hand in order.
func (dm *DeckManager) Hand() []*CardInstance {
	return append([]*CardInstance(nil), dm.hand...)
}

// Installed returns a copy of the installed rig in install order.
func (dm *DeckManager) Installed() []*CardInstance {
	return append([]*CardInstance(nil), dm.installed...)
}

// DiscardPile returns a copy of the discard pile, oldest first.
func (dm *DeckManager) DiscardPile() []*CardInstance {
	return append([]*CardInstance(nil), dm.discard...)
}

// ScoreArea returns a copy of the score area.
func (dm *DeckManager) ScoreArea() []*CardInstance {
	return append([]*CardInstance(nil), dm.score...)
}

// Peek returns the top card of the draw pile without moving it.
func (dm *DeckManager) Peek() *CardInstance {
	if len(dm.draw) == 0 {
		return nil
	}
	return dm.draw[len(dm.draw)-1]
}

// Shuffle randomizes the draw pile.
func (dm *DeckManager) Shuffle() {
	shuffleCards(dm.rng, dm.draw)
}

// Draw moves up to n cards from the top of the pile to the hand. An empty
// pile is rebuilt from the shuffled discard before continuing. When both are
// empty it returns the cards drawn so far with ErrDeckExhausted.
func (dm *DeckManager) Draw(n int) ([]*CardInstance, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: draw %d", ErrInvalidAmount, n)
	}
	var drawn []*CardInstance
	for i := 0; i < n; i++ {
		if len(dm.draw) == 0 {
			if len(dm.discard) == 0 {
				return drawn, fmt.Errorf("%s draw: %w", dm.side, ErrDeckExhausted)
			}
			dm.ShuffleDiscardIntoDeck()
			if dm.OnReshuffle != nil {
				dm.OnReshuffle()
			}
		}
		card := dm.draw[len(dm.draw)-1]
		dm.draw = dm.draw[:len(dm.draw)-1]
		card.Zone = ZoneHand
		dm.hand = append(dm.hand, card)
		drawn = append(drawn, card)
	}
	return drawn, nil
}

// ShuffleDiscardIntoDeck moves the whole discard under the draw pile and
// shuffles the result.
func (dm *DeckManager) ShuffleDiscardIntoDeck() {
	for _, c := range dm.discard {
		c.Zone = ZoneDeck
		c.Rezzed = false
		c.Installed = false
	}
	dm.draw = append(dm.discard, dm.draw...)
	dm.discard = nil
	dm.Shuffle()
}

// CardInHand returns the hand card at index without removing it.
func (dm *DeckManager) CardInHand(index int) (*CardInstance, error) {
	if index < 0 || index >= len(dm.hand) {
		return nil, fmt.Errorf("%w: %d (hand has %d)", ErrInvalidCardIndex, index, len(dm.hand))
	}
	return dm.hand[index], nil
}

// Take removes a hand card so the caller can place it in another zone, such
// as a server.
func (dm *DeckManager) Take(index int) (*CardInstance, error) {
	card, err := dm.CardInHand(index)
	if err != nil {
		return nil, err
	}
	dm.hand = append(dm.hand[:index], dm.hand[index+1:]...)
	return card, nil
}

// Install moves a hand card into the installed rig.
func (dm *DeckManager) Install(index int) (*CardInstance, error) {
	card, err := dm.Take(index)
	if err != nil {
		return nil, err
	}
	card.Zone = ZoneInstalled
	card.Installed = true
	dm.installed = append(dm.installed, card)
	return card, nil
}

// Discard moves card from the hand or the installed rig to the discard pile.
func (dm *DeckManager) Discard(card *CardInstance) error {
	if removeCard(&dm.hand, card) || removeCard(&dm.installed, card) {
		dm.toDiscard(card)
		return nil
	}
	return fmt.Errorf("%w: %s is not in hand or installed", ErrInvalidCardIndex, card)
}

// Trash puts a card that left another zone (a server, the Corp's HQ access)
// into the discard pile.
func (dm *DeckManager) Trash(card *CardInstance) {
	removeCard(&dm.hand, card)
	removeCard(&dm.installed, card)
	removeCard(&dm.draw, card)
	dm.toDiscard(card)
}

// Score places a card that left a server into the score area.
func (dm *DeckManager) Score(card *CardInstance) {
	card.Zone = ZoneScore
	card.Installed = false
	dm.score = append(dm.score, card)
}

func (dm *DeckManager) toDiscard(card *CardInstance) {
	card.Zone = ZoneDiscard
	card.Installed = false
	card.Rezzed = false
	dm.discard = append(dm.discard, card)
}

// removeCard deletes card from list by instance ID, preserving order.
func removeCard(list *[]*CardInstance, card *CardInstance) bool {
	for i, c := range *list {
		if c.ID == card.ID {
			*list = append((*list)[:i], (*list)[i+1:]...)
			return true
		}
	}
	return false
}
