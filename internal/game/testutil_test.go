package game

import (
	"testing"

	"github.com/peterkuimelis/neondominance/internal/log"
)

// makePaddedDeck creates a deck with specified cards on top (drawn first) and
// filler to reach a minimum size. topCards are ordered so that index 0 is
// drawn first.
func makePaddedDeck(topCards []*Card, minSize int, filler func() *Card) []*Card {
	deck := make([]*Card, 0, minSize)

	// Filler goes at bottom (drawn last)
	for i := 0; i < minSize-len(topCards); i++ {
		deck = append(deck, filler())
	}

	// Top cards go at end of slice (drawn first), reversed so index 0 is drawn first
	for i := len(topCards) - 1; i >= 0; i-- {
		deck = append(deck, topCards[i])
	}
	return deck
}

func cards(names ...string) []*Card {
	result := make([]*Card, 0, len(names))
	for _, n := range names {
		result = append(result, LookupCard(n))
	}
	return result
}

// newTestSession starts an unshuffled session. runnerTop and corpTop are
// dealt first, so the opening hands are their first cards.
func newTestSession(t *testing.T, rules Rules, runnerTop, corpTop []string) (*GameSession, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	s, err := NewSession(SessionConfig{
		Seed:       1,
		Rules:      rules,
		RunnerDeck: makePaddedDeck(cards(runnerTop...), 40, CryptoCache),
		CorpDeck:   makePaddedDeck(cards(corpTop...), 40, HedgeFund),
		Logger:     logger,
		NoShuffle:  true,
	})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s, logger
}

// placeICE moves the named ICE from the Corporation's hand onto server as
// the new outermost ICE.
func placeICE(t *testing.T, s *GameSession, server ServerName, name string, rezzed bool) *CardInstance {
	t.Helper()
	card := takeCorpCard(t, s, name)
	s.state.Corp.Servers.Get(server).InstallICE(card)
	card.Rezzed = rezzed
	return card
}

// placeContent moves the named card from the Corporation's hand into a
// remote server.
func placeContent(t *testing.T, s *GameSession, server ServerName, name string) *CardInstance {
	t.Helper()
	card := takeCorpCard(t, s, name)
	if err := s.state.Corp.Servers.Get(server).InstallContent(card); err != nil {
		t.Fatalf("InstallContent(%s): %v", name, err)
	}
	return card
}

func takeCorpCard(t *testing.T, s *GameSession, name string) *CardInstance {
	t.Helper()
	for i, c := range s.state.Corp.Deck.Hand() {
		if c.Card.Name == name {
			card, err := s.state.Corp.Deck.Take(i)
			if err != nil {
				t.Fatalf("Take(%d): %v", i, err)
			}
			return card
		}
	}
	t.Fatalf("%s not in corp hand", name)
	return nil
}

// handIndex returns the index of the first hand card named name.
func handIndex(t *testing.T, s *GameSession, side Side, name string) int {
	t.Helper()
	for i, c := range s.Hand(side) {
		if c.Name == name {
			return i
		}
	}
	t.Fatalf("%s not in %s hand", name, side)
	return -1
}

func mustInstall(t *testing.T, s *GameSession, name string) *CardInstance {
	t.Helper()
	card, err := s.Install(SideRunner, handIndex(t, s, SideRunner, name))
	if err != nil {
		t.Fatalf("Install(%s): %v", name, err)
	}
	return card
}

// checkCensus fails the test if either side gained or lost a card.
func checkCensus(t *testing.T, s *GameSession) {
	t.Helper()
	for _, side := range []Side{SideRunner, SideCorp} {
		if got, want := s.Census(side), s.DeckSize(side); got != want {
			t.Errorf("%s census = %d, want %d", side, got, want)
		}
	}
}

func dumpLog(t *testing.T, logger *log.MemoryLogger) {
	t.Helper()
	t.Logf("Event log:\n%s", log.FormatAll(logger.Events()))
}
