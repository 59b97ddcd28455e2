package game

import (
	"errors"
	"strings"
	"testing"
)

func TestRegistryCardsAreValid(t *testing.T) {
	for _, name := range CardNames() {
		c := LookupCard(name)
		if c.Name != name {
			t.Errorf("registry key %q builds %q", name, c.Name)
		}
		if err := c.Validate(); err != nil {
			t.Error(err)
		}
		if c.Side() != c.Type.Side() {
			t.Errorf("%s: side mismatch", name)
		}
	}
}

func TestValidateRejectsMismatchedVariant(t *testing.T) {
	c := &Card{Name: "Broken", Type: CardTypeICE, Agenda: &AgendaStats{AdvancementRequirement: 1}}
	if err := c.Validate(); err == nil {
		t.Error("ICE card with an agenda block should not validate")
	}
	c = &Card{Name: "Double", Type: CardTypeICE, ICE: &ICEStats{}, Agenda: &AgendaStats{}}
	if err := c.Validate(); err == nil {
		t.Error("two variant blocks should not validate")
	}
}

func TestParseApproach(t *testing.T) {
	tests := map[string]Approach{
		"":            ApproachNone,
		"--stealth":   ApproachStealth,
		"Aggressive":  ApproachAggressive,
		" --careful ": ApproachCareful,
		"standard":    ApproachNone,
	}
	for in, want := range tests {
		got, err := ParseApproach(in)
		if err != nil || got != want {
			t.Errorf("ParseApproach(%q) = %s, %v; want %s", in, got, err, want)
		}
	}
	if _, err := ParseApproach("--reckless"); !errors.Is(err, ErrInvalidApproach) {
		t.Errorf("unknown approach = %v, want ErrInvalidApproach", err)
	}
}

func TestParseServerName(t *testing.T) {
	tests := map[string]ServerName{
		"R&D":      ServerRD,
		"rd":       ServerRD,
		"hq":       ServerHQ,
		"Archives": ServerArchives,
		"remote 2": ServerRemote2,
		"Remote3":  ServerRemote3,
	}
	for in, want := range tests {
		got, err := ParseServerName(in)
		if err != nil || got != want {
			t.Errorf("ParseServerName(%q) = %s, %v; want %s", in, got, err, want)
		}
	}
	if _, err := ParseServerName("Remote4"); !errors.Is(err, ErrInvalidServer) {
		t.Errorf("Remote4 = %v, want ErrInvalidServer", err)
	}
}

func TestLeastDefended(t *testing.T) {
	gs := &GameState{}
	servers := NewServers()
	ice := func() *CardInstance { return gs.CreateCardInstance(IceWall(), SideCorp) }

	// Empty remotes are never candidates.
	if got := servers.LeastDefended().Name; got != ServerRD {
		t.Fatalf("empty layout = %s, want R&D", got)
	}
	servers.Get(ServerRD).InstallICE(ice())
	servers.Get(ServerHQ).InstallICE(ice())
	servers.Get(ServerArchives).InstallICE(ice())
	if err := servers.Get(ServerRemote1).InstallContent(gs.CreateCardInstance(HostileTakeover(), SideCorp)); err != nil {
		t.Fatal(err)
	}
	if got := servers.LeastDefended().Name; got != ServerRemote1 {
		t.Errorf("least defended = %s, want Remote1", got)
	}
	if got := servers.FirstEmptyRemote().Name; got != ServerRemote2 {
		t.Errorf("first empty remote = %s, want Remote2", got)
	}
	if err := servers.Get(ServerHQ).InstallContent(ice()); !errors.Is(err, ErrInvalidServer) {
		t.Errorf("content in HQ = %v, want ErrInvalidServer", err)
	}
}

func TestRulesValidate(t *testing.T) {
	if err := DefaultRules().Validate(); err != nil {
		t.Fatalf("default rules: %v", err)
	}
	r := DefaultRules()
	r.RunnerClicks = 0
	r.JackOutCost = -1
	r.StealthSkipPercent = 120
	err := r.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, field := range []string{"runner_clicks", "jack_out_cost", "stealth_skip_percent"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error %q does not mention %s", err, field)
		}
	}
}

func TestRNGHelpers(t *testing.T) {
	rng := NewRNG(3)
	if rollPercent(rng, 0) || !rollPercent(rng, 100) {
		t.Error("rollPercent bounds are not absolute")
	}
	if weightedPick(rng, []int{0, 0, 0}) != -1 {
		t.Error("all-zero weights should pick nothing")
	}
	for i := 0; i < 50; i++ {
		if got := weightedPick(rng, []int{0, 5, 0}); got != 1 {
			t.Fatalf("weightedPick = %d, want the only weighted index", got)
		}
	}
}
