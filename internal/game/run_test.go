package game

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/peterkuimelis/neondominance/internal/log"
)

var corpICE = []string{"Ice Wall", "Enigma", "Tollbooth", "Wall of Static", "Priority Directive"}

// TestRunBreaksWeakerICE: 5 credits, install a 3-cost strength-2 breaker,
// run R&D against strength-1 ICE.
func TestRunBreaksWeakerICE(t *testing.T) {
	s, logger := newTestSession(t, Rules{}, []string{"Icebreaker.exe"}, corpICE)

	mustInstall(t, s, "Icebreaker.exe")
	if got := s.Credits(SideRunner); got != 2 {
		t.Fatalf("credits after install = %d, want 2", got)
	}
	placeICE(t, s, ServerRD, "Ice Wall", true)

	rs, err := s.Run(SideRunner, "R&D", ApproachNone)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rs.Terminal || rs.Phase != RunEncounteringIce || rs.IceIndex != 0 {
		t.Fatalf("run should pause at the first encounter, got %s at %d", rs.Phase, rs.IceIndex)
	}

	rs, err = s.ContinueRun(rs.ID)
	if err != nil {
		t.Fatalf("ContinueRun: %v", err)
	}
	dumpLog(t, logger)

	if rs.Outcome != OutcomeSuccessful {
		t.Fatalf("outcome = %s, want successful", rs.Outcome)
	}
	if got := s.state.Runner.NeuralDamage; got != 0 {
		t.Errorf("neural damage = %d, want 0", got)
	}
	if got := s.Credits(SideRunner); got != 1 {
		t.Errorf("credits after break = %d, want 1", got)
	}
	if rs.CreditsSpent != 1 {
		t.Errorf("credits spent = %d, want 1", rs.CreditsSpent)
	}
	if s.state.Runner.SuccessfulRuns != 1 {
		t.Errorf("successful runs = %d, want 1", s.state.Runner.SuccessfulRuns)
	}
	if len(rs.Accessed) != 1 || rs.Accessed[0].Name != "Hedge Fund" {
		t.Errorf("accessed = %+v, want the top of R&D", rs.Accessed)
	}

	wantTrail := []RunPhase{RunInitiated, RunApproachChosen, RunEncounteringIce, RunIceBroken, RunPassedAllIce, RunSuccessful}
	if diff := cmp.Diff(wantTrail, rs.Trail); diff != "" {
		t.Errorf("trail mismatch (-want +got):\n%s", diff)
	}
	if len(logger.EventsOfType(log.EventIceBroken)) != 1 {
		t.Error("expected one IceBroken event")
	}
	checkCensus(t, s)
}

// TestRunFailsAgainstStrongerICE: same breaker against strength-5 ICE.
func TestRunFailsAgainstStrongerICE(t *testing.T) {
	s, logger := newTestSession(t, Rules{}, []string{"Icebreaker.exe"}, corpICE)
	mustInstall(t, s, "Icebreaker.exe")
	placeICE(t, s, ServerRD, "Tollbooth", true)

	rs, err := s.Run(SideRunner, "R&D", ApproachNone)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	rs, err = s.ContinueRun("")
	if err != nil {
		t.Fatalf("ContinueRun: %v", err)
	}

	if rs.Outcome != OutcomeFailed {
		t.Fatalf("outcome = %s, want failed", rs.Outcome)
	}
	if got := s.state.Runner.NeuralDamage; got != 1 {
		t.Errorf("neural damage = %d, want 1", got)
	}
	if got := s.Credits(SideRunner); got != 2 {
		t.Errorf("credits = %d, want 2 (nothing charged on a failed break)", got)
	}
	if len(rs.Accessed) != 0 {
		t.Errorf("failed run accessed %d cards", len(rs.Accessed))
	}
	if rs.Trail[len(rs.Trail)-3] != RunIceNotBroken || rs.Trail[len(rs.Trail)-2] != RunDamaged {
		t.Errorf("trail = %v, want ... IceNotBroken Damaged Failed", rs.Trail)
	}
	if len(logger.EventsOfType(log.EventDamage)) != 1 {
		t.Error("expected one Damage event")
	}
}

// TestBreakIsDeterministic: every breaker against every ICE breaks exactly
// when it interfaces with the ICE's subtype and its strength is at least the
// ICE's, with damage 1 otherwise.
func TestBreakIsDeterministic(t *testing.T) {
	rules := DefaultRules()
	rules.RunnerStartCredits = 30

	breakers := []string{"Icebreaker.exe", "Ninja", "Quantum Protocol", "Ghost Runner"}
	ices := []string{"Ice Wall", "Enigma", "Rototurret", "Neural Katana", "Wall of Static", "Tollbooth"}
	for _, b := range breakers {
		for _, ice := range ices {
			s, _ := newTestSession(t, rules, []string{b}, []string{ice})
			mustInstall(t, s, b)
			placeICE(t, s, ServerHQ, ice, true)

			rs, err := s.Run(SideRunner, "HQ", ApproachNone)
			if err != nil {
				t.Fatalf("%s vs %s: Run: %v", b, ice, err)
			}
			rs, err = s.ResolveRun(rs.ID)
			if err != nil {
				t.Fatalf("%s vs %s: ResolveRun: %v", b, ice, err)
			}

			bc, ic := LookupCard(b), LookupCard(ice)
			breaks := bc.Breaker.CanBreak(ic.ICE.Subtype) && bc.Strength() >= ic.Strength()
			damage := s.state.Runner.NeuralDamage
			if breaks {
				if rs.Encounters[0].Result != EncounterBroken || damage != 0 {
					t.Errorf("%s vs %s: got %s with damage %d, want broken with 0", b, ice, rs.Encounters[0].Result, damage)
				}
			} else if rs.Outcome != OutcomeFailed || damage != 1 {
				t.Errorf("%s vs %s: got %s with damage %d, want failed with 1", b, ice, rs.Outcome, damage)
			}
		}
	}
}

// TestBreakerMustMatchSubtype: a barrier breaker strong enough for a code
// gate still cannot break it; the run fails without spending credits.
func TestBreakerMustMatchSubtype(t *testing.T) {
	s, logger := newTestSession(t, Rules{}, []string{"Corroder"}, corpICE)
	mustInstall(t, s, "Corroder")
	placeICE(t, s, ServerRD, "Enigma", true)
	credits := s.Credits(SideRunner)

	rs, err := s.Run(SideRunner, "R&D", ApproachNone)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	rs, err = s.ContinueRun(rs.ID)
	if err != nil {
		t.Fatalf("ContinueRun: %v", err)
	}
	dumpLog(t, logger)

	if rs.Outcome != OutcomeFailed {
		t.Fatalf("outcome = %s, want failed", rs.Outcome)
	}
	enc := rs.Encounters[0]
	if enc.Result != EncounterNotBroken || enc.Breaker != "" {
		t.Errorf("encounter = %+v, want not broken with no usable breaker", enc)
	}
	if got := s.state.Runner.NeuralDamage; got != 1 {
		t.Errorf("neural damage = %d, want 1", got)
	}
	if got := s.Credits(SideRunner); got != credits {
		t.Errorf("credits = %d, want %d", got, credits)
	}
}

// TestBestBreakerPicksCompatible: with a barrier and a code gate breaker
// installed, each ICE is met by the breaker that matches it.
func TestBestBreakerPicksCompatible(t *testing.T) {
	rules := DefaultRules()
	rules.RunnerStartCredits = 20
	s, _ := newTestSession(t, rules, []string{"Corroder", "Gordian Blade"}, corpICE)
	mustInstall(t, s, "Corroder")
	mustInstall(t, s, "Gordian Blade")
	placeICE(t, s, ServerRD, "Enigma", true)
	placeICE(t, s, ServerRD, "Ice Wall", true) // outermost

	rs, err := s.Run(SideRunner, "R&D", ApproachNone)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	rs, err = s.ResolveRun(rs.ID)
	if err != nil {
		t.Fatalf("ResolveRun: %v", err)
	}
	if rs.Outcome != OutcomeSuccessful {
		t.Fatalf("outcome = %s, want successful", rs.Outcome)
	}
	var got []string
	for _, enc := range rs.Encounters {
		got = append(got, enc.ICE+"/"+enc.Breaker)
	}
	if diff := cmp.Diff([]string{"Ice Wall/Corroder", "Enigma/Gordian Blade"}, got); diff != "" {
		t.Errorf("breakers (-want +got):\n%s", diff)
	}
}

// TestJackOutAfterResolution: a resolved run rejects jack-out and nothing
// changes.
func TestJackOutAfterResolution(t *testing.T) {
	s, _ := newTestSession(t, Rules{}, []string{"Icebreaker.exe"}, corpICE)
	mustInstall(t, s, "Icebreaker.exe")

	rs, err := s.Run(SideRunner, "Archives", ApproachNone)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !rs.Terminal {
		t.Fatalf("run on an unprotected server should resolve at once, got %s", rs.Phase)
	}

	before := s.Status()
	beforeEvents := len(s.Events())
	for _, id := range []string{rs.ID, ""} {
		if _, err := s.JackOut(id); !errors.Is(err, ErrRunAlreadyResolved) {
			t.Fatalf("JackOut(%q) = %v, want ErrRunAlreadyResolved", id, err)
		}
	}
	if diff := cmp.Diff(before, s.Status()); diff != "" {
		t.Errorf("status changed (-before +after):\n%s", diff)
	}
	if len(s.Events()) != beforeEvents {
		t.Errorf("jack-out misuse logged %d events", len(s.Events())-beforeEvents)
	}
	if _, err := s.ContinueRun(rs.ID); !errors.Is(err, ErrRunAlreadyResolved) {
		t.Errorf("ContinueRun after resolution = %v, want ErrRunAlreadyResolved", err)
	}
}

func TestJackOutWithoutRun(t *testing.T) {
	s, _ := newTestSession(t, Rules{}, nil, nil)
	if _, err := s.JackOut(""); !errors.Is(err, ErrNoActiveRun) {
		t.Fatalf("JackOut with no run = %v, want ErrNoActiveRun", err)
	}
	if _, err := s.ContinueRun(""); !errors.Is(err, ErrNoActiveRun) {
		t.Fatalf("ContinueRun with no run = %v, want ErrNoActiveRun", err)
	}
}

// TestJackOutMidRun: break the outer ICE, then abort at the inner one.
func TestJackOutMidRun(t *testing.T) {
	s, logger := newTestSession(t, Rules{}, []string{"Icebreaker.exe"}, corpICE)
	mustInstall(t, s, "Icebreaker.exe")
	placeICE(t, s, ServerRD, "Enigma", true)
	placeICE(t, s, ServerRD, "Ice Wall", true) // outermost

	rs, _ := s.Run(SideRunner, "R&D", ApproachNone)
	if rs.IceTotal != 2 {
		t.Fatalf("ice total = %d, want 2", rs.IceTotal)
	}
	rs, _ = s.ContinueRun(rs.ID)
	if rs.Terminal || rs.IceIndex != 1 {
		t.Fatalf("after one break: terminal=%v index=%d", rs.Terminal, rs.IceIndex)
	}
	if got := s.Credits(SideRunner); got != 2 {
		t.Errorf("credits mid-run = %d, want 2 (break cost settles at the end)", got)
	}

	if _, err := s.JackOut("not-a-run"); !errors.Is(err, ErrNoActiveRun) {
		t.Errorf("JackOut(unknown id) = %v, want ErrNoActiveRun", err)
	}
	rs, err := s.JackOut(rs.ID)
	if err != nil {
		t.Fatalf("JackOut: %v", err)
	}
	dumpLog(t, logger)

	if rs.Outcome != OutcomeJackedOut {
		t.Fatalf("outcome = %s, want jacked-out", rs.Outcome)
	}
	if got := s.Credits(SideRunner); got != 0 {
		t.Errorf("credits = %d, want 0 (1 break + 1 jack-out)", got)
	}
	if s.state.Runner.NeuralDamage != 0 || s.state.Runner.SuccessfulRuns != 0 {
		t.Error("jack-out must count as neither success nor failure")
	}
	if len(rs.Accessed) != 0 {
		t.Error("jack-out must not access the server")
	}
}

func TestCarefulJackOutIsFree(t *testing.T) {
	s, _ := newTestSession(t, Rules{}, []string{"Icebreaker.exe"}, corpICE)
	mustInstall(t, s, "Icebreaker.exe")
	placeICE(t, s, ServerRD, "Enigma", true)
	placeICE(t, s, ServerRD, "Ice Wall", true)

	rs, _ := s.Run(SideRunner, "R&D", ApproachCareful)
	rs, _ = s.ContinueRun(rs.ID)
	if rs.Encounters[0].BreakerStrength != 1 {
		t.Errorf("careful breaker strength = %d, want 1", rs.Encounters[0].BreakerStrength)
	}
	rs, err := s.JackOut(rs.ID)
	if err != nil {
		t.Fatalf("JackOut: %v", err)
	}
	if got := s.Credits(SideRunner); got != 1 {
		t.Errorf("credits = %d, want 1 (break only)", got)
	}
}

func TestAggressiveRaisesStrength(t *testing.T) {
	for _, tc := range []struct {
		approach Approach
		want     Outcome
	}{
		{ApproachNone, OutcomeFailed},
		{ApproachAggressive, OutcomeSuccessful},
	} {
		s, _ := newTestSession(t, Rules{}, []string{"Icebreaker.exe"}, corpICE)
		mustInstall(t, s, "Icebreaker.exe")
		placeICE(t, s, ServerRD, "Wall of Static", true)

		rs, _ := s.Run(SideRunner, "R&D", tc.approach)
		rs, _ = s.ResolveRun(rs.ID)
		if rs.Outcome != tc.want {
			t.Errorf("%s vs Wall of Static: outcome %s, want %s", tc.approach, rs.Outcome, tc.want)
		}
	}
}

func TestAggressiveDamageReduction(t *testing.T) {
	rules := DefaultRules()
	rules.DamagePerFailure = 2
	rules.AggressiveDamageReduction = 1
	for approach, want := range map[Approach]int{ApproachNone: 2, ApproachAggressive: 1} {
		s, _ := newTestSession(t, rules, []string{"Icebreaker.exe"}, corpICE)
		mustInstall(t, s, "Icebreaker.exe")
		placeICE(t, s, ServerRD, "Tollbooth", true)

		rs, _ := s.Run(SideRunner, "R&D", approach)
		rs, _ = s.ResolveRun(rs.ID)
		if rs.Damage != want || s.state.Runner.NeuralDamage != want {
			t.Errorf("%s: damage %d, want %d", approach, rs.Damage, want)
		}
	}
}

func TestStealthSkipsFirstICE(t *testing.T) {
	rules := DefaultRules()
	rules.StealthSkipPercent = 100
	s, logger := newTestSession(t, rules, nil, corpICE)
	placeICE(t, s, ServerHQ, "Tollbooth", true)

	rs, err := s.Run(SideRunner, "HQ", ApproachStealth)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rs.Outcome != OutcomeSuccessful {
		t.Fatalf("outcome = %s, want successful", rs.Outcome)
	}
	if rs.Encounters[0].Result != EncounterBypassed {
		t.Errorf("first encounter = %s, want bypassed", rs.Encounters[0].Result)
	}
	if got := s.Credits(SideRunner); got != 4 {
		t.Errorf("credits = %d, want 4 after the stealth fee", got)
	}
	if len(rs.Accessed) != 1 {
		t.Errorf("HQ access saw %d cards, want 1", len(rs.Accessed))
	}
	if len(logger.EventsOfType(log.EventIceBypassed)) != 1 {
		t.Error("expected one IceBypassed event")
	}
}

func TestStealthRollCanMiss(t *testing.T) {
	rules := DefaultRules()
	rules.StealthSkipPercent = 0
	s, _ := newTestSession(t, rules, nil, corpICE)
	placeICE(t, s, ServerHQ, "Ice Wall", true)

	rs, _ := s.Run(SideRunner, "HQ", ApproachStealth)
	if rs.Phase != RunEncounteringIce {
		t.Fatalf("phase = %s, want EncounteringIce", rs.Phase)
	}
	rs, _ = s.ContinueRun(rs.ID)
	if rs.Outcome != OutcomeFailed {
		t.Errorf("no breaker: outcome = %s, want failed", rs.Outcome)
	}
}

func TestStealthNeedsCredits(t *testing.T) {
	rules := DefaultRules()
	rules.RunnerStartCredits = 0
	s, _ := newTestSession(t, rules, nil, nil)

	_, err := s.Run(SideRunner, "HQ", ApproachStealth)
	if !errors.Is(err, ErrInsufficientResource) {
		t.Fatalf("Run = %v, want ErrInsufficientResource", err)
	}
	if got := s.state.Runner.Ledger.Clicks(); got != rules.RunnerClicks {
		t.Errorf("clicks = %d, want %d (no mutation)", got, rules.RunnerClicks)
	}
	if _, ok := s.CurrentRun(); ok {
		t.Error("a rejected run must not be recorded")
	}
}

func TestBreakShortfallFailsRun(t *testing.T) {
	rules := DefaultRules()
	rules.RunnerStartCredits = 4
	s, logger := newTestSession(t, rules, []string{"Icebreaker.exe"}, corpICE)
	mustInstall(t, s, "Icebreaker.exe")
	placeICE(t, s, ServerRD, "Enigma", true) // 2 subroutines at 1 credit each

	rs, _ := s.Run(SideRunner, "R&D", ApproachNone)
	rs, _ = s.ContinueRun(rs.ID)

	if rs.Outcome != OutcomeFailed {
		t.Fatalf("outcome = %s, want failed", rs.Outcome)
	}
	if rs.Failure != "insufficient_resource" {
		t.Errorf("failure = %q, want insufficient_resource", rs.Failure)
	}
	if s.state.Runner.NeuralDamage != 1 {
		t.Errorf("neural damage = %d, want 1", s.state.Runner.NeuralDamage)
	}
	if got := s.Credits(SideRunner); got != 1 {
		t.Errorf("credits = %d, want 1", got)
	}
	if len(logger.EventsOfType(log.EventInsufficientResource)) != 1 {
		t.Error("expected an InsufficientResource event")
	}
}

func TestUnrezzedICEIsPassed(t *testing.T) {
	s, _ := newTestSession(t, Rules{}, nil, corpICE)
	placeICE(t, s, ServerRD, "Tollbooth", false)

	rs, _ := s.Run(SideRunner, "R&D", ApproachNone)
	rs, _ = s.ContinueRun(rs.ID)
	if rs.Outcome != OutcomeSuccessful {
		t.Fatalf("outcome = %s, want successful", rs.Outcome)
	}
	if rs.Encounters[0].Result != EncounterPassed {
		t.Errorf("encounter = %s, want passed", rs.Encounters[0].Result)
	}
}

func TestRunExploitBypass(t *testing.T) {
	s, _ := newTestSession(t, Rules{}, []string{"Run Exploit"}, corpICE)
	mustInstall(t, s, "Run Exploit")
	if s.state.Runner.BypassNext != 1 {
		t.Fatalf("bypass = %d, want 1", s.state.Runner.BypassNext)
	}
	placeICE(t, s, ServerRD, "Tollbooth", true)

	rs, _ := s.Run(SideRunner, "R&D", ApproachNone)
	if rs.Outcome != OutcomeSuccessful {
		t.Fatalf("outcome = %s, want successful", rs.Outcome)
	}
	if s.state.Runner.BypassNext != 0 {
		t.Error("bypass must be consumed by the run")
	}
	checkCensus(t, s)
}

func TestAccessExposesAgenda(t *testing.T) {
	s, logger := newTestSession(t, Rules{}, nil, corpICE)
	placeContent(t, s, ServerRemote1, "Priority Directive")

	rs, err := s.Run(SideRunner, "Remote1", ApproachNone)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rs.Outcome != OutcomeSuccessful {
		t.Fatalf("outcome = %s, want successful", rs.Outcome)
	}
	if !s.state.Corp.Servers.Get(ServerRemote1).Empty() {
		t.Error("exposed agenda should leave the remote")
	}
	pile := s.state.Corp.Deck.DiscardPile()
	if len(pile) != 1 || pile[0].Card.Name != "Priority Directive" {
		t.Errorf("archives = %v, want the exposed agenda", pile)
	}
	// 50 − 2 points × 10 − 2 per run
	if got := s.state.Corp.Compliance; got != 28 {
		t.Errorf("compliance = %d, want 28", got)
	}
	if len(logger.EventsOfType(log.EventAgendaExposed)) != 1 {
		t.Error("expected one AgendaExposed event")
	}
	if got := s.Status().RunnerPoints; got != 2 {
		t.Errorf("runner agenda points = %d, want 2", got)
	}
	checkCensus(t, s)
}

// TestExposedPointsWin: exposing agendas worth the winning total ends the
// game for the Runner.
func TestExposedPointsWin(t *testing.T) {
	s, _ := newTestSession(t, Rules{}, nil, corpICE)
	s.state.Runner.AgendaPoints = 5
	placeContent(t, s, ServerRemote1, "Priority Directive")

	if _, err := s.Run(SideRunner, "Remote1", ApproachNone); err != nil {
		t.Fatalf("Run: %v", err)
	}
	over, winner, reason := s.Over()
	if !over || winner != SideRunner {
		t.Fatalf("over=%v winner=%s, want runner win", over, winner)
	}
	if reason != "7 agenda points exposed" {
		t.Errorf("reason = %q", reason)
	}
}

func TestNineRunsLiberateThreeGroups(t *testing.T) {
	rules := DefaultRules()
	rules.RunnerClicks = 10
	s, logger := newTestSession(t, rules, nil, nil)

	for i := 0; i < 9; i++ {
		rs, err := s.Run(SideRunner, "Archives", ApproachNone)
		if err != nil {
			t.Fatalf("run %d: %v", i+1, err)
		}
		if rs.Outcome != OutcomeSuccessful {
			t.Fatalf("run %d: outcome %s", i+1, rs.Outcome)
		}
	}

	over, winner, reason := s.Over()
	if !over || winner != SideRunner {
		t.Fatalf("over=%v winner=%s, want runner win", over, winner)
	}
	t.Logf("reason: %s", reason)
	if got := s.state.Runner.GroupsLiberated; got != 3 {
		t.Errorf("groups liberated = %d, want 3", got)
	}
	if got := len(logger.EventsOfType(log.EventLiberation)); got != 3 {
		t.Errorf("liberation events = %d, want 3", got)
	}
	if _, err := s.Run(SideRunner, "Archives", ApproachNone); !errors.Is(err, ErrGameOver) {
		t.Errorf("run after game over = %v, want ErrGameOver", err)
	}
}

func TestRunGuards(t *testing.T) {
	s, _ := newTestSession(t, Rules{}, []string{"Icebreaker.exe"}, corpICE)
	placeICE(t, s, ServerRD, "Ice Wall", true)

	if _, err := s.Run(SideRunner, "Remote9", ApproachNone); !errors.Is(err, ErrInvalidServer) {
		t.Fatalf("Run(Remote9) = %v, want ErrInvalidServer", err)
	}
	if got := s.state.Runner.Ledger.Clicks(); got != 4 {
		t.Fatalf("invalid server spent a click: %d left", got)
	}

	rs, err := s.Run(SideRunner, "rd", ApproachNone)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if _, err := s.Run(SideRunner, "HQ", ApproachNone); !errors.Is(err, ErrRunInProgress) {
		t.Errorf("second run = %v, want ErrRunInProgress", err)
	}
	if _, err := s.Install(SideRunner, 0); !errors.Is(err, ErrRunInProgress) {
		t.Errorf("install during run = %v, want ErrRunInProgress", err)
	}
	if _, err := s.EndTurn(SideRunner); !errors.Is(err, ErrRunInProgress) {
		t.Errorf("end turn during run = %v, want ErrRunInProgress", err)
	}
	if _, err := s.JackOut(rs.ID); err != nil {
		t.Errorf("JackOut: %v", err)
	}
}

func TestRunIDsAreDeterministic(t *testing.T) {
	ids := func() []string {
		s, _ := newTestSession(t, Rules{}, nil, nil)
		var out []string
		for i := 0; i < 2; i++ {
			rs, err := s.Run(SideRunner, "Archives", ApproachNone)
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			out = append(out, rs.ID)
		}
		return out
	}
	a, b := ids(), ids()
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("run IDs differ between identical sessions:\n%s", diff)
	}
	if a[0] == a[1] {
		t.Error("two runs in one session share an ID")
	}
}

func TestTrashAccessedAsset(t *testing.T) {
	s, logger := newTestSession(t, Rules{}, nil, []string{"Adonis Campaign", "PAD Campaign"})
	adonis := placeContent(t, s, ServerRemote1, "Adonis Campaign")
	placeContent(t, s, ServerRemote2, "PAD Campaign")

	if _, err := s.TrashAccessed(SideRunner, 0); !errors.Is(err, ErrNoActiveRun) {
		t.Fatalf("TrashAccessed before any run = %v, want ErrNoActiveRun", err)
	}

	rs, err := s.Run(SideRunner, "Remote1", ApproachNone)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rs.Outcome != OutcomeSuccessful || len(rs.Accessed) != 1 || rs.Accessed[0].TrashCost != 3 {
		t.Fatalf("run = %s accessed %+v, want Adonis Campaign with trash cost 3", rs.Outcome, rs.Accessed)
	}
	if _, err := s.TrashAccessed(SideCorp, 0); !errors.Is(err, ErrNotYourTurn) {
		t.Errorf("TrashAccessed(corp) = %v, want ErrNotYourTurn", err)
	}

	card, err := s.TrashAccessed(SideRunner, adonis.ID)
	if err != nil {
		t.Fatalf("TrashAccessed: %v", err)
	}
	dumpLog(t, logger)
	if card != adonis || adonis.Zone != ZoneDiscard {
		t.Errorf("trashed %v in %s, want Adonis Campaign in discard", card, adonis.Zone)
	}
	if got := s.Credits(SideRunner); got != 2 {
		t.Errorf("runner credits = %d, want 2", got)
	}
	if !s.state.Corp.Servers.Get(ServerRemote1).Empty() {
		t.Error("trashed asset should leave Remote1")
	}
	if _, err := s.TrashAccessed(SideRunner, adonis.ID); !errors.Is(err, ErrInvalidCardIndex) {
		t.Errorf("second trash = %v, want ErrInvalidCardIndex", err)
	}

	// PAD Campaign costs 4 to trash; the Runner has 2.
	if _, err := s.Run(SideRunner, "Remote2", ApproachNone); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if _, err := s.TrashAccessed(SideRunner, 0); !errors.Is(err, ErrInsufficientResource) {
		t.Errorf("unaffordable trash = %v, want ErrInsufficientResource", err)
	}
	if s.state.Corp.Servers.Get(ServerRemote2).Empty() || s.Credits(SideRunner) != 2 {
		t.Error("failed trash changed the game")
	}

	if _, err := s.EndTurn(SideRunner); err != nil {
		t.Fatalf("EndTurn: %v", err)
	}
	if _, err := s.TrashAccessed(SideRunner, 0); !errors.Is(err, ErrInvalidCardIndex) {
		t.Errorf("trash on a later turn = %v, want ErrInvalidCardIndex", err)
	}
	checkCensus(t, s)
}
