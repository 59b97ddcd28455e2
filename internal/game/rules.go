package game

import (
	"errors"
	"fmt"
)

// Rules holds every tunable number the engine uses. The approach modifiers
// and both win formulas are provisional defaults.
type Rules struct {
	RunnerStartCredits int `yaml:"runner_start_credits" env:"NEON_RUNNER_START_CREDITS"`
	CorpStartCredits   int `yaml:"corp_start_credits" env:"NEON_CORP_START_CREDITS"`
	RunnerClicks       int `yaml:"runner_clicks" env:"NEON_RUNNER_CLICKS"`
	CorpClicks         int `yaml:"corp_clicks" env:"NEON_CORP_CLICKS"`
	RunnerMemory       int `yaml:"runner_memory" env:"NEON_RUNNER_MEMORY"`
	InitialHandSize    int `yaml:"initial_hand_size" env:"NEON_INITIAL_HAND_SIZE"`
	MaxHandSize        int `yaml:"max_hand_size" env:"NEON_MAX_HAND_SIZE"`

	// Run approaches
	StealthCost               int `yaml:"stealth_cost" env:"NEON_STEALTH_COST"`
	StealthSkipPercent        int `yaml:"stealth_skip_percent" env:"NEON_STEALTH_SKIP_PERCENT"`
	AggressiveStrengthBonus   int `yaml:"aggressive_strength_bonus" env:"NEON_AGGRESSIVE_STRENGTH_BONUS"`
	AggressiveDamageReduction int `yaml:"aggressive_damage_reduction" env:"NEON_AGGRESSIVE_DAMAGE_REDUCTION"`
	CarefulStrengthPenalty    int `yaml:"careful_strength_penalty" env:"NEON_CAREFUL_STRENGTH_PENALTY"`
	JackOutCost               int `yaml:"jack_out_cost" env:"NEON_JACK_OUT_COST"`
	CarefulJackOutCost        int `yaml:"careful_jack_out_cost" env:"NEON_CAREFUL_JACK_OUT_COST"`
	DamagePerFailure          int `yaml:"damage_per_failure" env:"NEON_DAMAGE_PER_FAILURE"`
	MinFailureDamage          int `yaml:"min_failure_damage" env:"NEON_MIN_FAILURE_DAMAGE"`

	// Win conditions
	RunsPerLiberation   int `yaml:"runs_per_liberation" env:"NEON_RUNS_PER_LIBERATION"`
	GroupsToWin         int `yaml:"groups_to_win" env:"NEON_GROUPS_TO_WIN"`
	ComplianceThreshold int `yaml:"compliance_threshold" env:"NEON_COMPLIANCE_THRESHOLD"`
	ComplianceDays      int `yaml:"compliance_days" env:"NEON_COMPLIANCE_DAYS"`
	AgendaPointsToWin   int `yaml:"agenda_points_to_win" env:"NEON_AGENDA_POINTS_TO_WIN"`

	// Population compliance
	InitialCompliance        int `yaml:"initial_compliance" env:"NEON_INITIAL_COMPLIANCE"`
	ComplianceAgendaSwing    int `yaml:"compliance_agenda_swing" env:"NEON_COMPLIANCE_AGENDA_SWING"`
	ComplianceRunLoss        int `yaml:"compliance_run_loss" env:"NEON_COMPLIANCE_RUN_LOSS"`
	ComplianceLiberationLoss int `yaml:"compliance_liberation_loss" env:"NEON_COMPLIANCE_LIBERATION_LOSS"`
}

// DefaultRules returns the stock rule set.
func DefaultRules() Rules {
	return Rules{
		RunnerStartCredits: 5,
		CorpStartCredits:   5,
		RunnerClicks:       4,
		CorpClicks:         3,
		RunnerMemory:       4,
		InitialHandSize:    5,
		MaxHandSize:        5,

		StealthCost:               1,
		StealthSkipPercent:        50,
		AggressiveStrengthBonus:   1,
		AggressiveDamageReduction: 0,
		CarefulStrengthPenalty:    1,
		JackOutCost:               1,
		CarefulJackOutCost:        0,
		DamagePerFailure:          1,
		MinFailureDamage:          1,

		RunsPerLiberation:   3,
		GroupsToWin:         3,
		ComplianceThreshold: 80,
		ComplianceDays:      5,
		AgendaPointsToWin:   7,

		InitialCompliance:        50,
		ComplianceAgendaSwing:    10,
		ComplianceRunLoss:        2,
		ComplianceLiberationLoss: 10,
	}
}

// Validate rejects rule sets the engine cannot run with.
func (r Rules) Validate() error {
	var errs []error
	type field struct {
		name string
		v    int
	}
	positive := []field{
		{"runner_clicks", r.RunnerClicks},
		{"corp_clicks", r.CorpClicks},
		{"runs_per_liberation", r.RunsPerLiberation},
		{"groups_to_win", r.GroupsToWin},
		{"compliance_days", r.ComplianceDays},
		{"agenda_points_to_win", r.AgendaPointsToWin},
		{"max_hand_size", r.MaxHandSize},
	}
	for _, f := range positive {
		if f.v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", f.name, f.v))
		}
	}
	nonNegative := []field{
		{"runner_start_credits", r.RunnerStartCredits},
		{"corp_start_credits", r.CorpStartCredits},
		{"runner_memory", r.RunnerMemory},
		{"initial_hand_size", r.InitialHandSize},
		{"stealth_cost", r.StealthCost},
		{"aggressive_strength_bonus", r.AggressiveStrengthBonus},
		{"aggressive_damage_reduction", r.AggressiveDamageReduction},
		{"careful_strength_penalty", r.CarefulStrengthPenalty},
		{"jack_out_cost", r.JackOutCost},
		{"careful_jack_out_cost", r.CarefulJackOutCost},
		{"damage_per_failure", r.DamagePerFailure},
		{"min_failure_damage", r.MinFailureDamage},
		{"compliance_agenda_swing", r.ComplianceAgendaSwing},
		{"compliance_run_loss", r.ComplianceRunLoss},
		{"compliance_liberation_loss", r.ComplianceLiberationLoss},
	}
	for _, f := range nonNegative {
		if f.v < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %d", f.name, f.v))
		}
	}
	percent := []field{
		{"stealth_skip_percent", r.StealthSkipPercent},
		{"compliance_threshold", r.ComplianceThreshold},
		{"initial_compliance", r.InitialCompliance},
	}
	for _, f := range percent {
		if f.v < 0 || f.v > 100 {
			errs = append(errs, fmt.Errorf("%s must be within 0-100, got %d", f.name, f.v))
		}
	}
	return errors.Join(errs...)
}

// failureDamage is the neural damage a failed run deals under approach.
func (r Rules) failureDamage(a Approach) int {
	dmg := r.DamagePerFailure
	if a == ApproachAggressive {
		dmg -= r.AggressiveDamageReduction
	}
	if dmg < r.MinFailureDamage {
		dmg = r.MinFailureDamage
	}
	return dmg
}

// strengthModifier is added to breaker strength for every encounter.
func (r Rules) strengthModifier(a Approach) int {
	switch a {
	case ApproachAggressive:
		return r.AggressiveStrengthBonus
	case ApproachCareful:
		return -r.CarefulStrengthPenalty
	}
	return 0
}

// jackOutCost is the credit price of aborting a run under approach.
func (r Rules) jackOutCost(a Approach) int {
	if a == ApproachCareful {
		return r.CarefulJackOutCost
	}
	return r.JackOutCost
}
