package game

// CardView is a read-only snapshot of a card instance for presentation
// layers.
type CardView struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Cost        int      `json:"cost"`
	Strength    int      `json:"strength,omitempty"`
	MemoryUnits int      `json:"memory_units,omitempty"`
	Subtype     string   `json:"subtype,omitempty"`
	Breaks      []string `json:"breaks,omitempty"`
	Rezzed      bool     `json:"rezzed,omitempty"`
	Advancement int      `json:"advancement,omitempty"`
	TrashCost   int      `json:"trash_cost,omitempty"`
	Credits     int      `json:"credits,omitempty"` // stored on the card
	Requirement int      `json:"requirement,omitempty"`
	Points      int      `json:"points,omitempty"`
}

// ViewCard snapshots c.
func ViewCard(c *CardInstance) CardView {
	v := CardView{
		ID:          c.ID,
		Name:        c.Card.Name,
		Type:        c.Card.Type.String(),
		Description: c.Card.Description,
		Cost:        c.Card.Cost,
		Strength:    c.Card.Strength(),
		MemoryUnits: c.Card.MemoryUnits(),
		Rezzed:      c.Rezzed,
		Advancement: c.Advancement,
		TrashCost:   c.Card.TrashCost,
		Credits:     c.Counters[CounterCredits],
	}
	if c.Card.ICE != nil {
		v.Subtype = c.Card.ICE.Subtype
	}
	if c.Card.Breaker != nil {
		v.Breaks = c.Card.Breaker.Breaks
	}
	if c.Card.Agenda != nil {
		v.Requirement = c.Card.Agenda.AdvancementRequirement
		v.Points = c.Card.Agenda.AgendaPoints
	}
	return v
}

func viewCards(cards []*CardInstance) []CardView {
	views := make([]CardView, 0, len(cards))
	for _, c := range cards {
		views = append(views, ViewCard(c))
	}
	return views
}

// ServerView is a snapshot of one server, ICE outermost first.
type ServerView struct {
	Name    string     `json:"name"`
	ICE     []CardView `json:"ice"`
	Content []CardView `json:"content"`
}

// SideStatus is one side's public counters.
type SideStatus struct {
	Credits   int `json:"credits"`
	Clicks    int `json:"clicks"`
	Hand      int `json:"hand"`
	Deck      int `json:"deck"`
	Discard   int `json:"discard"`
	Installed int `json:"installed"`
}

// Status is the whole-game snapshot behind the status query.
type Status struct {
	Turn  int    `json:"turn"`
	Day   int    `json:"day"`
	Side  string `json:"side"`
	Phase string `json:"phase"`

	Runner          SideStatus `json:"runner"`
	MemoryUsed      int        `json:"memory_used"`
	MemoryAvailable int        `json:"memory_available"`
	NeuralDamage    int        `json:"neural_damage"`
	SuccessfulRuns  int        `json:"successful_runs"`
	GroupsLiberated int        `json:"groups_liberated"`
	RunnerPoints    int        `json:"runner_agenda_points"`

	Corp           SideStatus `json:"corp"`
	Compliance     int        `json:"compliance"`
	ComplianceDays int        `json:"compliance_days"`
	AgendaPoints   int        `json:"agenda_points"`

	Run *RunState `json:"run,omitempty"`

	GameOver bool   `json:"game_over"`
	Winner   string `json:"winner,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// Memory is the Runner's MU snapshot.
type Memory struct {
	Available int `json:"available"`
	Used      int `json:"used"`
	Free      int `json:"free"`
}

// Info describes the session's fixed parameters.
type Info struct {
	Seed           int64  `json:"seed"`
	RunnerDeck     string `json:"runner_deck"`
	CorpDeck       string `json:"corp_deck"`
	RunnerDeckSize int    `json:"runner_deck_size"`
	CorpDeckSize   int    `json:"corp_deck_size"`
	CorpStrategy   string `json:"corp_strategy"`
	Rules          Rules  `json:"rules"`
}
