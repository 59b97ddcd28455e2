package net

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/peterkuimelis/neondominance/internal/game"
)

var (
	accent = lipgloss.Color("#00d7ff")
	danger = lipgloss.Color("#ff5f87")

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(accent).
			Bold(true)

	alertStyle = lipgloss.NewStyle().
			Foreground(danger).
			Bold(true)
)

// RenderStatus draws the two side panels under a turn header.
func RenderStatus(st game.Status) string {
	header := titleStyle.Render(fmt.Sprintf("Turn %d · Day %d · %s %s", st.Turn, st.Day, st.Side, st.Phase))

	runner := panelStyle.Render(strings.Join([]string{
		titleStyle.Render("RUNNER"),
		fmt.Sprintf("Credits  %d", st.Runner.Credits),
		fmt.Sprintf("Clicks   %d", st.Runner.Clicks),
		fmt.Sprintf("Hand     %d", st.Runner.Hand),
		fmt.Sprintf("Deck     %d  Discard %d", st.Runner.Deck, st.Runner.Discard),
		fmt.Sprintf("Memory   %d/%d", st.MemoryUsed, st.MemoryAvailable),
		fmt.Sprintf("Damage   %d", st.NeuralDamage),
		fmt.Sprintf("Runs     %d  Liberated %d", st.SuccessfulRuns, st.GroupsLiberated),
		fmt.Sprintf("Agendas  %d pts", st.RunnerPoints),
	}, "\n"))

	corp := panelStyle.Render(strings.Join([]string{
		titleStyle.Render("CORPORATION"),
		fmt.Sprintf("Credits     %d", st.Corp.Credits),
		fmt.Sprintf("Clicks      %d", st.Corp.Clicks),
		fmt.Sprintf("Hand        %d", st.Corp.Hand),
		fmt.Sprintf("Deck        %d  Discard %d", st.Corp.Deck, st.Corp.Discard),
		fmt.Sprintf("Compliance  %d%% (%d days)", st.Compliance, st.ComplianceDays),
		fmt.Sprintf("Agendas     %d pts", st.AgendaPoints),
	}, "\n"))

	lines := []string{header, lipgloss.JoinHorizontal(lipgloss.Top, runner, " ", corp)}
	if st.Run != nil && !st.Run.Terminal {
		lines = append(lines, fmt.Sprintf("Run on %s: ICE %d/%d", st.Run.Server, st.Run.IceIndex+1, st.Run.IceTotal))
	}
	if st.GameOver {
		lines = append(lines, alertStyle.Render(fmt.Sprintf("GAME OVER: %s wins (%s)", st.Winner, st.Reason)))
	}
	return strings.Join(lines, "\n")
}

// RenderRun summarises a run and every encounter so far.
func RenderRun(rs game.RunState) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Run %s on %s (%s): %s", shortRunID(rs.ID), rs.Server, rs.Approach, rs.Outcome)
	if rs.CreditsSpent > 0 {
		fmt.Fprintf(&sb, ", %d credits", rs.CreditsSpent)
	}
	if rs.Damage > 0 {
		sb.WriteString(alertStyle.Render(fmt.Sprintf(", %d damage", rs.Damage)))
	}
	for _, e := range rs.Encounters {
		fmt.Fprintf(&sb, "\n  %d. %s (STR %d): %s", e.Index+1, e.ICE, e.ICEStrength, e.Result)
		if e.Breaker != "" {
			fmt.Fprintf(&sb, " by %s (STR %d)", e.Breaker, e.BreakerStrength)
		}
	}
	if !rs.Terminal {
		fmt.Fprintf(&sb, "\n  next: ICE %d of %d (continue | jack_out)", rs.IceIndex+1, rs.IceTotal)
	}
	for _, c := range rs.Accessed {
		fmt.Fprintf(&sb, "\n  accessed %s", c.Name)
		if c.Points > 0 {
			fmt.Fprintf(&sb, " (%d agenda points exposed)", c.Points)
		}
		if c.TrashCost > 0 && rs.Outcome == game.OutcomeSuccessful {
			fmt.Fprintf(&sb, " (trash #%d for %d credits)", c.ID, c.TrashCost)
		}
	}
	return sb.String()
}

// RenderCards lists cards; numbered lists start at 1.
func RenderCards(title string, cards []game.CardView, numbered bool) string {
	if len(cards) == 0 {
		return title + ": (none)"
	}
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(title))
	for i, c := range cards {
		sb.WriteString("\n  ")
		if numbered {
			fmt.Fprintf(&sb, "[%d] ", i+1)
		}
		sb.WriteString(cardLine(c))
	}
	return sb.String()
}

func cardLine(c game.CardView) string {
	s := fmt.Sprintf("%s (%s, %dc", c.Name, c.Type, c.Cost)
	if c.Strength > 0 {
		s += fmt.Sprintf(", STR %d", c.Strength)
	}
	if c.MemoryUnits > 0 {
		s += fmt.Sprintf(", %d MU", c.MemoryUnits)
	}
	if len(c.Breaks) > 0 {
		s += ", breaks " + strings.Join(c.Breaks, "/")
	}
	return s + ")"
}

// RenderServers shows each server's ICE, outermost first. Unrezzed ICE is
// shown face down.
func RenderServers(servers []game.ServerView) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Servers"))
	for _, srv := range servers {
		fmt.Fprintf(&sb, "\n  %-9s", srv.Name)
		if len(srv.ICE) == 0 {
			sb.WriteString(" no ICE")
		}
		for _, ice := range srv.ICE {
			if ice.Rezzed {
				fmt.Fprintf(&sb, " [%s STR %d]", ice.Name, ice.Strength)
			} else {
				sb.WriteString(" [unrezzed]")
			}
		}
		if n := len(srv.Content); n > 0 {
			fmt.Fprintf(&sb, "  +%d card(s)", n)
		}
	}
	return sb.String()
}

// RenderInfo prints the session's fixed parameters.
func RenderInfo(info game.Info) string {
	return fmt.Sprintf("Seed %d\nRunner: %s (%d cards)\nCorporation: %s (%d cards, %s)",
		info.Seed, info.RunnerDeck, info.RunnerDeckSize, info.CorpDeck, info.CorpDeckSize, info.CorpStrategy)
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
