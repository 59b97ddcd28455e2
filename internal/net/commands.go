package net

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/peterkuimelis/neondominance/internal/game"
)

// ErrUnknownCommand is returned by Execute for a verb it does not know.
var ErrUnknownCommand = errors.New("unknown command")

// Help lists the command language.
const Help = `Commands:
  draw                         draw a card (1 click)
  install N                    install or play hand card N (1 click)
  discard N                    discard hand card N (1 click)
  credit                       gain 1 credit (1 click)
  reshuffle                    shuffle your discard into your draw pile (1 click)
  uninstall N                  trash installed card N, freeing its MU
  run SERVER [--stealth|--aggressive|--careful]
                               start a run (1 click); SERVER is R&D, HQ, Archives, Remote1-3
  continue                     resolve the next ICE of the current run
  resolve                      continue the current run until it ends
  jack_out                     abort the current run
  trash [ID]                   pay to trash an asset accessed on your last run
  end                          end your turn; the Corporation plays at once
  status | credits | memory | installed | hand | servers | info
  help`

// Execute runs one command line for the Runner against sess and returns the
// text to show. Hand and rig indices are 1-based, as listed by "hand" and
// "installed".
func Execute(sess *game.GameSession, line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	verb, args := strings.ToLower(fields[0]), fields[1:]
	side := game.SideRunner

	switch verb {
	case "draw":
		card, err := sess.Draw(side)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Drew %s", card.Card.Name), nil

	case "install", "play":
		idx, err := handArg(args)
		if err != nil {
			return "", err
		}
		card, err := sess.Install(side, idx)
		if err != nil {
			return "", err
		}
		if card.Card.Type == game.CardTypeEvent {
			return fmt.Sprintf("Played %s (%d credits left)", card.Card.Name, sess.Credits(side)), nil
		}
		return fmt.Sprintf("Installed %s (%d credits left)", card.Card.Name, sess.Credits(side)), nil

	case "discard":
		idx, err := handArg(args)
		if err != nil {
			return "", err
		}
		card, err := sess.Discard(side, idx)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Discarded %s", card.Card.Name), nil

	case "credit", "gain":
		total, err := sess.GainCredit(side)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Gained 1 credit (%d total)", total), nil

	case "reshuffle":
		n, err := sess.ShuffleDiscard(side)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Shuffled discard into deck (%d cards)", n), nil

	case "uninstall":
		idx, err := handArg(args)
		if err != nil {
			return "", err
		}
		card, err := sess.Uninstall(side, idx)
		if err != nil {
			return "", err
		}
		m := sess.Memory()
		return fmt.Sprintf("Uninstalled %s (%d MU free)", card.Card.Name, m.Free), nil

	case "trash":
		id := 0
		if len(args) > 0 {
			n, err := strconv.Atoi(strings.TrimPrefix(args[0], "#"))
			if err != nil || n < 1 {
				return "", fmt.Errorf("%q: %w", args[0], game.ErrInvalidCardIndex)
			}
			id = n
		}
		card, err := sess.TrashAccessed(side, id)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Trashed %s (%d credits left)", card.Card.Name, sess.Credits(side)), nil

	case "run":
		server, approach, err := runArgs(args)
		if err != nil {
			return "", err
		}
		rs, err := sess.Run(side, server, approach)
		if err != nil {
			return "", err
		}
		return RenderRun(rs), nil

	case "continue":
		rs, err := sess.ContinueRun("")
		if err != nil {
			return "", err
		}
		return RenderRun(rs), nil

	case "resolve":
		rs, err := sess.ResolveRun("")
		if err != nil {
			return "", err
		}
		return RenderRun(rs), nil

	case "jack_out", "jackout":
		rs, err := sess.JackOut("")
		if err != nil {
			return "", err
		}
		return RenderRun(rs), nil

	case "end":
		if _, err := sess.EndTurn(side); err != nil {
			return "", err
		}
		return RenderStatus(sess.Status()), nil

	case "status":
		return RenderStatus(sess.Status()), nil
	case "credits":
		return fmt.Sprintf("Runner %d credits, Corporation %d credits",
			sess.Credits(game.SideRunner), sess.Credits(game.SideCorp)), nil
	case "memory":
		m := sess.Memory()
		return fmt.Sprintf("Memory %d/%d used, %d free", m.Used, m.Available, m.Free), nil
	case "installed":
		return RenderCards("Installed", sess.Installed(side), true), nil
	case "hand":
		return RenderCards("Hand", sess.Hand(side), true), nil
	case "servers":
		return RenderServers(sess.Servers()), nil
	case "info":
		return RenderInfo(sess.Info()), nil
	case "help", "?":
		return Help, nil
	}
	return "", fmt.Errorf("%w: %q (try help)", ErrUnknownCommand, verb)
}

func handArg(args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("want one hand index: %w", game.ErrInvalidCardIndex)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%q: %w", args[0], game.ErrInvalidCardIndex)
	}
	return n - 1, nil
}

// runArgs splits "remote 1 --stealth" into a server name and an approach.
func runArgs(args []string) (string, game.Approach, error) {
	approach := game.ApproachNone
	var name []string
	for _, a := range args {
		if strings.HasPrefix(a, "--") {
			ap, err := game.ParseApproach(a)
			if err != nil {
				return "", approach, err
			}
			approach = ap
			continue
		}
		name = append(name, a)
	}
	if len(name) == 0 {
		return "", approach, fmt.Errorf("run needs a server: %w", game.ErrInvalidServer)
	}
	return strings.Join(name, " "), approach, nil
}
