package game

import (
	"fmt"
	"strings"
)

type ServerName int

const (
	ServerRD ServerName = iota
	ServerHQ
	ServerArchives
	ServerRemote1
	ServerRemote2
	ServerRemote3
)

// ServerCount is the number of legal servers.
const ServerCount = 6

func (n ServerName) String() string {
	switch n {
	case ServerRD:
		return "R&D"
	case ServerHQ:
		return "HQ"
	case ServerArchives:
		return "Archives"
	case ServerRemote1:
		return "Remote1"
	case ServerRemote2:
		return "Remote2"
	case ServerRemote3:
		return "Remote3"
	default:
		return "Unknown"
	}
}

// IsCentral reports whether the server is R&D, HQ or Archives.
func (n ServerName) IsCentral() bool {
	return n <= ServerArchives
}

// ParseServerName accepts the display names case-insensitively, plus "rd"
// and "remote N".
func ParseServerName(s string) (ServerName, error) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	switch key {
	case "r&d", "rd":
		return ServerRD, nil
	case "hq":
		return ServerHQ, nil
	case "archives":
		return ServerArchives, nil
	case "remote1":
		return ServerRemote1, nil
	case "remote2":
		return ServerRemote2, nil
	case "remote3":
		return ServerRemote3, nil
	}
	return 0, fmt.Errorf("%w: %q (valid: R&D, HQ, Archives, Remote1, Remote2, Remote3)", ErrInvalidServer, s)
}

// Server is one Corporation server. ICE[0] is the outermost ICE, the first
// one a run encounters.
type Server struct {
	Name    ServerName
	ICE     []*CardInstance
	Content []*CardInstance // remote servers only; centrals read the Corp's zones
}

// InstallICE places card in the outermost position.
func (s *Server) InstallICE(card *CardInstance) {
	card.Zone = ZoneServer
	card.Installed = true
	s.ICE = append([]*CardInstance{card}, s.ICE...)
}

// InstallContent places an agenda or asset in a remote server.
func (s *Server) InstallContent(card *CardInstance) error {
	if s.Name.IsCentral() {
		return fmt.Errorf("%w: cannot install %s in central server %s", ErrInvalidServer, card, s.Name)
	}
	card.Zone = ZoneServer
	card.Installed = true
	s.Content = append(s.Content, card)
	return nil
}

// RemoveContent takes card out of the server's contents.
func (s *Server) RemoveContent(card *CardInstance) bool {
	return removeCard(&s.Content, card)
}

// Empty reports whether a remote server holds no content.
func (s *Server) Empty() bool {
	return len(s.Content) == 0
}

// CardCount returns how many cards the server holds.
func (s *Server) CardCount() int {
	return len(s.ICE) + len(s.Content)
}

// Servers is the Corporation's full server layout.
type Servers [ServerCount]*Server

// NewServers creates all six servers empty.
func NewServers() Servers {
	var s Servers
	for i := range s {
		s[i] = &Server{Name: ServerName(i)}
	}
	return s
}

// Get returns the server by name.
func (s Servers) Get(name ServerName) *Server {
	if name < 0 || int(name) >= ServerCount {
		return nil
	}
	return s[name]
}

// CardCount sums the cards held across every server.
func (s Servers) CardCount() int {
	n := 0
	for _, srv := range s {
		n += srv.CardCount()
	}
	return n
}

// FirstEmptyRemote returns the first remote with no content, or nil.
func (s Servers) FirstEmptyRemote() *Server {
	for _, name := range []ServerName{ServerRemote1, ServerRemote2, ServerRemote3} {
		if s[name].Empty() {
			return s[name]
		}
	}
	return nil
}

// LeastDefended returns the server with the fewest ICE, preferring centrals
// and then remotes holding content. Ties go to canonical order.
func (s Servers) LeastDefended() *Server {
	var best *Server
	for _, srv := range s {
		if !srv.Name.IsCentral() && srv.Empty() {
			continue
		}
		if best == nil || len(srv.ICE) < len(best.ICE) {
			best = srv
		}
	}
	return best
}
