package tournament

import (
	"fmt"
	"time"
)

// Team is an entrant supplied by the league: an opaque ID and a display name.
type Team struct {
	ID   string
	Name string
}

// Kind distinguishes what occupies a side of a match or a bye.
type Kind int

const (
	KindTeam Kind = iota
	KindBye
	KindPlaceholder
)

// Competitor is either a real team, a bye, or a placeholder for an occupant
// that is not known yet ("Winner Match 1 (Round 1)").
type Competitor struct {
	Kind  Kind
	Team  Team
	Label string
}

// Real wraps a team.
func Real(t Team) Competitor {
	return Competitor{Kind: KindTeam, Team: t}
}

// Bye is the empty slot used to even out a roster or pad a bracket.
func Bye() Competitor {
	return Competitor{Kind: KindBye}
}

// Placeholder stands in for a competitor decided by an earlier result.
func Placeholder(label string) Competitor {
	return Competitor{Kind: KindPlaceholder, Label: label}
}

func (c Competitor) IsReal() bool        { return c.Kind == KindTeam }
func (c Competitor) IsBye() bool         { return c.Kind == KindBye }
func (c Competitor) IsPlaceholder() bool { return c.Kind == KindPlaceholder }

// Name is the display name: the team name, the placeholder label, or "BYE".
func (c Competitor) Name() string {
	switch c.Kind {
	case KindTeam:
		return c.Team.Name
	case KindPlaceholder:
		return c.Label
	default:
		return ByeLabel
	}
}

func (c Competitor) String() string {
	return c.Name()
}

// ByeLabel is how a bye is written wherever it has to be rendered as text.
const ByeLabel = "BYE"

// Bracket tags double elimination matches.
type Bracket string

const (
	BracketNone    Bracket = ""
	BracketWinners Bracket = "winners"
	BracketLosers  Bracket = "losers"
	BracketFinals  Bracket = "finals"
)

// Match is a single fixture. Home and Away are never byes.
type Match struct {
	Home    Competitor
	Away    Competitor
	Round   int
	Number  int // position within the round, starting at 1
	Venue   string
	Bracket Bracket
}

func (m Match) String() string {
	return fmt.Sprintf("%s vs %s", m.Home.Name(), m.Away.Name())
}

// Round is one date's worth of fixtures. Byes lists competitors that sit out
// or advance without playing.
type Round struct {
	Number  int
	Name    string
	Date    time.Time
	Matches []Match
	Byes    []Competitor
}

// TournamentVenue is the venue label for bracket play.
const TournamentVenue = "Tournament Venue"

func homeVenue(home Competitor) string {
	return home.Name() + " Home Venue"
}
