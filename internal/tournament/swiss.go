package tournament

import (
	"fmt"
	"sort"
	"time"
)

// knockoutQualifiers is how many teams advance from Swiss to the knockout.
const knockoutQualifiers = 8

// Simulated points: nothing has been played when the schedule is built, so
// the higher listed team of each pairing is assumed to win.
const (
	winPoints  = 2
	lossPoints = 1
	byePoints  = 1
)

type standing struct {
	team   Competitor
	seed   int
	points int
}

// standings is the running Swiss table. Each round takes one and returns a
// new one; nothing is shared between rounds or calls.
type standings []standing

func newStandings(teams []Team) standings {
	st := make(standings, len(teams))
	for i, t := range teams {
		st[i] = standing{team: Real(t), seed: i + 1}
	}
	return st
}

// ranked orders by points, highest first, and by seed on ties.
func (st standings) ranked() standings {
	out := make(standings, len(st))
	copy(out, st)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].points != out[j].points {
			return out[i].points > out[j].points
		}
		return out[i].seed < out[j].seed
	})
	return out
}

// pairRound pairs adjacent ranks (1v2, 3v4, ...). With an odd count the
// lowest ranked team takes the bye. Rematches are not avoided.
func (st standings) pairRound(num int, date time.Time, name string) (Round, standings) {
	table := st.ranked()
	round := Round{Number: num, Name: name, Date: date}

	pairable := table
	if len(table)%2 == 1 {
		last := len(table) - 1
		table[last].points += byePoints
		round.Byes = append(round.Byes, table[last].team)
		pairable = table[:last]
	}

	for i := 0; i+1 < len(pairable); i += 2 {
		home, away := &pairable[i], &pairable[i+1]
		home.points += winPoints
		away.points += lossPoints
		round.Matches = append(round.Matches, Match{
			Home:   home.team,
			Away:   away.team,
			Round:  num,
			Number: len(round.Matches) + 1,
			Venue:  homeVenue(home.team),
		})
	}
	return round, table
}

func swiss(teams []Team, seq *sequence) []Round {
	total := bracketRounds(len(teams))
	st := newStandings(teams)

	rounds := make([]Round, 0, total)
	for r := 1; r <= total; r++ {
		num, date := seq.next()
		var round Round
		round, st = st.pairRound(num, date, fmt.Sprintf("Swiss Round %d", r))
		rounds = append(rounds, round)
	}
	return rounds
}

// swissWithKnockouts follows the Swiss rounds with a single elimination
// bracket for the first eight seeds, tagged as qualifiers.
func swissWithKnockouts(teams []Team, seq *sequence) []Round {
	rounds := swiss(teams, seq)

	qualified := make([]Competitor, 0, knockoutQualifiers)
	for _, t := range teams[:min(len(teams), knockoutQualifiers)] {
		qualified = append(qualified, Placeholder(t.Name+" (Qualified)"))
	}
	return append(rounds, singleElimination(qualified, seq, "Knockout ")...)
}
