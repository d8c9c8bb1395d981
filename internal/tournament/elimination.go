package tournament

import "fmt"

var roundNamesFromFinal = []string{
	"Finals",
	"Semi Finals",
	"Quarter Finals",
	"Round of 16",
	"Round of 32",
}

// eliminationRoundName names round r of a bracket with total rounds.
func eliminationRoundName(r, total int) string {
	if d := total - r; d < len(roundNamesFromFinal) {
		return roundNamesFromFinal[d]
	}
	if r == 1 {
		return "First Round"
	}
	return fmt.Sprintf("Round %d", r)
}

// padToPowerOfTwo appends byes until the slot count is a power of two.
func padToPowerOfTwo(entrants []Competitor) []Competitor {
	size := 1 << bracketRounds(len(entrants))
	slots := make([]Competitor, 0, size)
	slots = append(slots, entrants...)
	for len(slots) < size {
		slots = append(slots, Bye())
	}
	return slots
}

// bracketPairing is the outcome of pairing two adjacent bracket slots.
type bracketPairing struct {
	match    bool
	advances Competitor // set when no match is played
}

func pairSlots(a, b Competitor) bracketPairing {
	switch {
	case a.IsBye() && b.IsBye():
		return bracketPairing{advances: Bye()}
	case b.IsBye():
		return bracketPairing{advances: a}
	case a.IsBye():
		return bracketPairing{advances: b}
	default:
		return bracketPairing{match: true}
	}
}

// singleElimination plays consecutive slots against each other. Anyone drawn
// against a bye advances and is recorded as that round's bye. The prefix is
// prepended to round names ("Knockout ").
func singleElimination(entrants []Competitor, seq *sequence, prefix string) []Round {
	total := bracketRounds(len(entrants))
	slots := padToPowerOfTwo(entrants)

	rounds := make([]Round, 0, total)
	for r := 1; r <= total; r++ {
		num, date := seq.next()
		round := Round{
			Number: num,
			Name:   prefix + eliminationRoundName(r, total),
			Date:   date,
		}

		next := make([]Competitor, 0, len(slots)/2)
		for i := 0; i+1 < len(slots); i += 2 {
			p := pairSlots(slots[i], slots[i+1])
			if !p.match {
				if !p.advances.IsBye() {
					round.Byes = append(round.Byes, p.advances)
				}
				next = append(next, p.advances)
				continue
			}

			m := Match{
				Home:   slots[i],
				Away:   slots[i+1],
				Round:  num,
				Number: len(round.Matches) + 1,
				Venue:  TournamentVenue,
			}
			round.Matches = append(round.Matches, m)
			next = append(next, Placeholder(fmt.Sprintf("Winner Match %d (Round %d)", m.Number, num)))
		}

		rounds = append(rounds, round)
		slots = next
	}
	return rounds
}

// doubleElimination plays a winners bracket, then a losers bracket of
// 2W-1 rounds, then a single grand final. Odd losers rounds take in the
// losers of the matching winners round; even rounds are played among the
// losers bracket survivors.
func doubleElimination(entrants []Competitor, seq *sequence) []Round {
	wRounds := bracketRounds(len(entrants))
	slots := padToPowerOfTwo(entrants)
	dropped := make([][]Competitor, wRounds)

	rounds := make([]Round, 0, 3*wRounds)
	for r := 1; r <= wRounds; r++ {
		num, date := seq.next()
		round := Round{Number: num, Name: fmt.Sprintf("Winners Round %d", r), Date: date}

		next := make([]Competitor, 0, len(slots)/2)
		for i := 0; i+1 < len(slots); i += 2 {
			p := pairSlots(slots[i], slots[i+1])
			if !p.match {
				if !p.advances.IsBye() {
					round.Byes = append(round.Byes, p.advances)
				}
				next = append(next, p.advances)
				continue
			}

			m := Match{
				Home:    slots[i],
				Away:    slots[i+1],
				Round:   num,
				Number:  len(round.Matches) + 1,
				Venue:   TournamentVenue,
				Bracket: BracketWinners,
			}
			round.Matches = append(round.Matches, m)
			next = append(next, Placeholder(fmt.Sprintf("Winner W%d-M%d", r, m.Number)))
			dropped[r-1] = append(dropped[r-1], Placeholder(fmt.Sprintf("Loser W%d-M%d", r, m.Number)))
		}

		rounds = append(rounds, round)
		slots = next
	}
	champion := slots[0]

	var survivors []Competitor
	for j := 1; j <= 2*wRounds-1; j++ {
		num, date := seq.next()
		round := Round{Number: num, Name: fmt.Sprintf("Losers Round %d", j), Date: date}

		entrants := survivors
		if j%2 == 1 {
			entrants = dropIn(survivors, dropped[(j-1)/2])
		}

		survivors = nil
		for i := 0; i < len(entrants); i += 2 {
			if i+1 == len(entrants) {
				round.Byes = append(round.Byes, entrants[i])
				survivors = append(survivors, entrants[i])
				break
			}
			m := Match{
				Home:    entrants[i],
				Away:    entrants[i+1],
				Round:   num,
				Number:  len(round.Matches) + 1,
				Venue:   TournamentVenue,
				Bracket: BracketLosers,
			}
			round.Matches = append(round.Matches, m)
			survivors = append(survivors, Placeholder(fmt.Sprintf("Winner L%d-M%d", j, m.Number)))
		}

		rounds = append(rounds, round)
	}

	num, date := seq.next()
	rounds = append(rounds, Round{
		Number: num,
		Name:   "Grand Finals",
		Date:   date,
		Matches: []Match{{
			Home:    champion,
			Away:    survivors[0],
			Round:   num,
			Number:  1,
			Venue:   TournamentVenue,
			Bracket: BracketFinals,
		}},
	})
	return rounds
}

// dropIn merges winners-bracket losers into the losers bracket. Equal sized
// groups are interleaved so each newcomer meets a survivor.
func dropIn(survivors, losers []Competitor) []Competitor {
	merged := make([]Competitor, 0, len(survivors)+len(losers))
	if len(survivors) == len(losers) {
		for i := range survivors {
			merged = append(merged, survivors[i], losers[i])
		}
		return merged
	}
	merged = append(merged, survivors...)
	return append(merged, losers...)
}
