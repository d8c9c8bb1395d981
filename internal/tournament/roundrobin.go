package tournament

import "fmt"

// roundRobin schedules with the circle method: the first slot stays put and
// the rest rotate one place per round. Odd rosters get a bye slot, and the
// team drawn against it sits the round out.
func roundRobin(teams []Team, double bool, seq *sequence) []Round {
	slots := make([]Competitor, 0, len(teams)+1)
	for _, t := range teams {
		slots = append(slots, Real(t))
	}
	if len(slots)%2 == 1 {
		slots = append(slots, Bye())
	}
	n := len(slots)

	rounds := make([]Round, 0, 2*(n-1))
	for r := 0; r < n-1; r++ {
		num, date := seq.next()
		round := Round{Number: num, Name: fmt.Sprintf("Round %d", num), Date: date}

		for i := 0; i < n/2; i++ {
			a, b := slots[i], slots[n-1-i]
			if a.IsBye() {
				round.Byes = append(round.Byes, b)
				continue
			}
			if b.IsBye() {
				round.Byes = append(round.Byes, a)
				continue
			}

			home, away := a, b
			if (r+i)%2 == 1 {
				home, away = b, a
			}
			round.Matches = append(round.Matches, Match{
				Home:   home,
				Away:   away,
				Round:  num,
				Number: len(round.Matches) + 1,
				Venue:  homeVenue(home),
			})
		}

		rounds = append(rounds, round)
		rotate(slots)
	}

	if !double {
		return rounds
	}

	// Second half replays the first with home and away swapped.
	for _, first := range rounds[:n-1] {
		num, date := seq.next()
		ret := Round{
			Number: num,
			Name:   fmt.Sprintf("Round %d (Return)", num),
			Date:   date,
			Byes:   append([]Competitor(nil), first.Byes...),
		}
		for _, m := range first.Matches {
			ret.Matches = append(ret.Matches, Match{
				Home:   m.Away,
				Away:   m.Home,
				Round:  num,
				Number: m.Number,
				Venue:  homeVenue(m.Away),
			})
		}
		rounds = append(rounds, ret)
	}
	return rounds
}

// rotate keeps slots[0] fixed and moves the last slot to position 1.
func rotate(slots []Competitor) {
	if len(slots) <= 2 {
		return
	}
	last := slots[len(slots)-1]
	copy(slots[2:], slots[1:len(slots)-1])
	slots[1] = last
}
