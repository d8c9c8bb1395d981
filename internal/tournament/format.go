package tournament

import (
	"strings"
)

// Format selects the generation algorithm.
type Format int

const (
	FormatUnspecified Format = iota
	SingleRoundRobin
	RoundRobin // double round robin, home and away
	SingleElimination
	DoubleElimination
	Swiss
	SwissWithKnockouts
)

// Formats lists every supported format in display order.
var Formats = []Format{
	SingleRoundRobin,
	RoundRobin,
	SingleElimination,
	DoubleElimination,
	Swiss,
	SwissWithKnockouts,
}

var formatNames = map[Format]string{
	SingleRoundRobin:   "single_round_robin",
	RoundRobin:         "round_robin",
	SingleElimination:  "single_elimination",
	DoubleElimination:  "double_elimination",
	Swiss:              "swiss",
	SwissWithKnockouts: "swiss_with_knockouts",
}

var formatAliases = map[string]Format{
	"double_round_robin": RoundRobin,
}

// ParseFormat maps a config name to a Format. Unknown names return
// FormatUnspecified and false; generating with that value falls back to a
// double round robin.
func ParseFormat(name string) (Format, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	for f, n := range formatNames {
		if n == key {
			return f, true
		}
	}
	if f, ok := formatAliases[key]; ok {
		return f, true
	}
	return FormatUnspecified, false
}

func (f Format) String() string {
	if n, ok := formatNames[f]; ok {
		return n
	}
	return "unspecified"
}

// Description is a human label for listings.
func (f Format) Description() string {
	switch f {
	case SingleRoundRobin:
		return "Every team plays every other team once"
	case RoundRobin:
		return "Every team plays every other team twice, home and away"
	case SingleElimination:
		return "Knockout bracket, one loss eliminates"
	case DoubleElimination:
		return "Winners and losers brackets, two losses eliminate"
	case Swiss:
		return "Teams with similar records are paired each round"
	case SwissWithKnockouts:
		return "Swiss rounds followed by a knockout for the top eight"
	default:
		return "Falls back to a double round robin"
	}
}

// RoundCount returns how many rounds Generate produces for n teams.
func (f Format) RoundCount(n int) int {
	if n < 2 {
		return 0
	}
	circle := n
	if circle%2 == 1 {
		circle++
	}
	switch f {
	case SingleRoundRobin:
		return circle - 1
	case SingleElimination:
		return bracketRounds(n)
	case DoubleElimination:
		w := bracketRounds(n)
		return w + 2*w - 1 + 1
	case Swiss:
		return bracketRounds(n)
	case SwissWithKnockouts:
		return bracketRounds(n) + bracketRounds(min(n, knockoutQualifiers))
	default:
		return 2 * (circle - 1)
	}
}

// bracketRounds is ceil(log2(n)) computed on integers.
func bracketRounds(n int) int {
	rounds := 0
	for size := 1; size < n; size <<= 1 {
		rounds++
	}
	return rounds
}
