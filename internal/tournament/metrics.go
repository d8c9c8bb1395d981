package tournament

// TeamMetrics counts one team's appearances across a season.
type TeamMetrics struct {
	Team    string
	Matches int
	Home    int
	Away    int
	Byes    int
}

// Tally returns metrics for every real team, in order of first appearance.
// Placeholders are not counted.
func Tally(rounds []Round) []TeamMetrics {
	var order []string
	byTeam := make(map[string]*TeamMetrics)
	get := func(c Competitor) *TeamMetrics {
		name := c.Name()
		m, ok := byTeam[name]
		if !ok {
			m = &TeamMetrics{Team: name}
			byTeam[name] = m
			order = append(order, name)
		}
		return m
	}

	for _, r := range rounds {
		for _, m := range r.Matches {
			if m.Home.IsReal() {
				tm := get(m.Home)
				tm.Matches++
				tm.Home++
			}
			if m.Away.IsReal() {
				tm := get(m.Away)
				tm.Matches++
				tm.Away++
			}
		}
		for _, b := range r.Byes {
			if b.IsReal() {
				get(b).Byes++
			}
		}
	}

	metrics := make([]TeamMetrics, 0, len(order))
	for _, name := range order {
		metrics = append(metrics, *byTeam[name])
	}
	return metrics
}
