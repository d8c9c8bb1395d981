package validator

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/derekprior/cueleague/internal/config"
	"github.com/derekprior/cueleague/internal/excel"
	"github.com/derekprior/cueleague/internal/tournament"
)

// Violation represents a problem found during validation.
type Violation struct {
	Row     int
	Type    string // "error" or "warning"
	Message string
	Days    int // for out-of-season rounds: days past the season end (0 = not applicable)
}

// Validate reads a schedule Excel file and checks it against the config.
// The format is taken from the workbook's properties and falls back to the
// config when the workbook does not name one.
func Validate(cfg *config.Config, path string) ([]Violation, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	rows, err := readRows(f)
	if err != nil {
		return nil, fmt.Errorf("reading rows: %w", err)
	}

	format := workbookFormat(f)
	if format == tournament.FormatUnspecified {
		format = cfg.Request().Format
	}

	var violations []Violation

	// Structural errors
	violations = append(violations, checkMatchSides(rows)...)
	violations = append(violations, checkRoundDates(rows)...)
	violations = append(violations, checkOnePlacePerRound(rows)...)
	violations = append(violations, checkTeamsScheduled(cfg, rows)...)

	switch format {
	case tournament.SingleRoundRobin:
		violations = append(violations, checkPairings(rows, false)...)
		violations = append(violations, checkRoundRobinByes(rows)...)
	case tournament.RoundRobin:
		violations = append(violations, checkPairings(rows, true)...)
		violations = append(violations, checkRoundRobinByes(rows)...)
	}

	// Calendar warnings
	violations = append(violations, checkSeasonEnd(cfg, rows)...)
	violations = append(violations, checkBlackouts(cfg, rows)...)

	sort.SliceStable(violations, func(i, j int) bool {
		return violations[i].Row < violations[j].Row
	})
	return violations, nil
}

type parsedRow struct {
	Row   int
	Round int
	Name  string
	Date  time.Time
	Bye   bool
	Home  string
	Away  string
}

func workbookFormat(f *excelize.File) tournament.Format {
	props, err := f.GetDocProps()
	if err != nil {
		return tournament.FormatUnspecified
	}
	format, _ := tournament.ParseFormat(props.Subject)
	return format
}

func readRows(f *excelize.File) ([]parsedRow, error) {
	rows, err := f.GetRows(excel.MasterSheet)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", excel.MasterSheet, err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%s is empty", excel.MasterSheet)
	}

	var parsed []parsedRow
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) < 8 || row[0] == "" {
			continue
		}

		round, err := strconv.Atoi(row[0])
		if err != nil {
			continue
		}
		date, err := time.Parse(excel.DateFormat+" "+excel.TimeFormat, row[2]+" "+row[4])
		if err != nil {
			continue
		}

		p := parsedRow{
			Row:   i + 1,
			Round: round,
			Name:  row[1],
			Date:  date,
			Bye:   row[5] == excel.ByeMarker,
			Home:  row[7],
		}
		if len(row) > 8 {
			p.Away = row[8]
		}
		parsed = append(parsed, p)
	}

	return parsed, nil
}

func checkMatchSides(rows []parsedRow) []Violation {
	var violations []Violation
	for _, r := range rows {
		if r.Bye {
			continue
		}
		if r.Home == tournament.ByeLabel || r.Away == tournament.ByeLabel {
			violations = append(violations, Violation{
				Row:     r.Row,
				Type:    "error",
				Message: fmt.Sprintf("round %d lists a bye as a competitor: %s vs %s", r.Round, r.Home, r.Away),
			})
			continue
		}
		if r.Home == r.Away {
			violations = append(violations, Violation{
				Row:     r.Row,
				Type:    "error",
				Message: fmt.Sprintf("%s plays itself in round %d", r.Home, r.Round),
			})
		}
	}
	return violations
}

func checkRoundDates(rows []parsedRow) []Violation {
	var violations []Violation
	dates := make(map[int]time.Time)
	prevRound := 0
	var prevDate time.Time

	for _, r := range rows {
		if d, ok := dates[r.Round]; ok {
			if !d.Equal(r.Date) {
				violations = append(violations, Violation{
					Row:     r.Row,
					Type:    "error",
					Message: fmt.Sprintf("round %d is listed on both %s and %s", r.Round, d.Format("01/02"), r.Date.Format("01/02")),
				})
			}
			continue
		}
		dates[r.Round] = r.Date

		if prevRound != 0 && r.Date.Before(prevDate) {
			violations = append(violations, Violation{
				Row:  r.Row,
				Type: "error",
				Message: fmt.Sprintf("round %d on %s is before round %d on %s",
					r.Round, r.Date.Format("01/02"), prevRound, prevDate.Format("01/02")),
			})
		}
		prevRound, prevDate = r.Round, r.Date
	}
	return violations
}

func checkOnePlacePerRound(rows []parsedRow) []Violation {
	type roundTeam struct {
		round int
		team  string
	}
	seen := make(map[roundTeam]bool)

	var violations []Violation
	for _, r := range rows {
		teams := []string{r.Home}
		if !r.Bye && r.Away != r.Home {
			teams = append(teams, r.Away)
		}
		for _, team := range teams {
			if team == "" || team == tournament.ByeLabel {
				continue
			}
			key := roundTeam{r.Round, team}
			if seen[key] {
				violations = append(violations, Violation{
					Row:     r.Row,
					Type:    "error",
					Message: fmt.Sprintf("%s appears more than once in round %d", team, r.Round),
				})
			}
			seen[key] = true
		}
	}
	return violations
}

// checkTeamsScheduled reports configured teams missing from the workbook.
func checkTeamsScheduled(cfg *config.Config, rows []parsedRow) []Violation {
	present := make(map[string]bool)
	for _, r := range rows {
		present[r.Home] = true
		present[r.Away] = true
	}

	var violations []Violation
	for _, team := range cfg.AllTeams() {
		if !present[team] {
			violations = append(violations, Violation{
				Type:    "error",
				Message: fmt.Sprintf("%s has no matches or byes scheduled", team),
			})
		}
	}
	return violations
}

// checkPairings verifies every pair of teams meets exactly once, or for a
// double round robin exactly once with each team at home.
func checkPairings(rows []parsedRow, double bool) []Violation {
	type matchup struct{ home, away string }
	counts := make(map[matchup]int)
	teamSet := make(map[string]bool)

	for _, r := range rows {
		teamSet[r.Home] = true
		if r.Bye {
			continue
		}
		teamSet[r.Away] = true
		key := matchup{r.Home, r.Away}
		if !double && r.Home > r.Away {
			key = matchup{r.Away, r.Home}
		}
		counts[key]++
	}

	var teams []string
	for team := range teamSet {
		teams = append(teams, team)
	}
	sort.Strings(teams)

	var violations []Violation
	report := func(key matchup, want int) {
		got := counts[key]
		if got == want {
			return
		}
		var msg string
		switch {
		case double && got == 0:
			msg = fmt.Sprintf("%s never hosts %s", key.home, key.away)
		case double:
			msg = fmt.Sprintf("%s hosts %s %d times (want %d)", key.home, key.away, got, want)
		case got == 0:
			msg = fmt.Sprintf("%s and %s never meet", key.home, key.away)
		default:
			msg = fmt.Sprintf("%s and %s meet %d times (want %d)", key.home, key.away, got, want)
		}
		violations = append(violations, Violation{Type: "error", Message: msg})
	}

	for i, a := range teams {
		for _, b := range teams[i+1:] {
			if double {
				report(matchup{a, b}, 1)
				report(matchup{b, a}, 1)
			} else {
				report(matchup{a, b}, 1)
			}
		}
	}
	return violations
}

func checkRoundRobinByes(rows []parsedRow) []Violation {
	byes := make(map[int][]int)
	var order []int
	for _, r := range rows {
		if !r.Bye {
			continue
		}
		if _, ok := byes[r.Round]; !ok {
			order = append(order, r.Round)
		}
		byes[r.Round] = append(byes[r.Round], r.Row)
	}

	var violations []Violation
	for _, round := range order {
		if rs := byes[round]; len(rs) > 1 {
			violations = append(violations, Violation{
				Row:     rs[1],
				Type:    "error",
				Message: fmt.Sprintf("round %d has %d byes (max 1)", round, len(rs)),
			})
		}
	}
	return violations
}

func checkSeasonEnd(cfg *config.Config, rows []parsedRow) []Violation {
	end, err := time.Parse(tournament.DateLayout, cfg.Season.EndDate)
	if err != nil {
		return nil
	}

	var violations []Violation
	reported := make(map[int]bool)
	for _, r := range rows {
		day := time.Date(r.Date.Year(), r.Date.Month(), r.Date.Day(), 0, 0, 0, 0, time.UTC)
		if !day.After(end) || reported[r.Round] {
			continue
		}
		reported[r.Round] = true
		days := int(day.Sub(end).Hours() / 24)
		violations = append(violations, Violation{
			Row:     r.Row,
			Type:    "warning",
			Days:    days,
			Message: fmt.Sprintf("%s on %s is %d day(s) after the season ends", r.Name, r.Date.Format("01/02/2006"), days),
		})
	}
	return violations
}

func checkBlackouts(cfg *config.Config, rows []parsedRow) []Violation {
	if len(cfg.Season.BlackoutDates) == 0 {
		return nil
	}
	reasons := make(map[string]string)
	for _, b := range cfg.Season.BlackoutDates {
		reasons[b.Date.Time.Format(tournament.DateLayout)] = b.Reason
	}

	var violations []Violation
	reported := make(map[int]bool)
	for _, r := range rows {
		reason, ok := reasons[r.Date.Format(tournament.DateLayout)]
		if !ok || reported[r.Round] {
			continue
		}
		reported[r.Round] = true
		violations = append(violations, Violation{
			Row:     r.Row,
			Type:    "warning",
			Message: fmt.Sprintf("%s is scheduled on blackout date %s (%s)", r.Name, r.Date.Format("01/02/2006"), reason),
		})
	}
	return violations
}
