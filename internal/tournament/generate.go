package tournament

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/derekprior/cueleague/internal/calendar"
)

// DateLayout is the layout season dates are given in.
const DateLayout = "2006-01-02"

// Request describes the season to generate. Teams is optional; when empty,
// TeamCount teams named "Team A", "Team B", ... are used.
type Request struct {
	TeamCount int
	Teams     []Team
	StartDate string
	EndDate   string
	Format    Format
	Schedule  calendar.Preference
}

// ValidationError reports input the generator refused to schedule.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Generator produces season schedules and logs through its logger.
type Generator struct {
	logger zerolog.Logger
}

// New returns a Generator that logs to logger.
func New(logger zerolog.Logger) *Generator {
	return &Generator{logger: logger}
}

// Generate builds a schedule using the global logger.
func Generate(req Request) ([]Round, error) {
	return New(log.Logger).Generate(req)
}

// Generate validates req and builds the rounds for its format. Invalid input
// yields an empty, non-nil slice together with a *ValidationError.
func (g *Generator) Generate(req Request) ([]Round, error) {
	teams, start, err := req.validate()
	if err != nil {
		g.logger.Warn().
			Err(err).
			Str("format", req.Format.String()).
			Msg("Schedule not generated")
		return []Round{}, err
	}

	seq := newSequence(calendar.New(req.Schedule), start)

	var rounds []Round
	switch req.Format {
	case SingleRoundRobin:
		rounds = roundRobin(teams, false, seq)
	case RoundRobin:
		rounds = roundRobin(teams, true, seq)
	case SingleElimination:
		rounds = singleElimination(realCompetitors(teams), seq, "")
	case DoubleElimination:
		rounds = doubleElimination(realCompetitors(teams), seq)
	case Swiss:
		rounds = swiss(teams, seq)
	case SwissWithKnockouts:
		rounds = swissWithKnockouts(teams, seq)
	default:
		g.logger.Warn().
			Int("format", int(req.Format)).
			Msg("Unrecognized format, falling back to double round robin")
		rounds = roundRobin(teams, true, seq)
	}

	g.logger.Debug().
		Str("format", req.Format.String()).
		Int("teams", len(teams)).
		Int("rounds", len(rounds)).
		Msg("Schedule generated")
	return rounds, nil
}

func (req Request) validate() ([]Team, time.Time, error) {
	teams, err := req.roster()
	if err != nil {
		return nil, time.Time{}, err
	}

	start, err := time.Parse(DateLayout, strings.TrimSpace(req.StartDate))
	if err != nil {
		return nil, time.Time{}, invalid("start date", "%q is not a %s date", req.StartDate, DateLayout)
	}
	end, err := time.Parse(DateLayout, strings.TrimSpace(req.EndDate))
	if err != nil {
		return nil, time.Time{}, invalid("end date", "%q is not a %s date", req.EndDate, DateLayout)
	}
	if end.Before(start) {
		return nil, time.Time{}, invalid("end date", "%s is before start date %s", req.EndDate, req.StartDate)
	}

	if err := validateSchedule(req.Schedule); err != nil {
		return nil, time.Time{}, err
	}
	return teams, start, nil
}

func (req Request) roster() ([]Team, error) {
	count := req.TeamCount
	if count == 0 {
		count = len(req.Teams)
	}
	if len(req.Teams) > 0 && count != len(req.Teams) {
		return nil, invalid("team count", "%d does not match the %d teams supplied", count, len(req.Teams))
	}
	if count < 2 {
		return nil, invalid("team count", "at least 2 teams are required, got %d", count)
	}

	if len(req.Teams) == 0 {
		return teamLabels(count), nil
	}

	seen := make(map[string]bool)
	teams := make([]Team, len(req.Teams))
	for i, t := range req.Teams {
		name := strings.TrimSpace(t.Name)
		if name == "" {
			return nil, invalid("teams", "team %d has no name", i+1)
		}
		if seen[name] {
			return nil, invalid("teams", "%q appears more than once", name)
		}
		seen[name] = true
		if t.ID == "" {
			t.ID = fmt.Sprintf("%d", i+1)
		}
		t.Name = name
		teams[i] = t
	}
	return teams, nil
}

func validateSchedule(pref calendar.Preference) error {
	if !calendar.ValidFrequency(pref.Frequency) {
		return invalid("schedule frequency", "%q must be %q or %q", pref.Frequency, calendar.Weekly, calendar.Daily)
	}
	if len(pref.Days) == 0 {
		return invalid("schedule days", "at least one day is required")
	}
	for _, d := range pref.Days {
		if _, ok := calendar.ParseWeekday(d.Day); !ok {
			return invalid("schedule day", "%q is not a day of the week", d.Day)
		}
		if d.StartTime != "" && !calendar.ValidStartTime(d.StartTime) {
			return invalid("start time", "%q for %s is not a 24-hour HH:MM time", d.StartTime, d.Day)
		}
	}
	return nil
}

// teamLabels names n anonymous teams Team A ... Team Z, Team AA, ...
func teamLabels(n int) []Team {
	teams := make([]Team, n)
	for i := range teams {
		letters := columnLetters(i + 1)
		teams[i] = Team{ID: letters, Name: "Team " + letters}
	}
	return teams
}

func columnLetters(n int) string {
	result := ""
	for n > 0 {
		n--
		result = string(rune('A'+n%26)) + result
		n /= 26
	}
	return result
}

func realCompetitors(teams []Team) []Competitor {
	out := make([]Competitor, len(teams))
	for i, t := range teams {
		out[i] = Real(t)
	}
	return out
}

// sequence hands out consecutive round numbers and their dates. Numbering
// and the calendar carry across phases of a multi-stage format.
type sequence struct {
	cal    *calendar.Resolver
	start  time.Time
	number int
	date   time.Time
}

func newSequence(cal *calendar.Resolver, start time.Time) *sequence {
	return &sequence{cal: cal, start: start}
}

func (s *sequence) next() (int, time.Time) {
	if s.number == 0 {
		s.date = s.cal.First(s.start)
	} else {
		s.date = s.cal.Next(s.date)
	}
	s.number++
	return s.number, s.date
}
