package calendar

import (
	"regexp"
	"sort"
	"strings"
	"time"
)

// Frequency controls how consecutive rounds are spread over the configured days.
type Frequency string

const (
	// Weekly cycles through every configured day, so a league that plays
	// Mondays and Thursdays gets two rounds per calendar week.
	Weekly Frequency = "weekly"
	// Daily pins every round to the first configured day.
	Daily Frequency = "daily"
)

// DefaultStartTime is used when a day has no start time or an unusable one.
const DefaultStartTime = "19:00"

// Day is one weekly playing day, e.g. {"Monday", "19:30"}.
type Day struct {
	Day       string
	StartTime string
}

// Preference is the weekly schedule a league plays on.
type Preference struct {
	Frequency Frequency
	Days      []Day
	Blackouts []time.Time
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sun":       time.Sunday,
	"mon":       time.Monday,
	"tue":       time.Tuesday,
	"wed":       time.Wednesday,
	"thu":       time.Thursday,
	"fri":       time.Friday,
	"sat":       time.Saturday,
}

var startTimePattern = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)

// ParseWeekday maps a full or three-letter English day name to a weekday.
func ParseWeekday(s string) (time.Weekday, bool) {
	wd, ok := weekdays[strings.ToLower(strings.TrimSpace(s))]
	return wd, ok
}

// ValidStartTime reports whether s is a 24-hour "H:MM" or "HH:MM" time.
func ValidStartTime(s string) bool {
	return startTimePattern.MatchString(s)
}

// ValidFrequency reports whether f is a known frequency. Empty means weekly.
func ValidFrequency(f Frequency) bool {
	switch f {
	case "", Weekly, Daily:
		return true
	}
	return false
}

type slot struct {
	weekday time.Weekday
	hour    int
	minute  int
}

// Resolver maps round numbers onto concrete dates. It is seeded once with
// First and then called with the previous round's date.
type Resolver struct {
	slots     []slot
	blackouts map[string]bool
}

// New builds a Resolver. Unrecognized days are ignored; with no usable day
// at all every round falls on Monday at 19:00.
func New(pref Preference) *Resolver {
	r := &Resolver{blackouts: make(map[string]bool)}

	seen := make(map[time.Weekday]bool)
	for _, d := range pref.Days {
		wd, ok := ParseWeekday(d.Day)
		if !ok || seen[wd] {
			continue
		}
		seen[wd] = true
		hour, minute := parseStartTime(d.StartTime)
		r.slots = append(r.slots, slot{weekday: wd, hour: hour, minute: minute})
	}

	if pref.Frequency == Daily && len(r.slots) > 1 {
		r.slots = r.slots[:1]
	}
	if len(r.slots) == 0 {
		hour, minute := parseStartTime(DefaultStartTime)
		r.slots = []slot{{weekday: time.Monday, hour: hour, minute: minute}}
	}

	sort.Slice(r.slots, func(i, j int) bool {
		return r.slots[i].weekday < r.slots[j].weekday
	})

	for _, b := range pref.Blackouts {
		r.blackouts[dayKey(b)] = true
	}
	return r
}

// First returns the first playable date on or after start.
func (r *Resolver) First(start time.Time) time.Time {
	day := dateOnly(start)
	if s, ok := r.slotFor(day.Weekday()); ok && !r.blackouts[dayKey(day)] {
		return s.on(day)
	}
	return r.Next(day)
}

// Next returns the first playable date strictly after the calendar day of prev.
func (r *Resolver) Next(prev time.Time) time.Time {
	day := dateOnly(prev)
	for {
		candidate := r.after(day)
		if !r.blackouts[dayKey(candidate)] {
			return candidate
		}
		day = dateOnly(candidate)
	}
}

// after finds the earliest configured weekday later in the week than day,
// wrapping to the earliest configured weekday of the following week.
func (r *Resolver) after(day time.Time) time.Time {
	cur := day.Weekday()
	for _, s := range r.slots {
		if s.weekday > cur {
			return s.on(day.AddDate(0, 0, int(s.weekday-cur)))
		}
	}
	s := r.slots[0]
	return s.on(day.AddDate(0, 0, 7-int(cur)+int(s.weekday)))
}

func (r *Resolver) slotFor(wd time.Weekday) (slot, bool) {
	for _, s := range r.slots {
		if s.weekday == wd {
			return s, true
		}
	}
	return slot{}, false
}

func (s slot) on(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), s.hour, s.minute, 0, 0, day.Location())
}

// parseStartTime falls back to 19:00 rather than failing.
func parseStartTime(raw string) (hour, minute int) {
	raw = strings.TrimSpace(raw)
	if !ValidStartTime(raw) {
		raw = DefaultStartTime
	}
	t, err := time.Parse("15:04", raw)
	if err != nil {
		return 19, 0
	}
	return t.Hour(), t.Minute()
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
