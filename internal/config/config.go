package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/derekprior/cueleague/internal/calendar"
	"github.com/derekprior/cueleague/internal/tournament"
)

// Date is a wrapper around time.Time for YAML date parsing.
type Date struct {
	Time time.Time
}

func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	t, err := time.Parse(tournament.DateLayout, value.Value)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", value.Value, err)
	}
	d.Time = t
	return nil
}

type BlackoutDate struct {
	Date   Date   `yaml:"date"`
	Reason string `yaml:"reason"`
}

// Season dates are kept as written; the generator validates them.
type Season struct {
	StartDate     string         `yaml:"start_date"`
	EndDate       string         `yaml:"end_date"`
	BlackoutDates []BlackoutDate `yaml:"blackout_dates"`
}

// Team accepts either a bare name or a mapping with id and name.
type Team struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

func (t *Team) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		t.Name = value.Value
		return nil
	}
	type plain Team
	return value.Decode((*plain)(t))
}

type ScheduleDay struct {
	Day       string `yaml:"day"`
	StartTime string `yaml:"start_time"`
}

type Schedule struct {
	Frequency string        `yaml:"frequency"`
	Days      []ScheduleDay `yaml:"days"`
}

type League struct {
	Name string `yaml:"name"`
}

type Config struct {
	League    League   `yaml:"league"`
	Season    Season   `yaml:"season"`
	Teams     []Team   `yaml:"teams"`
	TeamCount int      `yaml:"team_count"`
	Format    string   `yaml:"format"`
	Schedule  Schedule `yaml:"schedule"`
}

// AllTeams returns the configured team names in seed order.
func (c *Config) AllTeams() []string {
	var teams []string
	for _, t := range c.Teams {
		teams = append(teams, t.Name)
	}
	return teams
}

// NumTeams is the size of the field, from the team list when one is given.
func (c *Config) NumTeams() int {
	if len(c.Teams) > 0 {
		return len(c.Teams)
	}
	return c.TeamCount
}

// Preference converts the schedule section into calendar terms.
func (c *Config) Preference() calendar.Preference {
	pref := calendar.Preference{
		Frequency: calendar.Frequency(strings.ToLower(strings.TrimSpace(c.Schedule.Frequency))),
	}
	for _, d := range c.Schedule.Days {
		pref.Days = append(pref.Days, calendar.Day{Day: d.Day, StartTime: d.StartTime})
	}
	for _, b := range c.Season.BlackoutDates {
		pref.Blackouts = append(pref.Blackouts, b.Date.Time)
	}
	return pref
}

// Request builds the generator input. An unrecognized format is passed
// through as unspecified, which generates a double round robin.
func (c *Config) Request() tournament.Request {
	format, _ := tournament.ParseFormat(c.Format)
	req := tournament.Request{
		TeamCount: c.TeamCount,
		StartDate: c.Season.StartDate,
		EndDate:   c.Season.EndDate,
		Format:    format,
		Schedule:  c.Preference(),
	}
	for _, t := range c.Teams {
		req.Teams = append(req.Teams, tournament.Team{ID: t.ID, Name: t.Name})
	}
	return req
}

// LoadFromBytes parses YAML bytes into a Config and validates it.
func LoadFromBytes(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromFile reads and parses a YAML config file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromBytes(data)
}

// validate catches mistakes in the file's structure. Dates, days and times
// are checked by the generator itself.
func (c *Config) validate() error {
	if len(c.Teams) == 0 && c.TeamCount == 0 {
		return fmt.Errorf("either teams or team_count is required")
	}
	if len(c.Teams) > 0 && c.TeamCount != 0 && c.TeamCount != len(c.Teams) {
		return fmt.Errorf("team_count is %d but %d teams are listed", c.TeamCount, len(c.Teams))
	}

	seen := make(map[string]bool)
	for i, t := range c.Teams {
		if strings.TrimSpace(t.Name) == "" {
			return fmt.Errorf("team %d has no name", i+1)
		}
		if seen[t.Name] {
			return fmt.Errorf("team %q is listed more than once", t.Name)
		}
		seen[t.Name] = true
	}

	start, startErr := time.Parse(tournament.DateLayout, c.Season.StartDate)
	end, endErr := time.Parse(tournament.DateLayout, c.Season.EndDate)
	for _, b := range c.Season.BlackoutDates {
		if b.Date.Time.IsZero() {
			return fmt.Errorf("blackout date %q is missing a date", b.Reason)
		}
		if startErr == nil && endErr == nil && (b.Date.Time.Before(start) || b.Date.Time.After(end)) {
			return fmt.Errorf("blackout date %s is outside the season", b.Date.Time.Format(tournament.DateLayout))
		}
	}

	return nil
}

// Env holds settings read from the environment or a .env file.
type Env struct {
	Environment string
	LogLevel    string
}

// LoadEnv loads a .env file next to the config, if there is one, and reads
// CUELEAGUE_ENV and CUELEAGUE_LOG_LEVEL. Variables already set win.
func LoadEnv(configPath string) (Env, error) {
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return Env{}, fmt.Errorf("loading %s: %w", envPath, err)
	}
	return Env{
		Environment: getEnv("CUELEAGUE_ENV", "production"),
		LogLevel:    getEnv("CUELEAGUE_LOG_LEVEL", "info"),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
