package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/derekprior/cueleague/internal/config"
	"github.com/derekprior/cueleague/internal/excel"
	"github.com/derekprior/cueleague/internal/tournament"
	"github.com/derekprior/cueleague/internal/validator"
)

const (
	defaultConfigFile = "league.yaml"
	defaultFieldSize  = 8
)

func resolveConfigPath(configFlag string) (string, error) {
	if configFlag != "" {
		return configFlag, nil
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile, nil
	}
	return "", fmt.Errorf("no config file found. Either create %s in the current directory or pass --config", defaultConfigFile)
}

func setupLogger(env config.Env, runID string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if env.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	level, err := zerolog.ParseLevel(env.LogLevel)
	if err != nil || env.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.With().Str("run_id", runID).Logger()
}

// loadConfig reads the .env file beside the config, sets up logging, then
// loads the league config itself. It returns the run id tagged on every
// log line.
func loadConfig(configPath string) (*config.Config, string, error) {
	env, err := config.LoadEnv(configPath)
	if err != nil {
		return nil, "", err
	}
	runID := uuid.NewString()
	setupLogger(env, runID)

	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return nil, "", fmt.Errorf("loading config: %w", err)
	}
	log.Debug().Str("config", configPath).Str("environment", env.Environment).Msg("Config loaded")
	return cfg, runID, nil
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "cueleague",
		Short: "Pool league season schedule generator",
	}

	var initOutputPath string
	initCmd := &cobra.Command{
		Use:          "init",
		Short:        "Create a starter league.yaml in the current directory",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(initOutputPath)
		},
	}
	initCmd.Flags().StringVarP(&initOutputPath, "output", "o", defaultConfigFile, "Output path for the config file")

	scheduleCmd := &cobra.Command{
		Use:   "schedule",
		Short: "Generate and validate schedules",
	}

	var configFile string
	scheduleCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to config file (default: league.yaml in current directory)")

	var outputFile string
	generateCmd := &cobra.Command{
		Use:          "generate",
		Short:        "Generate a schedule from a config file",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := resolveConfigPath(configFile)
			if err != nil {
				return err
			}
			return runGenerate(configPath, outputFile)
		},
	}
	generateCmd.Flags().StringVarP(&outputFile, "output", "o", "schedule.xlsx", "Output Excel file path")

	validateCmd := &cobra.Command{
		Use:          "validate <schedule.xlsx>",
		Short:        "Validate a schedule workbook against the config",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := resolveConfigPath(configFile)
			if err != nil {
				return err
			}
			return runValidate(configPath, args[0])
		},
	}

	var teamCount int
	formatsCmd := &cobra.Command{
		Use:          "formats",
		Short:        "List the available formats and their round counts",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if teamCount == 0 {
				teamCount = defaultFieldSize
				if configPath, err := resolveConfigPath(configFile); err == nil {
					cfg, _, err := loadConfig(configPath)
					if err != nil {
						return err
					}
					teamCount = cfg.NumTeams()
				}
			}
			runFormats(teamCount)
			return nil
		},
	}
	formatsCmd.Flags().IntVarP(&teamCount, "teams", "n", 0, "Team count to size rounds for (default: from config, or 8)")

	scheduleCmd.AddCommand(generateCmd, validateCmd, formatsCmd)
	rootCmd.AddCommand(initCmd, scheduleCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runInit(outputPath string) error {
	if _, err := os.Stat(outputPath); err == nil {
		return fmt.Errorf("%s already exists; remove it first or use -o to write elsewhere", outputPath)
	}

	if err := os.WriteFile(outputPath, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("✓ Created %s\n", outputPath)
	return nil
}

const configTemplate = `# Pool League Season Configuration
# ================================
# This file defines the parameters for generating a league season.

league:
  name: "Monday Night Eight Ball"

# Season defines the date range for the season. Rounds that run past
# end_date are still generated but flagged by "schedule validate".
season:
  start_date: "2026-09-07"
  end_date: "2027-05-31"

  # Blackout dates are days when no round will be scheduled. The round
  # moves to the next configured league night.
  blackout_dates:
    - date: "2026-11-26"
      reason: "Thanksgiving"
    - date: "2026-12-24"
      reason: "Christmas Eve"

# Teams in seed order. Seeds decide bracket placement and Swiss tiebreaks.
# Either list names here or set team_count to use "Team A", "Team B", ...
# Each entry may be a bare name or a mapping with an id and a name.
teams:
  - Sharks
  - Hustlers
  - Break Point
  - Side Pocket
  - Cue Tips
  - id: rails
    name: Off The Rails
# team_count: 8

# Format decides how matches are generated. One of:
#   single_round_robin    every team plays every other team once
#   round_robin           every team plays every other team twice, home and away
#   single_elimination    knockout bracket
#   double_elimination    winners and losers brackets
#   swiss                 teams with similar records meet each round
#   swiss_with_knockouts  swiss rounds, then a knockout for the top eight
# An unrecognized format falls back to round_robin.
format: single_round_robin

# League nights. "weekly" cycles through every listed day; "daily" plays
# every round on the first listed day. Times use 24-hour format and
# default to 19:00 when omitted.
schedule:
  frequency: weekly
  days:
    - day: Monday
      start_time: "19:00"
    - day: Thursday
      start_time: "19:30"
`

func runGenerate(configPath, outputPath string) error {
	cfg, runID, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	req := cfg.Request()
	format := req.Format
	if format == tournament.FormatUnspecified {
		if cfg.Format != "" {
			fmt.Fprintf(os.Stderr, "⚠ Unknown format %q, using %s\n", cfg.Format, tournament.RoundRobin)
		}
		format = tournament.RoundRobin
	}

	fmt.Printf("Generating %s for %d teams (%d rounds)...\n", format, cfg.NumTeams(), format.RoundCount(cfg.NumTeams()))

	rounds, err := tournament.New(log.Logger).Generate(req)
	if err != nil {
		return fmt.Errorf("generating schedule: %w", err)
	}

	matches := 0
	for _, r := range rounds {
		matches += len(r.Matches)
	}
	fmt.Printf("✓ %d matches in %d rounds, %s to %s\n", matches, len(rounds),
		rounds[0].Date.Format("01/02/2006"), rounds[len(rounds)-1].Date.Format("01/02/2006"))

	fmt.Println("\nPer Team Metrics:")
	fmt.Printf("  %-20s %7s %4s %4s %4s\n", "Team", "Matches", "Home", "Away", "Byes")
	for _, m := range tournament.Tally(rounds) {
		fmt.Printf("  %-20s %7d %4d %4d %4d\n", m.Team, m.Matches, m.Home, m.Away, m.Byes)
	}

	info := excel.Info{League: cfg.League.Name, Format: format, RunID: runID}
	if err := excel.Save(info, rounds, outputPath); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	log.Info().Str("path", outputPath).Int("rounds", len(rounds)).Msg("Schedule saved")

	fmt.Printf("\n✓ Schedule saved to %s\n", outputPath)
	return nil
}

func runValidate(configPath, schedulePath string) error {
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	violations, err := validator.Validate(cfg, schedulePath)
	if err != nil {
		return fmt.Errorf("validating: %w", err)
	}

	errors := 0
	warnings := 0
	for _, v := range violations {
		where := ""
		if v.Row > 0 {
			where = fmt.Sprintf("Row %d: ", v.Row)
		}
		switch v.Type {
		case "error":
			errors++
			fmt.Printf("✗ %s%s\n", where, v.Message)
		case "warning":
			warnings++
			fmt.Printf("⚠ %s%s\n", where, v.Message)
		}
	}

	fmt.Printf("\nValidation complete: %d errors, %d warnings\n", errors, warnings)

	if errors > 0 {
		return fmt.Errorf("%d schedule errors found", errors)
	}
	return nil
}

func runFormats(teams int) {
	fmt.Printf("Formats for %d teams:\n", teams)
	fmt.Printf("  %-22s %6s  %s\n", "Format", "Rounds", "Description")
	for _, f := range tournament.Formats {
		fmt.Printf("  %-22s %6d  %s\n", f, f.RoundCount(teams), f.Description())
	}
}
