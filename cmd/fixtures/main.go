package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/derekprior/fixtures/internal/config"
	"github.com/derekprior/fixtures/internal/excel"
	"github.com/derekprior/fixtures/internal/logging"
	"github.com/derekprior/fixtures/internal/prompt"
	"github.com/derekprior/fixtures/internal/report"
	"github.com/derekprior/fixtures/internal/schedule"
	"github.com/derekprior/fixtures/internal/strategy"
	"github.com/derekprior/fixtures/internal/team"
	"github.com/derekprior/fixtures/internal/validator"
)

const defaultConfigFile = "config.yaml"

// resolveConfigPath picks the config file to load. An empty result means
// no file was found and built-in defaults apply.
func resolveConfigPath(configFlag string) string {
	if configFlag != "" {
		return configFlag
	}
	if env := os.Getenv(config.EnvConfigPath); env != "" {
		return env
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile
	}
	return ""
}

type globalOptions struct {
	configFile string
	logLevel   string
}

// setup loads .env, the config file and builds the logger.
func (g *globalOptions) setup() (*config.Config, *log.Logger, error) {
	if err := config.LoadEnv(); err != nil {
		return nil, nil, err
	}

	cfg := config.Default()
	if path := resolveConfigPath(g.configFile); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}
	cfg.ApplyEnv()
	if g.logLevel != "" {
		cfg.LogLevel = g.logLevel
	}

	logger, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func main() {
	var global globalOptions

	rootCmd := &cobra.Command{
		Use:   "fixtures",
		Short: "Home-and-away fixture generator",
	}
	rootCmd.PersistentFlags().StringVar(&global.configFile, "config", "", "Path to config file (default: $FIXTURES_CONFIG or config.yaml in current directory)")
	rootCmd.PersistentFlags().StringVar(&global.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	var initOutputPath string
	initCmd := &cobra.Command{
		Use:          "init",
		Short:        "Create a starter config.yaml in the current directory",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd.OutOrStdout(), initOutputPath)
		},
	}
	initCmd.Flags().StringVarP(&initOutputPath, "output", "o", defaultConfigFile, "Output path for the config file")

	var genOpts generateOptions
	generateCmd := &cobra.Command{
		Use:          "generate",
		Short:        "Generate fixtures from the configured team list",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := global.setup()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("seed") {
				cfg.Seed = &genOpts.seed
			}
			return runGenerate(cmd.OutOrStdout(), cfg, logger, genOpts)
		},
	}
	generateCmd.Flags().StringVarP(&genOpts.output, "output", "o", "", "Fixtures text file (default from config, fixtures.csv)")
	generateCmd.Flags().StringVar(&genOpts.workbook, "workbook", "", "Also write an Excel workbook to this path")
	generateCmd.Flags().Uint64Var(&genOpts.seed, "seed", 0, "Seed the shuffle for a reproducible fixture list")
	generateCmd.Flags().BoolVar(&genOpts.quiet, "quiet", false, "Do not print the fixture list")
	generateCmd.Flags().BoolVar(&genOpts.byMatch, "by-match", false, "Print the sorted match list without weekend grouping")

	validateCmd := &cobra.Command{
		Use:          "validate <fixtures file>",
		Short:        "Check a fixtures file (text or .xlsx) against the team list",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := global.setup()
			if err != nil {
				return err
			}
			return runValidate(cmd.OutOrStdout(), cfg, logger, args[0])
		},
	}

	teamsCmd := &cobra.Command{
		Use:          "teams",
		Short:        "List the configured teams",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := global.setup()
			if err != nil {
				return err
			}
			return runTeams(cmd.OutOrStdout(), cfg, logger)
		},
	}

	dumpCmd := &cobra.Command{
		Use:          "dump [teams.csv]",
		Short:        "Print the teams in a header-first CSV file, asking for the file name if not given",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, err := global.setup()
			if err != nil {
				return err
			}
			var path string
			if len(args) == 1 {
				path = args[0]
			} else {
				path, err = prompt.Ask("Enter the name of the team CSV file:", config.DefaultTeamsFile, cmd.InOrStdin(), cmd.OutOrStdout())
				if err != nil {
					return err
				}
			}
			return runDump(cmd.OutOrStdout(), logger, path)
		},
	}

	rootCmd.AddCommand(initCmd, generateCmd, validateCmd, teamsCmd, dumpCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runInit(out io.Writer, outputPath string) error {
	if _, err := os.Stat(outputPath); err == nil {
		return fmt.Errorf("%s already exists; remove it first or use -o to write elsewhere", outputPath)
	}

	if err := os.WriteFile(outputPath, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Fprintf(out, "✓ Created %s\n", outputPath)
	return nil
}

const configTemplate = `# Fixture Configuration
# =====================
# This file defines where teams come from and where fixtures are written.

teams:
  # File holding the teams. Each record is name, town and stadium.
  file: teams.csv

  # How the file is laid out:
  #   whitespace - one team per line: "name town stadium", no header
  #   csv        - comma separated with a header line (always skipped)
  #   xlsx       - first three columns of the "Teams" sheet, header row skipped
  format: whitespace

  # Teams can also be listed here instead of in a file. When present,
  # the list is used and the file is ignored.
  # list:
  #   - {name: Rovers, town: Ashford, stadium: Park}
  #   - {name: United, town: Ashford, stadium: Meadow}
  #   - {name: City, town: Brampton, stadium: Lane}

output:
  # One line per match: "<home> vs <away>, Leg <n>". Overwritten on each run.
  fixtures: fixtures.csv

  # Optional Excel workbook with the full fixture list and a sheet per team.
  workbook: ""

# Strategy determines how matches are generated.
# "double_round_robin" pairs every team with every other team twice,
# once at home and once away.
strategy: double_round_robin

# Set a seed to get the same fixture order on every run. Leave it unset
# for a fresh random order each time.
# seed: 2026

log_level: info
`

type generateOptions struct {
	output   string
	workbook string
	seed     uint64
	quiet    bool
	byMatch  bool
}

func loadRoster(cfg *config.Config, logger *log.Logger) ([]team.Team, error) {
	roster, err := cfg.LoadTeams()
	if err != nil {
		return nil, fmt.Errorf("loading teams: %w", err)
	}
	for _, s := range roster.Skipped {
		logger.Warn("Skipped team record", "file", cfg.Teams.File, "line", s.Line, "reason", s.Reason)
	}
	logger.Debug("Loaded teams", "count", len(roster.Teams), "skipped", len(roster.Skipped))
	return roster.Teams, nil
}

func runGenerate(out io.Writer, cfg *config.Config, logger *log.Logger, opts generateOptions) error {
	teams, err := loadRoster(cfg, logger)
	if err != nil {
		return err
	}
	if len(teams) < 2 {
		logger.Warn("Fewer than two teams, no fixtures to generate", "teams", len(teams))
	}

	strat, err := strategy.Get(cfg.Strategy)
	if err != nil {
		return err
	}

	result, err := schedule.Schedule(teams, strat, schedule.NewRand(cfg.Seed))
	if err != nil {
		return fmt.Errorf("scheduling: %w", err)
	}
	logger.Info("Generated fixtures",
		"id", result.ID, "teams", len(teams), "matches", len(result.Matches), "weekends", len(result.Weekends))
	if result.Dropped != nil {
		logger.Warn("Odd match left out of the weekends",
			"home", result.Dropped.Home.Name, "away", result.Dropped.Away.Name, "leg", result.Dropped.Leg)
	}

	switch {
	case opts.quiet:
	case opts.byMatch:
		if err := report.DisplayMatches(out, result.Matches); err != nil {
			return err
		}
		fmt.Fprintln(out)
	default:
		if err := report.Display(out, result.Weekends); err != nil {
			return err
		}
		fmt.Fprintln(out)
	}
	if err := report.Summary(out, result); err != nil {
		return err
	}

	fixturesPath := cfg.Output.Fixtures
	if opts.output != "" {
		fixturesPath = opts.output
	}
	if err := report.WriteFile(fixturesPath, result.Weekends); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n✓ Fixtures saved to %s\n", fixturesPath)

	workbookPath := cfg.Output.Workbook
	if opts.workbook != "" {
		workbookPath = opts.workbook
	}
	if workbookPath != "" {
		if err := excel.SaveFile(result, workbookPath); err != nil {
			return fmt.Errorf("generating Excel: %w", err)
		}
		fmt.Fprintf(out, "✓ Workbook saved to %s\n", workbookPath)
	}
	return nil
}

func runValidate(out io.Writer, cfg *config.Config, logger *log.Logger, fixturesPath string) error {
	teams, err := loadRoster(cfg, logger)
	if err != nil {
		return err
	}

	violations, err := validator.Validate(teams, fixturesPath)
	if err != nil {
		return fmt.Errorf("validating: %w", err)
	}

	errs := 0
	warnings := 0
	for _, v := range violations {
		where := ""
		if v.Row > 0 {
			where = fmt.Sprintf(" (line %d)", v.Row)
		}
		switch v.Type {
		case "error":
			errs++
			fmt.Fprintf(out, "✗ Fixture error%s: %s\n", where, v.Message)
		case "warning":
			warnings++
			fmt.Fprintf(out, "⚠ Warning%s: %s\n", where, v.Message)
		}
	}

	fmt.Fprintf(out, "\nValidation complete: %d errors, %d warnings\n", errs, warnings)
	if errs > 0 {
		return fmt.Errorf("%d fixture errors found", errs)
	}
	return nil
}

func runTeams(out io.Writer, cfg *config.Config, logger *log.Logger) error {
	teams, err := loadRoster(cfg, logger)
	if err != nil {
		return err
	}
	if err := report.PrintTeams(out, teams); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%d teams\n", len(teams))
	return nil
}

func runDump(out io.Writer, logger *log.Logger, path string) error {
	roster, err := team.LoadFile(path, team.FormatCSV)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to open %s: file does not exist", path)
		}
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	for _, s := range roster.Skipped {
		logger.Warn("Skipped team record", "file", path, "line", s.Line, "reason", s.Reason)
	}
	return report.PrintTeams(out, roster.Teams)
}
