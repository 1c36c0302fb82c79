package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/derekprior/fixtures/internal/strategy"
	"github.com/derekprior/fixtures/internal/team"
)

// Environment variables consulted after loading .env.
const (
	EnvConfigPath = "FIXTURES_CONFIG"
	EnvLogLevel   = "FIXTURES_LOG_LEVEL"
)

// Defaults match the file names the tool has always used.
const (
	DefaultTeamsFile    = "teams.csv"
	DefaultFixturesFile = "fixtures.csv"
	DefaultLogLevel     = "info"
)

type Teams struct {
	File   string      `yaml:"file"`
	Format string      `yaml:"format"`
	List   []team.Team `yaml:"list"`
}

type Output struct {
	Fixtures string `yaml:"fixtures"`
	Workbook string `yaml:"workbook"`
}

type Config struct {
	Teams    Teams   `yaml:"teams"`
	Output   Output  `yaml:"output"`
	Strategy string  `yaml:"strategy"`
	Seed     *uint64 `yaml:"seed"`
	LogLevel string  `yaml:"log_level"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// TeamFormat resolves the configured format, falling back to the file
// extension when none is set.
func (c *Config) TeamFormat() (team.Format, error) {
	if c.Teams.Format == "" {
		return team.FormatFromPath(c.Teams.File), nil
	}
	return team.ParseFormat(c.Teams.Format)
}

// LoadTeams returns the inline team list when one is configured, otherwise
// the contents of the team file.
func (c *Config) LoadTeams() (*team.Roster, error) {
	if len(c.Teams.List) > 0 {
		return &team.Roster{Teams: c.Teams.List}, nil
	}
	format, err := c.TeamFormat()
	if err != nil {
		return nil, err
	}
	return team.LoadFile(c.Teams.File, format)
}

// LoadFromBytes parses YAML bytes into a Config and validates it.
func LoadFromBytes(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()
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

// LoadEnv reads a .env file from the working directory if there is one.
// A missing file is not an error.
func LoadEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}

// ApplyEnv overrides settings from the environment.
func (c *Config) ApplyEnv() {
	if level, ok := os.LookupEnv(EnvLogLevel); ok && level != "" {
		c.LogLevel = level
	}
}

func (c *Config) applyDefaults() {
	if c.Teams.File == "" {
		c.Teams.File = DefaultTeamsFile
	}
	if c.Output.Fixtures == "" {
		c.Output.Fixtures = DefaultFixturesFile
	}
	if c.Strategy == "" {
		c.Strategy = strategy.DefaultName
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

func (c *Config) validate() error {
	if _, err := c.TeamFormat(); err != nil {
		return err
	}

	if _, err := strategy.Get(c.Strategy); err != nil {
		return err
	}

	if c.Output.Workbook != "" && !strings.HasSuffix(strings.ToLower(c.Output.Workbook), ".xlsx") {
		return fmt.Errorf("workbook %q must have an .xlsx extension", c.Output.Workbook)
	}

	for i, t := range c.Teams.List {
		if t.Name == "" || t.Town == "" || t.Stadium == "" {
			return fmt.Errorf("team %d in list must have name, town and stadium", i+1)
		}
	}
	if err := team.CheckUnique(c.Teams.List); err != nil {
		return err
	}

	return nil
}
