package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ivlev/bracketscan/internal/analyzer"
)

// EnvPrefix prefixes every environment override, e.g. BRACKETSCAN_TOLERANCE
const EnvPrefix = "BRACKETSCAN_"

type Config struct {
	InputPath   string `yaml:"input"`
	LayoutPath  string `yaml:"layout"`
	OutputCSV   string `yaml:"output"`
	MissingCSV  string `yaml:"missing"`
	ResultsPath string `yaml:"results"`

	// Canonical capture resolution; 0 keeps the source size
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Resampler string `yaml:"resampler"`
	DPI       int    `yaml:"dpi"`

	Tolerance   int  `yaml:"tolerance"`
	StrictGames bool `yaml:"strict_games"`
	Workers     int  `yaml:"workers"`

	DebugDir     string `yaml:"debug_dir"`
	PlayerFilter string `yaml:"player"`
	Verbose      bool   `yaml:"verbose"`
	ShowStats    bool   `yaml:"stats"`
	BuildVersion string `yaml:"-"`
}

// Default matches the file names the capture workflow has always used
func Default() *Config {
	return &Config{
		InputPath:  "img",
		LayoutPath: "points.json",
		OutputCSV:  "results.csv",
		Resampler:  "nearest",
		DPI:        150,
		Tolerance:  analyzer.DefaultTolerance,
		Workers:    runtime.NumCPU(),
	}
}

// LoadFile overlays the YAML file at path on top of c
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	return nil
}

// LoadDotEnv reads .env files into the process environment.
// A missing file is not an error: the tool runs fine without one.
func LoadDotEnv(files ...string) error {
	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(files) == 0 {
		if _, err := os.Stat(".env"); err == nil {
			existing = append(existing, ".env")
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// ApplyEnv overrides fields from BRACKETSCAN_* variables
func (c *Config) ApplyEnv() error {
	strs := map[string]*string{
		"INPUT":     &c.InputPath,
		"LAYOUT":    &c.LayoutPath,
		"OUTPUT":    &c.OutputCSV,
		"MISSING":   &c.MissingCSV,
		"RESULTS":   &c.ResultsPath,
		"RESAMPLER": &c.Resampler,
		"DEBUG_DIR": &c.DebugDir,
		"PLAYER":    &c.PlayerFilter,
	}
	for key, dst := range strs {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"WIDTH":     &c.Width,
		"HEIGHT":    &c.Height,
		"DPI":       &c.DPI,
		"TOLERANCE": &c.Tolerance,
		"WORKERS":   &c.Workers,
	}
	for key, dst := range ints {
		v, ok := os.LookupEnv(EnvPrefix + key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
		}
		*dst = n
	}

	bools := map[string]*bool{
		"STRICT_GAMES": &c.StrictGames,
		"VERBOSE":      &c.Verbose,
		"STATS":        &c.ShowStats,
	}
	for key, dst := range bools {
		v, ok := os.LookupEnv(EnvPrefix + key)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
		}
		*dst = b
	}
	return nil
}

// Validate rejects settings that would make every image fail the same way
func (c *Config) Validate() error {
	var errs []error
	if c.InputPath == "" {
		errs = append(errs, errors.New("input path is empty"))
	}
	if c.LayoutPath == "" {
		errs = append(errs, errors.New("layout path is empty"))
	}
	if c.OutputCSV == "" {
		errs = append(errs, errors.New("output path is empty"))
	}
	if c.Width < 0 || c.Height < 0 {
		errs = append(errs, fmt.Errorf("resolution %dx%d is negative", c.Width, c.Height))
	}
	if (c.Width == 0) != (c.Height == 0) {
		errs = append(errs, fmt.Errorf("resolution %dx%d: set both width and height or neither", c.Width, c.Height))
	}
	if c.Tolerance < 0 || c.Tolerance > 255 {
		errs = append(errs, fmt.Errorf("tolerance %d outside 0..255", c.Tolerance))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", c.Workers))
	}
	if c.DPI < 1 {
		errs = append(errs, fmt.Errorf("dpi must be positive, got %d", c.DPI))
	}
	return errors.Join(errs...)
}
