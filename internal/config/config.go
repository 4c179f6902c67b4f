// Package config handles citematch configuration.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/matsen/citematch/internal/format"
	"github.com/matsen/citematch/internal/logging"
	"github.com/matsen/citematch/internal/matcher"
	"github.com/matsen/citematch/internal/similarity"
)

// Config holds matching and runtime settings.
// Values come from defaults, then the YAML file, then the environment.
type Config struct {
	Style        string  `yaml:"style" json:"style" split_words:"true"`
	Threshold    float64 `yaml:"threshold" json:"threshold" split_words:"true"`
	AuthorWeight float64 `yaml:"author_weight" json:"author_weight" split_words:"true"`
	YearWeight   float64 `yaml:"year_weight" json:"year_weight" split_words:"true"`
	Workers      int     `yaml:"workers" json:"workers" split_words:"true"`
	LogLevel     string  `yaml:"log_level" json:"log_level" split_words:"true"`
	DBPath       string  `yaml:"db_path" json:"db_path" split_words:"true"`
}

const (
	// AppDir is the directory name under the XDG base directories.
	AppDir = "citematch"
	// DBFile is the default report database file name.
	DBFile = "runs.db"
	// DefaultWorkers is the default batch concurrency.
	DefaultWorkers = 4

	weightTolerance = 1e-9
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Style:        string(format.DefaultStyle),
		Threshold:    matcher.DefaultThreshold,
		AuthorWeight: similarity.DefaultWeights.Author,
		YearWeight:   similarity.DefaultWeights.Year,
		Workers:      DefaultWorkers,
		LogLevel:     logging.DefaultLevel,
		DBPath:       DefaultDBPath(),
	}
}

// DefaultDBPath returns the report database path.
// Respects XDG_DATA_HOME, defaults to ~/.local/share/citematch/runs.db.
func DefaultDBPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return DBFile
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, AppDir, DBFile)
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if _, err := format.ParseStyle(c.Style); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Threshold < 0 || c.Threshold >= 1 {
		return fmt.Errorf("%w: threshold must be in [0, 1), got %g", ErrInvalidConfig, c.Threshold)
	}
	if c.AuthorWeight < 0 || c.YearWeight < 0 {
		return fmt.Errorf("%w: weights must be non-negative (author=%g, year=%g)", ErrInvalidConfig, c.AuthorWeight, c.YearWeight)
	}
	if sum := c.AuthorWeight + c.YearWeight; math.Abs(sum-1) > weightTolerance {
		return fmt.Errorf("%w: author_weight + year_weight must equal 1, got %g", ErrInvalidConfig, sum)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidConfig, c.Workers)
	}
	return nil
}

// MatcherOptions converts the configuration into matcher options.
func (c Config) MatcherOptions() (matcher.Options, error) {
	style, err := format.ParseStyle(c.Style)
	if err != nil {
		return matcher.Options{}, err
	}
	return matcher.Options{
		Threshold: c.Threshold,
		Weights:   similarity.Weights{Author: c.AuthorWeight, Year: c.YearWeight},
		Style:     style,
	}, nil
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[1:])
}
