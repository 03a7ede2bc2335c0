// Package config provides unified configuration loading for aide.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aide-sh/aide/internal/constants"
)

// Config contains all aide configuration settings.
type Config struct {
	// DataDir is where persisted documents and the trace log live.
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// Storage selects the document store backend: "file" (default) or "sqlite".
	Storage string `json:"storage" yaml:"storage"`

	// Memory contains interaction-store tuning.
	Memory MemoryConfig `json:"memory" yaml:"memory"`

	// Cadence contains background sweep intervals.
	Cadence CadenceConfig `json:"cadence" yaml:"cadence"`

	// Speech contains text-to-speech settings.
	Speech SpeechConfig `json:"speech" yaml:"speech"`

	// Logging contains settings for operational and trace logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// MemoryConfig tunes the interaction store.
type MemoryConfig struct {
	// ShortTermCapacity bounds the recency buffer.
	ShortTermCapacity int `json:"short_term_capacity" yaml:"short_term_capacity"`

	// SimilarityThreshold is the minimum Jaccard score for similar-query
	// retrieval. Range: 0.0 to 1.0.
	SimilarityThreshold float64 `json:"similarity_threshold" yaml:"similarity_threshold"`

	// CleanupDays is the age in days beyond which low-effectiveness
	// interactions become removable.
	CleanupDays int `json:"cleanup_days" yaml:"cleanup_days"`

	// CleanupScore is the effectiveness floor below which old interactions
	// are removed.
	CleanupScore float64 `json:"cleanup_score" yaml:"cleanup_score"`
}

// CadenceConfig sets the background sweep intervals.
type CadenceConfig struct {
	// ReminderSweep is how often due reminders are checked.
	ReminderSweep Duration `json:"reminder_sweep" yaml:"reminder_sweep"`

	// Persist is how often memory is flushed and patterns re-analyzed.
	Persist Duration `json:"persist" yaml:"persist"`
}

// Duration wraps time.Duration so YAML values like "30s" or "5m" parse.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// SpeechConfig configures spoken output.
type SpeechConfig struct {
	// Enabled turns on espeak output for responses and reminders.
	Enabled bool `json:"enabled" yaml:"enabled"`
}

// LoggingConfig configures aide's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	// "debug" enables routing-decision logging to <data_dir>/trace.jsonl.
	Level string `json:"level" yaml:"level"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	dataDir := ".aide"
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".aide")
	}
	return &Config{
		DataDir: dataDir,
		Storage: "file",
		Memory: MemoryConfig{
			ShortTermCapacity:   constants.ShortTermCapacity,
			SimilarityThreshold: constants.SimilarityThreshold,
			CleanupDays:         constants.CleanupDaysThreshold,
			CleanupScore:        constants.CleanupScoreThreshold,
		},
		Cadence: CadenceConfig{
			ReminderSweep: Duration(constants.ReminderSweepInterval),
			Persist:       Duration(constants.PersistInterval),
		},
		Speech: SpeechConfig{
			Enabled: false,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the default locations and environment variables.
// Order: defaults -> ~/.aide/config.yaml -> environment variables
func Load() (*Config, error) {
	config := Default()

	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".aide", "config.yaml")
		if _, statErr := os.Stat(configPath); statErr == nil {
			fileConfig, loadErr := LoadFromFile(configPath)
			if loadErr != nil {
				return nil, fmt.Errorf("loading config file: %w", loadErr)
			}
			config = fileConfig
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return config, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Storage != "file" && c.Storage != "sqlite" {
		return fmt.Errorf("invalid storage backend: %s (valid: file, sqlite)", c.Storage)
	}

	if c.Memory.ShortTermCapacity < 1 {
		return fmt.Errorf("short_term_capacity must be positive, got %d", c.Memory.ShortTermCapacity)
	}

	if c.Memory.SimilarityThreshold < 0 || c.Memory.SimilarityThreshold > 1 {
		return fmt.Errorf("similarity_threshold must be between 0 and 1, got %f", c.Memory.SimilarityThreshold)
	}

	if c.Memory.CleanupScore < 0 || c.Memory.CleanupScore > 1 {
		return fmt.Errorf("cleanup_score must be between 0 and 1, got %f", c.Memory.CleanupScore)
	}

	if c.Cadence.ReminderSweep <= 0 || c.Cadence.Persist <= 0 {
		return fmt.Errorf("cadence intervals must be positive, got reminder_sweep=%v persist=%v",
			c.Cadence.ReminderSweep, c.Cadence.Persist)
	}

	validLevels := map[string]bool{"info": true, "debug": true, "trace": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("AIDE_DATA_DIR"); v != "" {
		config.DataDir = v
	}

	if v := os.Getenv("AIDE_STORAGE"); v != "" {
		config.Storage = v
	}

	if v := os.Getenv("AIDE_SIMILARITY_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Memory.SimilarityThreshold = f
		}
	}

	if v := os.Getenv("AIDE_CLEANUP_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Memory.CleanupDays = n
		}
	}

	if v := os.Getenv("AIDE_SPEECH_ENABLED"); v != "" {
		config.Speech.Enabled = v == "true" || v == "1"
	}

	if v := os.Getenv("AIDE_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
}
