package automl

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config bundles the option sets for both wrapper types plus the options
// shared by every wrapper. It is the exact shape of the config file: the
// three top-level keys tpot, autosklearn, and wrapper.
type Config struct {
	TPOT        TPOTConfig        `json:"tpot"`
	AutoSklearn AutoSklearnConfig `json:"autosklearn"`
	Wrapper     WrapperConfig     `json:"wrapper"`
}

// TPOTConfig enumerates the TPOT search options.
type TPOTConfig struct {
	Generations    int `json:"generations"`
	PopulationSize int `json:"population_size"`
	Verbosity      int `json:"verbosity"`
}

// AutoSklearnConfig enumerates the auto-sklearn search options.
type AutoSklearnConfig struct {
	TimeLeftForThisTask int `json:"time_left_for_this_task"`
	PerRunTimeLimit     int `json:"per_run_time_limit"`
	EnsembleSize        int `json:"ensemble_size"`
}

// WrapperConfig enumerates the options shared by every wrapper.
type WrapperConfig struct {
	Refit          bool   `json:"refit"`
	Verbose        bool   `json:"verbose"`
	RandomState    int64  `json:"random_state"`
	BackendCommand string `json:"backend_command,omitempty"`
}

// DefaultConfig returns a bundle with the stock search budgets.
func DefaultConfig() Config {
	return Config{
		TPOT: TPOTConfig{
			Generations:    10,
			PopulationSize: 20,
			Verbosity:      0,
		},
		AutoSklearn: AutoSklearnConfig{
			TimeLeftForThisTask: 3600,
			PerRunTimeLimit:     360,
			EnsembleSize:        50,
		},
		Wrapper: WrapperConfig{
			Refit:       true,
			Verbose:     false,
			RandomState: 0,
		},
	}
}

// Validate checks every option set. Validation happens at load time so a bad
// option never reaches a wrapper constructor.
func (c Config) Validate() error {
	if err := c.TPOT.Validate(); err != nil {
		return fmt.Errorf("tpot: %w", err)
	}
	if err := c.AutoSklearn.Validate(); err != nil {
		return fmt.Errorf("autosklearn: %w", err)
	}
	if err := c.Wrapper.Validate(); err != nil {
		return fmt.Errorf("wrapper: %w", err)
	}
	return nil
}

func (c TPOTConfig) Validate() error {
	if c.Generations <= 0 {
		return fmt.Errorf("generations must be positive, got %d", c.Generations)
	}
	if c.PopulationSize <= 0 {
		return fmt.Errorf("population_size must be positive, got %d", c.PopulationSize)
	}
	if c.Verbosity < 0 || c.Verbosity > 3 {
		return fmt.Errorf("verbosity must be between 0 and 3, got %d", c.Verbosity)
	}
	return nil
}

func (c AutoSklearnConfig) Validate() error {
	if c.TimeLeftForThisTask <= 0 {
		return fmt.Errorf("time_left_for_this_task must be positive, got %d", c.TimeLeftForThisTask)
	}
	if c.PerRunTimeLimit <= 0 {
		return fmt.Errorf("per_run_time_limit must be positive, got %d", c.PerRunTimeLimit)
	}
	if c.PerRunTimeLimit > c.TimeLeftForThisTask {
		return fmt.Errorf("per_run_time_limit %d exceeds time_left_for_this_task %d",
			c.PerRunTimeLimit, c.TimeLeftForThisTask)
	}
	if c.EnsembleSize < 0 {
		return fmt.Errorf("ensemble_size must not be negative, got %d", c.EnsembleSize)
	}
	return nil
}

func (c WrapperConfig) Validate() error {
	if c.RandomState < 0 {
		return fmt.Errorf("random_state must not be negative, got %d", c.RandomState)
	}
	return nil
}

// WriteConfigFile writes the bundle as a single JSON object with sorted keys
// and 4-space indentation, and returns the path.
func WriteConfigFile(path string, cfg Config) (string, error) {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return "", err
	}
	// Round-trip through a map so keys come out sorted at every level.
	var tree map[string]any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(tree, "", "    ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return "", err
	}
	return path, nil
}

// LoadConfigFile reads and validates a config bundle. A missing file is an
// error.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("automl: parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("automl: invalid config %s: %w", path, err)
	}
	return cfg, nil
}
