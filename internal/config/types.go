package config

import "fmt"

const EnvConfigPath = "FUZZSTATS_CONFIG"

// Config is the fuzzstats configuration file structure. Every field has a
// working default so the tool runs without a config file.
type Config struct {
	// Baseline and Tweak name the reference fuzzer and the fuzzer under
	// evaluation; they must match the fuzzer keys of the dataset.
	Baseline string `yaml:"baseline,omitempty"`
	Tweak    string `yaml:"tweak,omitempty"`

	// Alpha and Resamples are passed through to the external bootstrap
	// tests.
	Alpha     float64 `yaml:"alpha,omitempty"`
	Resamples int     `yaml:"resamples,omitempty"`

	// ExpectedRuns and ExpectedRuntime describe one complete campaign per
	// fuzzer and target.
	ExpectedRuns    int    `yaml:"expectedRuns,omitempty"`
	ExpectedRuntime string `yaml:"expectedRuntime,omitempty"`

	// MinSamples is the smallest group size admitted to a comparison.
	MinSamples int `yaml:"minSamples,omitempty"`

	// RScript locates the R script with the bootstrap test functions;
	// RscriptBin is the interpreter to run it with.
	RScript    string `yaml:"rScript,omitempty"`
	RscriptBin string `yaml:"rscriptBin,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Baseline:        "aflpp",
		Tweak:           "new_fuzzer",
		Alpha:           0.05,
		Resamples:       999,
		ExpectedRuns:    10,
		ExpectedRuntime: "86400s",
		MinSamples:      2,
		RScript:         "statistics.R",
		RscriptBin:      "Rscript",
	}
}

func (c *Config) normalize() {
	def := Default()
	if c.Baseline == "" {
		c.Baseline = def.Baseline
	}
	if c.Tweak == "" {
		c.Tweak = def.Tweak
	}
	if c.Alpha == 0 {
		c.Alpha = def.Alpha
	}
	if c.Resamples == 0 {
		c.Resamples = def.Resamples
	}
	if c.ExpectedRuns == 0 {
		c.ExpectedRuns = def.ExpectedRuns
	}
	if c.ExpectedRuntime == "" {
		c.ExpectedRuntime = def.ExpectedRuntime
	}
	if c.MinSamples == 0 {
		c.MinSamples = def.MinSamples
	}
	if c.RScript == "" {
		c.RScript = def.RScript
	}
	if c.RscriptBin == "" {
		c.RscriptBin = def.RscriptBin
	}
}

// Validate checks config invariants that must hold for the file to be
// usable.
func (c Config) Validate() error {
	if c.Alpha <= 0 || c.Alpha >= 1 {
		return fmt.Errorf("alpha must be within (0, 1), got %v", c.Alpha)
	}
	if c.Resamples < 1 {
		return fmt.Errorf("resamples must be positive, got %d", c.Resamples)
	}
	if c.ExpectedRuns < 1 {
		return fmt.Errorf("expectedRuns must be positive, got %d", c.ExpectedRuns)
	}
	if c.MinSamples < 2 {
		return fmt.Errorf("minSamples must be at least 2, got %d", c.MinSamples)
	}
	if c.Baseline == c.Tweak {
		return fmt.Errorf("baseline and tweak must name different fuzzers (both %q)", c.Baseline)
	}
	return nil
}
