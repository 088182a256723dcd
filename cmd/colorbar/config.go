package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/oerlikon/colorbar"
)

// Config holds the demo settings. It is read from an optional YAML file,
// then overridden by any flag given on the command line.
type Config struct {
	Color      string      `yaml:"color"`
	Bright     bool        `yaml:"bright"`
	Length     interface{} `yaml:"length"`
	Percentage bool        `yaml:"percentage"`
	Estimate   bool        `yaml:"estimate"`

	Steps       int    `yaml:"steps"`
	IntervalRaw string `yaml:"interval"`

	SpinnerStyle int    `yaml:"spinner_style"`
	SpinRaw      string `yaml:"spin"`
}

func defaultConfig() Config {
	return Config{
		Length:      40,
		Percentage:  true,
		Steps:       10,
		IntervalRaw: "100ms",
	}
}

// Interval returns the pause between two simulated steps.
func (c Config) Interval() (time.Duration, error) {
	if c.IntervalRaw == "" {
		return 100 * time.Millisecond, nil
	}
	return time.ParseDuration(c.IntervalRaw)
}

// Spin returns how long the spinner runs after the bar; zero skips it.
func (c Config) Spin() (time.Duration, error) {
	if c.SpinRaw == "" {
		return 0, nil
	}
	return time.ParseDuration(c.SpinRaw)
}

// LoadConfig reads a config file over the defaults. An empty path yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config file: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses YAML over the defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config YAML: %w", err)
	}
	return cfg, cfg.validate()
}

// validate checks the fields the bar itself does not check.
func (c Config) validate() error {
	if c.Steps < 1 {
		return fmt.Errorf("steps must be at least 1, got %d", c.Steps)
	}
	if _, err := c.Interval(); err != nil {
		return fmt.Errorf("invalid interval: %w", err)
	}
	if _, err := c.Spin(); err != nil {
		return fmt.Errorf("invalid spin: %w", err)
	}
	if err := colorbar.SpinnerStyle(c.SpinnerStyle).Validate(); err != nil {
		return fmt.Errorf("invalid spinner style: %w", err)
	}
	return nil
}

func addFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "YAML config file")
	flags.String("color", "", fmt.Sprintf("bar color, one of %v", colorbar.ColorKeys()))
	flags.Bool("bright", false, "use the bright variant of the color")
	flags.Int("length", 40, "number of glyphs in the bar")
	flags.Bool("percentage", true, "show the percentage")
	flags.Bool("estimate", false, "show the remaining time estimate")
	flags.Int("steps", 10, "number of simulated steps")
	flags.Duration("interval", 100*time.Millisecond, "pause between steps")
	flags.String("file", "", "read this file through the bar instead of simulating steps")
	flags.Int("spinner-style", int(colorbar.SpinnerClassic), "spinner style (0, 9, 14 or 59)")
	flags.Duration("spin", 0, "run the spinner for this long after the bar")
	flags.BoolP("verbose", "v", false, "enable debug logging")
}

// applyFlags overrides cfg with the flags set on the command line.
func applyFlags(cfg *Config, flags *pflag.FlagSet) error {
	var err error
	set := func(name string, apply func() error) {
		if err == nil && flags.Changed(name) {
			err = apply()
		}
	}
	set("color", func() (e error) { cfg.Color, e = flags.GetString("color"); return })
	set("bright", func() (e error) { cfg.Bright, e = flags.GetBool("bright"); return })
	set("length", func() error {
		n, e := flags.GetInt("length")
		cfg.Length = n
		return e
	})
	set("percentage", func() (e error) { cfg.Percentage, e = flags.GetBool("percentage"); return })
	set("estimate", func() (e error) { cfg.Estimate, e = flags.GetBool("estimate"); return })
	set("steps", func() (e error) { cfg.Steps, e = flags.GetInt("steps"); return })
	set("interval", func() error {
		d, e := flags.GetDuration("interval")
		cfg.IntervalRaw = d.String()
		return e
	})
	set("spinner-style", func() (e error) { cfg.SpinnerStyle, e = flags.GetInt("spinner-style"); return })
	set("spin", func() error {
		d, e := flags.GetDuration("spin")
		cfg.SpinRaw = d.String()
		return e
	})
	if err != nil {
		return err
	}
	return cfg.validate()
}

func (c Config) barOptions() []colorbar.Option {
	return []colorbar.Option{
		colorbar.OptionColor(c.Color),
		colorbar.OptionBright(c.Bright),
		colorbar.OptionLengthValue(c.Length),
		colorbar.OptionShowPercentage(c.Percentage),
		colorbar.OptionEstimateTime(c.Estimate),
	}
}
