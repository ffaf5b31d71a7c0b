// This file maps CLI context and config files onto the launcher Config.

package launcher

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/urfave/cli.v1"
	"gopkg.in/yaml.v3"

	"github.com/rony4d/go-meshx-sim/integration"
	"github.com/rony4d/go-meshx-sim/meshx"
)

// Config aggregates everything a simulation run needs.
type Config struct {
	Rules   meshx.Rules   `yaml:"rules"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	// Pause is slept between epochs.
	Pause time.Duration `yaml:"pause"`
}

type LoggingConfig struct {
	Verbosity int    `yaml:"verbosity"`
	Format    string `yaml:"format"`
	Color     bool   `yaml:"color"`
	SentryDSN string `yaml:"sentry_dsn"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Port    int    `yaml:"port"`
}

// Endpoint is the host:port the metrics server binds to.
func (m MetricsConfig) Endpoint() string {
	return fmt.Sprintf("%s:%d", m.Addr, m.Port)
}

// -----------------------------------------------------------------------------
// Default config + builders
// -----------------------------------------------------------------------------

func defaultConfig() Config {
	d := DefaultConfig()
	return Config{
		Rules: meshx.DefaultRules(),
		Logging: LoggingConfig{
			Verbosity: d.Logging.Verbosity,
			Format:    d.Logging.Format,
			Color:     d.Logging.Color,
			SentryDSN: d.Logging.SentryDSN,
		},
		Metrics: MetricsConfig{
			Enabled: d.Metrics.Enable,
			Addr:    d.Metrics.HTTPAddr,
			Port:    d.Metrics.HTTPPort,
		},
		Pause: d.Run.Pause,
	}
}

// MakeAllConfigs merges defaults, the optional config file, the optional
// preset and finally CLI overrides, then validates the result.
func MakeAllConfigs(ctx *cli.Context) (Config, error) {
	cfg := defaultConfig()

	if file := stringFlag(ctx, "config"); file != "" {
		if err := loadConfigFile(file, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to load config file %s: %w", file, err)
		}
	}

	if name := stringFlag(ctx, "preset"); name != "" {
		preset, err := integration.GetPresetByName(name)
		if err != nil {
			return Config{}, err
		}
		integration.ApplyPreset(&cfg.Rules, preset)
	}

	if err := applyCLIOverrides(ctx, &cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the launcher settings and the simulation rules.
func (c Config) Validate() error {
	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return fmt.Errorf("%w: log format %q is not text or json", meshx.ErrInvalidConfiguration, c.Logging.Format)
	}
	if c.Logging.Verbosity < 0 {
		return fmt.Errorf("%w: log verbosity %d is negative", meshx.ErrInvalidConfiguration, c.Logging.Verbosity)
	}
	if c.Pause < 0 {
		return fmt.Errorf("%w: epoch pause %v is negative", meshx.ErrInvalidConfiguration, c.Pause)
	}
	if c.Metrics.Enabled && (c.Metrics.Port < 0 || c.Metrics.Port > 65535) {
		return fmt.Errorf("%w: metrics port %d out of range", meshx.ErrInvalidConfiguration, c.Metrics.Port)
	}
	return c.Rules.Validate()
}

// -----------------------------------------------------------------------------
// Config-file / CLI wiring
// -----------------------------------------------------------------------------

// loadConfigFile decodes a YAML file over cfg. Keys the file omits keep
// their current values; unknown keys are rejected.
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func applyCLIOverrides(ctx *cli.Context, cfg *Config) error {
	if c := setIn(ctx, "log.format"); c != nil {
		cfg.Logging.Format = c.String("log.format")
	}
	if c := setIn(ctx, "log.verbosity"); c != nil {
		cfg.Logging.Verbosity = c.Int("log.verbosity")
	}
	if c := setIn(ctx, "log.color"); c != nil {
		cfg.Logging.Color = c.Bool("log.color")
	}
	if c := setIn(ctx, "sentry.dsn"); c != nil {
		cfg.Logging.SentryDSN = c.String("sentry.dsn")
	}

	if c := setIn(ctx, "metrics"); c != nil && c.Bool("metrics") {
		cfg.Metrics.Enabled = true
	}
	if c := setIn(ctx, "metrics.addr"); c != nil {
		cfg.Metrics.Addr = c.String("metrics.addr")
	}
	if c := setIn(ctx, "metrics.port"); c != nil {
		cfg.Metrics.Port = c.Int("metrics.port")
	}

	n := &cfg.Rules.Network
	if c := setIn(ctx, "nodes"); c != nil {
		n.NodeCount = c.Int("nodes")
	}
	if c := setIn(ctx, "require-nodes"); c != nil {
		n.RequireNodes = c.Bool("require-nodes")
	}
	if c := setIn(ctx, "validators"); c != nil {
		n.ValidatorCount = c.Int("validators")
	}
	if c := setIn(ctx, "epochs"); c != nil {
		n.EpochsToRun = c.Int("epochs")
	}
	if c := setIn(ctx, "forever"); c != nil {
		n.Forever = c.Bool("forever")
	}
	if c := setIn(ctx, "price"); c != nil {
		n.StartingPrice = c.Float64("price")
	}
	if c := setIn(ctx, "seed"); c != nil {
		n.Seed = c.Int64("seed")
	}
	if c := setIn(ctx, "vrf.hash"); c != nil {
		n.VRFHash = c.String("vrf.hash")
	}
	if c := setIn(ctx, "vrf.workers"); c != nil {
		n.ScoringWorkers = c.Int("vrf.workers")
	}
	if c := setIn(ctx, "epoch.pause"); c != nil {
		cfg.Pause = c.Duration("epoch.pause")
	}

	r := &cfg.Rules.Resources
	if c := setIn(ctx, "node.cpu.min"); c != nil {
		r.CPU.Min = c.Int("node.cpu.min")
	}
	if c := setIn(ctx, "node.cpu.max"); c != nil {
		r.CPU.Max = c.Int("node.cpu.max")
	}
	if c := setIn(ctx, "node.ram"); c != nil {
		ram, err := splitInts(c.String("node.ram"))
		if err != nil {
			return fmt.Errorf("--node.ram: %w", err)
		}
		r.RAM = ram
	}
	if c := setIn(ctx, "node.storage"); c != nil {
		storage, err := splitInts(c.String("node.storage"))
		if err != nil {
			return fmt.Errorf("--node.storage: %w", err)
		}
		r.Storage = storage
	}
	if c := setIn(ctx, "node.bandwidth.min"); c != nil {
		r.Bandwidth.Min = c.Int("node.bandwidth.min")
	}
	if c := setIn(ctx, "node.bandwidth.max"); c != nil {
		r.Bandwidth.Max = c.Int("node.bandwidth.max")
	}
	if c := setIn(ctx, "node.balance.min"); c != nil {
		r.Balance.Min = c.Float64("node.balance.min")
	}
	if c := setIn(ctx, "node.balance.max"); c != nil {
		r.Balance.Max = c.Float64("node.balance.max")
	}

	e := &cfg.Rules.Economy
	if c := setIn(ctx, "job.size"); c != nil {
		e.JobSize = c.Int("job.size")
	}
	if c := setIn(ctx, "jobs.min"); c != nil {
		e.JobsPerEpoch.Min = c.Int("jobs.min")
	}
	if c := setIn(ctx, "jobs.max"); c != nil {
		e.JobsPerEpoch.Max = c.Int("jobs.max")
	}
	if c := setIn(ctx, "job.units.min"); c != nil {
		e.ComputeUnits.Min = c.Int("job.units.min")
	}
	if c := setIn(ctx, "job.units.max"); c != nil {
		e.ComputeUnits.Max = c.Int("job.units.max")
	}
	if c := setIn(ctx, "job.unitprice"); c != nil {
		e.UnitPriceToken = c.Float64("job.unitprice")
	}
	if c := setIn(ctx, "job.latency.min"); c != nil {
		e.LatencyMs.Min = c.Int("job.latency.min")
	}
	if c := setIn(ctx, "job.latency.max"); c != nil {
		e.LatencyMs.Max = c.Int("job.latency.max")
	}
	if c := setIn(ctx, "job.min.cpu"); c != nil {
		e.MinResources.CPU = c.Int("job.min.cpu")
	}
	if c := setIn(ctx, "job.min.ram"); c != nil {
		e.MinResources.RAM = c.Int("job.min.ram")
	}
	if c := setIn(ctx, "job.min.storage"); c != nil {
		e.MinResources.Storage = c.Int("job.min.storage")
	}
	if c := setIn(ctx, "job.min.bandwidth"); c != nil {
		e.MinResources.Bandwidth = c.Int("job.min.bandwidth")
	}
	if c := setIn(ctx, "price.drift.min"); c != nil {
		e.PriceDrift.Min = c.Float64("price.drift.min")
	}
	if c := setIn(ctx, "price.drift.max"); c != nil {
		e.PriceDrift.Max = c.Float64("price.drift.max")
	}
	if c := setIn(ctx, "price.floor"); c != nil {
		e.PriceFloor = c.Float64("price.floor")
	}
	return nil
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

// setIn returns the innermost context in which the named flag was given on
// the command line, walking from a subcommand up to the app. The same flags
// are accepted before and after the run command; the one closest to the
// command wins.
func setIn(ctx *cli.Context, name string) *cli.Context {
	for c := ctx; c != nil; c = c.Parent() {
		if c.IsSet(name) {
			return c
		}
	}
	return nil
}

func stringFlag(ctx *cli.Context, name string) string {
	if c := setIn(ctx, name); c != nil {
		return c.String(name)
	}
	return ctx.String(name)
}

func splitInts(raw string) ([]int, error) {
	parts := splitCSV(raw)
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", p)
		}
		out = append(out, v)
	}
	return out, nil
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
