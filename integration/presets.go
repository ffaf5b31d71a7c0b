// Package integration provides named simulation presets. A preset bundles
// the sizing knobs (node count, validator set, run length, job load) into a
// profile so a run can be scaled from a laptop smoke test up to a planetary
// network without touching a dozen flags.
//
// Usage:
//
//	preset, err := integration.GetPresetByName("devnet")
//	if err != nil {
//	    return err
//	}
//	integration.ApplyPreset(&rules, preset)
//
// Presets are applied after the config file and before CLI flags.
package integration

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rony4d/go-meshx-sim/meshx"
)

// ErrUnknownPreset is returned for names that match no preset.
var ErrUnknownPreset = errors.New("unknown preset")

// PresetConfig captures the parameters that vary across profiles. Zero
// values mean "keep what the target already has".
type PresetConfig struct {
	Name        string // identifier used by --preset
	Description string // one-line summary for the presets command

	Nodes        int              // network size
	Validators   int              // validator set size per epoch
	Epochs       int              // run length
	JobsPerEpoch meshx.IntRange   // job load; a zero range is ignored
	Balance      meshx.FloatRange // initial stake range; a zero range is ignored
}

// DefaultPreset matches meshx.DefaultRules.
func DefaultPreset() PresetConfig {
	rules := meshx.DefaultRules()
	return PresetConfig{
		Name:         "default",
		Description:  "built-in defaults",
		Nodes:        rules.Network.NodeCount,
		Validators:   rules.Network.ValidatorCount,
		Epochs:       rules.Network.EpochsToRun,
		JobsPerEpoch: rules.Economy.JobsPerEpoch,
		Balance:      rules.Resources.Balance,
	}
}

// PrototypePreset is the full-size reference run:
// ten thousand nodes, a hundred validators, ten epochs.
func PrototypePreset() PresetConfig {
	cfg := DefaultPreset()
	cfg.Name = "prototype"
	cfg.Description = "10k nodes, 100 validators, 10 epochs"
	cfg.Nodes = 10000
	return cfg
}

// DevnetPreset is small enough for CI and quick local runs.
func DevnetPreset() PresetConfig {
	cfg := DefaultPreset()
	cfg.Name = "devnet"
	cfg.Description = "100 nodes, 10 validators, 5 short epochs"
	cfg.Nodes = 100
	cfg.Validators = 10
	cfg.Epochs = 5
	cfg.JobsPerEpoch = meshx.IntRange{Min: 10, Max: 40}
	return cfg
}

// ContinentalPreset is a mid-size network with a longer run.
func ContinentalPreset() PresetConfig {
	cfg := DefaultPreset()
	cfg.Name = "continental"
	cfg.Description = "50k nodes, 500 validators, 30 epochs"
	cfg.Nodes = 50000
	cfg.Validators = 500
	cfg.Epochs = 30
	cfg.JobsPerEpoch = meshx.IntRange{Min: 200, Max: 800}
	return cfg
}

// PlanetPreset stresses the lottery: a million nodes with heavy job load.
func PlanetPreset() PresetConfig {
	cfg := DefaultPreset()
	cfg.Name = "planet"
	cfg.Description = "1M nodes, 1000 validators, 100 epochs"
	cfg.Nodes = 1000000
	cfg.Validators = 1000
	cfg.Epochs = 100
	cfg.JobsPerEpoch = meshx.IntRange{Min: 1000, Max: 5000}
	cfg.Balance = meshx.FloatRange{Min: 10, Max: 100000}
	return cfg
}

// Presets lists every preset, smallest first.
func Presets() []PresetConfig {
	return []PresetConfig{
		DefaultPreset(),
		DevnetPreset(),
		PrototypePreset(),
		ContinentalPreset(),
		PlanetPreset(),
	}
}

// GetPresetByName looks a preset up by its exact name.
func GetPresetByName(name string) (PresetConfig, error) {
	names := make([]string, 0, 5)
	for _, p := range Presets() {
		if p.Name == name {
			return p, nil
		}
		names = append(names, p.Name)
	}
	return PresetConfig{}, fmt.Errorf("%w: %q (valid: %s)", ErrUnknownPreset, name, strings.Join(names, ", "))
}

// ApplyPreset overrides the fields of target that the preset sets.
func ApplyPreset(target *meshx.Rules, preset PresetConfig) {
	if preset.Name != "" {
		target.Name = preset.Name
	}
	if preset.Nodes > 0 {
		target.Network.NodeCount = preset.Nodes
	}
	if preset.Validators > 0 {
		target.Network.ValidatorCount = preset.Validators
	}
	if preset.Epochs > 0 {
		target.Network.EpochsToRun = preset.Epochs
	}
	if preset.JobsPerEpoch != (meshx.IntRange{}) {
		target.Economy.JobsPerEpoch = preset.JobsPerEpoch
	}
	if preset.Balance != (meshx.FloatRange{}) {
		target.Resources.Balance = preset.Balance
	}
}
