// Package meshx defines the parameters that govern a MeshX network
// simulation.
//
// This package provides:
//   - Network sizing (node count, validator set size, epochs to run)
//   - Node generation distributions (cpu, ram, storage, bandwidth, stake)
//   - Job economics (compute units, token conversion, job size, latency)
//   - Market dynamics (starting price, per-epoch drift, price floor)
//
// The Rules type is the single configuration structure the engine reads.
// It is fixed at startup and checked by Validate before any epoch runs.
package meshx

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/rony4d/go-meshx-sim/inter"
	"github.com/rony4d/go-meshx-sim/vrf"
)

// ErrInvalidConfiguration is wrapped by every error Validate returns.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// DefaultPriceFloor keeps the token price strictly positive when a drift
// range reaches zero or below.
const DefaultPriceFloor = 1e-9

// IntRange is a closed integer interval [Min, Max].
type IntRange struct {
	Min int `yaml:"min" json:"min"`
	Max int `yaml:"max" json:"max"`
}

// FloatRange is a half-open interval [Min, Max).
type FloatRange struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// Rules describes the complete configuration of a simulated network.
type Rules struct {
	Name string `yaml:"name" json:"name"`

	// Network sizing and run control
	Network NetworkRules `yaml:"network" json:"network"`

	// Distributions used when nodes are generated
	Resources ResourceRules `yaml:"resources" json:"resources"`

	// Job and market parameters
	Economy EconomyRules `yaml:"economy" json:"economy"`
}

// NetworkRules sizes the network and controls the run.
type NetworkRules struct {
	// NodeCount is the number of nodes created at initialisation.
	NodeCount int `yaml:"nodes" json:"nodes"`

	// RequireNodes rejects an empty network at validation time. Without it
	// zero nodes is a degenerate but valid run: no validators, no jobs.
	RequireNodes bool `yaml:"require_nodes" json:"require_nodes"`

	// ValidatorCount is the target size of each epoch's validator set.
	ValidatorCount int `yaml:"validators" json:"validators"`

	// EpochsToRun bounds the run; the engine itself has no terminal state.
	EpochsToRun int `yaml:"epochs" json:"epochs"`

	// Forever ignores EpochsToRun and runs until interrupted.
	Forever bool `yaml:"forever" json:"forever"`

	// StartingPrice is the initial MESHX price in USD.
	StartingPrice float64 `yaml:"starting_price" json:"starting_price"`

	// Seed feeds the random source so runs are reproducible.
	Seed int64 `yaml:"seed" json:"seed"`

	// VRFHash names the digest used by the validator lottery.
	VRFHash string `yaml:"vrf_hash" json:"vrf_hash"`

	// ScoringWorkers bounds the goroutines scoring nodes in the lottery.
	// Zero means one per CPU.
	ScoringWorkers int `yaml:"scoring_workers" json:"scoring_workers"`
}

// ResourceRules are the sampling distributions for generated nodes.
type ResourceRules struct {
	// CPU cores, uniform over the closed range
	CPU IntRange `yaml:"cpu" json:"cpu"`
	// RAM in GB, chosen uniformly from the list
	RAM []int `yaml:"ram" json:"ram"`
	// Storage in GB, chosen uniformly from the list
	Storage []int `yaml:"storage" json:"storage"`
	// Bandwidth in Mbps, uniform over the closed range
	Bandwidth IntRange `yaml:"bandwidth" json:"bandwidth"`
	// Balance is the initial stake in MESHX, uniform over the range
	Balance FloatRange `yaml:"balance" json:"balance"`
}

// EconomyRules drive job generation, rewards and the token price.
type EconomyRules struct {
	// UnitPriceToken converts compute units to MESHX.
	UnitPriceToken float64 `yaml:"unit_price_token" json:"unit_price_token"`

	// ComputeUnits is the per-job workload range.
	ComputeUnits IntRange `yaml:"compute_units" json:"compute_units"`

	// JobSize is the number of nodes a job is spread across when enough
	// eligible nodes exist.
	JobSize int `yaml:"job_size" json:"job_size"`

	// JobsPerEpoch is the range the per-epoch job count is drawn from.
	JobsPerEpoch IntRange `yaml:"jobs_per_epoch" json:"jobs_per_epoch"`

	// LatencyMs is the reporting-only average latency range.
	LatencyMs IntRange `yaml:"latency_ms" json:"latency_ms"`

	// MinResources is the profile a node must meet to take a job.
	MinResources inter.Resources `yaml:"min_resources" json:"min_resources"`

	// PriceDrift is the range of the per-epoch multiplicative price step.
	PriceDrift FloatRange `yaml:"price_drift" json:"price_drift"`

	// PriceFloor is the smallest price the drift may produce.
	PriceFloor float64 `yaml:"price_floor" json:"price_floor"`
}

// DefaultRules returns the reference economy and resource parameters,
// scaled down to a thousand nodes.
func DefaultRules() Rules {
	return Rules{
		Name:      "default",
		Network:   DefaultNetworkRules(),
		Resources: DefaultResourceRules(),
		Economy:   DefaultEconomyRules(),
	}
}

// DefaultNetworkRules returns the default network sizing.
func DefaultNetworkRules() NetworkRules {
	return NetworkRules{
		NodeCount:      1000,
		ValidatorCount: 100,
		EpochsToRun:    10,
		StartingPrice:  0.10,
		Seed:           1,
		VRFHash:        vrf.SHA256,
	}
}

// DefaultResourceRules returns the node generation distributions.
func DefaultResourceRules() ResourceRules {
	return ResourceRules{
		CPU:       IntRange{Min: 2, Max: 16},
		RAM:       []int{4, 8, 16, 32, 64},
		Storage:   []int{100, 500, 1000, 2000},
		Bandwidth: IntRange{Min: 10, Max: 1000},
		Balance:   FloatRange{Min: 100, Max: 10000},
	}
}

// DefaultEconomyRules returns the job and market parameters.
func DefaultEconomyRules() EconomyRules {
	return EconomyRules{
		UnitPriceToken: 0.001,
		ComputeUnits:   IntRange{Min: 100, Max: 10000},
		JobSize:        10,
		JobsPerEpoch:   IntRange{Min: 50, Max: 200},
		LatencyMs:      IntRange{Min: 10, Max: 100},
		MinResources:   inter.Resources{CPU: 2, RAM: 4, Storage: 100, Bandwidth: 10},
		PriceDrift:     FloatRange{Min: 0.98, Max: 1.02},
		PriceFloor:     DefaultPriceFloor,
	}
}

// Validate checks every parameter and reports all problems at once. The
// returned error wraps ErrInvalidConfiguration.
func (r Rules) Validate() error {
	var problems []string
	fail := func(format string, args ...interface{}) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	n := r.Network
	if n.NodeCount < 0 {
		fail("node count %d is negative", n.NodeCount)
	}
	if n.RequireNodes && n.NodeCount == 0 {
		fail("node count must be positive")
	}
	if n.ValidatorCount < 0 {
		fail("validator count %d is negative", n.ValidatorCount)
	}
	if n.EpochsToRun < 0 {
		fail("epochs to run %d is negative", n.EpochsToRun)
	}
	if !(n.StartingPrice > 0) || math.IsInf(n.StartingPrice, 0) {
		fail("starting price %v must be positive", n.StartingPrice)
	}
	if !vrf.Supported(n.VRFHash) {
		fail("vrf hash %q is not one of %v", n.VRFHash, vrf.Names())
	}
	if n.ScoringWorkers < 0 {
		fail("scoring workers %d is negative", n.ScoringWorkers)
	}

	res := r.Resources
	checkIntRange(fail, "cpu", res.CPU)
	checkIntRange(fail, "bandwidth", res.Bandwidth)
	checkChoices(fail, "ram", res.RAM)
	checkChoices(fail, "storage", res.Storage)
	checkFloatRange(fail, "balance", res.Balance)
	if res.Balance.Min < 0 {
		fail("balance range %v allows negative stake", res.Balance)
	}

	e := r.Economy
	if !(e.UnitPriceToken >= 0) || math.IsInf(e.UnitPriceToken, 0) {
		fail("unit price %v must be a non-negative number", e.UnitPriceToken)
	}
	checkIntRange(fail, "compute units", e.ComputeUnits)
	if e.JobSize <= 0 {
		fail("job size %d must be positive", e.JobSize)
	}
	checkIntRange(fail, "jobs per epoch", e.JobsPerEpoch)
	checkIntRange(fail, "latency", e.LatencyMs)
	if e.MinResources.CPU < 0 || e.MinResources.RAM < 0 || e.MinResources.Storage < 0 || e.MinResources.Bandwidth < 0 {
		fail("minimum resources %+v contain a negative value", e.MinResources)
	}
	checkFloatRange(fail, "price drift", e.PriceDrift)
	if !(e.PriceFloor > 0) || math.IsInf(e.PriceFloor, 0) {
		fail("price floor %v must be positive", e.PriceFloor)
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, strings.Join(problems, "; "))
}

func checkIntRange(fail func(string, ...interface{}), name string, r IntRange) {
	if r.Min < 0 {
		fail("%s range %v has a negative bound", name, r)
	}
	if r.Min > r.Max {
		fail("%s range %v is inverted", name, r)
	}
}

func checkFloatRange(fail func(string, ...interface{}), name string, r FloatRange) {
	if math.IsNaN(r.Min) || math.IsNaN(r.Max) || math.IsInf(r.Min, 0) || math.IsInf(r.Max, 0) {
		fail("%s range %v is not finite", name, r)
		return
	}
	if r.Min > r.Max {
		fail("%s range %v is inverted", name, r)
	}
}

func checkChoices(fail func(string, ...interface{}), name string, choices []int) {
	if len(choices) == 0 {
		fail("%s choices are empty", name)
	}
	for _, c := range choices {
		if c < 0 {
			fail("%s choice %d is negative", name, c)
		}
	}
}

// Copy returns a deep copy of the rules.
func (r Rules) Copy() Rules {
	cp := r
	cp.Resources.RAM = append([]int(nil), r.Resources.RAM...)
	cp.Resources.Storage = append([]int(nil), r.Resources.Storage...)
	return cp
}

// String renders the rules as JSON for logs and config dumps.
func (r Rules) String() string {
	b, _ := json.Marshal(&r)
	return string(b)
}
