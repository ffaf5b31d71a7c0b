// Package ier (Inter-Epoch Records) defines the record emitted when an epoch
// closes. It captures what the epoch did to the network: who validated,
// how much work ran, how much MESHX changed hands and where the price went.
package ier

import (
	"math"

	"github.com/Fantom-foundation/lachesis-base/hash"
	"github.com/Fantom-foundation/lachesis-base/inter/idx"

	"github.com/rony4d/go-meshx-sim/inter"
	"github.com/rony4d/go-meshx-sim/inter/shard"
	"github.com/rony4d/go-meshx-sim/utils/fast"
)

// EpochReport is the outcome of a single epoch.
type EpochReport struct {
	// RunID ties the report to one simulator process. It is not hashed.
	RunID string    `json:"run_id"`
	Epoch idx.Epoch `json:"epoch"`

	// Validators is the elected set, best score first.
	Validators      []inter.NodeID      `json:"validators"`
	ValidatorShards map[shard.Shard]int `json:"validator_shards"`
	// ShardCounts is the distribution of every node when the epoch closed.
	ShardCounts map[shard.Shard]int `json:"shard_counts"`

	JobsExecuted int `json:"jobs_executed"`
	// JobsSkipped counts jobs that found no eligible node.
	JobsSkipped int `json:"jobs_skipped"`

	// TokenVolume is the MESHX paid out to nodes during the epoch.
	TokenVolume float64 `json:"token_volume"`
	// NetworkValueUSD is TokenVolume at the price the epoch started with.
	NetworkValueUSD float64 `json:"network_value_usd"`

	PriceBefore float64 `json:"price_before"`
	PriceAfter  float64 `json:"price_after"`

	TotalSupply      float64 `json:"total_supply"`
	TotalComputeJobs uint64  `json:"total_compute_jobs"`
}

// Hash returns a deterministic fingerprint of the report. Two runs with the
// same rules and seed produce the same hash for every epoch.
func (r EpochReport) Hash() hash.Hash {
	w := fast.NewWriter(make([]byte, 0, 256+len(r.Validators)*16))

	w.WriteUint32(uint32(r.Epoch))

	w.WriteUint32(uint32(len(r.Validators)))
	for _, id := range r.Validators {
		w.WriteUint32(uint32(len(id)))
		w.WriteString(string(id))
	}
	for _, s := range shard.All() {
		w.WriteUint32(uint32(r.ValidatorShards[s]))
	}
	for _, s := range shard.All() {
		w.WriteUint32(uint32(r.ShardCounts[s]))
	}

	w.WriteUint32(uint32(r.JobsExecuted))
	w.WriteUint32(uint32(r.JobsSkipped))
	for _, f := range []float64{r.TokenVolume, r.NetworkValueUSD, r.PriceBefore, r.PriceAfter, r.TotalSupply} {
		w.WriteUint64(math.Float64bits(f))
	}
	w.WriteUint64(r.TotalComputeJobs)

	return hash.Of(w.Bytes())
}

// TotalNodes is the network size implied by ShardCounts.
func (r EpochReport) TotalNodes() int {
	total := 0
	for _, n := range r.ShardCounts {
		total += n
	}
	return total
}

// PriceChange is the relative price movement over the epoch.
func (r EpochReport) PriceChange() float64 {
	if r.PriceBefore == 0 {
		return 0
	}
	return r.PriceAfter/r.PriceBefore - 1
}
