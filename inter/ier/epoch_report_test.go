package ier

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rony4d/go-meshx-sim/inter"
	"github.com/rony4d/go-meshx-sim/inter/shard"
)

func sampleReport() EpochReport {
	return EpochReport{
		RunID:            "a",
		Epoch:            3,
		Validators:       []inter.NodeID{"node_0002", "node_0000"},
		ValidatorShards:  map[shard.Shard]int{shard.Europe: 1, shard.NorthAmerica: 1},
		ShardCounts:      map[shard.Shard]int{shard.Europe: 4, shard.NorthAmerica: 6},
		JobsExecuted:     120,
		JobsSkipped:      1,
		TokenVolume:      612.5,
		NetworkValueUSD:  61.25,
		PriceBefore:      0.1,
		PriceAfter:       0.101,
		TotalSupply:      5_000_000,
		TotalComputeJobs: 360,
	}
}

func TestEpochReport_Hash(t *testing.T) {
	require := require.New(t)

	a := sampleReport()
	b := sampleReport()
	require.Equal(a.Hash(), b.Hash())

	b.RunID = "b"
	require.Equal(a.Hash(), b.Hash(), "run id must not affect the hash")

	mutations := map[string]func(r *EpochReport){
		"epoch":      func(r *EpochReport) { r.Epoch++ },
		"validators": func(r *EpochReport) { r.Validators[0], r.Validators[1] = r.Validators[1], r.Validators[0] },
		"shards":     func(r *EpochReport) { r.ValidatorShards[shard.Asia] = 1 },
		"nodes":      func(r *EpochReport) { r.ShardCounts[shard.Oceania] = 1 },
		"jobs":       func(r *EpochReport) { r.JobsExecuted++ },
		"skipped":    func(r *EpochReport) { r.JobsSkipped = 0 },
		"volume":     func(r *EpochReport) { r.TokenVolume += 1e-9 },
		"price":      func(r *EpochReport) { r.PriceAfter = 0.099 },
		"counter":    func(r *EpochReport) { r.TotalComputeJobs++ },
	}
	for name, mutate := range mutations {
		r := sampleReport()
		mutate(&r)
		require.NotEqual(a.Hash(), r.Hash(), name)
	}
}

func TestEpochReport_TotalNodes(t *testing.T) {
	require.Equal(t, 10, sampleReport().TotalNodes())
	require.Zero(t, EpochReport{}.TotalNodes())
}

func TestEpochReport_PriceChange(t *testing.T) {
	r := sampleReport()
	require.InDelta(t, 0.01, r.PriceChange(), 1e-9)

	r.PriceBefore = 0
	require.Zero(t, r.PriceChange())
}
