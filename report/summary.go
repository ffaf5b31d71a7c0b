package report

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/rony4d/go-meshx-sim/inter"
	"github.com/rony4d/go-meshx-sim/network"
)

// Summarize snapshots the network at the end of a run.
func Summarize(net *network.Network, runID string) inter.Summary {
	supply := net.TotalBalance()
	price := net.Price()
	return inter.Summary{
		RunID:            runID,
		Epoch:            uint64(net.Epoch()),
		TotalNodes:       net.Len(),
		TotalValidators:  net.ValidatorCount(),
		TotalResources:   net.TotalResources(),
		TotalSupply:      supply,
		Price:            price,
		MarketCapUSD:     supply * price,
		TotalComputeJobs: net.TotalComputeJobs(),
		ShardCounts:      net.ShardCounts(),
		Balances:         BalanceStats(net.Balances()),
	}
}

// BalanceStats describes a balance distribution. The standard deviation is
// the sample one; the median is the empirical 0.5 quantile, which is the
// lower middle element for an even count.
func BalanceStats(balances []float64) inter.BalanceStats {
	if len(balances) == 0 {
		return inter.BalanceStats{}
	}
	sorted := make([]float64, len(balances))
	copy(sorted, balances)
	sort.Float64s(sorted)

	bs := inter.BalanceStats{
		Mean:   stat.Mean(sorted, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Min:    floats.Min(sorted),
		Max:    floats.Max(sorted),
	}
	if len(sorted) > 1 {
		bs.StdDev = stat.StdDev(sorted, nil)
	}
	return bs
}
