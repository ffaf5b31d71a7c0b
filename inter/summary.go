package inter

import (
	"github.com/rony4d/go-meshx-sim/inter/shard"
)

// BalanceStats describes the distribution of node balances.
type BalanceStats struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Summary is the end-of-run snapshot of the whole network.
type Summary struct {
	RunID            string              `json:"run_id"`
	Epoch            uint64              `json:"epoch"`
	TotalNodes       int                 `json:"total_nodes"`
	TotalValidators  int                 `json:"total_validators"`
	TotalResources   Resources           `json:"total_resources"`
	TotalSupply      float64             `json:"total_meshx_supply"`
	Price            float64             `json:"meshx_price"`
	MarketCapUSD     float64             `json:"market_cap_usd"`
	TotalComputeJobs uint64              `json:"total_compute_jobs"`
	ShardCounts      map[shard.Shard]int `json:"shard_counts"`
	Balances         BalanceStats        `json:"balances"`
}
