package inter

import "fmt"

// JobResult is the snapshot of one synthetic compute job. Jobs never outlive
// the epoch that ran them; only their effects on balances and the job
// counter persist.
type JobResult struct {
	// JobID is the cumulative job counter value after this job was counted.
	JobID        uint64
	ComputeUnits int
	TokenCost    float64
	USDCost      float64
	// NodesUsed is the number of nodes that shared the reward.
	NodesUsed int
	// RewardPerNode is TokenCost / NodesUsed.
	RewardPerNode float64
	// Recipients are the nodes that were paid, in sampling order.
	Recipients []NodeID
	// AvgLatencyMs is sampled for reporting only.
	AvgLatencyMs int
}

// Name renders the job id the way reports show it.
func (j JobResult) Name() string {
	return fmt.Sprintf("job_%06d", j.JobID)
}
