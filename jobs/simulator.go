// Package jobs simulates synthetic compute jobs: a job is priced in compute
// units, spread over a random subset of capable nodes, and its token cost is
// paid out to them in equal shares.
package jobs

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/rony4d/go-meshx-sim/inter"
	"github.com/rony4d/go-meshx-sim/meshx"
	"github.com/rony4d/go-meshx-sim/utils/rng"
)

var (
	// ErrNoEligibleNodes means no node meets the minimum resource profile.
	// The job is skipped; the epoch carries on.
	ErrNoEligibleNodes = errors.New("no eligible nodes for job")

	// ErrEmptyNetwork means there are no nodes at all.
	ErrEmptyNetwork = errors.New("network has no nodes")
)

// Network is the state a job reads and mutates.
type Network interface {
	Len() int
	Eligible(min inter.Resources) []int
	At(i int) inter.Node
	ApplyRewardAt(i int, amount float64)
	NextJobID() uint64
}

// Simulator runs jobs under a fixed set of economy rules.
type Simulator struct {
	rules meshx.EconomyRules
	log   logrus.FieldLogger
}

// NewSimulator builds a job simulator.
func NewSimulator(rules meshx.EconomyRules, log logrus.FieldLogger) *Simulator {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Simulator{
		rules: rules,
		log:   log.WithField("component", "jobs"),
	}
}

// Run executes one job. It pays token_cost / n to each of the n sampled
// nodes and then counts the job. price only converts the cost to USD; the
// simulator never changes it.
func (s *Simulator) Run(net Network, price float64, src rng.Source) (inter.JobResult, error) {
	if net.Len() == 0 {
		return inter.JobResult{}, ErrEmptyNetwork
	}
	eligible := net.Eligible(s.rules.MinResources)
	if len(eligible) == 0 {
		return inter.JobResult{}, ErrNoEligibleNodes
	}

	picked := rng.Sample(src, len(eligible), s.rules.JobSize)

	units := rng.IntRange(src, s.rules.ComputeUnits.Min, s.rules.ComputeUnits.Max)
	tokenCost := float64(units) * s.rules.UnitPriceToken
	reward := tokenCost / float64(len(picked))

	recipients := make([]inter.NodeID, len(picked))
	for i, p := range picked {
		node := eligible[p]
		net.ApplyRewardAt(node, reward)
		recipients[i] = net.At(node).ID
	}

	res := inter.JobResult{
		JobID:         net.NextJobID(),
		ComputeUnits:  units,
		TokenCost:     tokenCost,
		USDCost:       tokenCost * price,
		NodesUsed:     len(picked),
		RewardPerNode: reward,
		Recipients:    recipients,
		AvgLatencyMs:  rng.IntRange(src, s.rules.LatencyMs.Min, s.rules.LatencyMs.Max),
	}

	s.log.WithFields(logrus.Fields{
		"job":   res.Name(),
		"units": units,
		"cost":  tokenCost,
		"nodes": res.NodesUsed,
	}).Trace("Job executed")
	return res, nil
}
