package jobs

import (
	"errors"
	"math"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/rony4d/go-meshx-sim/inter"
	"github.com/rony4d/go-meshx-sim/meshx"
	"github.com/rony4d/go-meshx-sim/network"
	"github.com/rony4d/go-meshx-sim/registry"
	"github.com/rony4d/go-meshx-sim/utils/rng"
)

func newSimulator(rules meshx.EconomyRules) *Simulator {
	log, _ := test.NewNullLogger()
	return NewSimulator(rules, log)
}

func scenarioNetwork(t *testing.T) *network.Network {
	t.Helper()
	reg, err := registry.New([]inter.Node{
		inter.NewNode("node_0000", inter.Location{Latitude: 40, Longitude: -100}, inter.Resources{CPU: 4, RAM: 8, Storage: 500, Bandwidth: 100}, 100),
		inter.NewNode("node_0001", inter.Location{Latitude: 50, Longitude: 10}, inter.Resources{CPU: 8, RAM: 16, Storage: 1000, Bandwidth: 200}, 200),
		inter.NewNode("node_0002", inter.Location{Latitude: -80, Longitude: 0}, inter.Resources{CPU: 2, RAM: 4, Storage: 100, Bandwidth: 10}, 300),
	})
	require.NoError(t, err)
	return network.New(reg, 0.10)
}

// TestRun_scenario: one job of 1000 units at 0.001 token/unit over all three
// nodes costs 1 token, pays each node a third and sets the counter to 1.
func TestRun_scenario(t *testing.T) {
	require := require.New(t)

	rules := meshx.DefaultEconomyRules()
	rules.ComputeUnits = meshx.IntRange{Min: 1000, Max: 1000}
	net := scenarioNetwork(t)
	before := net.Balances()

	res, err := newSimulator(rules).Run(net, net.Price(), rng.New(1))
	require.NoError(err)

	require.Equal(1000, res.ComputeUnits)
	require.InDelta(1.0, res.TokenCost, 1e-12)
	require.InDelta(0.1, res.USDCost, 1e-12)
	require.Equal(3, res.NodesUsed)
	require.ElementsMatch([]inter.NodeID{"node_0000", "node_0001", "node_0002"}, res.Recipients)
	require.EqualValues(1, res.JobID)
	require.Equal("job_000001", res.Name())
	require.EqualValues(1, net.TotalComputeJobs())

	for i, b := range net.Balances() {
		require.InDelta(1.0/3, b-before[i], 1e-9, "node %d", i)
	}
	require.GreaterOrEqual(res.AvgLatencyMs, rules.LatencyMs.Min)
	require.LessOrEqual(res.AvgLatencyMs, rules.LatencyMs.Max)
}

// TestRun_rewardsSumToCost runs many jobs over a generated network and checks
// the balance deltas of each job add up to its token cost.
func TestRun_rewardsSumToCost(t *testing.T) {
	require := require.New(t)

	rules := meshx.DefaultRules()
	rules.Network.NodeCount = 200
	net, err := network.Generate(rules, rng.New(11), nil)
	require.NoError(err)

	sim := newSimulator(rules.Economy)
	src := rng.New(12)
	for j := 0; j < 100; j++ {
		before := net.TotalBalance()
		res, err := sim.Run(net, net.Price(), src)
		require.NoError(err)
		require.Equal(rules.Economy.JobSize, res.NodesUsed)
		require.InDelta(res.TokenCost, net.TotalBalance()-before, 1e-6)
		require.InDelta(res.TokenCost, res.RewardPerNode*float64(res.NodesUsed), 1e-9)

		unique := make(map[inter.NodeID]bool)
		for _, id := range res.Recipients {
			require.False(unique[id], "node %s paid twice", id)
			unique[id] = true
		}
	}
	require.EqualValues(100, net.TotalComputeJobs())
}

// TestRun_onlyEligibleNodesPaid raises the cpu minimum so only one node
// qualifies; it must receive the whole cost.
func TestRun_onlyEligibleNodesPaid(t *testing.T) {
	require := require.New(t)

	rules := meshx.DefaultEconomyRules()
	rules.MinResources = inter.Resources{CPU: 8}
	net := scenarioNetwork(t)

	res, err := newSimulator(rules).Run(net, net.Price(), rng.New(3))
	require.NoError(err)
	require.Equal([]inter.NodeID{"node_0001"}, res.Recipients)
	require.InDelta(200+res.TokenCost, net.At(1).Balance, 1e-9)
}

func TestRun_noEligibleNodes(t *testing.T) {
	require := require.New(t)

	rules := meshx.DefaultEconomyRules()
	rules.MinResources = inter.Resources{CPU: 64}
	net := scenarioNetwork(t)
	before := net.Balances()

	_, err := newSimulator(rules).Run(net, net.Price(), rng.New(3))
	require.True(errors.Is(err, ErrNoEligibleNodes))
	require.Zero(net.TotalComputeJobs(), "skipped jobs must not be counted")
	require.Equal(before, net.Balances())
}

func TestRun_emptyNetwork(t *testing.T) {
	reg, err := registry.New(nil)
	require.NoError(t, err)
	net := network.New(reg, 1)

	_, err = newSimulator(meshx.DefaultEconomyRules()).Run(net, 1, rng.New(1))
	require.True(t, errors.Is(err, ErrEmptyNetwork))
	require.Zero(t, net.TotalComputeJobs())
}

func TestRun_costStaysInRange(t *testing.T) {
	require := require.New(t)
	rules := meshx.DefaultEconomyRules()
	net := scenarioNetwork(t)
	sim := newSimulator(rules)
	src := rng.New(8)

	for i := 0; i < 200; i++ {
		res, err := sim.Run(net, 2, src)
		require.NoError(err)
		require.GreaterOrEqual(res.ComputeUnits, rules.ComputeUnits.Min)
		require.LessOrEqual(res.ComputeUnits, rules.ComputeUnits.Max)
		require.False(math.IsNaN(res.RewardPerNode))
		require.InDelta(res.TokenCost*2, res.USDCost, 1e-9)
	}
}
