package epoch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/rony4d/go-meshx-sim/inter"
	"github.com/rony4d/go-meshx-sim/inter/shard"
	"github.com/rony4d/go-meshx-sim/meshx"
	"github.com/rony4d/go-meshx-sim/network"
	"github.com/rony4d/go-meshx-sim/registry"
	"github.com/rony4d/go-meshx-sim/report"
	"github.com/rony4d/go-meshx-sim/utils/rng"
)

func smallRules() meshx.Rules {
	rules := meshx.DefaultRules()
	rules.Network.NodeCount = 50
	rules.Network.ValidatorCount = 5
	rules.Economy.JobsPerEpoch = meshx.IntRange{Min: 5, Max: 10}
	return rules
}

func newController(t *testing.T, rules meshx.Rules, seed int64) (*Controller, *report.Collector) {
	t.Helper()
	src := rng.New(seed)
	net, err := network.Generate(rules, src, nil)
	require.NoError(t, err)

	log, _ := test.NewNullLogger()
	sink := &report.Collector{}
	c, err := New(Config{Rules: rules, RunID: "test"}, net, src, sink, log)
	require.NoError(t, err)
	return c, sink
}

func TestNew_rejectsInvalidRules(t *testing.T) {
	rules := smallRules()
	rules.Network.StartingPrice = 0

	reg, err := registry.New(nil)
	require.NoError(t, err)
	_, err = New(Config{Rules: rules}, network.New(reg, 1), rng.New(1), nil, nil)
	require.True(t, errors.Is(err, meshx.ErrInvalidConfiguration))
}

// TestRunEpoch_scenario: three nodes, two validators, one job of 1000 units
// spread across all of them.
func TestRunEpoch_scenario(t *testing.T) {
	require := require.New(t)

	reg, err := registry.New([]inter.Node{
		inter.NewNode("node_0000", inter.Location{Latitude: 40, Longitude: -100}, inter.Resources{CPU: 4, RAM: 8, Storage: 500, Bandwidth: 100}, 100),
		inter.NewNode("node_0001", inter.Location{Latitude: 50, Longitude: 10}, inter.Resources{CPU: 8, RAM: 16, Storage: 1000, Bandwidth: 200}, 200),
		inter.NewNode("node_0002", inter.Location{Latitude: -80, Longitude: 0}, inter.Resources{CPU: 2, RAM: 4, Storage: 100, Bandwidth: 10}, 300),
	})
	require.NoError(err)
	require.Equal(map[shard.Shard]int{shard.NorthAmerica: 1, shard.Europe: 1, shard.Antarctica: 1}, reg.ShardCounts())

	rules := meshx.DefaultRules()
	rules.Network.NodeCount = 3
	rules.Network.ValidatorCount = 2
	rules.Economy.JobsPerEpoch = meshx.IntRange{Min: 1, Max: 1}
	rules.Economy.ComputeUnits = meshx.IntRange{Min: 1000, Max: 1000}

	net := network.New(reg, rules.Network.StartingPrice)
	c, err := New(Config{Rules: rules}, net, rng.New(5), nil, nil)
	require.NoError(err)

	r, err := c.RunEpoch(context.Background())
	require.NoError(err)

	require.EqualValues(1, r.Epoch)
	require.Len(r.Validators, 2)
	require.Equal(2, net.ValidatorCount())
	require.Equal(1, r.JobsExecuted)
	require.InDelta(1.0, r.TokenVolume, 1e-12)
	require.InDelta(0.1, r.NetworkValueUSD, 1e-12)
	require.EqualValues(1, net.TotalComputeJobs())
	require.InDelta(601.0, net.TotalBalance(), 1e-9)
	require.Equal(r.PriceAfter, net.Price())
}

func TestRunEpoch_countersAndPrice(t *testing.T) {
	require := require.New(t)
	c, sink := newController(t, smallRules(), 3)
	net := c.Network()

	var lastJobs uint64
	for i := 1; i <= 10; i++ {
		price := net.Price()
		r, err := c.RunEpoch(context.Background())
		require.NoError(err)

		require.EqualValues(i, r.Epoch)
		require.Len(r.Validators, 5)
		require.Equal(5, net.ValidatorCount(), "flags must be overwritten, not accumulated")
		require.Equal(price, r.PriceBefore)
		require.Greater(r.PriceAfter, 0.0)
		require.InDelta(price, r.PriceAfter, price*0.021)
		require.InDelta(r.TokenVolume*r.PriceBefore, r.NetworkValueUSD, 1e-9)

		require.GreaterOrEqual(r.JobsExecuted, 5)
		require.LessOrEqual(r.JobsExecuted, 10)
		require.Zero(r.JobsSkipped)
		require.Equal(lastJobs+uint64(r.JobsExecuted), r.TotalComputeJobs)
		lastJobs = r.TotalComputeJobs
	}
	require.Len(sink.Epochs, 10)
}

func TestRunEpoch_shardDistribution(t *testing.T) {
	require := require.New(t)
	c, _ := newController(t, smallRules(), 11)

	r, err := c.RunEpoch(context.Background())
	require.NoError(err)
	require.Equal(c.Network().ShardCounts(), r.ShardCounts)
	require.Equal(50, r.TotalNodes())

	validators := 0
	for s, n := range r.ValidatorShards {
		validators += n
		require.LessOrEqual(n, r.ShardCounts[s], "shard %s", s)
	}
	require.Equal(len(r.Validators), validators)
}

func TestRunEpoch_cancelledKeepsEpoch(t *testing.T) {
	require := require.New(t)
	c, sink := newController(t, smallRules(), 7)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.RunEpoch(ctx)
	require.True(errors.Is(err, context.Canceled))
	require.Zero(c.Network().Epoch())
	require.Empty(sink.Epochs)

	r, err := c.RunEpoch(context.Background())
	require.NoError(err)
	require.EqualValues(1, r.Epoch)
}

func TestRunEpoch_deterministic(t *testing.T) {
	require := require.New(t)

	a, _ := newController(t, smallRules(), 42)
	b, _ := newController(t, smallRules(), 42)
	other, _ := newController(t, smallRules(), 43)

	differs := false
	for i := 0; i < 5; i++ {
		ra, err := a.RunEpoch(context.Background())
		require.NoError(err)
		rb, err := b.RunEpoch(context.Background())
		require.NoError(err)
		ro, err := other.RunEpoch(context.Background())
		require.NoError(err)

		require.Equal(ra.Hash(), rb.Hash(), "epoch %d", ra.Epoch)
		require.Equal(ra.Validators, rb.Validators)
		if ra.Hash() != ro.Hash() {
			differs = true
		}
	}
	require.True(differs, "a different seed must change the run")
}

func TestRunEpoch_priceFloor(t *testing.T) {
	require := require.New(t)

	rules := smallRules()
	rules.Economy.PriceDrift = meshx.FloatRange{Min: -1, Max: -0.5}
	c, _ := newController(t, rules, 9)

	for i := 0; i < 3; i++ {
		r, err := c.RunEpoch(context.Background())
		require.NoError(err)
		require.Equal(rules.Economy.PriceFloor, r.PriceAfter)
	}
	require.Greater(c.Network().Price(), 0.0)
}

func TestRunEpoch_noEligibleNodes(t *testing.T) {
	require := require.New(t)

	rules := smallRules()
	rules.Economy.MinResources = inter.Resources{CPU: 1000}
	c, _ := newController(t, rules, 4)
	before := c.Network().TotalBalance()

	r, err := c.RunEpoch(context.Background())
	require.NoError(err)
	require.Zero(r.JobsExecuted)
	require.GreaterOrEqual(r.JobsSkipped, 5)
	require.Zero(r.TokenVolume)
	require.Zero(r.TotalComputeJobs)
	require.Equal(before, c.Network().TotalBalance())
}

func TestRunEpoch_emptyNetwork(t *testing.T) {
	require := require.New(t)

	rules := smallRules()
	rules.Network.NodeCount = 0
	c, _ := newController(t, rules, 1)

	r, err := c.RunEpoch(context.Background())
	require.NoError(err)
	require.Empty(r.Validators)
	require.Zero(r.JobsExecuted)
	require.Zero(r.TotalSupply)
	require.Greater(r.PriceAfter, 0.0)
}

func TestRun(t *testing.T) {
	require := require.New(t)
	c, sink := newController(t, smallRules(), 7)

	require.NoError(c.Run(context.Background(), 4))
	require.Len(sink.Epochs, 4)
	require.NotNil(sink.Summary)
	require.EqualValues(4, sink.Summary.Epoch)
	require.Equal("test", sink.Summary.RunID)
	require.Equal(50, sink.Summary.TotalNodes)
	require.Equal(5, sink.Summary.TotalValidators)
	require.Equal(sink.Epochs[3].TotalComputeJobs, sink.Summary.TotalComputeJobs)
	require.InDelta(sink.Summary.TotalSupply*sink.Summary.Price, sink.Summary.MarketCapUSD, 1e-6)
}

func TestRun_cancelled(t *testing.T) {
	require := require.New(t)
	c, sink := newController(t, smallRules(), 7)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := c.Run(ctx, 3)
	require.True(errors.Is(err, context.Canceled))
	require.Empty(sink.Epochs)
	require.NotNil(sink.Summary, "summary is reported even when interrupted")
}

func TestRun_zeroEpochs(t *testing.T) {
	require := require.New(t)
	c, sink := newController(t, smallRules(), 7)

	require.NoError(c.Run(context.Background(), 0))
	require.Empty(sink.Epochs)
	require.NotNil(sink.Summary)
	require.Zero(sink.Summary.Epoch)
	require.Equal(50, sink.Summary.TotalNodes)
}

func TestRunForever(t *testing.T) {
	require := require.New(t)

	rules := smallRules()
	c, sink := newController(t, rules, 7)
	c.cfg.Pause = 5 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	err := c.RunForever(ctx)
	require.True(errors.Is(err, context.DeadlineExceeded))
	require.NotEmpty(sink.Epochs)
	require.NotNil(sink.Summary)
	require.EqualValues(len(sink.Epochs), sink.Summary.Epoch)
}
