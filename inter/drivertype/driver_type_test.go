package drivertype

import (
	"math/big"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rony4d/go-meshx-sim/inter"
	"github.com/rony4d/go-meshx-sim/inter/shard"
)

func candidate(id inter.NodeID, score float64, s shard.Shard, stake float64) Validator {
	return Validator{ID: id, Score: big.NewFloat(score), Shard: s, Stake: stake}
}

func TestLess_ordersByScoreThenID(t *testing.T) {
	vv := Validators{
		candidate("node_0003", 5, shard.Asia, 1),
		candidate("node_0001", 9, shard.Europe, 2),
		candidate("node_0002", 5, shard.Asia, 3),
		candidate("node_0000", 0, shard.Africa, 4),
	}
	sort.Slice(vv, func(i, j int) bool { return Less(vv[i], vv[j]) })

	require.Equal(t, []inter.NodeID{"node_0001", "node_0002", "node_0003", "node_0000"}, vv.IDs())
	require.False(t, Less(vv[0], vv[0]), "order must be strict")
}

func TestValidators_aggregates(t *testing.T) {
	require := require.New(t)

	vv := Validators{
		candidate("a", 1, shard.Asia, 10),
		candidate("b", 2, shard.Asia, 20),
		candidate("c", 3, shard.Oceania, 30.5),
	}
	require.Equal(60.5, vv.TotalStake())
	require.Equal(map[shard.Shard]int{shard.Asia: 2, shard.Oceania: 1}, vv.ShardCounts())
	require.Equal(map[inter.NodeID]struct{}{"a": {}, "b": {}, "c": {}}, vv.Set())

	var empty Validators
	require.Empty(empty.IDs())
	require.Zero(empty.TotalStake())
}
