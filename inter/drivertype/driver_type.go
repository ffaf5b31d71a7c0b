// Package drivertype defines the validator record the lottery produces. It
// bridges the selector and everything downstream (registry flags, epoch
// reports), carrying enough of the draw to audit why a node won.
package drivertype

import (
	"math/big"

	"github.com/rony4d/go-meshx-sim/inter"
	"github.com/rony4d/go-meshx-sim/inter/shard"
)

// Validator is one scored lottery candidate.
type Validator struct {
	// ID is the node identity; it breaks score ties.
	ID inter.NodeID

	// Index is the node's position in the registry.
	Index int

	// Shard the node belongs to.
	Shard shard.Shard

	// Stake is the balance the node held when it was scored.
	Stake float64

	// Output is the simulated VRF output, H(seed || id) as an unsigned integer.
	Output *big.Int

	// Score is Output * Stake. Higher stake raises the expected score, but
	// the hash term dominates the spread, so selection odds are not a clean
	// linear function of stake share.
	Score *big.Float
}

// Less orders candidates by score descending, then identity ascending.
// It is a strict total order as long as identities are unique.
func Less(a, b Validator) bool {
	if c := a.Score.Cmp(b.Score); c != 0 {
		return c > 0
	}
	return a.ID < b.ID
}

// Validators is an ordered validator set.
type Validators []Validator

// IDs returns the identities in order.
func (vv Validators) IDs() []inter.NodeID {
	ids := make([]inter.NodeID, len(vv))
	for i, v := range vv {
		ids[i] = v.ID
	}
	return ids
}

// Set returns the identities as a lookup set.
func (vv Validators) Set() map[inter.NodeID]struct{} {
	set := make(map[inter.NodeID]struct{}, len(vv))
	for _, v := range vv {
		set[v.ID] = struct{}{}
	}
	return set
}

// TotalStake sums the stake of the set.
func (vv Validators) TotalStake() float64 {
	var total float64
	for _, v := range vv {
		total += v.Stake
	}
	return total
}

// ShardCounts returns how many validators each shard contributes.
func (vv Validators) ShardCounts() map[shard.Shard]int {
	counts := make(map[shard.Shard]int)
	for _, v := range vv {
		counts[v.Shard]++
	}
	return counts
}
