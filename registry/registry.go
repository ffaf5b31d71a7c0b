// Package registry holds the population of simulated nodes.
//
// Nodes live in one flat slice in creation order and are addressed by index;
// a map resolves identities to indices. Only balances and validator flags
// are ever written after creation, and every write goes through the
// registry's lock, so reward accumulation from several goroutines cannot
// lose updates.
package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rony4d/go-meshx-sim/inter"
	"github.com/rony4d/go-meshx-sim/inter/shard"
	"github.com/rony4d/go-meshx-sim/meshx"
	"github.com/rony4d/go-meshx-sim/utils/rng"
)

// ErrUnknownNode is returned when an identity is not registered.
var ErrUnknownNode = errors.New("unknown node")

// LocationSampler draws the coordinate of a new node.
type LocationSampler func(src rng.Source) inter.Location

// UniformLocation spreads nodes uniformly over the lat/lon rectangle.
func UniformLocation(src rng.Source) inter.Location {
	lat := rng.Uniform(src, -90, 90)
	lon := rng.Uniform(src, -180, 180)
	return inter.Location{Latitude: lat, Longitude: lon}
}

// CreateNodes generates count nodes in order. Draws for each node happen in
// a fixed sequence (location, cpu, ram, storage, bandwidth, balance) so a
// seeded source always yields the same population.
func CreateNodes(count int, rules meshx.ResourceRules, src rng.Source, sample LocationSampler) []inter.Node {
	if sample == nil {
		sample = UniformLocation
	}
	nodes := make([]inter.Node, 0, count)
	for i := 0; i < count; i++ {
		loc := sample(src)
		res := inter.Resources{
			CPU:       rng.IntRange(src, rules.CPU.Min, rules.CPU.Max),
			RAM:       rng.Choice(src, rules.RAM),
			Storage:   rng.Choice(src, rules.Storage),
			Bandwidth: rng.IntRange(src, rules.Bandwidth.Min, rules.Bandwidth.Max),
		}
		balance := rng.Uniform(src, rules.Balance.Min, rules.Balance.Max)
		nodes = append(nodes, inter.NewNode(inter.FormatNodeID(i), loc, res, balance))
	}
	return nodes
}

// Registry is the mutable node store.
type Registry struct {
	mu    sync.RWMutex
	nodes []inter.Node
	index map[inter.NodeID]int
}

// New takes ownership of nodes. Identities must be unique.
func New(nodes []inter.Node) (*Registry, error) {
	index := make(map[inter.NodeID]int, len(nodes))
	for i, n := range nodes {
		if _, dup := index[n.ID]; dup {
			return nil, fmt.Errorf("duplicate node id %s", n.ID)
		}
		index[n.ID] = i
	}
	return &Registry{nodes: nodes, index: index}, nil
}

// Len returns the number of nodes.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.nodes)
}

// Nodes returns a snapshot of every node in creation order.
func (r *Registry) Nodes() []inter.Node {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]inter.Node, len(r.nodes))
	copy(out, r.nodes)
	return out
}

// Node looks a node up by identity.
func (r *Registry) Node(id inter.NodeID) (inter.Node, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.index[id]
	if !ok {
		return inter.Node{}, false
	}
	return r.nodes[i], true
}

// At returns the node at index i.
func (r *Registry) At(i int) inter.Node {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.nodes[i]
}

// ApplyReward adds amount to the balance of the identified node.
func (r *Registry) ApplyReward(id inter.NodeID, amount float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.index[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}
	r.nodes[i].Balance += amount
	return nil
}

// ApplyRewardAt adds amount to the balance of the node at index i.
func (r *Registry) ApplyRewardAt(i int, amount float64) {
	r.mu.Lock()
	r.nodes[i].Balance += amount
	r.mu.Unlock()
}

// SetValidatorFlags marks exactly the nodes in selected as validators and
// clears the flag everywhere else. Flags never carry over between calls.
func (r *Registry) SetValidatorFlags(selected map[inter.NodeID]struct{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.nodes {
		_, ok := selected[r.nodes[i].ID]
		r.nodes[i].IsValidator = ok
	}
}

// Eligible returns the indices of nodes meeting the minimum profile, in
// creation order.
func (r *Registry) Eligible(min inter.Resources) []int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]int, 0, len(r.nodes))
	for i := range r.nodes {
		if r.nodes[i].Resources.Meets(min) {
			out = append(out, i)
		}
	}
	return out
}

// ShardCounts returns how many nodes each shard holds.
func (r *Registry) ShardCounts() map[shard.Shard]int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	counts := make(map[shard.Shard]int)
	for i := range r.nodes {
		counts[r.nodes[i].Shard]++
	}
	return counts
}

// ValidatorCount returns how many nodes currently hold the validator flag.
func (r *Registry) ValidatorCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for i := range r.nodes {
		if r.nodes[i].IsValidator {
			n++
		}
	}
	return n
}

// TotalResources sums the capacity of every node.
func (r *Registry) TotalResources() inter.Resources {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var total inter.Resources
	for i := range r.nodes {
		total = total.Add(r.nodes[i].Resources)
	}
	return total
}

// Balances returns every balance in creation order.
func (r *Registry) Balances() []float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]float64, len(r.nodes))
	for i := range r.nodes {
		out[i] = r.nodes[i].Balance
	}
	return out
}

// TotalBalance is the circulating MESHX supply held by nodes.
func (r *Registry) TotalBalance() float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var total float64
	for i := range r.nodes {
		total += r.nodes[i].Balance
	}
	return total
}
