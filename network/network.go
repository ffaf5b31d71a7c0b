// Package network holds the global state of a simulated mesh: the node
// registry plus the epoch counter, the cumulative job counter and the token
// price.
package network

import (
	"sync/atomic"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"

	"github.com/rony4d/go-meshx-sim/meshx"
	"github.com/rony4d/go-meshx-sim/registry"
	"github.com/rony4d/go-meshx-sim/utils/rng"
)

// Network is the simulation state advanced by the epoch controller.
//
// Epoch and price have a single writer (the controller) and epochs run
// sequentially. The job counter is atomic so jobs may be executed from
// several goroutines within an epoch.
type Network struct {
	*registry.Registry

	epoch     idx.Epoch
	price     float64
	totalJobs atomic.Uint64
}

// New wraps a registry. The epoch starts at 0.
func New(reg *registry.Registry, startingPrice float64) *Network {
	return &Network{
		Registry: reg,
		price:    startingPrice,
	}
}

// Generate creates the node population described by rules and wraps it.
func Generate(rules meshx.Rules, src rng.Source, sample registry.LocationSampler) (*Network, error) {
	nodes := registry.CreateNodes(rules.Network.NodeCount, rules.Resources, src, sample)
	reg, err := registry.New(nodes)
	if err != nil {
		return nil, err
	}
	return New(reg, rules.Network.StartingPrice), nil
}

// Epoch returns the number of the last epoch entered.
func (n *Network) Epoch() idx.Epoch {
	return n.epoch
}

// AdvanceEpoch increments the epoch counter and returns the new value.
func (n *Network) AdvanceEpoch() idx.Epoch {
	n.epoch++
	return n.epoch
}

// Price returns the current MESHX price in USD.
func (n *Network) Price() float64 {
	return n.price
}

// SetPrice replaces the current price.
func (n *Network) SetPrice(p float64) {
	n.price = p
}

// TotalComputeJobs returns the cumulative number of executed jobs.
func (n *Network) TotalComputeJobs() uint64 {
	return n.totalJobs.Load()
}

// NextJobID counts one more executed job and returns the new counter value,
// which doubles as the job's id.
func (n *Network) NextJobID() uint64 {
	return n.totalJobs.Add(1)
}
