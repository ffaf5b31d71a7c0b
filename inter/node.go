// Package inter defines the value types shared across the simulator: the
// node record held by the registry, the snapshot produced by each compute
// job, and the end-of-run network summary handed to reporting sinks.
package inter

import (
	"fmt"

	"github.com/rony4d/go-meshx-sim/inter/shard"
)

// NodeID is the stable identity of a simulated node (e.g. "node_0042").
// It feeds the VRF input and breaks score ties, so it must never change.
type NodeID string

// FormatNodeID renders the i-th node identity. Four digits are kept for
// networks below ten thousand nodes; larger indices simply widen.
func FormatNodeID(i int) NodeID {
	return NodeID(fmt.Sprintf("node_%04d", i))
}

// Location is a geographic coordinate in degrees.
type Location struct {
	Latitude  float64 `yaml:"latitude" json:"latitude"`
	Longitude float64 `yaml:"longitude" json:"longitude"`
}

// Resources describes the capacity a node contributes to the mesh.
type Resources struct {
	CPU       int `yaml:"cpu" json:"cpu"`             // cores
	RAM       int `yaml:"ram" json:"ram"`             // GB
	Storage   int `yaml:"storage" json:"storage"`     // GB
	Bandwidth int `yaml:"bandwidth" json:"bandwidth"` // Mbps
}

// Meets reports whether every capacity is at least the given minimum.
func (r Resources) Meets(min Resources) bool {
	return r.CPU >= min.CPU &&
		r.RAM >= min.RAM &&
		r.Storage >= min.Storage &&
		r.Bandwidth >= min.Bandwidth
}

// Add returns the component-wise sum.
func (r Resources) Add(o Resources) Resources {
	return Resources{
		CPU:       r.CPU + o.CPU,
		RAM:       r.RAM + o.RAM,
		Storage:   r.Storage + o.Storage,
		Bandwidth: r.Bandwidth + o.Bandwidth,
	}
}

// Map returns the capacities keyed by resource name.
func (r Resources) Map() map[string]int {
	return map[string]int{
		"cpu":       r.CPU,
		"ram":       r.RAM,
		"storage":   r.Storage,
		"bandwidth": r.Bandwidth,
	}
}

// Node is one participant of the simulated mesh.
//
// Only Balance and IsValidator change after creation. Shard is derived from
// Location once, when the node is built, and is never recomputed.
type Node struct {
	ID          NodeID
	Location    Location
	Resources   Resources
	Balance     float64 // MESHX tokens held, never negative
	IsValidator bool    // written only by the validator selector
	Shard       shard.Shard
}

// NewNode builds a node and assigns its shard from the location.
func NewNode(id NodeID, loc Location, res Resources, balance float64) Node {
	return Node{
		ID:        id,
		Location:  loc,
		Resources: res,
		Balance:   balance,
		Shard:     shard.Classify(loc.Latitude, loc.Longitude),
	}
}
