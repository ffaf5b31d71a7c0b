// Package shard maps a geographic coordinate onto one of the continental
// shards of the mesh. The mapping is a fixed list of rectangular regions
// tested in priority order; the first match wins and anything left over
// (most of the Pacific, the Arctic, the gaps between boxes) lands in the
// default shard. That coarseness is part of the network model: changing a
// boundary reshuffles every node, so the boxes below must stay as they are.
package shard

import (
	"math"
)

// Shard is the human-readable continental shard label.
type Shard string

const (
	NorthAmerica Shard = "North America"
	Europe       Shard = "Europe"
	Asia         Shard = "Asia"
	SouthAmerica Shard = "South America"
	Africa       Shard = "Africa"
	Oceania      Shard = "Oceania"
	Antarctica   Shard = "Antarctica"

	// Default receives every coordinate no region claims.
	Default = NorthAmerica
)

// region is an open lat/lon rectangle: min < lat < max and min < lon < max.
type region struct {
	shard  Shard
	latMin float64
	latMax float64
	lonMin float64
	lonMax float64
}

// regions are evaluated top to bottom. Europe and Asia both overlap Africa;
// order decides those coordinates.
var regions = []region{
	{NorthAmerica, 15, 75, -170, -50},
	{Europe, 35, 75, -15, 40},
	{Asia, -10, 55, 40, 150},
	{SouthAmerica, -60, 15, -85, -30},
	{Africa, -40, 40, -20, 55},
	{Oceania, -50, -10, 110, 180},
	{Antarctica, math.Inf(-1), -60, math.Inf(-1), math.Inf(1)},
}

func (r region) contains(lat, lon float64) bool {
	return r.latMin < lat && lat < r.latMax && r.lonMin < lon && lon < r.lonMax
}

// Classify returns the shard for a coordinate. It is total: every input,
// including out-of-domain values and NaN, yields a label.
func Classify(lat, lon float64) Shard {
	for _, r := range regions {
		if r.contains(lat, lon) {
			return r.shard
		}
	}
	return Default
}

// All lists every shard label in classification priority order.
func All() []Shard {
	return []Shard{NorthAmerica, Europe, Asia, SouthAmerica, Africa, Oceania, Antarctica}
}

// String implements fmt.Stringer.
func (s Shard) String() string {
	return string(s)
}
