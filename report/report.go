// Package report contains the sinks that receive what the epoch engine
// produces: one EpochReport per epoch and a Summary at the end of a run.
// The engine only hands over values; rendering is up to each sink.
package report

import (
	"fmt"
	"strings"

	"github.com/rony4d/go-meshx-sim/inter"
	"github.com/rony4d/go-meshx-sim/inter/ier"
	"github.com/rony4d/go-meshx-sim/inter/shard"
)

// Reporter receives engine output.
type Reporter interface {
	ReportEpoch(r ier.EpochReport)
	ReportSummary(s inter.Summary)
}

// Multi fans every report out to several sinks in order.
type Multi []Reporter

// NewMulti drops nil sinks.
func NewMulti(sinks ...Reporter) Multi {
	m := make(Multi, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			m = append(m, s)
		}
	}
	return m
}

func (m Multi) ReportEpoch(r ier.EpochReport) {
	for _, s := range m {
		s.ReportEpoch(r)
	}
}

func (m Multi) ReportSummary(s inter.Summary) {
	for _, sink := range m {
		sink.ReportSummary(s)
	}
}

// Nop discards everything.
type Nop struct{}

func (Nop) ReportEpoch(ier.EpochReport) {}

func (Nop) ReportSummary(inter.Summary) {}

// Collector keeps every report in memory.
type Collector struct {
	Epochs  []ier.EpochReport
	Summary *inter.Summary
}

func (c *Collector) ReportEpoch(r ier.EpochReport) {
	c.Epochs = append(c.Epochs, r)
}

func (c *Collector) ReportSummary(s inter.Summary) {
	c.Summary = &s
}

// FormatShards renders per-shard counts in classifier order, skipping empty
// shards, e.g. "North America=3 Europe=1".
func FormatShards(counts map[shard.Shard]int) string {
	parts := make([]string, 0, len(counts))
	for _, s := range shard.All() {
		if n := counts[s]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", s, n))
		}
	}
	return strings.Join(parts, " ")
}
