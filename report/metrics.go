package report

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rony4d/go-meshx-sim/inter"
	"github.com/rony4d/go-meshx-sim/inter/ier"
	"github.com/rony4d/go-meshx-sim/inter/shard"
)

// Metrics exposes engine output as Prometheus collectors. It owns its
// registry so several simulations can live in one process.
type Metrics struct {
	registry *prometheus.Registry

	epoch           prometheus.Gauge
	price           prometheus.Gauge
	supply          prometheus.Gauge
	marketCap       prometheus.Gauge
	validators      prometheus.Gauge
	jobs            prometheus.Counter
	skipped         prometheus.Counter
	volume          prometheus.Counter
	networkValue    prometheus.Counter
	validatorShards *prometheus.GaugeVec
	shardNodes      *prometheus.GaugeVec
}

// NewMetrics creates and registers every collector under namespace.
func NewMetrics(namespace string) *Metrics {
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: name, Help: help})
	}
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: name, Help: help})
	}

	m := &Metrics{
		registry:     prometheus.NewRegistry(),
		epoch:        gauge("epoch", "Last completed epoch."),
		price:        gauge("price_usd", "MESHX price in USD."),
		supply:       gauge("supply", "MESHX held by all nodes."),
		marketCap:    gauge("market_cap_usd", "Supply valued at the current price."),
		validators:   gauge("validators", "Size of the current validator set."),
		jobs:         counter("jobs_total", "Compute jobs executed."),
		skipped:      counter("jobs_skipped_total", "Jobs skipped for lack of eligible nodes."),
		volume:       counter("token_volume_total", "MESHX paid out for jobs."),
		networkValue: counter("network_value_usd_total", "Job payouts valued at the epoch's opening price."),
		validatorShards: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "validator_shard",
			Help:      "Validators per shard in the current epoch.",
		}, []string{"shard"}),
		shardNodes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "shard_nodes",
			Help:      "Nodes per shard.",
		}, []string{"shard"}),
	}
	m.registry.MustRegister(
		m.epoch, m.price, m.supply, m.marketCap, m.validators,
		m.jobs, m.skipped, m.volume, m.networkValue,
		m.validatorShards, m.shardNodes,
	)
	return m
}

// Registry returns the registry the collectors live in.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ReportEpoch(r ier.EpochReport) {
	m.epoch.Set(float64(r.Epoch))
	m.price.Set(r.PriceAfter)
	m.supply.Set(r.TotalSupply)
	m.marketCap.Set(r.TotalSupply * r.PriceAfter)
	m.validators.Set(float64(len(r.Validators)))
	m.jobs.Add(float64(r.JobsExecuted))
	m.skipped.Add(float64(r.JobsSkipped))
	m.volume.Add(r.TokenVolume)
	m.networkValue.Add(r.NetworkValueUSD)
	for _, s := range shard.All() {
		m.validatorShards.WithLabelValues(string(s)).Set(float64(r.ValidatorShards[s]))
		m.shardNodes.WithLabelValues(string(s)).Set(float64(r.ShardCounts[s]))
	}
}

func (m *Metrics) ReportSummary(s inter.Summary) {
	m.supply.Set(s.TotalSupply)
	m.price.Set(s.Price)
	m.marketCap.Set(s.MarketCapUSD)
	for _, sh := range shard.All() {
		m.shardNodes.WithLabelValues(string(sh)).Set(float64(s.ShardCounts[sh]))
	}
}
