// Package epoch drives the simulation. Each epoch elects a validator set,
// runs a batch of jobs, moves the token price and emits a report. Epochs run
// strictly one after another; the controller is the only writer of the
// epoch counter and the price.
package epoch

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rony4d/go-meshx-sim/inter"
	"github.com/rony4d/go-meshx-sim/inter/ier"
	"github.com/rony4d/go-meshx-sim/jobs"
	"github.com/rony4d/go-meshx-sim/meshx"
	"github.com/rony4d/go-meshx-sim/network"
	"github.com/rony4d/go-meshx-sim/report"
	"github.com/rony4d/go-meshx-sim/utils/rng"
	"github.com/rony4d/go-meshx-sim/validators"
	"github.com/rony4d/go-meshx-sim/vrf"
)

// Config is everything the controller needs besides the network itself.
type Config struct {
	Rules meshx.Rules

	// Pause is slept between epochs; zero runs them back to back.
	Pause time.Duration

	// RunID tags reports and the summary.
	RunID string
}

// Controller advances a network epoch by epoch.
type Controller struct {
	cfg      Config
	net      *network.Network
	src      rng.Source
	selector *validators.Selector
	jobs     *jobs.Simulator
	reporter report.Reporter
	log      logrus.FieldLogger
}

// New wires a controller. The rules are validated here so no epoch ever
// runs on a broken configuration.
func New(cfg Config, net *network.Network, src rng.Source, reporter report.Reporter, log logrus.FieldLogger) (*Controller, error) {
	if err := cfg.Rules.Validate(); err != nil {
		return nil, err
	}
	hasher, err := vrf.ByName(cfg.Rules.Network.VRFHash)
	if err != nil {
		return nil, err
	}
	if reporter == nil {
		reporter = report.Nop{}
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Controller{
		cfg:      cfg,
		net:      net,
		src:      src,
		selector: validators.NewSelector(hasher, cfg.Rules.Network.ScoringWorkers, log),
		jobs:     jobs.NewSimulator(cfg.Rules.Economy, log),
		reporter: reporter,
		log:      log.WithField("component", "epoch"),
	}, nil
}

// Network returns the state being advanced.
func (c *Controller) Network() *network.Network {
	return c.net
}

// RunEpoch performs one full epoch transition and reports it.
func (c *Controller) RunEpoch(ctx context.Context) (ier.EpochReport, error) {
	priceBefore := c.net.Price()
	e := c.net.Epoch() + 1

	selected, err := c.selector.SelectAndMark(ctx, c.net, e, c.cfg.Rules.Network.ValidatorCount)
	if err != nil {
		return ier.EpochReport{}, fmt.Errorf("epoch %d: %w", e, err)
	}
	c.net.AdvanceEpoch()

	economy := c.cfg.Rules.Economy
	planned := rng.IntRange(c.src, economy.JobsPerEpoch.Min, economy.JobsPerEpoch.Max)

	var (
		executed, skipped int
		volume            float64
	)
	for j := 0; j < planned; j++ {
		res, err := c.jobs.Run(c.net, priceBefore, c.src)
		switch {
		case errors.Is(err, jobs.ErrNoEligibleNodes), errors.Is(err, jobs.ErrEmptyNetwork):
			skipped++
			c.log.WithFields(logrus.Fields{"epoch": e, "job": j}).WithError(err).Debug("Job skipped")
			continue
		case err != nil:
			return ier.EpochReport{}, fmt.Errorf("epoch %d job %d: %w", e, j, err)
		}
		executed++
		volume += res.TokenCost
	}

	priceAfter := c.drift(priceBefore)
	c.net.SetPrice(priceAfter)

	r := ier.EpochReport{
		RunID:            c.cfg.RunID,
		Epoch:            e,
		Validators:       selected.IDs(),
		ValidatorShards:  selected.ShardCounts(),
		ShardCounts:      c.net.ShardCounts(),
		JobsExecuted:     executed,
		JobsSkipped:      skipped,
		TokenVolume:      volume,
		NetworkValueUSD:  volume * priceBefore,
		PriceBefore:      priceBefore,
		PriceAfter:       priceAfter,
		TotalSupply:      c.net.TotalBalance(),
		TotalComputeJobs: c.net.TotalComputeJobs(),
	}
	c.reporter.ReportEpoch(r)
	return r, nil
}

// drift applies one multiplicative price step and clamps the result to the
// configured floor so the price stays strictly positive.
func (c *Controller) drift(price float64) float64 {
	economy := c.cfg.Rules.Economy
	next := price * rng.Uniform(c.src, economy.PriceDrift.Min, economy.PriceDrift.Max)
	if math.IsNaN(next) || next < economy.PriceFloor {
		next = economy.PriceFloor
	}
	return next
}

// Run executes exactly epochs epochs, fewer if ctx is cancelled, then
// reports the summary of whatever state was reached. Zero epochs only
// reports the summary.
func (c *Controller) Run(ctx context.Context, epochs int) error {
	return c.finish(func() error { return c.run(ctx, epochs, false) })
}

// RunForever executes epochs until ctx is cancelled, then reports the
// summary.
func (c *Controller) RunForever(ctx context.Context) error {
	return c.finish(func() error { return c.run(ctx, 0, true) })
}

func (c *Controller) finish(run func() error) error {
	start := time.Now()
	err := run()

	summary := c.Summary()
	c.reporter.ReportSummary(summary)
	c.log.WithFields(logrus.Fields{
		"epochs":  summary.Epoch,
		"elapsed": time.Since(start).Round(time.Millisecond),
	}).Info("Simulation finished")
	return err
}

func (c *Controller) run(ctx context.Context, epochs int, forever bool) error {
	for i := 0; forever || i < epochs; i++ {
		if i > 0 && c.cfg.Pause > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.cfg.Pause):
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := c.RunEpoch(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Summary snapshots the network as it stands.
func (c *Controller) Summary() inter.Summary {
	return report.Summarize(c.net, c.cfg.RunID)
}
