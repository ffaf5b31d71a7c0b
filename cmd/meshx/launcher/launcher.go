package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-meshx-sim/epoch"
	"github.com/rony4d/go-meshx-sim/flags"
	"github.com/rony4d/go-meshx-sim/integration"
	"github.com/rony4d/go-meshx-sim/inter/shard"
	"github.com/rony4d/go-meshx-sim/network"
	"github.com/rony4d/go-meshx-sim/report"
	"github.com/rony4d/go-meshx-sim/utils/rng"
	"github.com/rony4d/go-meshx-sim/vrf"
)

// Launch parses args and runs the selected command.
func Launch(args []string) error {
	return newApp(os.Stdout, os.Stderr).Run(args)
}

func newApp(stdout, stderr io.Writer) *cli.App {
	app := flags.NewApp("MeshX epoch-engine simulator")
	app.Writer = stdout
	app.ErrWriter = stderr
	app.Flags = flags.AllFlags()
	app.Action = runAction(stderr)
	app.Commands = []cli.Command{
		{
			Name:   "run",
			Usage:  "Simulate the network epoch by epoch (default)",
			Flags:  flags.AllFlags(),
			Action: runAction(stderr),
		},
		{
			Name:   "classify",
			Usage:  "Print the shard a coordinate belongs to",
			Flags:  flags.ClassifyFlags(),
			Action: classifyAction,
		},
		{
			Name:   "presets",
			Usage:  "List the simulation presets",
			Action: presetsAction,
		},
		{
			Name:   "version",
			Usage:  "Print version numbers",
			Action: versionAction,
		},
	}
	return app
}

func runAction(logOut io.Writer) func(ctx *cli.Context) error {
	return func(ctx *cli.Context) error {
		cfg, err := MakeAllConfigs(ctx)
		if err != nil {
			return err
		}
		log, err := newLogger(cfg.Logging, logOut)
		if err != nil {
			return err
		}

		sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return Simulate(sigCtx, cfg, log)
	}
}

// Simulate builds the network described by cfg and runs it to completion or
// until ctx is cancelled. Cancellation is not an error.
func Simulate(ctx context.Context, cfg Config, log *logrus.Logger) error {
	runID, err := uuid.NewRandom()
	if err != nil {
		return err
	}
	entry := log.WithField("run", runID.String())
	rules := cfg.Rules

	src := rng.New(rules.Network.Seed)
	net, err := network.Generate(rules, src, nil)
	if err != nil {
		return err
	}
	entry.WithFields(logrus.Fields{
		"preset":     rules.Name,
		"nodes":      net.Len(),
		"validators": rules.Network.ValidatorCount,
		"epochs":     rules.Network.EpochsToRun,
		"forever":    rules.Network.Forever,
		"price":      net.Price(),
		"seed":       rules.Network.Seed,
		"vrf":        rules.Network.VRFHash,
	}).Info("Network initialised")
	entry.WithField("shards", report.FormatShards(net.ShardCounts())).Debug("Shard distribution")

	sinks := []report.Reporter{report.NewLogger(entry)}
	if cfg.Metrics.Enabled {
		metrics := report.NewMetrics("meshx")
		srv := report.NewServer(cfg.Metrics.Endpoint(), metrics, entry)
		if err := srv.Start(); err != nil {
			return fmt.Errorf("metrics server: %w", err)
		}
		defer func() {
			if err := srv.Stop(); err != nil {
				entry.WithError(err).Warn("Metrics server shutdown failed")
			}
		}()
		sinks = append(sinks, metrics)
	}

	ctrl, err := epoch.New(epoch.Config{
		Rules: rules,
		Pause: cfg.Pause,
		RunID: runID.String(),
	}, net, src, report.NewMulti(sinks...), entry)
	if err != nil {
		return err
	}

	if rules.Network.Forever {
		err = ctrl.RunForever(ctx)
	} else {
		err = ctrl.Run(ctx, rules.Network.EpochsToRun)
	}
	if errors.Is(err, context.Canceled) {
		entry.Warn("Simulation interrupted")
		return nil
	}
	return err
}

func classifyAction(ctx *cli.Context) error {
	if !ctx.IsSet("lat") || !ctx.IsSet("lon") {
		return errors.New("both --lat and --lon are required")
	}
	lat, lon := ctx.Float64("lat"), ctx.Float64("lon")
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", lat)
	}
	if lon < -180 || lon > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", lon)
	}
	_, err := fmt.Fprintln(ctx.App.Writer, shard.Classify(lat, lon))
	return err
}

func presetsAction(ctx *cli.Context) error {
	w := tabwriter.NewWriter(ctx.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tNODES\tVALIDATORS\tEPOCHS\tJOBS/EPOCH\tDESCRIPTION")
	for _, p := range integration.Presets() {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d-%d\t%s\n",
			p.Name, p.Nodes, p.Validators, p.Epochs, p.JobsPerEpoch.Min, p.JobsPerEpoch.Max, p.Description)
	}
	return w.Flush()
}

func versionAction(ctx *cli.Context) error {
	w := ctx.App.Writer
	fmt.Fprintln(w, "MeshX simulator")
	fmt.Fprintln(w, "Version:", ctx.App.Version)
	fmt.Fprintln(w, "VRF hashes:", strings.Join(vrf.Names(), ", "))
	fmt.Fprintln(w, "Go Version:", runtime.Version())
	fmt.Fprintln(w, "OS/Arch:", runtime.GOOS+"/"+runtime.GOARCH)
	return nil
}
