package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// NetworkFlags size the simulated network and control the run.

func NetworkFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "preset",
			Usage: "Named simulation preset (prototype|devnet|continental|planet)",
		},
		cli.IntFlag{
			Name:  "nodes",
			Usage: "Number of nodes created at start",
			Value: 1000,
		},
		cli.BoolFlag{
			Name:  "require-nodes",
			Usage: "Reject a configuration with zero nodes",
		},
		cli.IntFlag{
			Name:  "validators",
			Usage: "Validator set size elected each epoch",
			Value: 100,
		},
		cli.IntFlag{
			Name:  "epochs",
			Usage: "Number of epochs to run",
			Value: 10,
		},
		cli.BoolFlag{
			Name:  "forever",
			Usage: "Run epochs until interrupted, ignoring --epochs",
		},
		cli.Float64Flag{
			Name:  "price",
			Usage: "Starting MESHX price in USD",
			Value: 0.10,
		},
		cli.Int64Flag{
			Name:  "seed",
			Usage: "Seed of the random source; equal seeds reproduce a run",
			Value: 1,
		},
		cli.StringFlag{
			Name:  "vrf.hash",
			Usage: "Digest used by the validator lottery (sha256|keccak256)",
			Value: "sha256",
		},
		cli.IntFlag{
			Name:  "vrf.workers",
			Usage: "Goroutines scoring lottery candidates (0 = one per CPU)",
		},
		cli.DurationFlag{
			Name:  "epoch.pause",
			Usage: "Pause between epochs",
		},
	}
}

// ClassifyFlags are the coordinates accepted by the classify command.
func ClassifyFlags() []cli.Flag {
	return []cli.Flag{
		cli.Float64Flag{
			Name:  "lat",
			Usage: "Latitude in degrees [-90, 90]",
		},
		cli.Float64Flag{
			Name:  "lon",
			Usage: "Longitude in degrees [-180, 180]",
		},
	}
}
