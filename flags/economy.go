package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// EconomyFlags tune job generation, rewards and the price process.
func EconomyFlags() []cli.Flag {
	return []cli.Flag{
		cli.IntFlag{
			Name:  "job.size",
			Usage: "Nodes a job is spread across when enough are eligible",
			Value: 10,
		},
		cli.IntFlag{
			Name:  "jobs.min",
			Usage: "Minimum jobs per epoch",
			Value: 50,
		},
		cli.IntFlag{
			Name:  "jobs.max",
			Usage: "Maximum jobs per epoch",
			Value: 200,
		},
		cli.IntFlag{
			Name:  "job.units.min",
			Usage: "Minimum compute units of a job",
			Value: 100,
		},
		cli.IntFlag{
			Name:  "job.units.max",
			Usage: "Maximum compute units of a job",
			Value: 10000,
		},
		cli.Float64Flag{
			Name:  "job.unitprice",
			Usage: "MESHX paid per compute unit",
			Value: 0.001,
		},
		cli.IntFlag{
			Name:  "job.latency.min",
			Usage: "Minimum reported job latency (ms)",
			Value: 10,
		},
		cli.IntFlag{
			Name:  "job.latency.max",
			Usage: "Maximum reported job latency (ms)",
			Value: 100,
		},
		cli.IntFlag{
			Name:  "job.min.cpu",
			Usage: "CPU cores a node needs to take a job",
			Value: 2,
		},
		cli.IntFlag{
			Name:  "job.min.ram",
			Usage: "RAM (GB) a node needs to take a job",
			Value: 4,
		},
		cli.IntFlag{
			Name:  "job.min.storage",
			Usage: "Storage (GB) a node needs to take a job",
			Value: 100,
		},
		cli.IntFlag{
			Name:  "job.min.bandwidth",
			Usage: "Bandwidth (Mbps) a node needs to take a job",
			Value: 10,
		},
		cli.Float64Flag{
			Name:  "price.drift.min",
			Usage: "Lower bound of the per-epoch price multiplier",
			Value: 0.98,
		},
		cli.Float64Flag{
			Name:  "price.drift.max",
			Usage: "Upper bound of the per-epoch price multiplier",
			Value: 1.02,
		},
		cli.Float64Flag{
			Name:  "price.floor",
			Usage: "Smallest price the drift may produce",
			Value: 1e-9,
		},
	}
}

// AllFlags is every flag of the run command.
func AllFlags() []cli.Flag {
	var all []cli.Flag
	all = append(all, CommonFlags()...)
	all = append(all, NetworkFlags()...)
	all = append(all, NodeFlags()...)
	all = append(all, EconomyFlags()...)
	return all
}
