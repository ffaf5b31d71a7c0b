package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// NodeFlags hold the distributions generated nodes are sampled from.

func NodeFlags() []cli.Flag {
	return []cli.Flag{
		cli.IntFlag{
			Name:  "node.cpu.min",
			Usage: "Minimum CPU cores of a generated node",
			Value: 2,
		},
		cli.IntFlag{
			Name:  "node.cpu.max",
			Usage: "Maximum CPU cores of a generated node",
			Value: 16,
		},
		cli.StringFlag{
			Name:  "node.ram",
			Usage: "Comma-separated RAM sizes in GB to choose from",
			Value: "4,8,16,32,64",
		},
		cli.StringFlag{
			Name:  "node.storage",
			Usage: "Comma-separated storage sizes in GB to choose from",
			Value: "100,500,1000,2000",
		},
		cli.IntFlag{
			Name:  "node.bandwidth.min",
			Usage: "Minimum bandwidth of a generated node (Mbps)",
			Value: 10,
		},
		cli.IntFlag{
			Name:  "node.bandwidth.max",
			Usage: "Maximum bandwidth of a generated node (Mbps)",
			Value: 1000,
		},
		cli.Float64Flag{
			Name:  "node.balance.min",
			Usage: "Minimum initial MESHX stake",
			Value: 100,
		},
		cli.Float64Flag{
			Name:  "node.balance.max",
			Usage: "Maximum initial MESHX stake",
			Value: 10000,
		},
	}
}
