package launcher

import "time"

// Defaults bundles the baseline values of everything outside the simulation
// rules. Rules defaults live in meshx.DefaultRules.

type Defaults struct {
	Logging LoggingDefaults
	Metrics MetricsDefaults
	Run     RunDefaults
}

// LoggingDefaults controls log verbosity/format.
type LoggingDefaults struct {
	Verbosity int    // Log level numeric (0=fatal, 1=error, 2=warn, 3=info, 4=debug, 5=trace).
	Format    string // Log output format (text vs json).
	Color     bool   // ANSI colors in text logs; leave off when piping to files.
	SentryDSN string // Sentry project DSN. Empty disables error forwarding.
}

type MetricsDefaults struct {
	Enable   bool   // Serve Prometheus metrics on HTTPAddr:HTTPPort while the simulation runs.
	HTTPAddr string // Interface the metrics server binds to.
	HTTPPort int    // TCP port scrapers connect to; default 6060.
}

// RunDefaults shape the pacing of a run.
type RunDefaults struct {
	Pause time.Duration // Sleep between epochs; zero runs them back to back.
}

// DefaultConfig returns a fully populated Defaults instance.

func DefaultConfig() Defaults {
	return Defaults{
		Logging: LoggingDefaults{
			Verbosity: 3,
			Format:    "text",
			Color:     false,
		},
		Metrics: MetricsDefaults{
			Enable:   false,
			HTTPAddr: "127.0.0.1",
			HTTPPort: 6060,
		},
		Run: RunDefaults{
			Pause: 0,
		},
	}
}
