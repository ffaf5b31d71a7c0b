package report

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/sirupsen/logrus"

	"github.com/rony4d/go-meshx-sim/inter"
	"github.com/rony4d/go-meshx-sim/inter/ier"
)

// Logger writes reports as structured log lines.
type Logger struct {
	log logrus.FieldLogger
}

// NewLogger builds a logging sink.
func NewLogger(log logrus.FieldLogger) *Logger {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Logger{log: log}
}

func (l *Logger) ReportEpoch(r ier.EpochReport) {
	l.log.WithFields(logrus.Fields{
		"epoch":       r.Epoch,
		"validators":  len(r.Validators),
		"nodes":       r.TotalNodes(),
		"shards":      FormatShards(r.ShardCounts),
		"val_shards":  FormatShards(r.ValidatorShards),
		"jobs":        r.JobsExecuted,
		"skipped":     r.JobsSkipped,
		"volume":      r.TokenVolume,
		"value_usd":   r.NetworkValueUSD,
		"price":       r.PriceAfter,
		"total_jobs":  r.TotalComputeJobs,
		"report_hash": hexutil.Encode(r.Hash().Bytes()),
	}).Info("Epoch complete")
}

func (l *Logger) ReportSummary(s inter.Summary) {
	l.log.WithFields(logrus.Fields{
		"run":        s.RunID,
		"epochs":     s.Epoch,
		"nodes":      s.TotalNodes,
		"validators": s.TotalValidators,
		"cpu":        s.TotalResources.CPU,
		"ram_gb":     s.TotalResources.RAM,
		"storage_gb": s.TotalResources.Storage,
		"bw_mbps":    s.TotalResources.Bandwidth,
		"supply":     s.TotalSupply,
		"price":      s.Price,
		"market_cap": s.MarketCapUSD,
		"jobs":       s.TotalComputeJobs,
	}).Info("Network summary")

	l.log.WithFields(logrus.Fields{
		"shards": FormatShards(s.ShardCounts),
		"mean":   s.Balances.Mean,
		"stddev": s.Balances.StdDev,
		"median": s.Balances.Median,
		"min":    s.Balances.Min,
		"max":    s.Balances.Max,
	}).Info("Balance distribution")
}
