// Package validators runs the stake-weighted validator lottery.
//
// Each epoch every node is scored with H(H(epoch) || id) * balance and the
// highest scores win. The draw is a pure function of the node set, the
// balances and the epoch number, so replaying an epoch reproduces its
// validator set exactly.
package validators

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"runtime"
	"sort"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rony4d/go-meshx-sim/inter"
	"github.com/rony4d/go-meshx-sim/inter/drivertype"
	"github.com/rony4d/go-meshx-sim/utils/fast"
	"github.com/rony4d/go-meshx-sim/vrf"
)

// ErrNegativeTarget rejects a negative validator set size.
var ErrNegativeTarget = errors.New("validator target count is negative")

// scorePrec holds a 256-bit output times a float64 mantissa without rounding.
const scorePrec = 320

// minChunk keeps tiny networks on a single goroutine.
const minChunk = 256

// Registry is the part of the node registry the selector reads and writes.
type Registry interface {
	Nodes() []inter.Node
	SetValidatorFlags(selected map[inter.NodeID]struct{})
}

// Selector scores nodes and picks the validator set.
type Selector struct {
	hasher  vrf.Hasher
	workers int
	log     logrus.FieldLogger
}

// NewSelector builds a selector. workers <= 0 means one per CPU.
func NewSelector(hasher vrf.Hasher, workers int, log logrus.FieldLogger) *Selector {
	if hasher == nil {
		hasher = vrf.Default()
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Selector{
		hasher:  hasher,
		workers: workers,
		log:     log.WithField("component", "validators"),
	}
}

// Score computes a lottery record for every node, in input order.
// Nodes are scored in parallel chunks; each chunk writes only its own slots.
func (s *Selector) Score(ctx context.Context, nodes []inter.Node, epoch idx.Epoch) (drivertype.Validators, error) {
	out := make(drivertype.Validators, len(nodes))
	if len(nodes) == 0 {
		return out, nil
	}
	seed := vrf.EpochSeed(s.hasher, epoch)

	chunk := (len(nodes) + s.workers - 1) / s.workers
	if chunk < minChunk {
		chunk = minChunk
	}

	g, ctx := errgroup.WithContext(ctx)
	for start := 0; start < len(nodes); start += chunk {
		start, end := start, start+chunk
		if end > len(nodes) {
			end = len(nodes)
		}
		g.Go(func() error {
			w := fast.NewWriter(make([]byte, 0, len(seed)+32))
			for i := start; i < end; i++ {
				if i%minChunk == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				out[i] = s.score(w, seed, i, nodes[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("score epoch %d: %w", epoch, err)
	}

	s.log.WithFields(logrus.Fields{
		"epoch": epoch,
		"seed":  hexutil.Encode(seed),
		"nodes": len(nodes),
	}).Debug("Scored lottery candidates")
	return out, nil
}

func (s *Selector) score(w *fast.Writer, seed []byte, i int, n inter.Node) drivertype.Validator {
	output := vrf.Output(s.hasher, w, seed, n.ID)
	score := new(big.Float).SetPrec(scorePrec).SetInt(output)
	score.Mul(score, new(big.Float).SetPrec(scorePrec).SetFloat64(n.Balance))
	return drivertype.Validator{
		ID:     n.ID,
		Index:  i,
		Shard:  n.Shard,
		Stake:  n.Balance,
		Output: output,
		Score:  score,
	}
}

// Select returns the top min(k, len(nodes)) candidates ordered by score.
func (s *Selector) Select(ctx context.Context, nodes []inter.Node, epoch idx.Epoch, k int) (drivertype.Validators, error) {
	if k < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeTarget, k)
	}
	scored, err := s.Score(ctx, nodes, epoch)
	if err != nil {
		return nil, err
	}
	sort.Slice(scored, func(i, j int) bool {
		return drivertype.Less(scored[i], scored[j])
	})
	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k:k], nil
}

// SelectAndMark runs the lottery over the registry and replaces every
// node's validator flag with membership in the winning set.
func (s *Selector) SelectAndMark(ctx context.Context, reg Registry, epoch idx.Epoch, k int) (drivertype.Validators, error) {
	selected, err := s.Select(ctx, reg.Nodes(), epoch, k)
	if err != nil {
		return nil, err
	}
	reg.SetValidatorFlags(selected.Set())

	s.log.WithFields(logrus.Fields{
		"epoch":      epoch,
		"validators": len(selected),
		"stake":      selected.TotalStake(),
	}).Debug("Validator set selected")
	return selected, nil
}
