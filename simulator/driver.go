package simulator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/lukefi/metsi-go/eventtree"
	"github.com/lukefi/metsi-go/persistence"
	"github.com/lukefi/metsi-go/stand"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Driver is the simulator (C8): an event tree built once per run, a
// persistence sink, and a logger. RunStand/RunAll push one stand's
// payload through the tree and collect its terminal alternatives.
type Driver struct {
	Tree   *eventtree.Node
	Sink   persistence.Sink
	Logger *zap.SugaredLogger
}

// NewDriver builds the event tree exactly once (§4.8) from instructions
// and wraps it with sink and logger for per-stand evaluation.
func NewDriver(instructions []eventtree.Instruction, sink persistence.Sink, logger *zap.SugaredLogger) (*Driver, error) {
	tree, err := eventtree.Build(instructions)
	if err != nil {
		return nil, fmt.Errorf("simulator: build event tree: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Driver{Tree: tree, Sink: sink, Logger: logger}, nil
}

// RunStand wraps unit in a fresh payload (empty history, empty
// collected-data, per §4.8) and evaluates the tree against it, returning
// the surviving terminal alternatives. A stand whose every branch
// aborted is not a driver failure: it is reported as zero alternatives,
// per §7's branch-vs-run error taxonomy.
func (d *Driver) RunStand(unit *stand.ComputationalUnit) ([]*stand.Payload, error) {
	payload := stand.NewPayload(unit)
	results, err := eventtree.Evaluate(d.Tree, payload, d.persistFunc())
	if err != nil {
		if errors.Is(err, eventtree.ErrAllBranchesAborted) {
			branchesPruned.Inc()
			d.Logger.Infow("stand produced zero alternatives", "stand", unit.Identifier)
			return nil, nil
		}
		return nil, fmt.Errorf("simulator: evaluate stand %s: %w", unit.Identifier, err)
	}
	standsProcessed.Inc()
	alternativesProduced.Add(float64(len(results)))
	d.Logger.Infow("stand evaluated", "stand", unit.Identifier, "alternatives", len(results))
	return results, nil
}

func (d *Driver) persistFunc() eventtree.PersistFunc {
	if d.Sink == nil {
		return nil
	}
	return d.Sink.Persist
}

// RunAll evaluates every stand sequentially, in declaration order,
// collecting alternatives keyed by stand identifier, and logs one line
// per stand with its surviving-alternative count (§4.8, §7's
// user-visible behavior).
func (d *Driver) RunAll(units []*stand.ComputationalUnit) (map[string][]*stand.Payload, error) {
	results := make(map[string][]*stand.Payload, len(units))
	for _, unit := range units {
		alternatives, err := d.RunStand(unit)
		if err != nil {
			return results, err
		}
		results[unit.Identifier] = alternatives
	}
	return results, nil
}

// RunAllParallel evaluates stands concurrently using an errgroup-backed
// worker pool of the given size (§5: "driver MAY parallelize across
// stands at its discretion"). The shared Sink must already serialize its
// own writes (both BoltSink and SQLiteSink do); this method additionally
// guards the shared results map with a mutex. A per-stand child logger
// carries the stand identifier as structured context.
func (d *Driver) RunAllParallel(ctx context.Context, units []*stand.ComputationalUnit, concurrency int) (map[string][]*stand.Payload, error) {
	results := make(map[string][]*stand.Payload, len(units))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, unit := range units {
		unit := unit
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			child := &Driver{Tree: d.Tree, Sink: d.Sink, Logger: d.Logger.With("stand", unit.Identifier)}
			alternatives, err := child.RunStand(unit)
			if err != nil {
				return err
			}
			mu.Lock()
			results[unit.Identifier] = alternatives
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
