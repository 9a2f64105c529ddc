// Package replay streams historical candles through strategies. A runner
// replays one candle series sequentially into one strategy instance; RunAll
// fans independent runners out across goroutines, since strategies share no
// state with each other.
package replay

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"go.uber.org/zap"

	"github.com/rxtech-lab/argo-ta/internal/datasource"
	"github.com/rxtech-lab/argo-ta/internal/logger"
	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"github.com/rxtech-lab/argo-ta/pkg/strategy"
	"github.com/rxtech-lab/argo-ta/pkg/types"
)

// Result summarizes one finished run.
type Result struct {
	// RunID uniquely identifies the run in logs.
	RunID uuid.UUID
	// Steps holds the verdict of every observation in order. None marks a
	// warm-up step.
	Steps []optional.Option[types.Action]
	// Counts tallies resolved verdicts by action.
	Counts map[types.Action]int
	// WarmUp is the number of leading observations that produced no verdict.
	WarmUp int
}

// Runner replays one candle source through one strategy, strictly in order.
type Runner struct {
	strategy *strategy.Strategy
	source   datasource.Source
	log      *logger.Logger

	// OnStep, when set, is called after every observation. The CLI hooks a
	// progress bar here.
	OnStep func(step int, verdict optional.Option[types.Action])
	// MaxWarmUp caps warm-up length; zero disables the cap.
	MaxWarmUp int
}

// NewRunner wires a strategy to a candle source. Log lines are scoped under
// the "replay" logger name.
func NewRunner(s *strategy.Strategy, source datasource.Source, log *logger.Logger) *Runner {
	return &Runner{
		strategy: s,
		source:   source,
		log:      log.Named("replay"),
	}
}

// Run replays the full candle series and returns the per-step verdicts.
// The strategy and source are rewound first, so a runner can be reused.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	result := &Result{
		RunID:  uuid.New(),
		Steps:  make([]optional.Option[types.Action], 0, r.source.Len()),
		Counts: make(map[types.Action]int),
	}

	r.strategy.Reset()
	r.source.Reset()

	r.log.Info("replay started",
		zap.String("run_id", result.RunID.String()),
		zap.Int("candles", r.source.Len()),
		zap.Int("warm_up_period", r.strategy.Period()),
	)

	var step int

	previous := ""

	for {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrapf(errors.ErrCodeUnknown, err, "replay %s canceled at step %d", result.RunID, step)
		}

		candle, ok := r.source.Next()
		if !ok {
			break
		}

		verdict, err := r.strategy.Evaluate(types.FromCandle(candle))
		if err != nil {
			r.log.Error("evaluation failed",
				zap.String("run_id", result.RunID.String()),
				zap.Int("step", step),
				zap.Error(err),
			)

			return nil, err
		}

		result.Steps = append(result.Steps, verdict)

		label := "none"

		if action, err := verdict.Take(); err == nil {
			label = string(action)
			result.Counts[action]++
		} else {
			result.WarmUp++

			if r.MaxWarmUp > 0 && result.WarmUp > r.MaxWarmUp {
				return nil, errors.Newf(errors.ErrCodeStrategyNotReady,
					"strategy still warming up after %d observations", r.MaxWarmUp)
			}
		}

		if label != previous {
			r.log.Info("verdict changed",
				zap.String("run_id", result.RunID.String()),
				zap.Int("step", step),
				zap.String("action", label),
			)

			previous = label
		}

		if r.OnStep != nil {
			r.OnStep(step, verdict)
		}

		step++
	}

	r.log.Info("replay finished",
		zap.String("run_id", result.RunID.String()),
		zap.Int("steps", len(result.Steps)),
		zap.Int("warm_up", result.WarmUp),
	)

	return result, nil
}

// RunAll executes every runner concurrently, one goroutine each. Within a
// runner the replay stays sequential. Results keep the input order; the
// first failure wins and cancels nothing already in flight.
func RunAll(ctx context.Context, runners ...*Runner) ([]*Result, error) {
	results := make([]*Result, len(runners))
	failures := make([]error, len(runners))

	var wg sync.WaitGroup

	for i, runner := range runners {
		wg.Add(1)

		go func(i int, runner *Runner) {
			defer wg.Done()

			results[i], failures[i] = runner.Run(ctx)
		}(i, runner)
	}

	wg.Wait()

	for _, err := range failures {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
