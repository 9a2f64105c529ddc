package indicator

import (
	"fmt"

	"github.com/moznion/go-optional"

	"github.com/rxtech-lab/argo-ta/pkg/types"
)

// RSI is the relative strength index: Wilder-smoothed average gains over
// average losses, mapped into [0, 100]. The first output appears after
// period+1 observations since the first close only anchors the change
// series.
type RSI struct {
	period  int
	prev    float64
	hasPrev bool
	gains   emaCore
	losses  emaCore
}

// NewRSI creates a relative strength index over the given period.
func NewRSI(period int) (*RSI, error) {
	if err := validatePeriod(period); err != nil {
		return nil, err
	}

	alpha := 1.0 / float64(period)

	return &RSI{
		period: period,
		gains:  newEMACore(period, alpha),
		losses: newEMACore(period, alpha),
	}, nil
}

// Next consumes the observation's closing price.
func (r *RSI) Next(data types.MarketData) (optional.Option[types.Output], error) {
	v := data.Close()

	if !r.hasPrev {
		r.prev = v
		r.hasPrev = true

		return notReady()
	}

	change := v - r.prev
	r.prev = v

	var gain, loss float64
	if change > 0 {
		gain = change
	} else {
		loss = -change
	}

	avgGain, _ := r.gains.step(gain)
	avgLoss, ok := r.losses.step(loss)

	if !ok {
		return notReady()
	}

	// A lossless window pins the index to its ceiling.
	if avgLoss == 0 {
		return ready(types.Scalar(100))
	}

	rs := avgGain / avgLoss

	return ready(types.Scalar(100 - 100/(1+rs)))
}

// Reset restores the freshly constructed state.
func (r *RSI) Reset() {
	r.prev = 0
	r.hasPrev = false
	r.gains.reset()
	r.losses.reset()
}

// Period returns the warm-up length.
func (r *RSI) Period() int {
	return r.period + 1
}

// Shape returns the output shape.
func (r *RSI) Shape() types.OutputShape {
	return types.OutputShapeScalar
}

// Type returns the indicator's serialization tag.
func (r *RSI) Type() types.IndicatorType {
	return types.IndicatorTypeRSI
}

// Document renders the construction parameters.
func (r *RSI) Document() map[string]any {
	return map[string]any{
		"type":   string(types.IndicatorTypeRSI),
		"period": r.period,
	}
}

func (r *RSI) String() string {
	return fmt.Sprintf("RSI(%d)", r.period)
}
