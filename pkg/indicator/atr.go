package indicator

import (
	"fmt"

	"github.com/moznion/go-optional"

	"github.com/rxtech-lab/argo-ta/pkg/types"
)

// ATR is the average true range: a Wilder smoothing of the true range
// series. Since the true range itself needs one prior observation, the first
// output appears after period+1 observations.
type ATR struct {
	period int
	tr     TrueRange
	smooth emaCore
}

// NewATR creates an average true range over the given period.
func NewATR(period int) (*ATR, error) {
	if err := validatePeriod(period); err != nil {
		return nil, err
	}

	return &ATR{
		period: period,
		smooth: newEMACore(period, 1.0/float64(period)),
	}, nil
}

// step consumes one raw observation. ok is false during warm-up.
func (a *ATR) step(data types.MarketData) (float64, bool) {
	tr, ok := a.tr.step(data)
	if !ok {
		return 0, false
	}

	return a.smooth.step(tr)
}

// Next consumes one observation.
func (a *ATR) Next(data types.MarketData) (optional.Option[types.Output], error) {
	v, ok := a.step(data)
	if !ok {
		return notReady()
	}

	return ready(types.Scalar(v))
}

// Reset restores the freshly constructed state.
func (a *ATR) Reset() {
	a.tr.Reset()
	a.smooth.reset()
}

// Period returns the warm-up length.
func (a *ATR) Period() int {
	return a.period + 1
}

// Shape returns the output shape.
func (a *ATR) Shape() types.OutputShape {
	return types.OutputShapeScalar
}

// Type returns the indicator's serialization tag.
func (a *ATR) Type() types.IndicatorType {
	return types.IndicatorTypeATR
}

// Document renders the construction parameters.
func (a *ATR) Document() map[string]any {
	return map[string]any{
		"type":   string(types.IndicatorTypeATR),
		"period": a.period,
	}
}

func (a *ATR) String() string {
	return fmt.Sprintf("ATR(%d)", a.period)
}
