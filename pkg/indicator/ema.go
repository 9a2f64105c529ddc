package indicator

import (
	"fmt"

	"github.com/moznion/go-optional"

	"github.com/rxtech-lab/argo-ta/pkg/types"
)

// emaCore is an exponentially weighted average seeded with the arithmetic
// mean of its first period observations. The seed keeps early outputs
// honest: nothing is emitted until period values have been consumed, and the
// first emitted value is the plain average of those values.
type emaCore struct {
	period  int
	alpha   float64
	sum     float64
	count   int
	current float64
	primed  bool
}

func newEMACore(period int, alpha float64) emaCore {
	return emaCore{period: period, alpha: alpha}
}

// step consumes one raw value. ok is false until the seed is complete.
func (c *emaCore) step(v float64) (float64, bool) {
	if !c.primed {
		c.count++
		c.sum += v

		if c.count < c.period {
			return 0, false
		}

		c.current = c.sum / float64(c.period)
		c.primed = true

		return c.current, true
	}

	c.current = c.alpha*v + (1-c.alpha)*c.current

	return c.current, true
}

func (c *emaCore) reset() {
	c.sum = 0
	c.count = 0
	c.current = 0
	c.primed = false
}

// EMA is the exponential moving average with smoothing factor
// alpha = 2 / (period + 1), seeded by the simple average of the first
// period observations.
type EMA struct {
	core emaCore
}

// NewEMA creates an exponential moving average over the given period.
func NewEMA(period int) (*EMA, error) {
	if err := validatePeriod(period); err != nil {
		return nil, err
	}

	return &EMA{core: newEMACore(period, 2.0/float64(period+1))}, nil
}

// Next consumes the observation's closing price.
func (e *EMA) Next(data types.MarketData) (optional.Option[types.Output], error) {
	v, ok := e.core.step(data.Close())
	if !ok {
		return notReady()
	}

	return ready(types.Scalar(v))
}

// Reset restores the freshly constructed state.
func (e *EMA) Reset() {
	e.core.reset()
}

// Period returns the warm-up length.
func (e *EMA) Period() int {
	return e.core.period
}

// Shape returns the output shape.
func (e *EMA) Shape() types.OutputShape {
	return types.OutputShapeScalar
}

// Type returns the indicator's serialization tag.
func (e *EMA) Type() types.IndicatorType {
	return types.IndicatorTypeEMA
}

// Document renders the construction parameters.
func (e *EMA) Document() map[string]any {
	return map[string]any{
		"type":   string(types.IndicatorTypeEMA),
		"period": e.core.period,
	}
}

func (e *EMA) String() string {
	return fmt.Sprintf("EMA(%d)", e.core.period)
}
