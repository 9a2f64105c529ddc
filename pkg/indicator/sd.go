package indicator

import (
	"fmt"
	"math"

	"github.com/moznion/go-optional"

	"github.com/rxtech-lab/argo-ta/pkg/types"
)

// sdCore maintains a rolling mean and squared-deviation sum over a circular
// window using Welford's update, extended with an exact sliding replacement
// once the window is full. The deviation is the population form.
type sdCore struct {
	period int
	index  int
	count  int
	m      float64
	m2     float64
	ring   []float64
}

func newSDCore(period int) sdCore {
	return sdCore{period: period, ring: make([]float64, period)}
}

// step consumes one raw value. ok is false until the window is full.
func (c *sdCore) step(v float64) (float64, bool) {
	old := c.ring[c.index]
	c.ring[c.index] = v

	c.index++
	if c.index == c.period {
		c.index = 0
	}

	if c.count < c.period {
		c.count++
		delta := v - c.m
		c.m += delta / float64(c.count)
		c.m2 += delta * (v - c.m)
	} else {
		delta := v - old
		oldM := c.m
		c.m += delta / float64(c.period)
		c.m2 += delta * (v - c.m + old - oldM)
	}

	// Rounding can push the accumulator slightly negative.
	if c.m2 < 0 {
		c.m2 = 0
	}

	if c.count < c.period {
		return 0, false
	}

	return math.Sqrt(c.m2 / float64(c.count)), true
}

func (c *sdCore) mean() float64 {
	return c.m
}

func (c *sdCore) reset() {
	c.index = 0
	c.count = 0
	c.m = 0
	c.m2 = 0

	for i := range c.ring {
		c.ring[i] = 0
	}
}

// StandardDeviation is the rolling population standard deviation of the
// closing price over the given period.
type StandardDeviation struct {
	core sdCore
}

// NewStandardDeviation creates a rolling standard deviation over the given
// period.
func NewStandardDeviation(period int) (*StandardDeviation, error) {
	if err := validatePeriod(period); err != nil {
		return nil, err
	}

	return &StandardDeviation{core: newSDCore(period)}, nil
}

// Next consumes the observation's closing price.
func (s *StandardDeviation) Next(data types.MarketData) (optional.Option[types.Output], error) {
	v, ok := s.core.step(data.Close())
	if !ok {
		return notReady()
	}

	return ready(types.Scalar(v))
}

// Reset restores the freshly constructed state.
func (s *StandardDeviation) Reset() {
	s.core.reset()
}

// Period returns the warm-up length.
func (s *StandardDeviation) Period() int {
	return s.core.period
}

// Shape returns the output shape.
func (s *StandardDeviation) Shape() types.OutputShape {
	return types.OutputShapeScalar
}

// Type returns the indicator's serialization tag.
func (s *StandardDeviation) Type() types.IndicatorType {
	return types.IndicatorTypeStandardDeviation
}

// Document renders the construction parameters.
func (s *StandardDeviation) Document() map[string]any {
	return map[string]any{
		"type":   string(types.IndicatorTypeStandardDeviation),
		"period": s.core.period,
	}
}

func (s *StandardDeviation) String() string {
	return fmt.Sprintf("SD(%d)", s.core.period)
}
