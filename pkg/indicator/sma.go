package indicator

import (
	"fmt"

	"github.com/moznion/go-optional"

	"github.com/rxtech-lab/argo-ta/pkg/types"
)

// SMA is the simple moving average: the arithmetic mean over a rolling
// window of the last period closing prices.
type SMA struct {
	period int
	window *queue
	sum    float64
}

// NewSMA creates a simple moving average over the given period.
func NewSMA(period int) (*SMA, error) {
	if err := validatePeriod(period); err != nil {
		return nil, err
	}

	return &SMA{period: period, window: newQueue(period)}, nil
}

// step consumes one raw value. ok is false until the window is full.
func (s *SMA) step(v float64) (float64, bool) {
	s.sum += v
	if evicted, full := s.window.push(v); full {
		s.sum -= evicted
	}

	if !s.window.full() {
		return 0, false
	}

	return s.sum / float64(s.period), true
}

// Next consumes the observation's closing price.
func (s *SMA) Next(data types.MarketData) (optional.Option[types.Output], error) {
	v, ok := s.step(data.Close())
	if !ok {
		return notReady()
	}

	return ready(types.Scalar(v))
}

// Reset restores the freshly constructed state.
func (s *SMA) Reset() {
	s.window.reset()
	s.sum = 0
}

// Period returns the warm-up length.
func (s *SMA) Period() int {
	return s.period
}

// Shape returns the output shape.
func (s *SMA) Shape() types.OutputShape {
	return types.OutputShapeScalar
}

// Type returns the indicator's serialization tag.
func (s *SMA) Type() types.IndicatorType {
	return types.IndicatorTypeSMA
}

// Document renders the construction parameters.
func (s *SMA) Document() map[string]any {
	return map[string]any{
		"type":   string(types.IndicatorTypeSMA),
		"period": s.period,
	}
}

func (s *SMA) String() string {
	return fmt.Sprintf("SMA(%d)", s.period)
}
