package indicator

import (
	"fmt"

	"github.com/moznion/go-optional"

	"github.com/rxtech-lab/argo-ta/pkg/types"
)

// StochasticOscillator computes %K, the position of the close inside the
// high-low range of the last period observations, and %D, an SMA of %K over
// the smoothing period. Output is the 2-tuple (%K, %D), both in [0, 100].
// A flat window (no range) maps %K to the 0 boundary.
type StochasticOscillator struct {
	period    int
	smoothing int
	highs     *queue
	lows      *queue
	d         *SMA
}

// NewStochasticOscillator creates a stochastic oscillator over the given
// lookback period and %D smoothing period.
func NewStochasticOscillator(period, smoothing int) (*StochasticOscillator, error) {
	if err := validatePeriod(period); err != nil {
		return nil, err
	}

	if err := validatePeriod(smoothing); err != nil {
		return nil, err
	}

	d, _ := NewSMA(smoothing)

	return &StochasticOscillator{
		period:    period,
		smoothing: smoothing,
		highs:     newQueue(period),
		lows:      newQueue(period),
		d:         d,
	}, nil
}

// Next consumes one observation.
func (s *StochasticOscillator) Next(data types.MarketData) (optional.Option[types.Output], error) {
	s.highs.push(data.High())
	s.lows.push(data.Low())

	if !s.highs.full() {
		return notReady()
	}

	highest := s.highs.values()[0]
	for _, v := range s.highs.values()[1:] {
		if v > highest {
			highest = v
		}
	}

	lowest := s.lows.values()[0]
	for _, v := range s.lows.values()[1:] {
		if v < lowest {
			lowest = v
		}
	}

	var k float64
	if highest != lowest {
		k = 100 * (data.Close() - lowest) / (highest - lowest)
	}

	d, ok := s.d.step(k)
	if !ok {
		return notReady()
	}

	return ready(types.Tuple(k, d))
}

// Reset restores the freshly constructed state.
func (s *StochasticOscillator) Reset() {
	s.highs.reset()
	s.lows.reset()
	s.d.Reset()
}

// Period returns the warm-up length: the %K lookback plus the %D smoothing
// lag.
func (s *StochasticOscillator) Period() int {
	return s.period + s.smoothing - 1
}

// Shape returns the output shape.
func (s *StochasticOscillator) Shape() types.OutputShape {
	return types.OutputShape(2)
}

// Type returns the indicator's serialization tag.
func (s *StochasticOscillator) Type() types.IndicatorType {
	return types.IndicatorTypeStochasticOscillator
}

// Document renders the construction parameters.
func (s *StochasticOscillator) Document() map[string]any {
	return map[string]any{
		"type":             string(types.IndicatorTypeStochasticOscillator),
		"period":           s.period,
		"smoothing_period": s.smoothing,
	}
}

func (s *StochasticOscillator) String() string {
	return fmt.Sprintf("Stoch(%d, %d)", s.period, s.smoothing)
}
