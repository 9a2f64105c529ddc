package indicator

import (
	"fmt"

	"github.com/moznion/go-optional"

	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"github.com/rxtech-lab/argo-ta/pkg/types"
)

// SuperTrend is a trend-following overlay built on ATR bands around the
// median price, with a persistent trend direction that flips when the close
// crosses the opposite band. Output is the 2-tuple (level, direction):
// direction +1 means up-trend and the level is the lower band, -1 means
// down-trend and the level is the upper band.
type SuperTrend struct {
	period     int
	multiplier float64
	atr        ATR

	prevClose float64
	upper     float64
	lower     float64
	direction float64
}

// NewSuperTrend creates a SuperTrend over the given ATR period and band
// multiplier.
func NewSuperTrend(period int, multiplier float64) (*SuperTrend, error) {
	if err := validatePeriod(period); err != nil {
		return nil, err
	}

	if multiplier <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidMultiplier,
			"band multiplier must be positive, got %v", multiplier)
	}

	return &SuperTrend{
		period:     period,
		multiplier: multiplier,
		atr:        ATR{period: period, smooth: newEMACore(period, 1.0/float64(period))},
	}, nil
}

// Next consumes one observation.
func (s *SuperTrend) Next(data types.MarketData) (optional.Option[types.Output], error) {
	close := data.Close()

	atr, ok := s.atr.step(data)
	if !ok {
		s.prevClose = close

		return notReady()
	}

	median := data.MedianPrice()
	basicUpper := median + s.multiplier*atr
	basicLower := median - s.multiplier*atr

	if s.direction == 0 {
		// First ready observation anchors the bands and starts the trend
		// on the side the close already occupies.
		s.upper = basicUpper
		s.lower = basicLower
		s.direction = 1

		if close < median {
			s.direction = -1
		}
	} else {
		// Bands only ratchet toward price; they loosen again once the
		// close escapes them.
		if basicUpper < s.upper || s.prevClose > s.upper {
			s.upper = basicUpper
		}

		if basicLower > s.lower || s.prevClose < s.lower {
			s.lower = basicLower
		}

		if s.direction == 1 && close < s.lower {
			s.direction = -1
		} else if s.direction == -1 && close > s.upper {
			s.direction = 1
		}
	}

	s.prevClose = close

	level := s.upper
	if s.direction == 1 {
		level = s.lower
	}

	return ready(types.Tuple(level, s.direction))
}

// Reset restores the freshly constructed state.
func (s *SuperTrend) Reset() {
	s.atr.Reset()
	s.prevClose = 0
	s.upper = 0
	s.lower = 0
	s.direction = 0
}

// Period returns the warm-up length.
func (s *SuperTrend) Period() int {
	return s.period + 1
}

// Shape returns the output shape.
func (s *SuperTrend) Shape() types.OutputShape {
	return types.OutputShape(2)
}

// Type returns the indicator's serialization tag.
func (s *SuperTrend) Type() types.IndicatorType {
	return types.IndicatorTypeSuperTrend
}

// Document renders the construction parameters.
func (s *SuperTrend) Document() map[string]any {
	return map[string]any{
		"type":       string(types.IndicatorTypeSuperTrend),
		"period":     s.period,
		"multiplier": s.multiplier,
	}
}

func (s *SuperTrend) String() string {
	return fmt.Sprintf("SuperTrend(%d, %v)", s.period, s.multiplier)
}
